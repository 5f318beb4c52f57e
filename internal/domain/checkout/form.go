package checkout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/your-org/beauty-store/internal/domain/order"
)

// DefaultCountry is used when the form leaves country blank.
const DefaultCountry = "India"

// ShippingForm is the delivery details entered at checkout.
type ShippingForm struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	ZipCode   string `json:"zipCode" validate:"required"`
	Country   string `json:"country"`
	Notes     string `json:"notes"`
}

var fieldLabels = map[string]string{
	"FirstName": "first name",
	"LastName":  "last name",
	"Email":     "email",
	"Phone":     "phone number",
	"Address":   "address",
	"City":      "city",
	"State":     "state",
	"ZipCode":   "zip code",
}

var validate = validator.New()

// Normalize trims every field and fills in the default country.
func (f ShippingForm) Normalize() ShippingForm {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Address = strings.TrimSpace(f.Address)
	f.City = strings.TrimSpace(f.City)
	f.State = strings.TrimSpace(f.State)
	f.ZipCode = strings.TrimSpace(f.ZipCode)
	f.Country = strings.TrimSpace(f.Country)
	f.Notes = strings.TrimSpace(f.Notes)
	if f.Country == "" {
		f.Country = DefaultCountry
	}
	return f
}

// Validate checks the form and reports the first problem in field order as
// an ErrValidation.
func (f ShippingForm) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fe := fieldErrs[0]
	label := fieldLabels[fe.StructField()]
	switch fe.Tag() {
	case "email":
		return fmt.Errorf("%w: please enter a valid email", ErrValidation)
	default:
		return fmt.Errorf("%w: please fill in %s", ErrValidation, label)
	}
}

// ShippingAddress converts the form into the order's shipping address.
func (f ShippingForm) ShippingAddress() order.ShippingAddress {
	return order.ShippingAddress{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
		Address:   f.Address,
		City:      f.City,
		State:     f.State,
		ZipCode:   f.ZipCode,
		Country:   f.Country,
	}
}
