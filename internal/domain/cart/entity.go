// internal/domain/cart/entity.go
package cart

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is the part of a catalog product the cart needs.
type Product struct {
	ID     string          `json:"_id"`
	Name   string          `json:"name"`
	Brand  string          `json:"brand"`
	Price  decimal.Decimal `json:"price"`
	Images []string        `json:"images"`
}

// MarshalJSON writes the price as a JSON number.
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	return json.Marshal(struct {
		alias
		Price json.Number `json:"price"`
	}{alias(p), json.Number(p.Price.String())})
}

// Line is one cart entry. A line is identified by product and shade, and its
// quantity is always at least 1.
type Line struct {
	ProductID     string          `json:"_id"`
	Name          string          `json:"name"`
	Brand         string          `json:"brand"`
	Price         decimal.Decimal `json:"price"`
	Images        []string        `json:"images"`
	SelectedShade *string         `json:"selectedShade"`
	Quantity      int             `json:"quantity"`
}

// MarshalJSON writes the price as a JSON number.
func (l Line) MarshalJSON() ([]byte, error) {
	type alias Line
	return json.Marshal(struct {
		alias
		Price json.Number `json:"price"`
	}{alias(l), json.Number(l.Price.String())})
}

// Shade returns the selected shade or "" when the line has none.
func (l Line) Shade() string {
	if l.SelectedShade == nil {
		return ""
	}
	return *l.SelectedShade
}

// Subtotal returns price × quantity in the base currency.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l Line) matches(productID string, shade *string) bool {
	if l.ProductID != productID {
		return false
	}
	if l.SelectedShade == nil || shade == nil {
		return l.SelectedShade == nil && shade == nil
	}
	return *l.SelectedShade == *shade
}

func (l Line) clone() Line {
	c := l
	c.Images = append([]string(nil), l.Images...)
	if l.SelectedShade != nil {
		shade := *l.SelectedShade
		c.SelectedShade = &shade
	}
	return c
}

// normalizeShade maps "" and whitespace to "no shade".
func normalizeShade(shade string) *string {
	shade = strings.TrimSpace(shade)
	if shade == "" {
		return nil
	}
	return &shade
}

// User is the signed-in account kept with the session.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
