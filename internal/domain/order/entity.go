// internal/domain/order/entity.go
package order

import (
	"strings"
	"time"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentMethodCOD is the only payment method the store records.
const PaymentMethodCOD = "COD"

// Currencies an order total can be recorded in.
const (
	CurrencyINR = "INR"
	CurrencyUSD = "USD"
)

// IsValid reports whether s is a known status.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order represents the order entity
type Order struct {
	ID              string          `gorm:"primaryKey;size:36" bson:"_id" json:"_id"`
	UserID          *string         `gorm:"index;size:36" bson:"user" json:"user"` // Nullable for guest orders
	Items           []Item          `gorm:"serializer:json;type:text" bson:"items" json:"items"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" bson:"shippingAddress" json:"shippingAddress"`

	// Financial Information, in Currency
	Subtotal float64 `bson:"subtotal" json:"subtotal"`
	Shipping float64 `bson:"shipping" json:"shipping"`
	Tax      float64 `bson:"tax" json:"tax"`
	Total    float64 `gorm:"index" bson:"total" json:"total"`
	Currency string  `gorm:"size:3;default:'INR'" bson:"currency" json:"currency"`

	Status        OrderStatus `gorm:"not null;default:'pending';size:20" bson:"status" json:"status"`
	PaymentMethod string      `gorm:"size:20" bson:"paymentMethod" json:"paymentMethod"`
	Notes         string      `gorm:"type:text" bson:"notes" json:"notes"`

	CreatedAt time.Time `gorm:"index" bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Item is one purchased line. Price is the unit price in the base currency.
type Item struct {
	Product     string  `bson:"product" json:"product"`
	ProductName string  `bson:"productName" json:"productName"`
	Shade       *string `bson:"shade" json:"shade"`
	Quantity    int     `bson:"quantity" json:"quantity"`
	Price       float64 `bson:"price" json:"price"`
}

// ShippingAddress is where the order goes (embedded in Order)
type ShippingAddress struct {
	FirstName string `gorm:"size:100" bson:"firstName" json:"firstName"`
	LastName  string `gorm:"size:100" bson:"lastName" json:"lastName"`
	Email     string `gorm:"size:255" bson:"email" json:"email"`
	Phone     string `gorm:"size:30" bson:"phone" json:"phone"`
	Address   string `gorm:"size:255" bson:"address" json:"address"`
	City      string `gorm:"size:100" bson:"city" json:"city"`
	State     string `gorm:"size:100" bson:"state" json:"state"`
	ZipCode   string `gorm:"size:20" bson:"zipCode" json:"zipCode"`
	Country   string `gorm:"size:100" bson:"country" json:"country"`
}

// FullName joins first and last name.
func (a ShippingAddress) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// TableName overrides
func (Order) TableName() string { return "orders" }

// BelongsTo reports whether the order was placed by userID.
func (o *Order) BelongsTo(userID string) bool {
	return o.UserID != nil && *o.UserID == userID
}

// ItemCount returns the number of units ordered.
func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// Number is the short customer-facing reference: the last eight hex digits
// of the id, upper-cased.
func (o *Order) Number() string {
	ref := strings.ReplaceAll(o.ID, "-", "")
	if len(ref) > 8 {
		ref = ref[len(ref)-8:]
	}
	return strings.ToUpper(ref)
}
