// Package catalog is the storefront's read-only view of products: static
// fixtures, client-side filtering and sorting, and a browser that discards
// stale loads.
package catalog

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/your-org/beauty-store/internal/domain/cart"
)

// Categories offered by the store. "all" matches every product.
const (
	CategoryAll       = "all"
	CategoryMakeup    = "makeup"
	CategorySkincare  = "skincare"
	CategoryFragrance = "fragrance"
)

// Shade is a colour variant of a product.
type Shade struct {
	Name    string `json:"name,omitempty"`
	Color   string `json:"color"`
	InStock bool   `json:"inStock"`
}

// Label is what identifies the shade in a cart line.
func (s Shade) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Color
}

// Product is a catalog entry as the storefront sees it. Price is in the base
// currency.
type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Images      []string        `json:"images"`
	Shades      []Shade         `json:"shades"`
	Rating      float64         `json:"rating"`
	Discount    int             `json:"discount,omitempty"`
	IsNew       bool            `json:"isNew,omitempty"`
	Featured    bool            `json:"featured,omitempty"`
}

// MarshalJSON writes the price as a JSON number.
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	return json.Marshal(struct {
		alias
		Price json.Number `json:"price"`
	}{alias(p), json.Number(p.Price.String())})
}

// CartProduct returns the subset of p stored in a cart line.
func (p Product) CartProduct() cart.Product {
	return cart.Product{
		ID:     p.ID,
		Name:   p.Name,
		Brand:  p.Brand,
		Price:  p.Price,
		Images: append([]string{}, p.Images...),
	}
}

// FindShade returns the shade whose name or colour equals label.
func (p Product) FindShade(label string) (Shade, bool) {
	for _, s := range p.Shades {
		if s.Name == label || s.Color == label {
			return s, true
		}
	}
	return Shade{}, false
}
