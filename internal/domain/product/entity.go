// internal/domain/product/entity.go
package product

import (
	"math"
	"time"
)

// Categories a product can belong to.
const (
	CategoryMakeup    = "makeup"
	CategorySkincare  = "skincare"
	CategoryFragrance = "fragrance"
)

// Product represents the product entity
type Product struct {
	ID          string   `gorm:"primaryKey;size:36" bson:"_id" json:"_id"`
	Name        string   `gorm:"not null;size:255" bson:"name" json:"name"`
	Brand       string   `gorm:"not null;size:100;index" bson:"brand" json:"brand"`
	Description string   `gorm:"type:text" bson:"description" json:"description"`
	Price       float64  `gorm:"not null;index" bson:"price" json:"price"` // base currency
	Category    string   `gorm:"not null;size:20;index" bson:"category" json:"category"`
	Images      []string `gorm:"serializer:json;type:text" bson:"images" json:"images"`
	Shades      []Shade  `gorm:"serializer:json;type:text" bson:"shades" json:"shades"`
	Rating      float64  `gorm:"default:0" bson:"rating" json:"rating"`
	Reviews     []Review `gorm:"serializer:json;type:text" bson:"reviews" json:"reviews"`
	Stock       int      `gorm:"default:0" bson:"stock" json:"stock"`
	Discount    int      `gorm:"default:0" bson:"discount" json:"discount"` // percent
	IsNew       bool     `gorm:"default:false" bson:"isNew" json:"isNew"`
	Featured    bool     `gorm:"default:false;index" bson:"featured" json:"featured"`

	CreatedAt time.Time `gorm:"index" bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Shade is a colour variant
type Shade struct {
	Name    string `bson:"name" json:"name"`
	Color   string `bson:"color" json:"color"`
	InStock bool   `bson:"inStock" json:"inStock"`
}

// Review is a customer review stored with the product
type Review struct {
	User      string    `bson:"user" json:"user"`
	Name      string    `bson:"name" json:"name"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// TableName overrides
func (Product) TableName() string { return "products" }

// IsValidCategory reports whether c is a known category.
func IsValidCategory(c string) bool {
	return c == CategoryMakeup || c == CategorySkincare || c == CategoryFragrance
}

// IsInStock checks if product is in stock
func (p *Product) IsInStock() bool {
	return p.Stock > 0
}

// DiscountedPrice applies the percentage discount.
func (p *Product) DiscountedPrice() float64 {
	if p.Discount <= 0 {
		return p.Price
	}
	return math.Round(p.Price*float64(100-p.Discount)) / 100
}

// RecalculateRating sets Rating to the mean review rating, one decimal.
// Products without reviews keep their current rating.
func (p *Product) RecalculateRating() {
	if len(p.Reviews) == 0 {
		return
	}
	sum := 0
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(p.Reviews))
	p.Rating = math.Round(avg*10) / 10
}

// normalize replaces nil slices so they serialize as [].
func (p *Product) normalize() {
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Shades == nil {
		p.Shades = []Shade{}
	}
	if p.Reviews == nil {
		p.Reviews = []Review{}
	}
}
