package product

import (
	"time"

	"github.com/google/uuid"
)

// SeedProducts returns the development catalog with fresh IDs. Creation
// times are staggered a second apart so newest-first ordering is stable.
func SeedProducts(now time.Time) []*Product {
	products := []*Product{
		{
			Name:        "Matte Lipstick Collection",
			Brand:       "MAC",
			Description: "A collection of highly pigmented matte lipsticks with intense color payoff and long-lasting wear.",
			Price:       54,
			Category:    CategoryMakeup,
			Images:      []string{"https://images.unsplash.com/photo-1586495777744-4413f21062fa?w=600"},
			Shades: []Shade{
				{Name: "Ruby Woo", Color: "#C25B56", InStock: true},
				{Name: "Velvet Teddy", Color: "#B76E79", InStock: true},
				{Name: "Lady Danger", Color: "#D62828", InStock: true},
			},
			Rating:   4.8,
			Stock:    150,
			IsNew:    true,
			Featured: true,
		},
		{
			Name:        "Pro Filt'r Soft Matte Foundation",
			Brand:       "FENTY BEAUTY",
			Description: "A soft matte foundation that provides medium coverage with a natural finish.",
			Price:       39,
			Category:    CategoryMakeup,
			Images:      []string{"https://images.unsplash.com/photo-1596462502278-27bfdd403348?w=600"},
			Shades: []Shade{
				{Name: "Shade 1", Color: "#8D5524", InStock: true},
				{Name: "Shade 2", Color: "#C68642", InStock: true},
				{Name: "Shade 3", Color: "#F5D5C8", InStock: true},
			},
			Rating:   4.9,
			Stock:    80,
			Featured: true,
		},
		{
			Name:        "Dior Sauvage Elixir",
			Brand:       "DIOR",
			Description: "A powerful and mysterious fragrance with spicy notes and woody undertones.",
			Price:       185,
			Category:    CategoryFragrance,
			Images:      []string{"https://images.unsplash.com/photo-1541643600914-78b084683601?w=600"},
			Rating:      4.7,
			Stock:       45,
			Discount:    15,
			Featured:    true,
		},
		{
			Name:        "Soft Matte Complete Foundation",
			Brand:       "NARS",
			Description: "A full coverage foundation with a soft matte finish that lasts all day.",
			Price:       49,
			Category:    CategoryMakeup,
			Images:      []string{"https://images.unsplash.com/photo-1515688594390-b649af70d282?w=600"},
			Shades: []Shade{
				{Name: "Siberia", Color: "#F5D5C8", InStock: true},
				{Name: "Shell Beach", Color: "#E8B4A6", InStock: true},
			},
			Rating:   4.6,
			Stock:    120,
			Featured: true,
		},
		{
			Name:        "Naked3 Eyeshadow Palette",
			Brand:       "URBAN DECAY",
			Description: "A palette of neutral pinkish nude shades for everyday looks.",
			Price:       54,
			Category:    CategoryMakeup,
			Images:      []string{"https://images.unsplash.com/photo-1583241800698-e8ab01830a07?w=600"},
			Rating:      4.8,
			Stock:       65,
			Featured:    true,
		},
		{
			Name:        "Tiffany & Co. Eau de Parfum",
			Brand:       "TIFFANY",
			Description: "A luxurious fragrance with floral and woody notes.",
			Price:       125,
			Category:    CategoryFragrance,
			Images:      []string{"https://images.unsplash.com/photo-1592945403244-b3fbafd7f539?w=600"},
			Rating:      4.9,
			Stock:       30,
			IsNew:       true,
		},
	}

	for i, p := range products {
		p.ID = uuid.NewString()
		p.CreatedAt = now.Add(time.Duration(i) * time.Second)
		p.UpdatedAt = p.CreatedAt
		p.normalize()
	}
	return products
}
