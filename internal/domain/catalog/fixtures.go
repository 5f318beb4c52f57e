package catalog

import "github.com/shopspring/decimal"

// Fixtures returns the static product list shown when the storefront is not
// reading the remote catalog. Each call returns a fresh copy.
func Fixtures() []Product {
	return []Product{
		{
			ID: "1", Name: "Matte Lipstick Collection", Brand: "MAC",
			Price: decimal.NewFromInt(54), Rating: 4.8, Category: CategoryMakeup, IsNew: true,
			Images: []string{"https://images.unsplash.com/photo-1586495777744-4413f21062fa?w=600"},
			Shades: []Shade{{Name: "Ruby Woo", Color: "#C25B56", InStock: true}},
		},
		{
			ID: "2", Name: "Pro Filt'r Soft Matte Foundation", Brand: "FENTY BEAUTY",
			Price: decimal.NewFromInt(39), Rating: 4.9, Category: CategoryMakeup,
			Images: []string{"https://images.unsplash.com/photo-1596462502278-27bfdd403348?w=600"},
			Shades: []Shade{{Color: "#8D5524", InStock: true}},
		},
		{
			ID: "3", Name: "Dior Sauvage Elixir", Brand: "DIOR",
			Price: decimal.NewFromInt(185), Rating: 4.7, Category: CategoryFragrance, Discount: 15,
			Images: []string{"https://images.unsplash.com/photo-1541643600914-78b084683601?w=600"},
			Shades: []Shade{},
		},
		{
			ID: "4", Name: "Soft Matte Complete Foundation", Brand: "NARS",
			Price: decimal.NewFromInt(49), Rating: 4.6, Category: CategoryMakeup,
			Images: []string{"https://images.unsplash.com/photo-1515688594390-b649af70d282?w=600"},
			Shades: []Shade{{Color: "#F5D5C8", InStock: true}},
		},
		{
			ID: "5", Name: "Naked3 Eyeshadow Palette", Brand: "URBAN DECAY",
			Price: decimal.NewFromInt(54), Rating: 4.8, Category: CategoryMakeup,
			Images: []string{"https://images.unsplash.com/photo-1583241800698-e8ab01830a07?w=600"},
			Shades: []Shade{},
		},
		{
			ID: "6", Name: "Tiffany & Co. Eau de Parfum", Brand: "TIFFANY",
			Price: decimal.NewFromInt(125), Rating: 4.9, Category: CategoryFragrance, IsNew: true,
			Images: []string{"https://images.unsplash.com/photo-1592945403244-b3fbafd7f539?w=600"},
			Shades: []Shade{},
		},
		{
			ID: "7", Name: "Advanced Night Repair Serum", Brand: "ESTÉE LAUDER",
			Price: decimal.NewFromInt(95), Rating: 4.7, Category: CategorySkincare,
			Images: []string{"https://images.unsplash.com/photo-1620916566398-39f1143ab7be?w=600"},
			Shades: []Shade{},
		},
		{
			ID: "8", Name: "Black Opium Eau de Parfum", Brand: "YSL",
			Price: decimal.NewFromInt(130), Rating: 4.8, Category: CategoryFragrance,
			Images: []string{"https://images.unsplash.com/photo-1541643600914-78b084683601?w=600"},
			Shades: []Shade{},
		},
	}
}
