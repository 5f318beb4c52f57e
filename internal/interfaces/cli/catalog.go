package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/your-org/beauty-store/internal/domain/catalog"
)

type productFlags struct {
	category string
	brands   []string
	search   string
	sort     string
	minPrice string
	maxPrice string
}

func (f productFlags) query() (catalog.Query, error) {
	q := catalog.Query{
		Category: f.category,
		Brands:   f.brands,
		Search:   strings.TrimSpace(f.search),
		Sort:     f.sort,
	}
	var err error
	if q.MinPrice, err = parsePrice("min-price", f.minPrice); err != nil {
		return q, err
	}
	if q.MaxPrice, err = parsePrice("max-price", f.maxPrice); err != nil {
		return q, err
	}
	return q, nil
}

func parsePrice(flag, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q", flag, value)
	}
	return &d, nil
}

func newProductsCommand(app *App, remote *bool) *cobra.Command {
	var flags productFlags

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := flags.query()
			if err != nil {
				return err
			}
			products, err := catalog.NewBrowser(app.source(*remote)).Load(cmd.Context(), q)
			if err != nil {
				return explain(err)
			}
			if len(products) == 0 {
				app.printf("No products match.\n")
				return nil
			}

			w := app.table()
			fmt.Fprintln(w, "ID\tBRAND\tNAME\tPRICE\tRATING\tSHADES")
			for _, p := range products {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%d\n",
					p.ID, p.Brand, p.Name, app.calc.FormatBase(p.Price), p.Rating, len(p.Shades))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&flags.category, "category", catalog.CategoryAll, "makeup, skincare, fragrance or all")
	cmd.Flags().StringSliceVar(&flags.brands, "brand", nil, "only these brands")
	cmd.Flags().StringVar(&flags.search, "search", "", "match name or brand")
	cmd.Flags().StringVar(&flags.sort, "sort", catalog.SortFeatured, "featured, price-low, price-high, rating or newest")
	cmd.Flags().StringVar(&flags.minPrice, "min-price", "", "lowest base price")
	cmd.Flags().StringVar(&flags.maxPrice, "max-price", "", "highest base price")
	return cmd
}

func newProductCommand(app *App, remote *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show one product and remember it as recently viewed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.source(*remote).Product(cmd.Context(), args[0])
			if err != nil {
				return explain(err)
			}
			app.store.AddRecentlyViewed(p.CartProduct())

			app.printf("%s by %s\n", p.Name, p.Brand)
			app.printf("Price:  %s\n", app.calc.FormatBase(p.Price))
			app.printf("Rating: %.1f\n", p.Rating)
			if p.Description != "" {
				app.printf("\n%s\n", p.Description)
			}
			if len(p.Shades) > 0 {
				app.printf("\nShades:\n")
				for _, s := range p.Shades {
					stock := "in stock"
					if !s.InStock {
						stock = "sold out"
					}
					app.printf("  %s (%s) %s\n", s.Label(), s.Color, stock)
				}
			}
			return nil
		},
	}
}

func newRecentCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "List recently viewed products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recent := app.store.RecentlyViewed()
			if len(recent) == 0 {
				app.printf("Nothing viewed yet.\n")
				return nil
			}
			w := app.table()
			for _, p := range recent {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Brand, p.Name, app.calc.FormatBase(p.Price))
			}
			return w.Flush()
		},
	}
}
