package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWishlistCommand(app *App, remote *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Show saved products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := app.store.Wishlist()
			if len(ids) == 0 {
				app.printf("Your wishlist is empty.\n")
				return nil
			}
			w := app.table()
			source := app.source(*remote)
			for _, id := range ids {
				p, err := source.Product(cmd.Context(), id)
				if err != nil {
					fmt.Fprintf(w, "%s\t(unavailable)\t\t\n", id)
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Brand, p.Name, app.calc.FormatBase(p.Price))
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <product-id>",
			Short: "Save a product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := app.source(*remote).Product(cmd.Context(), args[0])
				if err != nil {
					return explain(err)
				}
				if app.store.AddToWishlist(p.ID) {
					app.printf("Saved %s.\n", p.Name)
				} else {
					app.printf("%s is already in your wishlist.\n", p.Name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <product-id>",
			Short: "Forget a saved product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app.store.RemoveFromWishlist(args[0])
				app.printf("Removed %s.\n", args[0])
				return nil
			},
		},
	)
	return cmd
}
