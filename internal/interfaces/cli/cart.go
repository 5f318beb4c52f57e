package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCartCommand(app *App, remote *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and change the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.printCart()
		},
	}

	cmd.AddCommand(
		newCartAddCommand(app, remote),
		newCartUpdateCommand(app),
		newCartRemoveCommand(app),
		&cobra.Command{
			Use:   "list",
			Short: "Show the cart with totals",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.printCart()
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				app.store.Clear()
				app.printf("Cart cleared.\n")
				return nil
			},
		},
	)
	return cmd
}

func newCartAddCommand(app *App, remote *bool) *cobra.Command {
	var shade string
	var quantity int

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.source(*remote).Product(cmd.Context(), args[0])
			if err != nil {
				return explain(err)
			}
			if shade == "" && len(p.Shades) > 0 {
				shade = p.Shades[0].Label()
			}
			if shade != "" {
				if _, ok := p.FindShade(shade); !ok {
					return fmt.Errorf("%s has no shade %q", p.Name, shade)
				}
			}

			line := app.store.AddLine(p.CartProduct(), shade, quantity)
			app.printf("Added %s. %d in cart (%d items total).\n", describe(line.Name, line.Shade()), line.Quantity, app.store.LineCount())
			return nil
		},
	}
	cmd.Flags().StringVar(&shade, "shade", "", "shade name or colour, defaults to the first shade")
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "units to add")
	return cmd
}

func newCartUpdateCommand(app *App) *cobra.Command {
	var shade string

	cmd := &cobra.Command{
		Use:   "update <product-id> <quantity>",
		Short: "Set a line's quantity; 0 removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			app.store.SetQuantity(args[0], shade, quantity)
			return app.printCart()
		},
	}
	cmd.Flags().StringVar(&shade, "shade", "", "shade of the line")
	return cmd
}

func newCartRemoveCommand(app *App) *cobra.Command {
	var shade string

	cmd := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.store.RemoveLine(args[0], shade)
			return app.printCart()
		},
	}
	cmd.Flags().StringVar(&shade, "shade", "", "shade of the line")
	return cmd
}

func (a *App) printCart() error {
	lines := a.store.Lines()
	if len(lines) == 0 {
		a.printf("Your cart is empty.\n")
		return nil
	}

	w := a.table()
	fmt.Fprintln(w, "ID\tPRODUCT\tQTY\tPRICE\tSUBTOTAL")
	for _, line := range lines {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			line.ProductID, describe(line.Name, line.Shade()), line.Quantity,
			a.calc.FormatBase(line.Price), a.calc.FormatBase(line.Subtotal()))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	quote := a.checkout.Quote()
	a.printf("\nSubtotal: %s\n", a.calc.FormatDisplay(quote.Display.Subtotal))
	if quote.Display.Shipping.IsZero() {
		a.printf("Shipping: FREE\n")
	} else {
		a.printf("Shipping: %s\n", a.calc.FormatDisplay(quote.Display.Shipping))
	}
	a.printf("Tax:      %s\n", a.calc.FormatDisplay(quote.Display.Tax))
	a.printf("Total:    %s\n", a.calc.FormatDisplay(quote.Display.Total))
	return nil
}

func describe(name, shade string) string {
	if shade == "" {
		return name
	}
	return name + " (" + shade + ")"
}
