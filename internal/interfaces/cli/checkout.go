package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/your-org/beauty-store/internal/domain/checkout"
)

func newCheckoutCommand(app *App) *cobra.Command {
	var form checkout.ShippingForm

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for everything in the cart (cash on delivery)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if user, ok := app.store.User(); ok && form.Email == "" {
				form.Email = user.Email
			}

			confirmation, err := app.checkout.PlaceOrder(cmd.Context(), form)
			if errors.Is(err, checkout.ErrEmptyCart) {
				app.printf("Your cart is empty.\n")
				return nil
			}
			if err != nil {
				return explain(err)
			}

			app.printf("Order placed: %s\n", confirmation.OrderID)
			if confirmation.Synthesized {
				app.printf("The store could not be reached; this order was confirmed locally and was not saved.\n")
			}
			for _, line := range confirmation.Items {
				app.printf("  %d x %s\n", line.Quantity, describe(line.Name, line.Shade()))
			}
			app.printf("Total: %s, paid on delivery\n", app.calc.FormatDisplay(confirmation.Breakdown.Display.Total))
			app.printf("Ships to %s %s, %s, %s %s\n",
				confirmation.Address.FirstName, confirmation.Address.LastName,
				confirmation.Address.City, confirmation.Address.State, confirmation.Address.ZipCode)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&form.FirstName, "first-name", "", "first name")
	f.StringVar(&form.LastName, "last-name", "", "last name")
	f.StringVar(&form.Email, "email", "", "email, defaults to the signed-in account")
	f.StringVar(&form.Phone, "phone", "", "phone number")
	f.StringVar(&form.Address, "address", "", "street address")
	f.StringVar(&form.City, "city", "", "city")
	f.StringVar(&form.State, "state", "", "state")
	f.StringVar(&form.ZipCode, "zip", "", "zip code")
	f.StringVar(&form.Country, "country", "", "country, defaults to "+checkout.DefaultCountry)
	f.StringVar(&form.Notes, "notes", "", "delivery notes")
	return cmd
}
