package cli

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/your-org/beauty-store/internal/domain/order"
	"github.com/your-org/beauty-store/internal/pkg/pricing"
)

func newRegisterCommand(app *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "register <name> <email>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.client.Register(cmd.Context(), args[0], args[1], password)
			if err != nil {
				return explain(err)
			}
			app.store.SetUser(res.User, res.Token)
			app.printf("Welcome, %s.\n", res.User.Name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCommand(app *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.client.Login(cmd.Context(), args[0], password)
			if err != nil {
				return explain(err)
			}
			app.store.SetUser(res.User, res.Token)
			app.printf("Signed in as %s.\n", res.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out; the cart is kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.store.Logout()
			app.printf("Signed out.\n")
			return nil
		},
	}
}

func newWhoamiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}
			user, err := app.client.Me(cmd.Context(), token)
			if err != nil {
				return explain(err)
			}
			app.printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
			return nil
		},
	}
}

func newOrdersCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List your orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}
			orders, err := app.client.MyOrders(cmd.Context(), token)
			if err != nil {
				return explain(err)
			}
			return app.printOrders(orders)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}
			o, err := app.client.GetOrder(cmd.Context(), token, args[0])
			if err != nil {
				return explain(err)
			}
			app.printOrder(o)
			return nil
		},
	})

	var output string
	invoice := &cobra.Command{
		Use:   "invoice <id>",
		Short: "Download the PDF invoice of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}
			if output == "" {
				output = "invoice-" + args[0] + ".pdf"
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := app.client.DownloadInvoice(cmd.Context(), token, args[0], f); err != nil {
				f.Close()
				_ = os.Remove(output)
				return explain(err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			app.printf("Saved %s\n", output)
			return nil
		},
	}
	invoice.Flags().StringVarP(&output, "output", "o", "", "file to write")
	cmd.AddCommand(invoice)

	return cmd
}

func (a *App) money(amount float64, currency string) string {
	return pricing.Format(decimal.NewFromFloat(amount), a.cfg.Pricing.Locale, currency)
}

func (a *App) printOrders(orders []order.Order) error {
	if len(orders) == 0 {
		a.printf("No orders yet.\n")
		return nil
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tDATE\tSTATUS\tITEMS\tTOTAL")
	for _, o := range orders {
		units := 0
		for _, item := range o.Items {
			units += item.Quantity
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			o.ID, o.CreatedAt.Format("2006-01-02"), o.Status, units, a.money(o.Total, o.Currency))
	}
	return w.Flush()
}

func (a *App) printOrder(o *order.Order) {
	a.printf("Order %s (#%s)\n", o.ID, o.Number())
	a.printf("Placed: %s\n", o.CreatedAt.Format("2006-01-02 15:04"))
	a.printf("Status: %s\n", o.Status)
	for _, item := range o.Items {
		shade := ""
		if item.Shade != nil {
			shade = *item.Shade
		}
		a.printf("  %d x %s\n", item.Quantity, describe(item.ProductName, shade))
	}
	a.printf("Subtotal: %s\n", a.money(o.Subtotal, o.Currency))
	a.printf("Shipping: %s\n", a.money(o.Shipping, o.Currency))
	a.printf("Tax:      %s\n", a.money(o.Tax, o.Currency))
	a.printf("Total:    %s\n", a.money(o.Total, o.Currency))
}
