package cli

import (
	"github.com/spf13/cobra"
	"github.com/your-org/beauty-store/internal/domain/order"
)

func newAdminCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Store administration (admin accounts only)",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "stats",
			Short: "Show dashboard counters",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				token, err := app.token()
				if err != nil {
					return err
				}
				stats, err := app.client.AdminStats(cmd.Context(), token)
				if err != nil {
					return explain(err)
				}
				app.printf("Users:    %d\n", stats.TotalUsers)
				app.printf("Products: %d\n", stats.TotalProducts)
				app.printf("Orders:   %d\n", stats.TotalOrders)
				app.printf("Revenue:  %s\n", app.money(stats.TotalRevenue, app.calc.DisplayCurrency()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "orders",
			Short: "List every order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				token, err := app.token()
				if err != nil {
					return err
				}
				orders, err := app.client.AdminOrders(cmd.Context(), token)
				if err != nil {
					return explain(err)
				}
				return app.printOrders(orders)
			},
		},
		&cobra.Command{
			Use:       "set-status <order-id> <status>",
			Short:     "Change an order's status",
			Args:      cobra.ExactArgs(2),
			ValidArgs: []string{"pending", "confirmed", "processing", "shipped", "delivered", "cancelled"},
			RunE: func(cmd *cobra.Command, args []string) error {
				token, err := app.token()
				if err != nil {
					return err
				}
				o, err := app.client.UpdateOrderStatus(cmd.Context(), token, args[0], order.OrderStatus(args[1]))
				if err != nil {
					return explain(err)
				}
				app.printf("Order %s is now %s.\n", o.ID, o.Status)
				return nil
			},
		},
	)
	return cmd
}
