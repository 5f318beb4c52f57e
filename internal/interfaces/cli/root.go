package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/your-org/beauty-store/internal/infrastructure/apiclient"
)

// NewRootCommand returns the storefront command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	var remote bool

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse the beauty store, manage your cart and place orders",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(app.out)
	root.PersistentFlags().BoolVar(&remote, "remote", false, "read products from the API instead of the built-in catalog")

	root.AddCommand(
		newProductsCommand(app, &remote),
		newProductCommand(app, &remote),
		newRecentCommand(app),
		newCartCommand(app, &remote),
		newCheckoutCommand(app),
		newRegisterCommand(app),
		newLoginCommand(app),
		newLogoutCommand(app),
		newWhoamiCommand(app),
		newOrdersCommand(app),
		newWishlistCommand(app, &remote),
		newAdminCommand(app),
	)
	return root
}

// explain adds a login hint to authentication failures.
func explain(err error) error {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		return fmt.Errorf("%w (run `storefront login` first)", err)
	}
	return err
}

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) token() (string, error) {
	token := a.store.Token()
	if token == "" {
		return "", explain(apiclient.ErrUnauthorized)
	}
	return token, nil
}
