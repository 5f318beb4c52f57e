// Package cli is the storefront client: a cobra command tree over one cart
// session, the catalog and the storefront API.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/your-org/beauty-store/internal/config"
	"github.com/your-org/beauty-store/internal/domain/cart"
	"github.com/your-org/beauty-store/internal/domain/catalog"
	"github.com/your-org/beauty-store/internal/domain/checkout"
	"github.com/your-org/beauty-store/internal/infrastructure/apiclient"
	"github.com/your-org/beauty-store/internal/infrastructure/database/redis"
	"github.com/your-org/beauty-store/internal/infrastructure/localstore"
	"github.com/your-org/beauty-store/internal/pkg/pricing"
)

// App holds everything one CLI invocation works with. There is exactly one
// cart.Store per App and every command shares it.
type App struct {
	cfg    *config.Config
	logger logrus.FieldLogger
	out    io.Writer

	store    *cart.Store
	calc     *pricing.Calculator
	client   *apiclient.Client
	checkout *checkout.Service

	fixtures catalog.Source
	remote   catalog.Source

	closers []func() error
}

// Option customizes NewApp.
type Option func(*appOptions)

type appOptions struct {
	out    io.Writer
	slot   cart.Slot
	client *apiclient.Client
}

// WithOutput sends command output to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(o *appOptions) { o.out = w }
}

// WithSlot overrides the state backend from the configuration.
func WithSlot(slot cart.Slot) Option {
	return func(o *appOptions) { o.slot = slot }
}

// WithClient overrides the API client built from the configuration.
func WithClient(client *apiclient.Client) Option {
	return func(o *appOptions) { o.client = client }
}

// NewApp builds the session store, rehydrates it and wires the services
// around it.
func NewApp(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger, opts ...Option) (*App, error) {
	options := appOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&options)
	}

	app := &App{
		cfg:    cfg,
		logger: logger,
		out:    options.out,
		calc:   pricing.NewCalculator(cfg.Pricing),
	}

	slot := options.slot
	if slot == nil {
		var err error
		if slot, err = app.openSlot(); err != nil {
			return nil, err
		}
	}

	app.store = cart.New(slot, cart.WithLogger(logger))
	app.store.Rehydrate(ctx)

	app.client = options.client
	if app.client == nil {
		app.client = apiclient.NewFromConfig(cfg, logger)
	}

	fallback := cfg.Storefront.Fallback != config.FallbackStrict
	app.fixtures = catalog.FixtureSource{}
	app.remote = catalog.NewRemoteSource(app.client, fallback, logger)
	app.checkout = checkout.NewService(app.store, app.calc, app.client, cfg.Storefront.Fallback, logger)

	return app, nil
}

func (a *App) openSlot() (cart.Slot, error) {
	switch a.cfg.Storefront.StateBackend {
	case config.StateBackendFile:
		return localstore.NewFileSlot(a.cfg.Storefront.StatePath), nil
	case config.StateBackendRedis:
		conn, err := redis.NewConnection(a.cfg, a.logger)
		if err != nil {
			// The session starts empty and saves keep failing quietly until
			// Redis comes back.
			a.logger.WithError(err).Warn("Redis unavailable, continuing without saved session")
			conn = redis.Dial(a.cfg)
		}
		a.closers = append(a.closers, conn.Close)
		return redis.NewCartSlot(conn.GetClient(), a.cfg.Storefront.StateKey, 0), nil
	case config.StateBackendMemory:
		return cart.NewMemorySlot(), nil
	default:
		return nil, fmt.Errorf("unsupported state backend: %s", a.cfg.Storefront.StateBackend)
	}
}

// Store returns the session store.
func (a *App) Store() *cart.Store {
	return a.store
}

// source picks the catalog the commands read from.
func (a *App) source(remote bool) catalog.Source {
	if remote {
		return a.remote
	}
	return a.fixtures
}

// Close releases backend connections.
func (a *App) Close() error {
	var first error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
