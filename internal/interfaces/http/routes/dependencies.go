package routes

import (
	"github.com/sirupsen/logrus"
	"github.com/your-org/beauty-store/internal/config"
	"github.com/your-org/beauty-store/internal/domain/analytics"
	"github.com/your-org/beauty-store/internal/domain/order"
	"github.com/your-org/beauty-store/internal/domain/product"
	"github.com/your-org/beauty-store/internal/domain/user"
	"github.com/your-org/beauty-store/internal/infrastructure/database"
	"github.com/your-org/beauty-store/internal/pkg/auth"
	"github.com/your-org/beauty-store/internal/pkg/pdf"
	"github.com/your-org/beauty-store/internal/pkg/pricing"
)

// NewDependencies wires the domain services over store. notifier may be nil.
func NewDependencies(cfg *config.Config, store *database.Store, notifier order.Notifier, invoices *pdf.Service, logger logrus.FieldLogger) Dependencies {
	tokens := auth.NewJWTManager(cfg)
	users := user.NewService(store.Users, auth.NewPasswordManager(cfg), tokens, logger)
	products := product.NewService(store.Products, logger)

	deps := Dependencies{
		Tokens:    tokens,
		Users:     users,
		Products:  products,
		Orders:    order.NewService(store.Orders, pricing.NewCalculator(cfg.Pricing), notifier, logger),
		Analytics: analytics.NewService(store.Users, store.Products, store.Orders, logger),
		Invoices:  invoices,
		Logger:    logger,
	}
	if cfg.IsDevelopment() {
		deps.Seeder = database.NewSeeder(store, users, logger)
	}
	return deps
}
