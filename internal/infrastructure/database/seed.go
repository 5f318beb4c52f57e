package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/beauty-store/internal/domain/product"
	"github.com/your-org/beauty-store/internal/domain/user"
)

// Development admin credentials.
const (
	SeedAdminName     = "Admin"
	SeedAdminEmail    = "admin@beauty.com"
	SeedAdminPassword = "admin123"
)

// AdminCreator stores an admin account with a hashed password.
type AdminCreator interface {
	CreateAdmin(ctx context.Context, name, email, password string) (*user.User, error)
}

// SeedResult is what a seed run inserted.
type SeedResult struct {
	Products []*product.Product `json:"products"`
	Admin    *user.User         `json:"admin"`
}

// Seeder resets the store to the development data set.
type Seeder struct {
	store  *Store
	admins AdminCreator
	logger logrus.FieldLogger
	now    func() time.Time
}

// NewSeeder creates a seeder.
func NewSeeder(store *Store, admins AdminCreator, logger logrus.FieldLogger) *Seeder {
	return &Seeder{
		store:  store,
		admins: admins,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Seed deletes every user, product and order, then inserts the admin account
// and the seed catalog.
func (s *Seeder) Seed(ctx context.Context) (*SeedResult, error) {
	if err := s.store.Users.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear users: %w", err)
	}
	if err := s.store.Products.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear products: %w", err)
	}
	if err := s.store.Orders.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear orders: %w", err)
	}

	admin, err := s.admins.CreateAdmin(ctx, SeedAdminName, SeedAdminEmail, SeedAdminPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	products := product.SeedProducts(s.now())
	if err := s.store.Products.Create(ctx, products...); err != nil {
		return nil, fmt.Errorf("failed to insert products: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"admin":    admin.Email,
		"products": len(products),
	}).Info("Database seeded")

	return &SeedResult{Products: products, Admin: admin}, nil
}
