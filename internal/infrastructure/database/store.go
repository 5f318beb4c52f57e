// internal/infrastructure/database/store.go
package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/beauty-store/internal/config"
	"github.com/your-org/beauty-store/internal/domain/order"
	"github.com/your-org/beauty-store/internal/domain/product"
	"github.com/your-org/beauty-store/internal/domain/user"
	"github.com/your-org/beauty-store/internal/infrastructure/database/mongodb"
	"github.com/your-org/beauty-store/internal/infrastructure/database/sqldb"
	"gorm.io/gorm"
)

// Store bundles the repositories of one backing database.
type Store struct {
	Users    user.Repository
	Products product.Repository
	Orders   order.Repository

	health func(ctx context.Context) error
	close  func() error
}

// Open connects to the database selected by cfg.Database.Driver. SQL
// databases are migrated on open.
func Open(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (*Store, error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		db, err := mongodb.NewConnection(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return &Store{
			Users:    mongodb.NewUserRepository(db.DB),
			Products: mongodb.NewProductRepository(db.DB),
			Orders:   mongodb.NewOrderRepository(db.DB),
			health:   db.Health,
			close:    db.Close,
		}, nil

	case config.DriverPostgres, config.DriverSQLite:
		db, err := sqldb.NewConnection(cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := sqldb.NewMigration(db.GetDB(), logger).Run(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		store := NewSQLStore(db.GetDB())
		store.health = db.Health
		store.close = db.Close
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

// NewSQLStore builds a store over an already migrated gorm handle.
func NewSQLStore(db *gorm.DB) *Store {
	return &Store{
		Users:    sqldb.NewUserRepository(db),
		Products: sqldb.NewProductRepository(db),
		Orders:   sqldb.NewOrderRepository(db),
		health: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		close: func() error { return nil },
	}
}

// Health checks the database connection
func (s *Store) Health(ctx context.Context) error {
	return s.health(ctx)
}

// Close releases the connection
func (s *Store) Close() error {
	return s.close()
}
