// internal/domain/analytics/service.go
package analytics

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/beauty-store/internal/pkg/apperrors"
	"golang.org/x/sync/errgroup"
)

// Counter counts stored records.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// OrderTotals reports order volume and revenue.
type OrderTotals interface {
	Counter
	Revenue(ctx context.Context) (float64, error)
}

// Service handles analytics business logic
type Service struct {
	users    Counter
	products Counter
	orders   OrderTotals
	logger   logrus.FieldLogger
}

// NewService creates a new analytics service
func NewService(users, products Counter, orders OrderTotals, logger logrus.FieldLogger) *Service {
	return &Service{
		users:    users,
		products: products,
		orders:   orders,
		logger:   logger,
	}
}

// DashboardStats represents overall dashboard statistics. Revenue is the sum
// of stored order totals, whatever currency each was recorded in.
type DashboardStats struct {
	TotalUsers    int64   `json:"totalUsers"`
	TotalProducts int64   `json:"totalProducts"`
	TotalOrders   int64   `json:"totalOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

// GetDashboardStats gathers the admin dashboard counters concurrently
func (s *Service) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalUsers, err = s.users.Count(ctx)
		return wrap("count users", err)
	})
	g.Go(func() (err error) {
		stats.TotalProducts, err = s.products.Count(ctx)
		return wrap("count products", err)
	})
	g.Go(func() (err error) {
		stats.TotalOrders, err = s.orders.Count(ctx)
		return wrap("count orders", err)
	})
	g.Go(func() (err error) {
		stats.TotalRevenue, err = s.orders.Revenue(ctx)
		return wrap("sum revenue", err)
	})

	if err := g.Wait(); err != nil {
		return nil, apperrors.Internal(err)
	}
	return &stats, nil
}

func wrap(op string, err error) error {
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	return nil
}
