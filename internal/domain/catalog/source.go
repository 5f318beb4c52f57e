package catalog

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/your-org/beauty-store/internal/pkg/apperrors"
)

// Source supplies products to the storefront.
type Source interface {
	Products(ctx context.Context, q Query) ([]Product, error)
	Product(ctx context.Context, id string) (Product, error)
}

// FixtureSource serves the built-in product list.
type FixtureSource struct{}

// Products filters and sorts the fixtures.
func (FixtureSource) Products(ctx context.Context, q Query) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return q.Apply(Fixtures()), nil
}

// Product looks up a fixture by id.
func (FixtureSource) Product(ctx context.Context, id string) (Product, error) {
	if err := ctx.Err(); err != nil {
		return Product{}, err
	}
	return Find(Fixtures(), id)
}

// Find returns the product with the given id.
func Find(products []Product, id string) (Product, error) {
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, apperrors.NotFound("Product")
}

// Fetcher reads the remote catalog.
type Fetcher interface {
	ListProducts(ctx context.Context, q Query) ([]Product, error)
	GetProduct(ctx context.Context, id string) (Product, error)
}

// RemoteSource reads from the API. When fallback is enabled, transport and
// server failures are answered from the fixtures instead.
type RemoteSource struct {
	fetcher  Fetcher
	fallback bool
	logger   logrus.FieldLogger
}

// NewRemoteSource creates a RemoteSource.
func NewRemoteSource(fetcher Fetcher, fallback bool, logger logrus.FieldLogger) *RemoteSource {
	return &RemoteSource{fetcher: fetcher, fallback: fallback, logger: logger}
}

func (s *RemoteSource) Products(ctx context.Context, q Query) ([]Product, error) {
	products, err := s.fetcher.ListProducts(ctx, q)
	if err == nil {
		return products, nil
	}
	if !s.canFallBack(ctx, err) {
		return nil, err
	}
	s.logger.WithError(err).Warn("catalog unavailable, showing built-in products")
	return FixtureSource{}.Products(ctx, q)
}

func (s *RemoteSource) Product(ctx context.Context, id string) (Product, error) {
	product, err := s.fetcher.GetProduct(ctx, id)
	if err == nil {
		return product, nil
	}
	if !s.canFallBack(ctx, err) {
		return Product{}, err
	}
	s.logger.WithError(err).WithField("product_id", id).Warn("catalog unavailable, using built-in product")
	return FixtureSource{}.Product(ctx, id)
}

func (s *RemoteSource) canFallBack(ctx context.Context, err error) bool {
	if !s.fallback || ctx.Err() != nil {
		return false
	}
	return !isClientError(err)
}

// isClientError reports whether the API answered with a 4xx, which the
// fixtures cannot fix.
func isClientError(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrInvalidInput) ||
		errors.Is(err, apperrors.ErrUnauthorized) ||
		errors.Is(err, apperrors.ErrForbidden)
}
