package order

import "context"

// Repository persists orders. Lookups of a missing order return an error
// matching apperrors.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	// List returns every order, newest first.
	List(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, status OrderStatus) (*Order, error)
	Count(ctx context.Context) (int64, error)
	// Revenue sums Total over all orders.
	Revenue(ctx context.Context) (float64, error)
	DeleteAll(ctx context.Context) error
}
