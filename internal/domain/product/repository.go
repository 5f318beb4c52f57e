package product

import "context"

// Sort orders accepted by the list endpoint. Anything else sorts featured
// products first, then newest.
const (
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
	SortNewest    = "newest"
)

// ListFilter is a normalized product query.
type ListFilter struct {
	Category string
	Brands   []string
	MinPrice *float64
	MaxPrice *float64
	Search   string
	Sort     string
	Page     int
	Limit    int
}

// Offset returns the number of products to skip.
func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Repository persists products. Lookups of a missing product return an error
// matching apperrors.ErrNotFound.
type Repository interface {
	// List returns one page of matching products and the total match count.
	List(ctx context.Context, filter ListFilter) ([]Product, int64, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]Product, error)
	Create(ctx context.Context, products ...*Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}
