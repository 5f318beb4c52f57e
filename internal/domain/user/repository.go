package user

import "context"

// Repository persists users. Lookups of a missing user return an error
// matching apperrors.ErrNotFound. Create returns apperrors.ErrAlreadyExists
// when the email is taken.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	UpdateWishlist(ctx context.Context, id string, wishlist []string) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}
