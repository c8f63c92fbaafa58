package cart

import "context"

// Repository cart store, one cart per user
type Repository interface {
	// FindByUserID returns ErrCartNotFound when the user has no cart.
	// Inside a unit of work the relational store locks the row until commit.
	FindByUserID(ctx context.Context, userID string) (*Cart, error)

	// Save inserts a new cart or replaces the items of an existing one
	Save(ctx context.Context, cart *Cart) error

	// DeleteByUserID removes the cart; absent carts are not an error
	DeleteByUserID(ctx context.Context, userID string) error
}
