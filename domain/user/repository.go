package user

import (
	"context"

	"storefront/domain/shared"
)

// Repository user profile store
type Repository interface {
	// Save creates or updates a profile
	Save(ctx context.Context, user *User) error

	// FindByID returns ErrUserNotFound when absent
	FindByID(ctx context.Context, id string) (*User, error)

	// List returns one page of users ordered by creation time, newest first, plus the total count
	List(ctx context.Context, page shared.PageRequest) ([]*User, int64, error)
}
