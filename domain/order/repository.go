package order

import (
	"context"

	"storefront/domain/shared"
)

// Repository order ledger store. Orders are never deleted.
type Repository interface {
	// Save inserts header and lines of a new order, or updates status, notes
	// and version of an existing one. A taken order number fails with
	// ErrDuplicateOrderNumber, a stale version with ErrConcurrentModification.
	Save(ctx context.Context, order *Order) error

	// FindByID loads header and lines
	FindByID(ctx context.Context, id string) (*Order, error)

	// Search returns one page of orders matching spec, newest first, plus the total match count.
	// A nil spec matches every order.
	Search(ctx context.Context, spec shared.Specification[*Order], page shared.PageRequest) ([]*Order, int64, error)
}
