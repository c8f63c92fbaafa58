package catalog

import "context"

// Repository product store
type Repository interface {
	// FindByID returns ErrProductNotFound when the id is unknown
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindByIDs returns the products that exist; unknown ids are skipped
	FindByIDs(ctx context.Context, ids []string) ([]*Product, error)

	// DecrementStock atomically removes quantity units, failing with shared.ErrOutOfStock
	DecrementStock(ctx context.Context, id string, quantity int) error

	// Save creates or replaces a product
	Save(ctx context.Context, p *Product) error
}
