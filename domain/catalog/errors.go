package catalog

import (
	"errors"
	"fmt"

	"storefront/domain/shared"
)

var (
	// ErrProductNotFound product id unknown to the catalog
	ErrProductNotFound = errors.New("product not found")
)

// NewProductNotFoundError unknown product id
func NewProductNotFoundError(productID string) error {
	return shared.NewDomainError(
		fmt.Errorf("%w: %w", ErrProductNotFound, shared.ErrNotFound),
		"product", productID, "Product not found")
}

// NewOutOfStockError not enough units left
func NewOutOfStockError(productID, name string, available, requested int) error {
	return shared.NewDomainError(shared.ErrOutOfStock, "product", productID,
		fmt.Sprintf("insufficient stock for %s: %d available, %d requested", name, available, requested))
}
