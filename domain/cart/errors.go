package cart

import (
	"errors"
	"fmt"

	"storefront/domain/shared"
)

var (
	// ErrCartNotFound the user has no cart
	ErrCartNotFound = errors.New("cart not found")

	// ErrCartItemNotFound item id is not in the cart
	ErrCartItemNotFound = errors.New("cart item not found")

	// ErrInvalidQuantity quantity below 1
	ErrInvalidQuantity = errors.New("invalid quantity")
)

func NewCartNotFoundError(userID string) error {
	return shared.NewDomainError(
		fmt.Errorf("%w: %w", ErrCartNotFound, shared.ErrNotFound),
		"cart", userID, "Cart not found")
}

func NewCartItemNotFoundError(itemID string) error {
	return shared.NewDomainError(
		fmt.Errorf("%w: %w", ErrCartItemNotFound, shared.ErrNotFound),
		"cart", itemID, "Item not found in cart")
}

func NewInvalidQuantityError(quantity int) error {
	return shared.NewDomainError(
		fmt.Errorf("%w: %w", ErrInvalidQuantity, shared.ErrInvalidInput),
		"cart", "quantity", fmt.Sprintf("Quantity must be at least 1, got %d", quantity))
}
