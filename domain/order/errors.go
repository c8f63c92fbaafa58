package order

import (
	"errors"
	"fmt"

	"storefront/domain/shared"
)

var (
	// ErrOrderNotFound unknown order id, or an order owned by someone else
	ErrOrderNotFound = errors.New("order not found")

	// ErrEmptyCart checkout of a missing or empty cart
	ErrEmptyCart = errors.New("cart empty")

	// ErrInvalidStatus status outside the known set
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrInvalidLine malformed order line
	ErrInvalidLine = errors.New("invalid order line")

	// ErrDuplicateOrderNumber order number already taken
	ErrDuplicateOrderNumber = errors.New("duplicate order number")

	// ErrConcurrentModification the order changed since it was loaded
	ErrConcurrentModification = errors.New("order was modified by another transaction, please retry")
)

func NewOrderNotFoundError(orderID string) error {
	return shared.NewDomainError(
		fmt.Errorf("%w: %w", ErrOrderNotFound, shared.ErrNotFound),
		"order", orderID, "Order not found")
}

func NewEmptyCartError() error {
	return shared.NewDomainError(
		fmt.Errorf("%w: %w", ErrEmptyCart, shared.ErrInvalidState),
		"order", "cart", "Cart is empty")
}

func NewInvalidStatusError(status string) error {
	return shared.NewDomainError(
		fmt.Errorf("%w: %w", ErrInvalidStatus, shared.ErrInvalidInput),
		"order", "status", "Invalid status: "+status)
}

func NewInvalidLineError(field, message string) error {
	return shared.NewDomainError(
		fmt.Errorf("%w: %w", ErrInvalidLine, shared.ErrInvalidInput),
		"order_line", field, message)
}

func NewDuplicateOrderNumberError(orderNumber string) error {
	return shared.NewDomainError(
		fmt.Errorf("%w: %w", ErrDuplicateOrderNumber, shared.ErrConflict),
		"order", "order_number", "order number "+orderNumber+" already exists")
}

func NewConcurrentModificationError(orderID string) error {
	return shared.NewDomainError(
		fmt.Errorf("%w: %w", ErrConcurrentModification, shared.ErrConflict),
		"order", orderID, "order "+orderID+" was modified by another transaction, please retry")
}
