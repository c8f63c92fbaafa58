package user

import (
	"errors"
	"fmt"

	"storefront/domain/shared"
)

var (
	// ErrUserNotFound no profile for the id
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidUserField a profile field failed validation
	ErrInvalidUserField = errors.New("invalid user field")
)

func NewUserNotFoundError(userID string) error {
	return shared.NewDomainError(
		fmt.Errorf("%w: %w", ErrUserNotFound, shared.ErrNotFound),
		"user", userID, "User not found")
}

func NewInvalidFieldError(field, message string) error {
	return shared.NewDomainError(
		fmt.Errorf("%w: %w", ErrInvalidUserField, shared.ErrInvalidInput),
		"user", field, message)
}
