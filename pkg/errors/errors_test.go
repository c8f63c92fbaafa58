package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"storefront/domain/cart"
	"storefront/domain/catalog"
	"storefront/domain/order"
	"storefront/domain/shared"
	"storefront/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDomainError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code ErrorCode
	}{
		{"cart", cart.NewCartNotFoundError("u1"), CodeCartNotFound},
		{"cart item", cart.NewCartItemNotFoundError("i1"), CodeCartItemNotFound},
		{"quantity", cart.NewInvalidQuantityError(0), CodeValidation},
		{"product", catalog.NewProductNotFoundError("p1"), CodeProductNotFound},
		{"stock", catalog.NewOutOfStockError("p1", "Knife", 0, 1), CodeOutOfStock},
		{"user", user.NewUserNotFoundError("u1"), CodeUserNotFound},
		{"order", order.NewOrderNotFoundError("o1"), CodeOrderNotFound},
		{"empty cart", order.NewEmptyCartError(), CodeCartEmpty},
		{"status", order.NewInvalidStatusError("bogus"), CodeInvalidStatus},
		{"duplicate", order.NewDuplicateOrderNumberError("ORD-1"), CodeConflict},
		{"forbidden", shared.Principal{UserID: "u", Role: shared.RoleUser}.RequireAdmin(), CodeForbidden},
		{"unauthorized", shared.Principal{}.RequireUser(), CodeUnauthorized},
		{"dependency", shared.NewDependencyError("receipt renderer", stdErrors.New("font missing")), CodeDependencyFailure},
		{"wrapped", fmt.Errorf("checkout: %w", order.NewEmptyCartError()), CodeCartEmpty},
		{"plain", stdErrors.New("connection reset"), CodeInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := FromDomainError(tc.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tc.code, appErr.Code)
			assert.ErrorIs(t, appErr, tc.err)
		})
	}
}

func TestFromDomainErrorMessages(t *testing.T) {
	assert.Equal(t, "Cart is empty", FromDomainError(order.NewEmptyCartError()).Message)
	assert.Equal(t, "internal server error", FromDomainError(stdErrors.New("dial tcp: refused")).Message)
	assert.Nil(t, FromDomainError(nil))

	original := Forbidden("nope")
	assert.Same(t, original, FromDomainError(fmt.Errorf("ctx: %w", original)))
	assert.True(t, Is(original, CodeForbidden))
}
