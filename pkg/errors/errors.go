/*
Package errors is the application error vocabulary shared by services and the
HTTP layer.

Domain packages raise sentinel-backed errors; FromDomainError classifies them
into an AppError code with errors.Is. The mapping from code to HTTP status
lives in api/response so this package stays transport agnostic.
*/
package errors

import (
	"errors"
	"fmt"

	"storefront/domain/cart"
	"storefront/domain/catalog"
	"storefront/domain/order"
	"storefront/domain/shared"
	"storefront/domain/user"
)

// ErrorCode machine readable error class
type ErrorCode string

const (
	CodeInternal          ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest        ErrorCode = "BAD_REQUEST"
	CodeValidation        ErrorCode = "VALIDATION_ERROR"
	CodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	CodeForbidden         ErrorCode = "FORBIDDEN"
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeConflict          ErrorCode = "CONFLICT"
	CodeTooManyRequests   ErrorCode = "TOO_MANY_REQUESTS"
	CodeDependencyFailure ErrorCode = "DEPENDENCY_FAILURE"

	CodeCartNotFound     ErrorCode = "CART_NOT_FOUND"
	CodeCartItemNotFound ErrorCode = "CART_ITEM_NOT_FOUND"
	CodeCartEmpty        ErrorCode = "CART_EMPTY"
	CodeProductNotFound  ErrorCode = "PRODUCT_NOT_FOUND"
	CodeOutOfStock       ErrorCode = "OUT_OF_STOCK"
	CodeUserNotFound     ErrorCode = "USER_NOT_FOUND"
	CodeOrderNotFound    ErrorCode = "ORDER_NOT_FOUND"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"
)

// AppError error with a code, a caller-safe message and the underlying cause
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError      { return New(CodeBadRequest, message) }
func Validation(message string) *AppError      { return New(CodeValidation, message) }
func Unauthorized(message string) *AppError    { return New(CodeUnauthorized, message) }
func Forbidden(message string) *AppError       { return New(CodeForbidden, message) }
func NotFound(message string) *AppError        { return New(CodeNotFound, message) }
func TooManyRequests(message string) *AppError { return New(CodeTooManyRequests, message) }

// Internal hides err behind a generic message
func Internal(err error) *AppError {
	return Wrap(err, CodeInternal, "internal server error")
}

// Is reports whether err is an AppError with code
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// specific sentinels are checked before the shared ones they also wrap
var codeTable = []struct {
	sentinel error
	code     ErrorCode
}{
	{cart.ErrCartNotFound, CodeCartNotFound},
	{cart.ErrCartItemNotFound, CodeCartItemNotFound},
	{catalog.ErrProductNotFound, CodeProductNotFound},
	{user.ErrUserNotFound, CodeUserNotFound},
	{order.ErrOrderNotFound, CodeOrderNotFound},
	{order.ErrEmptyCart, CodeCartEmpty},
	{order.ErrInvalidStatus, CodeInvalidStatus},

	{shared.ErrOutOfStock, CodeOutOfStock},
	{shared.ErrNotFound, CodeNotFound},
	{shared.ErrInvalidInput, CodeValidation},
	{shared.ErrInvalidState, CodeValidation},
	{shared.ErrConflict, CodeConflict},
	{shared.ErrUnauthorized, CodeUnauthorized},
	{shared.ErrForbidden, CodeForbidden},
	{shared.ErrDependency, CodeDependencyFailure},
}

// FromDomainError classifies err. AppErrors pass through, domain errors keep
// their message, anything unrecognized becomes INTERNAL_ERROR.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	for _, entry := range codeTable {
		if errors.Is(err, entry.sentinel) {
			return Wrap(err, entry.code, domainMessage(err))
		}
	}
	return Internal(err)
}

func domainMessage(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) && domainErr.Message != "" {
		return domainErr.Message
	}
	return err.Error()
}
