/*
Package shared holds the kernel every bounded context builds on: sentinel
errors, the stack-carrying DomainError, money, principals, specifications and
the unit of work contract.

Sentinels are matched with errors.Is. DomainError captures the call stack when
it is created and formats it lazily, only when a log line asks for it. Nothing
in this package knows about HTTP.
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	// ErrNotFound resource does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict uniqueness or concurrent modification conflict
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput argument validation failed
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState operation not allowed in the aggregate's current state
	ErrInvalidState = errors.New("invalid state")

	// ErrOutOfStock not enough stock to satisfy a reservation
	ErrOutOfStock = errors.New("out of stock")

	// ErrUnauthorized caller is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden caller is authenticated but lacks the capability
	ErrForbidden = errors.New("forbidden")

	// ErrDependency an external collaborator (mailer, renderer, cache) failed
	ErrDependency = errors.New("dependency failure")
)

// DomainError carries business context plus the stack of the point where it was raised
type DomainError struct {
	// Err sentinel used by errors.Is
	Err error

	// Entity name of the entity involved ("order", "cart")
	Entity string

	// Message human readable description
	Message string

	// Field optional offending field for validation errors
	Field string

	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured frames on demand
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// CaptureStack records the current call stack.
// skip is usually 3: runtime.Callers, CaptureStack, NewXxxError.
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders frames as "file:line function", dropping runtime frames, at most 10
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// NewDomainError builds a DomainError around err, which may itself wrap
// several sentinels (a context-specific one plus a shared one).
func NewDomainError(err error, entity, field, message string) error {
	return &DomainError{
		Err:     err,
		Entity:  entity,
		Field:   field,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewNotFoundError entity does not exist
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewConflictError uniqueness or concurrency conflict
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError argument validation failure on field
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewInvalidStateError operation rejected by the aggregate's state
func NewInvalidStateError(entity, reason string) error {
	return &DomainError{
		Err:     ErrInvalidState,
		Entity:  entity,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewForbiddenError authenticated caller without the required capability
func NewForbiddenError(entity, reason string) error {
	return &DomainError{
		Err:     ErrForbidden,
		Entity:  entity,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewUnauthorizedError missing or invalid credentials
func NewUnauthorizedError(reason string) error {
	return &DomainError{
		Err:     ErrUnauthorized,
		Entity:  "principal",
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewDependencyError wraps a failure of an external collaborator
func NewDependencyError(entity string, cause error) error {
	return &DomainError{
		Err:     fmt.Errorf("%w: %w", ErrDependency, cause),
		Entity:  entity,
		Message: entity + " is unavailable",
		stack:   CaptureStack(3),
	}
}

// Stacker errors that can report where they were raised
type Stacker interface {
	Stack() []string
}
