package shared

import "context"

// UnitOfWork defines a transaction boundary. Repositories called with the ctx
// handed to fn take part in the same transaction; fn returning an error rolls
// everything back.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
