// Package persistence carries the gorm transaction of the current unit of work
// through context.Context so repositories join it without extra parameters.
package persistence

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxFromContext returns the open transaction, or nil outside a unit of work
func TxFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// DB picks the transaction from ctx, falling back to db bound to ctx
func DB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}

// InTransaction reports whether ctx belongs to a unit of work
func InTransaction(ctx context.Context) bool {
	return TxFromContext(ctx) != nil
}
