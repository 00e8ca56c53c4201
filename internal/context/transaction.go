package context

import (
	"context"

	"gorm.io/gorm"
)

type contextKey string

const transactionKey contextKey = "transaction"

// TransactionFrom returns the transaction an enclosing unit of work stored
// in ctx, if any.
func TransactionFrom(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(transactionKey).(*gorm.DB)
	return tx, ok && tx != nil
}

func WithTransaction(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, transactionKey, tx)
}
