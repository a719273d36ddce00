package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// txContextKey is unexported to avoid context key collisions.
type txContextKey struct{}

// WithTx returns a context carrying tx. Store implementations in this module
// run their statements on a carried transaction instead of the pool, letting
// callers compose session writes with their own transactional work.
func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txContextKey{}, tx)
}

// TxFromContext extracts a transaction stored with WithTx. The second return
// value reports whether one was present.
func TxFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txContextKey{}).(pgx.Tx)
	return tx, ok
}
