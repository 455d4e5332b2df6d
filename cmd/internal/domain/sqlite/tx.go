package sqlite

import (
	"context"

	"gorm.io/gorm"
)

type txCtxKey struct{}

// Transactor runs units of work inside a single database transaction.
type Transactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// RunInTx commits when f returns nil and rolls back otherwise. A call made
// while a transaction is already bound to ctx joins it.
func (t *Transactor) RunInTx(ctx context.Context, f func(context.Context) error) error {
	if TxFromContext(ctx) != nil {
		return f(ctx)
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(NewTxContext(ctx, tx))
	})
}

func TxFromContext(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txCtxKey{}).(*gorm.DB)
	return tx
}

func NewTxContext(parent context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(parent, txCtxKey{}, tx)
}

// Conn returns the transaction bound to ctx, or db itself.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}
