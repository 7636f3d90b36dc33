package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// withTx calls fn inside a fresh transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
func withTx(ctx context.Context, db *sql.DB, name string, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			slog.Error("failed to roll back transaction", "tx", name, "error", rerr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// PricingTx runs price changes and their history rows in one transaction.
type PricingTx struct {
	db *sql.DB
}

func NewPricingTx(db *sql.DB) *PricingTx {
	return &PricingTx{db: db}
}

// InTx calls fn with stores bound to one transaction.
func (p *PricingTx) InTx(ctx context.Context, fn func(products *ProductStore, updates *PriceUpdateStore) error) error {
	return withTx(ctx, p.db, "pricing", func(tx *sql.Tx) error {
		return fn(NewProductStore(tx), NewPriceUpdateStore(tx))
	})
}

// EntryTx groups consumption entry writes, such as a bulk entry, so they
// land together or not at all.
type EntryTx struct {
	db *sql.DB
}

func NewEntryTx(db *sql.DB) *EntryTx {
	return &EntryTx{db: db}
}

func (e *EntryTx) InTx(ctx context.Context, fn func(entries *EntryStore) error) error {
	return withTx(ctx, e.db, "entries", func(tx *sql.Tx) error {
		return fn(NewEntryStore(tx))
	})
}
