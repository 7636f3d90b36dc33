package store

import (
	"context"
	"fmt"

	"github.com/vbonduro/officepantry/internal/domain"
)

// PriceUpdateStore is the append-only price change history.
type PriceUpdateStore struct {
	db DBTX
}

func NewPriceUpdateStore(db DBTX) *PriceUpdateStore {
	return &PriceUpdateStore{db: db}
}

func (s *PriceUpdateStore) Append(ctx context.Context, u *domain.PriceUpdate) (*domain.PriceUpdate, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO price_updates
			(update_type, product_id, product_name, old_price, new_price, reason, method, value, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, string(u.Type), u.ProductID, u.ProductName, money(u.OldPrice), money(u.NewPrice),
		u.Reason, u.Method, u.Value.String(), u.Notes, u.Timestamp.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to append price update: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	stored := *u
	stored.ID = id
	return &stored, nil
}

// Recent returns up to limit updates, newest first. limit <= 0 returns all.
func (s *PriceUpdateStore) Recent(ctx context.Context, limit int) ([]*domain.PriceUpdate, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, update_type, product_id, product_name, old_price, new_price, reason, method, value, notes, created_at
		FROM price_updates
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list price updates: %w", err)
	}
	defer closeRows(rows)

	var updates []*domain.PriceUpdate
	for rows.Next() {
		u := &domain.PriceUpdate{}
		if err := rows.Scan(&u.ID, &u.Type, &u.ProductID, &u.ProductName, &u.OldPrice, &u.NewPrice,
			&u.Reason, &u.Method, &u.Value, &u.Notes, &u.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan price update: %w", err)
		}
		updates = append(updates, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price updates: %w", err)
	}

	return updates, nil
}

// Clear removes the whole history and returns how many rows went.
func (s *PriceUpdateStore) Clear(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM price_updates`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear price updates: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
