package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vbonduro/officepantry/internal/domain"
)

type EntryStore struct {
	db DBTX
}

func NewEntryStore(db DBTX) *EntryStore {
	return &EntryStore{db: db}
}

const entryColumns = `id, item, quantity, entry_date, entry_time, consumed_by, notes, mode, created_at`

func scanEntry(sc interface{ Scan(...any) error }, e *domain.ConsumptionEntry) error {
	return sc.Scan(&e.ID, &e.Item, &e.Quantity, &e.Date, &e.Time, &e.ConsumedBy, &e.Notes, &e.Mode, &e.Timestamp)
}

// Create inserts e as-is; the caller assigns ID and Timestamp.
func (s *EntryStore) Create(ctx context.Context, e *domain.ConsumptionEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO consumption_entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Item, e.Quantity, e.Date, e.Time, e.ConsumedBy, e.Notes, string(e.Mode), e.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}
	return nil
}

func (s *EntryStore) GetByID(ctx context.Context, id string) (*domain.ConsumptionEntry, error) {
	e := &domain.ConsumptionEntry{}
	err := scanEntry(s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+` FROM consumption_entries WHERE id = ?
	`, id), e)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	return e, nil
}

// List returns entries newest first. An empty item matches every item.
func (s *EntryStore) List(ctx context.Context, item string) ([]*domain.ConsumptionEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+` FROM consumption_entries
		WHERE (? = '' OR item = ?)
		ORDER BY created_at DESC, rowid DESC
	`, item, item)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer closeRows(rows)

	var entries []*domain.ConsumptionEntry
	for rows.Next() {
		e := &domain.ConsumptionEntry{}
		if err := scanEntry(rows, e); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}

	return entries, nil
}

// Update rewrites the user-editable fields of entry e.ID.
func (s *EntryStore) Update(ctx context.Context, e *domain.ConsumptionEntry) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE consumption_entries
		SET item = ?, quantity = ?, entry_date = ?, entry_time = ?, consumed_by = ?, notes = ?, mode = ?
		WHERE id = ?
	`, e.Item, e.Quantity, e.Date, e.Time, e.ConsumedBy, e.Notes, string(e.Mode), e.ID)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	return expectOneRow(result, "entry")
}

func (s *EntryStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM consumption_entries WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return expectOneRow(result, "entry")
}
