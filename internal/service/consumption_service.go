package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vbonduro/officepantry/internal/consumption"
	"github.com/vbonduro/officepantry/internal/domain"
	"github.com/vbonduro/officepantry/internal/store"
	"github.com/vbonduro/officepantry/internal/validate"
)

// entryRepository is the subset of store.EntryStore the consumption and report
// services require.
type entryRepository interface {
	Create(ctx context.Context, e *domain.ConsumptionEntry) error
	GetByID(ctx context.Context, id string) (*domain.ConsumptionEntry, error)
	List(ctx context.Context, item string) ([]*domain.ConsumptionEntry, error)
	Update(ctx context.Context, e *domain.ConsumptionEntry) error
	Delete(ctx context.Context, id string) error
}

// entryTx is satisfied by store.EntryTx.
type entryTx interface {
	InTx(ctx context.Context, fn func(entries *store.EntryStore) error) error
}

type ConsumptionService struct {
	entries entryRepository
	tx      entryTx
	logger  *slog.Logger
	now     func() time.Time
}

func NewConsumptionService(entries entryRepository, tx entryTx, logger *slog.Logger) *ConsumptionService {
	return &ConsumptionService{entries: entries, tx: tx, logger: logger, now: time.Now}
}

func (s *ConsumptionService) Add(ctx context.Context, in validate.ConsumptionInput) (*domain.ConsumptionEntry, error) {
	now := s.now()
	e, err := validate.Consumption(in, now)
	if err != nil {
		return nil, err
	}
	e.ID = uuid.NewString()
	e.Timestamp = now

	if err := s.entries.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to add entry: %w", err)
	}
	s.logger.Info("consumption entry added", "entry_id", e.ID, "item", e.Item, "quantity", e.Quantity)
	return e, nil
}

// AddBulk stores every usable row in one transaction.
func (s *ConsumptionService) AddBulk(ctx context.Context, rows []consumption.BulkRow) ([]*domain.ConsumptionEntry, error) {
	entries, err := consumption.BulkEntries(rows, s.now())
	if err != nil {
		return nil, err
	}
	err = s.tx.InTx(ctx, func(tx *store.EntryStore) error {
		for _, e := range entries {
			if err := tx.Create(ctx, e); err != nil {
				return fmt.Errorf("failed to add bulk entry: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("bulk consumption entries added", "count", len(entries))
	return entries, nil
}

// Update replaces the editable fields of an entry. Its id and timestamp are
// kept.
func (s *ConsumptionService) Update(ctx context.Context, id string, in validate.ConsumptionInput) (*domain.ConsumptionEntry, error) {
	existing, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	e, err := validate.Consumption(in, s.now())
	if err != nil {
		return nil, err
	}
	e.ID = existing.ID
	e.Timestamp = existing.Timestamp

	if err := s.entries.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}
	s.logger.Info("consumption entry updated", "entry_id", id)
	return e, nil
}

func (s *ConsumptionService) Delete(ctx context.Context, id string) error {
	existing, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get entry: %w", err)
	}
	if existing == nil {
		return ErrNotFound
	}
	if err := s.entries.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	s.logger.Info("consumption entry deleted", "entry_id", id)
	return nil
}

// List returns entries newest first. "all" or an empty item lists every entry.
func (s *ConsumptionService) List(ctx context.Context, item string) ([]*domain.ConsumptionEntry, error) {
	if item == "all" {
		item = ""
	}
	entries, err := s.entries.List(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

func (s *ConsumptionService) Stats(ctx context.Context) (consumption.QuickStats, error) {
	entries, err := s.entries.List(ctx, "")
	if err != nil {
		return consumption.QuickStats{}, fmt.Errorf("failed to list entries: %w", err)
	}
	return consumption.Stats(entries, s.now()), nil
}
