package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/vbonduro/officepantry/internal/domain"
	"github.com/vbonduro/officepantry/internal/export"
	"github.com/vbonduro/officepantry/internal/pricing"
	"github.com/vbonduro/officepantry/internal/store"
)

// DefaultHistoryLimit is how many price updates the vendor page shows.
const DefaultHistoryLimit = 10

type productReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}

type priceUpdateRepository interface {
	Recent(ctx context.Context, limit int) ([]*domain.PriceUpdate, error)
	Clear(ctx context.Context) (int64, error)
}

// pricingTx is satisfied by store.PricingTx.
type pricingTx interface {
	InTx(ctx context.Context, fn func(products *store.ProductStore, updates *store.PriceUpdateStore) error) error
}

type PricingService struct {
	products productReader
	updates  priceUpdateRepository
	tx       pricingTx
	logger   *slog.Logger
	now      func() time.Time
}

func NewPricingService(products productReader, updates priceUpdateRepository, tx pricingTx, logger *slog.Logger) *PricingService {
	return &PricingService{products: products, updates: updates, tx: tx, logger: logger, now: time.Now}
}

func (s *PricingService) ListProducts(ctx context.Context, f pricing.ProductFilter) ([]*domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return pricing.FilterProducts(products, f), nil
}

func (s *PricingService) getProduct(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *PricingService) PreviewSingle(ctx context.Context, id int64, in pricing.Single) (pricing.Change, error) {
	p, err := s.getProduct(ctx, id)
	if err != nil {
		return pricing.Change{}, err
	}
	return pricing.PreviewSingle(p, in)
}

// UpdatePrice sets one product's price and records a single update in the
// same transaction.
func (s *PricingService) UpdatePrice(ctx context.Context, id int64, in pricing.Single) (pricing.Change, error) {
	var change pricing.Change
	err := s.tx.InTx(ctx, func(products *store.ProductStore, updates *store.PriceUpdateStore) error {
		p, err := products.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get product: %w", err)
		}
		if p == nil {
			return ErrNotFound
		}
		change, err = pricing.PreviewSingle(p, in)
		if err != nil {
			return err
		}
		if err := products.UpdatePrice(ctx, id, change.NewPrice); err != nil {
			return err
		}
		_, err = updates.Append(ctx, &domain.PriceUpdate{
			Type:        domain.UpdateSingle,
			ProductID:   p.ID,
			ProductName: p.Name,
			OldPrice:    change.OldPrice,
			NewPrice:    change.NewPrice,
			Reason:      in.Reason,
			Notes:       in.Notes,
			Timestamp:   s.now(),
		})
		return err
	})
	if err != nil {
		return pricing.Change{}, err
	}
	s.logger.Info("price updated", "product_id", id, "old_price", change.OldPrice.String(), "new_price", change.NewPrice.String(), "reason", in.Reason)
	return change, nil
}

func (s *PricingService) PreviewBulk(ctx context.Context, b pricing.Bulk) ([]pricing.Change, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return pricing.Preview(products, b)
}

// ApplyBulk applies b to every selected product and logs one bulk update per
// product. Either every product changes or none does.
func (s *PricingService) ApplyBulk(ctx context.Context, b pricing.Bulk) ([]pricing.Change, error) {
	var changes []pricing.Change
	err := s.tx.InTx(ctx, func(products *store.ProductStore, updates *store.PriceUpdateStore) error {
		all, err := products.List(ctx)
		if err != nil {
			return err
		}
		changes, err = pricing.Preview(all, b)
		if err != nil {
			return err
		}
		now := s.now()
		for _, c := range changes {
			if err := products.UpdatePrice(ctx, c.ProductID, c.NewPrice); err != nil {
				return err
			}
			if _, err := updates.Append(ctx, &domain.PriceUpdate{
				Type:        domain.UpdateBulk,
				ProductID:   c.ProductID,
				ProductName: c.ProductName,
				OldPrice:    c.OldPrice,
				NewPrice:    c.NewPrice,
				Reason:      "bulk-update",
				Method:      string(b.Method),
				Value:       b.Value,
				Timestamp:   now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("bulk price update applied", "method", b.Method, "value", b.Value.String(), "count", len(changes))
	return changes, nil
}

// History returns the newest updates. limit <= 0 means DefaultHistoryLimit.
func (s *PricingService) History(ctx context.Context, limit int) ([]*domain.PriceUpdate, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	updates, err := s.updates.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list price updates: %w", err)
	}
	return updates, nil
}

func (s *PricingService) ClearHistory(ctx context.Context) (int64, error) {
	n, err := s.updates.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear price updates: %w", err)
	}
	s.logger.Info("price update history cleared", "count", n)
	return n, nil
}

// ExportHistory writes the whole history, newest first, as CSV.
func (s *PricingService) ExportHistory(ctx context.Context, w io.Writer) error {
	updates, err := s.updates.Recent(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to list price updates: %w", err)
	}
	return export.WriteCSV(w, export.PriceUpdateRows(updates))
}
