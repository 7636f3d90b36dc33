package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/vbonduro/officepantry/internal/domain"
	"github.com/vbonduro/officepantry/internal/export"
	"github.com/vbonduro/officepantry/internal/filestore"
	"github.com/vbonduro/officepantry/internal/report"
)

// RestockUnits is how many units the restock quick action adds.
const RestockUnits = 50

type StockLevel string

const (
	LevelOK       StockLevel = "ok"
	LevelWarning  StockLevel = "warning"
	LevelCritical StockLevel = "critical"
)

type Thresholds struct {
	Low      int
	Critical int
}

func (t Thresholds) Level(stock int) StockLevel {
	switch {
	case stock < t.Critical:
		return LevelCritical
	case stock < t.Low:
		return LevelWarning
	}
	return LevelOK
}

// Status recomputes a product status after its stock changed. Inactive
// products stay inactive.
func (t Thresholds) Status(current domain.ProductStatus, stock int) domain.ProductStatus {
	if current == domain.StatusInactive {
		return domain.StatusInactive
	}
	if stock < t.Low {
		return domain.StatusLowStock
	}
	return domain.StatusActive
}

type StockMetric struct {
	ProductID int64                `json:"productId"`
	Name      string               `json:"name"`
	Icon      string               `json:"icon"`
	Stock     int                  `json:"stock"`
	Status    domain.ProductStatus `json:"status"`
	Level     StockLevel           `json:"level"`
}

type Alert struct {
	ProductID int64      `json:"productId"`
	Name      string     `json:"name"`
	Stock     int        `json:"stock"`
	Level     StockLevel `json:"level"`
	Message   string     `json:"message"`
}

type Snapshot struct {
	Products    []StockMetric `json:"products"`
	TotalStock  int           `json:"totalStock"`
	Alerts      []Alert       `json:"alerts"`
	RefreshedAt time.Time     `json:"refreshedAt"`
}

type stockRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	UpdateStock(ctx context.Context, id int64, stock int, status domain.ProductStatus) error
}

type historyReader interface {
	Recent(ctx context.Context, limit int) ([]*domain.PriceUpdate, error)
}

// DashboardService serves the admin overview. The stock snapshot is rebuilt
// by Refresh, which the scheduler calls periodically.
type DashboardService struct {
	products   stockRepository
	entries    entryRepository
	updates    historyReader
	files      filestore.FileStore
	thresholds Thresholds
	logger     *slog.Logger
	now        func() time.Time

	snapshot atomic.Pointer[Snapshot]
}

func NewDashboardService(
	products stockRepository,
	entries entryRepository,
	updates historyReader,
	files filestore.FileStore,
	thresholds Thresholds,
	logger *slog.Logger,
) *DashboardService {
	return &DashboardService{
		products:   products,
		entries:    entries,
		updates:    updates,
		files:      files,
		thresholds: thresholds,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *DashboardService) build(products []*domain.Product) *Snapshot {
	snap := &Snapshot{
		Products:    make([]StockMetric, 0, len(products)),
		Alerts:      []Alert{},
		RefreshedAt: s.now(),
	}
	for _, p := range products {
		level := s.thresholds.Level(p.Stock)
		snap.Products = append(snap.Products, StockMetric{
			ProductID: p.ID,
			Name:      p.Name,
			Icon:      p.Icon,
			Stock:     p.Stock,
			Status:    p.Status,
			Level:     level,
		})
		snap.TotalStock += p.Stock

		if p.Status == domain.StatusInactive || level == LevelOK {
			continue
		}
		msg := fmt.Sprintf("%s is running low (%d left)", p.Name, p.Stock)
		if level == LevelCritical {
			msg = fmt.Sprintf("%s is critically low (%d left)", p.Name, p.Stock)
		}
		snap.Alerts = append(snap.Alerts, Alert{ProductID: p.ID, Name: p.Name, Stock: p.Stock, Level: level, Message: msg})
	}
	return snap
}

// Refresh rebuilds the snapshot and logs alerts that were not present in the
// previous one.
func (s *DashboardService) Refresh(ctx context.Context) (*Snapshot, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	snap := s.build(products)
	prev := s.snapshot.Swap(snap)

	seen := make(map[Alert]bool)
	if prev != nil {
		for _, a := range prev.Alerts {
			seen[a] = true
		}
	}
	for _, a := range snap.Alerts {
		if !seen[a] {
			s.logger.Warn("stock alert", "product_id", a.ProductID, "level", a.Level, "stock", a.Stock)
		}
	}
	return snap, nil
}

// Snapshot returns the latest snapshot, building one on first use.
func (s *DashboardService) Snapshot(ctx context.Context) (*Snapshot, error) {
	if snap := s.snapshot.Load(); snap != nil {
		return snap, nil
	}
	return s.Refresh(ctx)
}

func (s *DashboardService) Restock(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if p == nil {
		return nil, ErrNotFound
	}

	p.Stock += RestockUnits
	p.Status = s.thresholds.Status(p.Status, p.Stock)
	if err := s.products.UpdateStock(ctx, id, p.Stock, p.Status); err != nil {
		return nil, fmt.Errorf("failed to restock product: %w", err)
	}
	s.logger.Info("product restocked", "product_id", id, "stock", p.Stock, "status", p.Status)

	if _, err := s.Refresh(ctx); err != nil {
		s.logger.Error("failed to refresh dashboard after restock", "error", err)
	}
	return p, nil
}

// Backup writes a workbook of products, entries and price history to the
// file store and returns its key.
func (s *DashboardService) Backup(ctx context.Context) (string, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list products: %w", err)
	}
	entries, err := s.entries.List(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to list entries: %w", err)
	}
	updates, err := s.updates.Recent(ctx, 0)
	if err != nil {
		return "", fmt.Errorf("failed to list price updates: %w", err)
	}

	var buf bytes.Buffer
	if err := export.Backup(&buf, products, report.FromEntries(entries), updates); err != nil {
		return "", err
	}
	key, err := s.files.Save(ctx, "backup", filestore.ContentTypeXLSX, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to save backup: %w", err)
	}
	s.logger.Info("backup written", "key", key, "products", len(products), "entries", len(entries), "price_updates", len(updates))
	return key, nil
}

func (s *DashboardService) Backups(ctx context.Context) ([]string, error) {
	return s.files.List(ctx)
}

// PruneBackups deletes all but the keep newest backups and returns how many
// were removed. keep <= 0 disables pruning.
func (s *DashboardService) PruneBackups(ctx context.Context, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	keys, err := s.files.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list backups: %w", err)
	}
	removed := 0
	for _, key := range keys[min(keep, len(keys)):] {
		if err := s.files.Delete(ctx, key); err != nil {
			return removed, fmt.Errorf("failed to delete backup %s: %w", key, err)
		}
		removed++
	}
	if removed > 0 {
		s.logger.Info("old backups pruned", "removed", removed, "kept", keep)
	}
	return removed, nil
}

func (s *DashboardService) OpenBackup(ctx context.Context, key string) (io.ReadCloser, string, error) {
	return s.files.Get(ctx, key)
}
