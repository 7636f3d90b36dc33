package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vbonduro/officepantry/internal/auth"
	"github.com/vbonduro/officepantry/internal/domain"
	"github.com/vbonduro/officepantry/internal/store"
)

// Load inserts the demo dataset into an empty database. It does nothing when
// any product already exists, so it is safe to call on every start.
func Load(ctx context.Context, db *sql.DB, now time.Time, logger *slog.Logger) error {
	products := store.NewProductStore(db)
	n, err := products.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Info("sample data already present, skipping seed", "products", n)
		return nil
	}

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return err
	}
	users := store.NewUserStore(db)
	for _, u := range Users() {
		if _, err := users.Create(ctx, u.Name, u.Email, hash, u.Role); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
	}

	for _, p := range Products() {
		if _, err := products.Create(ctx, &p); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.Name, err)
		}
	}

	entries := store.NewEntryStore(db)
	all := RecentEntries(now)
	for _, r := range ReportRecords() {
		e, err := entryFromRecord(r)
		if err != nil {
			return err
		}
		all = append(all, e)
	}
	for i := range all {
		all[i].ID = uuid.NewString()
		if err := entries.Create(ctx, &all[i]); err != nil {
			return fmt.Errorf("failed to seed entry: %w", err)
		}
	}

	updates := store.NewPriceUpdateStore(db)
	for _, u := range PriceUpdates(now) {
		if _, err := updates.Append(ctx, &u); err != nil {
			return fmt.Errorf("failed to seed price update: %w", err)
		}
	}

	logger.Info("sample data loaded", "users", len(Users()), "products", len(Products()), "entries", len(all))
	return nil
}

func entryFromRecord(r domain.ReportRecord) (domain.ConsumptionEntry, error) {
	ts, err := time.ParseInLocation(domain.DateLayout+" "+domain.TimeLayout, r.Date+" "+r.Time, time.UTC)
	if err != nil {
		return domain.ConsumptionEntry{}, fmt.Errorf("bad sample record %s: %w", r.ID, err)
	}
	return domain.ConsumptionEntry{
		Item:       r.Item,
		Quantity:   r.Quantity,
		Date:       r.Date,
		Time:       r.Time,
		ConsumedBy: r.User,
		Notes:      r.Notes,
		Mode:       domain.ModeDaily,
		Timestamp:  ts,
	}, nil
}
