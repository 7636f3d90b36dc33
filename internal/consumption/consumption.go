// Package consumption holds the pure parts of the consumption log: the
// quick-stat cards and bulk entry row handling.
package consumption

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vbonduro/officepantry/internal/domain"
	"github.com/vbonduro/officepantry/internal/report"
	"github.com/vbonduro/officepantry/internal/validate"
)

// ErrNoBulkRows is returned when no bulk row carries both an item and a
// quantity.
var ErrNoBulkRows = errors.New("please add at least one item")

const (
	BulkConsumer = "Bulk Entry"
	BulkNotes    = "Bulk entry"
)

type QuickStats struct {
	TodayTotal     int    `json:"todayTotal"`
	WeekTotal      int    `json:"weekTotal"`
	MostPopular    string `json:"mostPopular"`
	MostPopularKey string `json:"mostPopularKey"`
	ActiveUsers    int    `json:"activeUsers"`
}

// Stats scans every entry. The week covers today and the seven days before
// it; most popular and active users are counted over that week.
func Stats(entries []*domain.ConsumptionEntry, now time.Time) QuickStats {
	today := now.Format(domain.DateLayout)
	weekStart := now.AddDate(0, 0, -7).Format(domain.DateLayout)

	var qs QuickStats
	var order []string
	sums := make(map[string]int)
	users := make(map[string]struct{})

	for _, e := range entries {
		if e.Date == today {
			qs.TodayTotal += e.Quantity
		}
		if e.Date < weekStart {
			continue
		}
		qs.WeekTotal += e.Quantity
		if _, seen := sums[e.Item]; !seen {
			order = append(order, e.Item)
		}
		sums[e.Item] += e.Quantity
		users[e.ConsumedBy] = struct{}{}
	}

	qs.ActiveUsers = len(users)
	qs.MostPopularKey = report.MostPopular(order, sums)
	qs.MostPopular = "-"
	if qs.MostPopularKey != "" {
		qs.MostPopular = domain.ItemName(qs.MostPopularKey)
	}
	return qs
}

// BulkRow is one line of the bulk entry form.
type BulkRow struct {
	Item     string `json:"item"`
	Quantity string `json:"quantity"`
}

// BulkEntries turns the usable rows into entries dated now. Rows missing an
// item or a quantity are skipped; a row with both must validate.
func BulkEntries(rows []BulkRow, now time.Time) ([]*domain.ConsumptionEntry, error) {
	var out []*domain.ConsumptionEntry
	for _, row := range rows {
		item := strings.TrimSpace(row.Item)
		if item == "" || strings.TrimSpace(row.Quantity) == "" {
			continue
		}
		if err := validate.Item(item); err != nil {
			return nil, err
		}
		qty, err := validate.Quantity(row.Quantity)
		if err != nil {
			return nil, err
		}
		out = append(out, &domain.ConsumptionEntry{
			ID:         uuid.NewString(),
			Item:       item,
			Quantity:   qty,
			Date:       now.Format(domain.DateLayout),
			Time:       now.Format(domain.TimeLayout),
			ConsumedBy: BulkConsumer,
			Notes:      BulkNotes,
			Mode:       domain.ModeDaily,
			Timestamp:  now,
		})
	}
	if len(out) == 0 {
		return nil, ErrNoBulkRows
	}
	return out, nil
}
