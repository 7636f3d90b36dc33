package consumption

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/officepantry/internal/domain"
)

var now = time.Date(2024, 1, 15, 16, 0, 0, 0, time.UTC)

func entry(item string, qty int, daysAgo int, user string) *domain.ConsumptionEntry {
	return &domain.ConsumptionEntry{
		Item:       item,
		Quantity:   qty,
		Date:       now.AddDate(0, 0, -daysAgo).Format(domain.DateLayout),
		ConsumedBy: user,
	}
}

func TestStats(t *testing.T) {
	entries := []*domain.ConsumptionEntry{
		entry("tea-bags", 3, 0, "John Doe"),
		entry("coffee-beans", 2, 0, "Jane Smith"),
		entry("biscuits", 5, 1, "Mike Johnson"),
		entry("cookies", 9, 7, "John Doe"),
		entry("milk", 40, 8, "Old Timer"),
	}

	qs := Stats(entries, now)
	assert.Equal(t, 5, qs.TodayTotal)
	assert.Equal(t, 19, qs.WeekTotal)
	assert.Equal(t, "cookies", qs.MostPopularKey)
	assert.Equal(t, "Cookies", qs.MostPopular)
	assert.Equal(t, 3, qs.ActiveUsers)
}

func TestStatsEmpty(t *testing.T) {
	qs := Stats(nil, now)
	assert.Zero(t, qs.TodayTotal)
	assert.Zero(t, qs.WeekTotal)
	assert.Equal(t, "-", qs.MostPopular)
	assert.Zero(t, qs.ActiveUsers)
}

func TestStatsTieGoesToLaterItem(t *testing.T) {
	qs := Stats([]*domain.ConsumptionEntry{
		entry("tea-bags", 4, 0, "A"),
		entry("sugar", 4, 0, "B"),
	}, now)
	assert.Equal(t, "sugar", qs.MostPopularKey)
}

func TestBulkEntries(t *testing.T) {
	got, err := BulkEntries([]BulkRow{
		{Item: "tea-bags", Quantity: "2"},
		{Item: "", Quantity: "5"},
		{Item: "milk", Quantity: ""},
		{Item: "sugar", Quantity: "1"},
	}, now)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "tea-bags", got[0].Item)
	assert.Equal(t, "2024-01-15", got[0].Date)
	assert.Equal(t, "16:00", got[0].Time)
	assert.Equal(t, BulkConsumer, got[0].ConsumedBy)
	assert.Equal(t, BulkNotes, got[0].Notes)
	assert.NotEqual(t, got[0].ID, got[1].ID)
}

func TestBulkEntriesErrors(t *testing.T) {
	_, err := BulkEntries([]BulkRow{{Item: "", Quantity: ""}}, now)
	assert.ErrorIs(t, err, ErrNoBulkRows)

	_, err = BulkEntries(nil, now)
	assert.ErrorIs(t, err, ErrNoBulkRows)

	_, err = BulkEntries([]BulkRow{{Item: "tea-bags", Quantity: "1000"}}, now)
	assert.ErrorContains(t, err, "Quantity cannot exceed 999")

	_, err = BulkEntries([]BulkRow{{Item: "caviar", Quantity: "1"}}, now)
	assert.ErrorContains(t, err, "Unknown item")
}
