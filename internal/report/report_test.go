package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/officepantry/internal/domain"
	"github.com/vbonduro/officepantry/internal/seed"
)

func ids(records []domain.ReportRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilterByCategory(t *testing.T) {
	got := Filter(seed.ReportRecords(), Query{Category: domain.CategoryBeverages})

	assert.Equal(t, []string{"1", "2", "5", "6", "9"}, ids(got))
	for _, r := range got {
		assert.Contains(t, []string{"tea-bags", "coffee-beans", "instant-coffee"}, r.Item)
	}
}

func TestFilterAllAndEmptyAreNoOps(t *testing.T) {
	records := seed.ReportRecords()
	assert.Len(t, Filter(records, Query{Category: Any, User: Any}), 10)
	assert.Len(t, Filter(records, Query{}), 10)
}

func TestFilterUserIsCaseInsensitiveSubstring(t *testing.T) {
	got := Filter(seed.ReportRecords(), Query{User: "JOHN"})
	// John Doe and Mike Johnson.
	assert.Equal(t, []string{"1", "3", "5", "8", "10"}, ids(got))
}

func TestFilterSearchCoversNotes(t *testing.T) {
	got := Filter(seed.ReportRecords(), Query{Search: "meeting"})
	assert.Equal(t, []string{"4", "9"}, ids(got))

	got = Filter(seed.ReportRecords(), Query{Search: "sugar"})
	assert.Equal(t, []string{"7"}, ids(got))
}

func TestFilterDateRangeInclusive(t *testing.T) {
	got := Filter(seed.ReportRecords(), Query{Range: DateRange{Start: "2024-01-13", End: "2024-01-14"}})
	assert.Equal(t, []string{"4", "5", "6", "7", "8"}, ids(got))
}

func TestSortIsStable(t *testing.T) {
	records := seed.ReportRecords()
	Sort(records, SortDate, Desc)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}, ids(records))

	Sort(records, SortDate, Asc)
	assert.Equal(t, []string{"9", "10", "7", "8", "4", "5", "6", "1", "2", "3"}, ids(records))

	records = seed.ReportRecords()
	Sort(records, SortQuantity, Asc)
	assert.Equal(t, "7", records[0].ID)
	assert.Equal(t, "10", records[len(records)-1].ID)
}

func TestParseSortKeyAndDirection(t *testing.T) {
	k, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortDate, k)
	_, err = ParseSortKey("price")
	assert.Error(t, err)

	d, err := ParseDirection("ASC")
	require.NoError(t, err)
	assert.Equal(t, Asc, d)
	d, err = ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, Desc, d)
}

func TestPaginateSamplePageSize25(t *testing.T) {
	p := Paginate(seed.ReportRecords(), 1, 25)

	assert.Equal(t, 1, p.TotalPages)
	assert.Len(t, p.Records, 10)
	assert.Equal(t, 1, p.From)
	assert.Equal(t, 10, p.To)
	assert.False(t, p.Empty)
	assert.Nil(t, p.Links)
}

func TestPaginateClampsPage(t *testing.T) {
	records := seed.ReportRecords()

	p := Paginate(records, 9, 3)
	assert.Equal(t, 4, p.TotalPages)
	assert.Equal(t, 4, p.Page)
	assert.Equal(t, []string{"10"}, ids(p.Records))
	assert.Equal(t, 10, p.From)
	assert.Equal(t, 10, p.To)

	p = Paginate(records, -2, 3)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, []string{"1", "2", "3"}, ids(p.Records))
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate(nil, 3, 25)
	assert.True(t, p.Empty)
	assert.Equal(t, 0, p.TotalPages)
	assert.Equal(t, 1, p.Page)
	assert.Empty(t, p.Records)
	assert.Zero(t, p.From)
}

func TestLinks(t *testing.T) {
	assert.Equal(t, []PageLink{
		{Page: 1}, {Ellipsis: true}, {Page: 3}, {Page: 4}, {Page: 5, Current: true}, {Page: 6}, {Page: 7}, {Ellipsis: true}, {Page: 10},
	}, Links(5, 10))

	assert.Equal(t, []PageLink{
		{Page: 1, Current: true}, {Page: 2}, {Page: 3},
	}, Links(1, 3))

	assert.Equal(t, []PageLink{
		{Page: 1}, {Page: 2}, {Page: 3}, {Page: 4, Current: true}, {Page: 5},
	}, Links(4, 5))
}

func TestSummarizeSample(t *testing.T) {
	s := Summarize(seed.ReportRecords())

	assert.Equal(t, 33, s.TotalItems)
	assert.Equal(t, 5, s.ActiveUsers)
	assert.Equal(t, "cookies", s.MostPopularKey)
	assert.Equal(t, "Cookies", s.MostPopular)
	// Per-day totals 10, 9, 4, 10.
	assert.Equal(t, 8, s.AvgDaily)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, "-", s.MostPopular)
	assert.Zero(t, s.TotalItems)
	assert.Zero(t, s.AvgDaily)
}

func TestMostPopularTieGoesToLaterKey(t *testing.T) {
	order := []string{"tea-bags", "biscuits"}
	assert.Equal(t, "biscuits", MostPopular(order, map[string]int{"tea-bags": 4, "biscuits": 4}))
	assert.Equal(t, "tea-bags", MostPopular(order, map[string]int{"tea-bags": 5, "biscuits": 4}))
}

func TestBuildChartsFirstAppearanceOrder(t *testing.T) {
	c := BuildCharts(seed.ReportRecords())

	assert.Equal(t, []string{"Tea Bags", "Coffee Beans", "Biscuits", "Cookies", "Sugar"}, c.ByItem.Labels)
	assert.Equal(t, []int{9, 5, 8, 10, 1}, c.ByItem.Data)
	assert.Equal(t, []string{"John Doe", "Jane Smith", "Mike Johnson", "Sarah Wilson", "Guest User"}, c.ByUser.Labels)
	assert.Equal(t, []int{11, 5, 8, 8, 1}, c.ByUser.Data)
}

func TestRunSummaryCoversWholeFilteredSet(t *testing.T) {
	res := Run(seed.ReportRecords(), Query{Category: domain.CategorySnacks, PageSize: 2, Page: 1})

	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 2, res.TotalPages)
	assert.Len(t, res.Records, 2)
	assert.Equal(t, 18, res.Summary.TotalItems)
	assert.Equal(t, "Cookies", res.Summary.MostPopular)
}

func TestFromEntries(t *testing.T) {
	got := FromEntries([]*domain.ConsumptionEntry{
		{ID: "a", Item: "milk", Quantity: 2, Date: "2024-01-10", ConsumedBy: "Jane Smith"},
		{ID: "b", Item: "mystery", Quantity: 1, Date: "2024-01-10", ConsumedBy: "Jane Smith"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, domain.CategoryOther, got[0].Category)
	assert.Equal(t, "Jane Smith", got[0].User)
	assert.Equal(t, domain.CategoryOther, got[1].Category)
}

func TestRangeForCustomNormalisesBounds(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	got, err := RangeFor(PresetCustom, "2024-1-10", "2024-1-20", now)
	require.NoError(t, err)
	assert.Equal(t, DateRange{"2024-01-10", "2024-01-20"}, got)
	assert.True(t, got.Contains("2024-01-15"))

	_, err = RangeFor(PresetCustom, "garbage", "zzz", now)
	assert.ErrorContains(t, err, "invalid start date")

	_, err = RangeFor(PresetCustom, "2024-01-10", "zzz", now)
	assert.ErrorContains(t, err, "invalid end date")
}

func TestRangeFor(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		preset string
		want   DateRange
	}{
		{PresetAll, DateRange{}},
		{PresetToday, DateRange{"2024-05-15", "2024-05-15"}},
		{PresetYesterday, DateRange{"2024-05-14", "2024-05-14"}},
		{PresetThisWeek, DateRange{"2024-05-08", "2024-05-15"}},
		{PresetLastWeek, DateRange{"2024-05-01", "2024-05-08"}},
		{PresetThisMonth, DateRange{"2024-05-01", "2024-05-15"}},
		{PresetLastMonth, DateRange{"2024-04-01", "2024-04-30"}},
		{PresetThisQuarter, DateRange{"2024-04-01", "2024-05-15"}},
	}
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			got, err := RangeFor(tt.preset, "", "", now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := RangeFor(PresetCustom, "2024-01-01", "2024-01-31", now)
	require.NoError(t, err)
	assert.Equal(t, DateRange{"2024-01-01", "2024-01-31"}, got)

	_, err = RangeFor(PresetCustom, "2024-02-01", "2024-01-31", now)
	assert.Error(t, err)

	got, err = RangeFor(PresetCustom, "", "2024-01-31", now)
	require.NoError(t, err)
	assert.Equal(t, DateRange{}, got)

	_, err = RangeFor("fortnight", "", "", now)
	assert.Error(t, err)
}

func TestLastMonthInJanuary(t *testing.T) {
	got, err := RangeFor(PresetLastMonth, "", "", time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, DateRange{"2023-12-01", "2023-12-31"}, got)
}

func TestBuildTrendWeek(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	tr, err := BuildTrend(seed.ReportRecords(), TrendWeek, now)
	require.NoError(t, err)

	assert.Equal(t, []string{"Tue", "Wed", "Thu", "Fri", "Sat", "Sun", "Mon"}, tr.Labels)
	require.Len(t, tr.Datasets, TrendItems)
	assert.Equal(t, "Cookies", tr.Datasets[0].Label)
	assert.Equal(t, []int{0, 0, 0, 6, 0, 4, 0}, tr.Datasets[0].Data)
	assert.Equal(t, "Tea Bags", tr.Datasets[1].Label)
	assert.Equal(t, []int{0, 0, 0, 4, 0, 2, 3}, tr.Datasets[1].Data)
}

func TestBuildTrendQuarterAndUnknown(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	tr, err := BuildTrend(seed.ReportRecords(), TrendQuarter, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"Month 1", "Month 2", "Month 3"}, tr.Labels)
	for _, ds := range tr.Datasets {
		assert.Zero(t, ds.Data[0])
		assert.Zero(t, ds.Data[1])
	}

	_, err = BuildTrend(nil, "decade", now)
	assert.Error(t, err)
}
