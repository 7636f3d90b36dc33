package report

import (
	"github.com/montanaflynn/stats"

	"github.com/vbonduro/officepantry/internal/domain"
)

type Summary struct {
	TotalItems     int    `json:"totalItems"`
	ActiveUsers    int    `json:"activeUsers"`
	MostPopular    string `json:"mostPopular"`
	MostPopularKey string `json:"mostPopularKey"`
	AvgDaily       int    `json:"avgDaily"`
}

// Series is one chart: labels paired index-for-index with values.
type Series struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

type Charts struct {
	ByItem Series `json:"byItem"`
	ByUser Series `json:"byUser"`
}

// groupSum totals quantity per key, keeping keys in first-seen order.
func groupSum(records []domain.ReportRecord, key func(domain.ReportRecord) string) ([]string, map[string]int) {
	var order []string
	sums := make(map[string]int)
	for _, r := range records {
		k := key(r)
		if _, seen := sums[k]; !seen {
			order = append(order, k)
		}
		sums[k] += r.Quantity
	}
	return order, sums
}

// MostPopular returns the key with the largest total. On a tie the key seen
// later wins, matching a left-to-right reduce that keeps the right operand
// unless the left is strictly greater.
func MostPopular(order []string, sums map[string]int) string {
	best := ""
	for _, k := range order {
		if best == "" || sums[k] >= sums[best] {
			best = k
		}
	}
	return best
}

// Summarize computes the report cards over the filtered set. AvgDaily is the
// rounded mean of per-day totals across the days that have any record.
func Summarize(records []domain.ReportRecord) Summary {
	var s Summary
	users := make(map[string]struct{})
	for _, r := range records {
		s.TotalItems += r.Quantity
		users[r.User] = struct{}{}
	}
	s.ActiveUsers = len(users)

	s.MostPopularKey = MostPopular(groupSum(records, func(r domain.ReportRecord) string { return r.Item }))
	s.MostPopular = "-"
	if s.MostPopularKey != "" {
		s.MostPopular = domain.ItemName(s.MostPopularKey)
	}

	days, perDay := groupSum(records, func(r domain.ReportRecord) string { return r.Date })
	totals := make(stats.Float64Data, 0, len(days))
	for _, d := range days {
		totals = append(totals, float64(perDay[d]))
	}
	if mean, err := totals.Mean(); err == nil {
		if rounded, err := stats.Round(mean, 0); err == nil {
			s.AvgDaily = int(rounded)
		}
	}
	return s
}

// BuildCharts produces the consumption-by-item and activity-by-user series.
func BuildCharts(records []domain.ReportRecord) Charts {
	toSeries := func(order []string, sums map[string]int, label func(string) string) Series {
		s := Series{Labels: make([]string, 0, len(order)), Data: make([]int, 0, len(order))}
		for _, k := range order {
			s.Labels = append(s.Labels, label(k))
			s.Data = append(s.Data, sums[k])
		}
		return s
	}

	itemOrder, itemSums := groupSum(records, func(r domain.ReportRecord) string { return r.Item })
	userOrder, userSums := groupSum(records, func(r domain.ReportRecord) string { return r.User })

	return Charts{
		ByItem: toSeries(itemOrder, itemSums, domain.ItemName),
		ByUser: toSeries(userOrder, userSums, func(s string) string { return s }),
	}
}
