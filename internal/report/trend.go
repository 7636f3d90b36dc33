package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/vbonduro/officepantry/internal/domain"
)

const (
	TrendWeek    = "week"
	TrendMonth   = "month"
	TrendQuarter = "quarter"
)

// TrendItems is how many items the dashboard trend chart plots.
const TrendItems = 3

type Dataset struct {
	Label string `json:"label"`
	Data  []int  `json:"data"`
}

type Trend struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type bucket struct {
	label string
	span  DateRange
}

func trendBuckets(timeRange string, now time.Time) ([]bucket, error) {
	day := func(t time.Time) string { return t.Format(domain.DateLayout) }

	switch timeRange {
	case "", TrendWeek:
		out := make([]bucket, 0, 7)
		for i := 6; i >= 0; i-- {
			d := now.AddDate(0, 0, -i)
			out = append(out, bucket{label: d.Weekday().String()[:3], span: DateRange{Start: day(d), End: day(d)}})
		}
		return out, nil
	case TrendMonth:
		out := make([]bucket, 0, 4)
		for w := 0; w < 4; w++ {
			start := now.AddDate(0, 0, -27+7*w)
			end := start.AddDate(0, 0, 6)
			out = append(out, bucket{label: fmt.Sprintf("Week %d", w+1), span: DateRange{Start: day(start), End: day(end)}})
		}
		return out, nil
	case TrendQuarter:
		y, m, _ := now.Date()
		out := make([]bucket, 0, 3)
		for i := 0; i < 3; i++ {
			first := time.Date(y, m-2+time.Month(i), 1, 0, 0, 0, 0, now.Location())
			last := first.AddDate(0, 1, -1)
			out = append(out, bucket{label: fmt.Sprintf("Month %d", i+1), span: DateRange{Start: day(first), End: day(last)}})
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown trend range %q", timeRange)
}

// BuildTrend buckets records over the window ending at now and plots the
// TrendItems items with the largest totals in that window.
func BuildTrend(records []domain.ReportRecord, timeRange string, now time.Time) (Trend, error) {
	buckets, err := trendBuckets(timeRange, now)
	if err != nil {
		return Trend{}, err
	}
	window := DateRange{Start: buckets[0].span.Start, End: buckets[len(buckets)-1].span.End}

	var inWindow []domain.ReportRecord
	for _, r := range records {
		if window.Contains(r.Date) {
			inWindow = append(inWindow, r)
		}
	}

	order, sums := groupSum(inWindow, func(r domain.ReportRecord) string { return r.Item })
	sort.SliceStable(order, func(i, j int) bool { return sums[order[i]] > sums[order[j]] })
	if len(order) > TrendItems {
		order = order[:TrendItems]
	}

	t := Trend{Labels: make([]string, 0, len(buckets)), Datasets: make([]Dataset, 0, len(order))}
	for _, b := range buckets {
		t.Labels = append(t.Labels, b.label)
	}
	for _, item := range order {
		ds := Dataset{Label: domain.ItemName(item), Data: make([]int, len(buckets))}
		for _, r := range inWindow {
			if r.Item != item {
				continue
			}
			for i, b := range buckets {
				if b.span.Contains(r.Date) {
					ds.Data[i] += r.Quantity
					break
				}
			}
		}
		t.Datasets = append(t.Datasets, ds)
	}
	return t, nil
}
