package report

import (
	"fmt"
	"time"

	"github.com/vbonduro/officepantry/internal/domain"
	"github.com/vbonduro/officepantry/internal/validate"
)

// DateRange is an inclusive span of calendar days in YYYY-MM-DD form. An
// empty bound is open.
type DateRange struct {
	Start string
	End   string
}

func (r DateRange) Contains(day string) bool {
	if r.Start != "" && day < r.Start {
		return false
	}
	if r.End != "" && day > r.End {
		return false
	}
	return true
}

const (
	PresetAll         = "all"
	PresetToday       = "today"
	PresetYesterday   = "yesterday"
	PresetThisWeek    = "thisWeek"
	PresetLastWeek    = "lastWeek"
	PresetThisMonth   = "thisMonth"
	PresetLastMonth   = "lastMonth"
	PresetThisQuarter = "thisQuarter"
	PresetCustom      = "custom"
)

// RangeFor resolves a named preset relative to now. "custom" normalises start
// and end to YYYY-MM-DD; if either is missing the range is unbounded.
func RangeFor(preset, start, end string, now time.Time) (DateRange, error) {
	day := func(t time.Time) string { return t.Format(domain.DateLayout) }
	y, m, _ := now.Date()
	loc := now.Location()

	switch preset {
	case "", PresetAll:
		return DateRange{}, nil
	case PresetToday:
		return DateRange{Start: day(now), End: day(now)}, nil
	case PresetYesterday:
		d := day(now.AddDate(0, 0, -1))
		return DateRange{Start: d, End: d}, nil
	case PresetThisWeek:
		return DateRange{Start: day(now.AddDate(0, 0, -7)), End: day(now)}, nil
	case PresetLastWeek:
		return DateRange{Start: day(now.AddDate(0, 0, -14)), End: day(now.AddDate(0, 0, -7))}, nil
	case PresetThisMonth:
		return DateRange{Start: day(time.Date(y, m, 1, 0, 0, 0, 0, loc)), End: day(now)}, nil
	case PresetLastMonth:
		first := time.Date(y, m-1, 1, 0, 0, 0, 0, loc)
		last := time.Date(y, m, 0, 0, 0, 0, 0, loc)
		return DateRange{Start: day(first), End: day(last)}, nil
	case PresetThisQuarter:
		qm := time.Month((int(m)-1)/3*3 + 1)
		return DateRange{Start: day(time.Date(y, qm, 1, 0, 0, 0, 0, loc)), End: day(now)}, nil
	case PresetCustom:
		if start == "" || end == "" {
			return DateRange{}, nil
		}
		from, err := validate.ParseDay(start, loc)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid start date %q", start)
		}
		to, err := validate.ParseDay(end, loc)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid end date %q", end)
		}
		if from.After(to) {
			return DateRange{}, fmt.Errorf("start date %s is after end date %s", day(from), day(to))
		}
		return DateRange{Start: day(from), End: day(to)}, nil
	}
	return DateRange{}, fmt.Errorf("unknown date range %q", preset)
}
