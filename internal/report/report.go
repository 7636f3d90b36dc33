// Package report filters, sorts and pages consumption records and derives the
// summary cards and chart series shown beside the table. Everything here is
// pure: callers pass the full record set on every call.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/vbonduro/officepantry/internal/domain"
)

type SortKey string

const (
	SortDate     SortKey = "date"
	SortQuantity SortKey = "quantity"
	SortItem     SortKey = "item"
	SortUser     SortKey = "user"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

const DefaultPageSize = 25

// Any is the filter value meaning "no restriction".
const Any = "all"

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case "":
		return SortDate, nil
	case SortDate, SortQuantity, SortItem, SortUser:
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(s)); d {
	case "":
		return Desc, nil
	case Asc, Desc:
		return d, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

type Query struct {
	Range     DateRange
	Category  string
	User      string
	Search    string
	SortBy    SortKey
	Direction Direction
	Page      int
	PageSize  int
}

func matchesAny(filter string) bool {
	return filter == "" || filter == Any
}

// Filter keeps records that pass every predicate in q, in input order.
func Filter(records []domain.ReportRecord, q Query) []domain.ReportRecord {
	user := strings.ToLower(q.User)
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]domain.ReportRecord, 0, len(records))
	for _, r := range records {
		if !q.Range.Contains(r.Date) {
			continue
		}
		if !matchesAny(q.Category) && r.Category != q.Category {
			continue
		}
		if !matchesAny(q.User) && !strings.Contains(strings.ToLower(r.User), user) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Item), search) &&
			!strings.Contains(strings.ToLower(r.User), search) &&
			!strings.Contains(strings.ToLower(r.Notes), search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Sort orders records in place. Equal keys keep their input order.
func Sort(records []domain.ReportRecord, key SortKey, dir Direction) {
	less := func(a, b domain.ReportRecord) bool {
		switch key {
		case SortQuantity:
			return a.Quantity < b.Quantity
		case SortItem:
			return a.Item < b.Item
		case SortUser:
			return a.User < b.User
		default:
			return a.Date < b.Date
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		if dir == Asc {
			return less(records[i], records[j])
		}
		return less(records[j], records[i])
	})
}

// PageLink is one control in the pagination bar. Ellipsis links carry no page.
type PageLink struct {
	Page     int  `json:"page,omitempty"`
	Current  bool `json:"current,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

type Page struct {
	Records    []domain.ReportRecord `json:"records"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
	TotalPages int                   `json:"totalPages"`
	Total      int                   `json:"total"`
	From       int                   `json:"from"`
	To         int                   `json:"to"`
	Empty      bool                  `json:"empty"`
	Links      []PageLink            `json:"links"`
}

// Paginate slices records to page, clamping page to [1, TotalPages].
func Paginate(records []domain.ReportRecord, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(records)
	totalPages := int(math.Ceil(float64(total) / float64(size)))

	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	p := Page{
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
		Total:      total,
		Empty:      total == 0,
		Records:    []domain.ReportRecord{},
	}
	if total == 0 {
		return p
	}

	start := (page - 1) * size
	end := min(start+size, total)
	p.Records = records[start:end]
	p.From = start + 1
	p.To = end
	p.Links = Links(page, totalPages)
	return p
}

// Links builds the pagination bar: the current page with two neighbours on
// each side, plus the first and last page separated by ellipses when the
// window does not reach them. A single page needs no bar.
func Links(current, totalPages int) []PageLink {
	if totalPages <= 1 {
		return nil
	}
	start := max(1, current-2)
	end := min(totalPages, current+2)

	var links []PageLink
	if start > 1 {
		links = append(links, PageLink{Page: 1})
		if start > 2 {
			links = append(links, PageLink{Ellipsis: true})
		}
	}
	for i := start; i <= end; i++ {
		links = append(links, PageLink{Page: i, Current: i == current})
	}
	if end < totalPages {
		if end < totalPages-1 {
			links = append(links, PageLink{Ellipsis: true})
		}
		links = append(links, PageLink{Page: totalPages})
	}
	return links
}

type Result struct {
	Page
	Summary Summary `json:"summary"`
	Charts  Charts  `json:"charts"`
}

// Run filters, sorts and pages records. Summary and charts cover the whole
// filtered set, not just the visible page.
func Run(records []domain.ReportRecord, q Query) Result {
	filtered := Filter(records, q)

	key := q.SortBy
	if key == "" {
		key = SortDate
	}
	dir := q.Direction
	if dir == "" {
		dir = Desc
	}
	Sort(filtered, key, dir)

	return Result{
		Page:    Paginate(filtered, q.Page, q.PageSize),
		Summary: Summarize(filtered),
		Charts:  BuildCharts(filtered),
	}
}

// FromEntries flattens consumption entries into report records, taking each
// record's category from the item catalog.
func FromEntries(entries []*domain.ConsumptionEntry) []domain.ReportRecord {
	out := make([]domain.ReportRecord, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.ReportRecord{
			ID:       e.ID,
			Item:     e.Item,
			Quantity: e.Quantity,
			Date:     e.Date,
			Time:     e.Time,
			User:     e.ConsumedBy,
			Notes:    e.Notes,
			Category: domain.ItemCategory(e.Item),
		})
	}
	return out
}
