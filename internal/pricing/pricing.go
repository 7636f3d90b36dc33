// Package pricing computes vendor price changes. It never touches storage:
// callers pass products in and persist whatever Apply or Preview returns.
package pricing

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vbonduro/officepantry/internal/domain"
)

var (
	ErrZeroValue       = errors.New("please enter a valid value")
	ErrUnknownMethod   = errors.New("unknown pricing method")
	ErrEmptySelection  = errors.New("please select at least one category")
	ErrUnknownCategory = errors.New("unknown product category")
	ErrUnknownReason   = errors.New("please select a reason for the price change")
)

type Method string

const (
	MethodPercentage Method = "percentage"
	MethodFixed      Method = "fixed"
	MethodSet        Method = "set"
)

func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case MethodPercentage, MethodFixed, MethodSet:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

var hundred = decimal.NewFromInt(100)

// Apply returns the new price for old under method and value, rounded to
// cents and never below zero.
func Apply(method Method, old, value decimal.Decimal) (decimal.Decimal, error) {
	var next decimal.Decimal
	switch method {
	case MethodPercentage:
		next = old.Mul(decimal.NewFromInt(1).Add(value.Div(hundred)))
	case MethodFixed:
		next = old.Add(value)
	case MethodSet:
		next = value
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	return Clamp(next), nil
}

// Clamp rounds p to cents, half away from zero, and floors it at zero.
func Clamp(p decimal.Decimal) decimal.Decimal {
	p = p.Round(2)
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}

// Change is one row of a price preview.
type Change struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Category    string          `json:"category"`
	OldPrice    decimal.Decimal `json:"oldPrice"`
	NewPrice    decimal.Decimal `json:"newPrice"`
	Diff        decimal.Decimal `json:"change"`
	Percent     decimal.Decimal `json:"changePercent"`
}

func Diff(p *domain.Product, next decimal.Decimal) Change {
	c := Change{
		ProductID:   p.ID,
		ProductName: p.Name,
		Category:    p.Category,
		OldPrice:    p.CurrentPrice,
		NewPrice:    next,
		Diff:        next.Sub(p.CurrentPrice),
		Percent:     decimal.Zero,
	}
	if !p.CurrentPrice.IsZero() {
		c.Percent = c.Diff.Div(p.CurrentPrice).Mul(hundred).Round(1)
	}
	return c
}

// Categories lists the bulk-update checkboxes in display order.
var Categories = []string{domain.CategoryBeverages, domain.CategorySnacks, domain.CategoryOther}

// Selection names the products a bulk update targets. All wins over
// Categories when both are set.
type Selection struct {
	All        bool     `json:"all"`
	Categories []string `json:"categories"`
}

// Select returns the active products chosen by sel. With All set the catalogue
// order is kept; otherwise products are grouped by category in checkbox order.
func Select(products []*domain.Product, sel Selection) []*domain.Product {
	var out []*domain.Product
	if sel.All {
		for _, p := range products {
			if p.Status == domain.StatusActive {
				out = append(out, p)
			}
		}
		return out
	}

	wanted := make(map[string]bool, len(sel.Categories))
	for _, c := range sel.Categories {
		wanted[c] = true
	}
	for _, cat := range Categories {
		if !wanted[cat] {
			continue
		}
		for _, p := range products {
			if p.Category == cat && p.Status == domain.StatusActive {
				out = append(out, p)
			}
		}
	}
	return out
}

// Bulk describes one bulk price update.
type Bulk struct {
	Selection Selection       `json:"selection"`
	Method    Method          `json:"method"`
	Value     decimal.Decimal `json:"value"`
}

func (b Bulk) validate() error {
	if b.Value.IsZero() {
		return ErrZeroValue
	}
	if _, err := ParseMethod(string(b.Method)); err != nil {
		return err
	}
	if b.Selection.All {
		return nil
	}
	if len(b.Selection.Categories) == 0 {
		return ErrEmptySelection
	}
	for _, c := range b.Selection.Categories {
		if !slices.Contains(Categories, c) {
			return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
		}
	}
	return nil
}

// Preview computes the change for every product the bulk update selects.
// A selection with no active products is ErrEmptySelection.
func Preview(products []*domain.Product, b Bulk) ([]Change, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	selected := Select(products, b.Selection)
	if len(selected) == 0 {
		return nil, ErrEmptySelection
	}
	changes := make([]Change, 0, len(selected))
	for _, p := range selected {
		next, err := Apply(b.Method, p.CurrentPrice, b.Value)
		if err != nil {
			return nil, err
		}
		changes = append(changes, Diff(p, next))
	}
	return changes, nil
}

// Reasons accepted for a single price change, in display order.
var Reasons = []string{"cost-increase", "market-adjustment", "promotion", "competitor-analysis", "other"}

func ValidReason(r string) bool {
	for _, known := range Reasons {
		if r == known {
			return true
		}
	}
	return false
}

// Single describes a one-product price change.
type Single struct {
	NewPrice decimal.Decimal `json:"newPrice"`
	Reason   string          `json:"reason"`
	Notes    string          `json:"notes"`
}

// PreviewSingle returns the diff a single update would produce.
func PreviewSingle(p *domain.Product, s Single) (Change, error) {
	if !ValidReason(s.Reason) {
		return Change{}, ErrUnknownReason
	}
	return Diff(p, Clamp(s.NewPrice)), nil
}

// ProductFilter narrows the vendor product table. Empty or "all" fields match
// everything.
type ProductFilter struct {
	Category string
	Status   string
	Search   string
}

func (f ProductFilter) Match(p *domain.Product) bool {
	if f.Category != "" && f.Category != "all" && p.Category != f.Category {
		return false
	}
	if f.Status != "" && f.Status != "all" && string(p.Status) != f.Status {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Category), q) {
			return false
		}
	}
	return true
}

func FilterProducts(products []*domain.Product, f ProductFilter) []*domain.Product {
	out := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
