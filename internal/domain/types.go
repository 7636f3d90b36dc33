package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-day format used for entry and report dates.
const DateLayout = "2006-01-02"

// TimeLayout is the wall-clock format used for entry times.
const TimeLayout = "15:04"

type EntryMode string

const (
	ModeDaily    EntryMode = "daily"
	ModePerVisit EntryMode = "per-visit"
)

type ConsumptionEntry struct {
	ID         string    `json:"id"`
	Item       string    `json:"item"`
	Quantity   int       `json:"quantity"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	ConsumedBy string    `json:"consumedBy"`
	Notes      string    `json:"notes"`
	Mode       EntryMode `json:"mode"`
	Timestamp  time.Time `json:"timestamp"`
}

// ReportRecord is the flattened row the reports page filters and sorts.
type ReportRecord struct {
	ID       string `json:"id"`
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	User     string `json:"user"`
	Notes    string `json:"notes"`
	Category string `json:"category"`
}

type ProductStatus string

const (
	StatusActive   ProductStatus = "active"
	StatusLowStock ProductStatus = "low-stock"
	StatusInactive ProductStatus = "inactive"
)

type Product struct {
	ID           int64
	Name         string
	Category     string
	CurrentPrice decimal.Decimal
	CostPrice    decimal.Decimal
	Stock        int
	Status       ProductStatus
	Icon         string
	UpdatedAt    time.Time
}

// Margin returns the gross margin as a percentage of the current price,
// rounded to one decimal place. A zero price yields a zero margin.
func (p *Product) Margin() decimal.Decimal {
	if p.CurrentPrice.IsZero() {
		return decimal.Zero
	}
	return p.CurrentPrice.Sub(p.CostPrice).
		Div(p.CurrentPrice).
		Mul(decimal.NewFromInt(100)).
		Round(1)
}

type PriceUpdateType string

const (
	UpdateSingle PriceUpdateType = "single"
	UpdateBulk   PriceUpdateType = "bulk"
)

type PriceUpdate struct {
	ID          int64
	Type        PriceUpdateType
	ProductID   int64
	ProductName string
	OldPrice    decimal.Decimal
	NewPrice    decimal.Decimal
	Reason      string
	Method      string
	Value       decimal.Decimal
	Notes       string
	Timestamp   time.Time
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
	RoleGuest    Role = "guest"
	RoleVendor   Role = "vendor"
)

// ValidRole reports whether r is one of the roles offered at sign-in.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee, RoleGuest, RoleVendor:
		return true
	}
	return false
}

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
