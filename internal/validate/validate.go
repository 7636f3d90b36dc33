// Package validate holds the field rules shared by the sign-in, consumption
// and pricing forms. Failures are collected per field so a form can show
// every problem at once.
package validate

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/vbonduro/officepantry/internal/domain"
)

const (
	MinQuantity    = 1
	MaxQuantity    = 999
	MinPasswordLen = 6
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Errors maps a form field name to its message.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records msg for field unless the field already has a message.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Err returns e as an error, or nil when nothing failed.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func IsEmail(s string) bool {
	return emailRe.MatchString(s)
}

// Login checks the sign-in form.
func Login(email, password string, role domain.Role) error {
	errs := Errors{}

	switch {
	case email == "":
		errs.Add("email", "Email is required.")
	case !IsEmail(email):
		errs.Add("email", "Please enter a valid email address.")
	}

	switch {
	case password == "":
		errs.Add("password", "Password is required.")
	case len(password) < MinPasswordLen:
		errs.Add("password", "Password must be at least 6 characters long.")
	}

	switch {
	case role == "":
		errs.Add("role", "Please select a role.")
	case !domain.ValidRole(role):
		errs.Add("role", "Unknown role.")
	}

	return errs.Err()
}

// ResetEmail checks the forgot-password form.
func ResetEmail(email string) error {
	errs := Errors{}
	switch {
	case email == "":
		errs.Add("email", "Please enter your email address.")
	case !IsEmail(email):
		errs.Add("email", "Please enter a valid email address.")
	}
	return errs.Err()
}

// Quantity parses raw and enforces the 1–999 range.
func Quantity(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, Errors{"quantity": "Quantity is required"}
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < MinQuantity {
		return 0, Errors{"quantity": "Quantity must be at least 1"}
	}
	if n > MaxQuantity {
		return 0, Errors{"quantity": "Quantity cannot exceed 999"}
	}
	return n, nil
}

// Date parses raw in now's location and rejects any day after now's day.
// The result is normalised to YYYY-MM-DD.
func Date(raw string, now time.Time) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", Errors{"consumptionDate": "Date is required"}
	}
	t, err := ParseDay(raw, now.Location())
	if err != nil {
		return "", Errors{"consumptionDate": "Please enter a valid date"}
	}
	day := t.Format(domain.DateLayout)
	if day > now.Format(domain.DateLayout) {
		return "", Errors{"consumptionDate": "Date cannot be in the future"}
	}
	return day, nil
}

// ParseDay accepts ISO dates as well as the looser layouts browsers and
// spreadsheets produce, truncated to the calendar day.
func ParseDay(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(domain.DateLayout, raw, loc); err == nil {
		return t, nil
	}
	t, err := dateparse.ParseIn(raw, loc)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
}

// Clock normalises an HH:MM time, falling back to now when raw is empty.
func Clock(raw string, now time.Time) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.Format(domain.TimeLayout), nil
	}
	for _, layout := range []string{domain.TimeLayout, "15:04:05", "3:04 PM", "3:04PM"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(domain.TimeLayout), nil
		}
	}
	return "", Errors{"time": "Please enter a valid time"}
}

// Item requires a catalog key.
func Item(key string) error {
	if strings.TrimSpace(key) == "" {
		return Errors{"itemSelect": "Please select an item"}
	}
	if _, ok := domain.LookupItem(key); !ok {
		return Errors{"itemSelect": "Unknown item"}
	}
	return nil
}

// Mode defaults an empty entry mode to daily.
func Mode(raw string) (domain.EntryMode, error) {
	switch domain.EntryMode(raw) {
	case "", domain.ModeDaily:
		return domain.ModeDaily, nil
	case domain.ModePerVisit:
		return domain.ModePerVisit, nil
	}
	return "", Errors{"mode": "Unknown entry mode"}
}

// ConsumptionInput is the raw consumption form.
type ConsumptionInput struct {
	Item       string `json:"item"`
	Quantity   string `json:"quantity"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	ConsumedBy string `json:"consumedBy"`
	Notes      string `json:"notes"`
	Mode       string `json:"mode"`
}

// Consumption validates in and returns the normalised entry fields. ID and
// Timestamp are left for the caller.
func Consumption(in ConsumptionInput, now time.Time) (*domain.ConsumptionEntry, error) {
	errs := Errors{}
	e := &domain.ConsumptionEntry{
		Item:       strings.TrimSpace(in.Item),
		ConsumedBy: strings.TrimSpace(in.ConsumedBy),
		Notes:      strings.TrimSpace(in.Notes),
	}

	merge := func(err error) {
		if fe, ok := err.(Errors); ok {
			for f, m := range fe {
				errs.Add(f, m)
			}
		}
	}

	merge(Item(e.Item))

	qty, err := Quantity(in.Quantity)
	merge(err)
	e.Quantity = qty

	day, err := Date(in.Date, now)
	merge(err)
	e.Date = day

	clock, err := Clock(in.Time, now)
	merge(err)
	e.Time = clock

	mode, err := Mode(in.Mode)
	merge(err)
	e.Mode = mode

	if e.ConsumedBy == "" {
		e.ConsumedBy = "Unknown"
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return e, nil
}
