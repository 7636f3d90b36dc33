package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/officepantry/internal/domain"
)

func fieldErrors(t *testing.T, err error) Errors {
	t.Helper()
	require.Error(t, err)
	fe, ok := err.(Errors)
	require.True(t, ok, "expected validate.Errors, got %T", err)
	return fe
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr string
	}{
		{raw: "1", want: 1},
		{raw: "999", want: 999},
		{raw: " 42 ", want: 42},
		{raw: "0", wantErr: "Quantity must be at least 1"},
		{raw: "-3", wantErr: "Quantity must be at least 1"},
		{raw: "1000", wantErr: "Quantity cannot exceed 999"},
		{raw: "abc", wantErr: "Quantity must be at least 1"},
		{raw: "2.5", wantErr: "Quantity must be at least 1"},
		{raw: "", wantErr: "Quantity is required"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Quantity(tt.raw)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, fieldErrors(t, err)["quantity"])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDate(t *testing.T) {
	now := time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC)

	day, err := Date("2024-01-15", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", day)

	day, err = Date("2024-01-01", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", day)

	day, err = Date("Jan 10, 2024", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", day)

	_, err = Date("2024-01-16", now)
	assert.Equal(t, "Date cannot be in the future", fieldErrors(t, err)["consumptionDate"])

	_, err = Date("", now)
	assert.Equal(t, "Date is required", fieldErrors(t, err)["consumptionDate"])

	_, err = Date("not a date", now)
	assert.Contains(t, fieldErrors(t, err), "consumptionDate")
}

func TestLogin(t *testing.T) {
	assert.NoError(t, Login("john@example.com", "secret1", domain.RoleAdmin))

	fe := fieldErrors(t, Login("", "", ""))
	assert.Equal(t, "Email is required.", fe["email"])
	assert.Equal(t, "Password is required.", fe["password"])
	assert.Equal(t, "Please select a role.", fe["role"])

	fe = fieldErrors(t, Login("john@example", "12345", domain.RoleGuest))
	assert.Equal(t, "Please enter a valid email address.", fe["email"])
	assert.Equal(t, "Password must be at least 6 characters long.", fe["password"])
	assert.NotContains(t, fe, "role")

	fe = fieldErrors(t, Login("john@example.com", "secret1", "janitor"))
	assert.Equal(t, "Unknown role.", fe["role"])
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("a@b.co"))
	assert.False(t, IsEmail("a b@c.io"))
	assert.False(t, IsEmail("a@@b.io"))
	assert.False(t, IsEmail("plain"))
}

func TestResetEmail(t *testing.T) {
	assert.NoError(t, ResetEmail("jane@example.com"))
	assert.Equal(t, "Please enter your email address.", fieldErrors(t, ResetEmail(""))["email"])
	assert.Equal(t, "Please enter a valid email address.", fieldErrors(t, ResetEmail("jane"))["email"])
}

func TestClock(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 7, 0, 0, time.UTC)

	got, err := Clock("", now)
	require.NoError(t, err)
	assert.Equal(t, "14:07", got)

	got, err = Clock("9:05", now)
	require.NoError(t, err)
	assert.Equal(t, "09:05", got)

	got, err = Clock("3:30 PM", now)
	require.NoError(t, err)
	assert.Equal(t, "15:30", got)

	_, err = Clock("25:99", now)
	assert.Error(t, err)
}

func TestConsumption(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	e, err := Consumption(ConsumptionInput{Item: "tea-bags", Quantity: "3", Date: "2024-01-15"}, now)
	require.NoError(t, err)
	assert.Equal(t, "tea-bags", e.Item)
	assert.Equal(t, 3, e.Quantity)
	assert.Equal(t, "10:00", e.Time)
	assert.Equal(t, "Unknown", e.ConsumedBy)
	assert.Equal(t, domain.ModeDaily, e.Mode)

	_, err = Consumption(ConsumptionInput{Quantity: "1000", Date: "2030-01-01", Mode: "weekly"}, now)
	fe := fieldErrors(t, err)
	assert.Equal(t, "Please select an item", fe["itemSelect"])
	assert.Equal(t, "Quantity cannot exceed 999", fe["quantity"])
	assert.Equal(t, "Date cannot be in the future", fe["consumptionDate"])
	assert.Equal(t, "Unknown entry mode", fe["mode"])
}

func TestErrorsMessageIsSorted(t *testing.T) {
	err := Errors{"b": "second", "a": "first"}
	assert.Equal(t, "validation failed: a: first; b: second", err.Error())
	assert.Nil(t, Errors{}.Err())
}
