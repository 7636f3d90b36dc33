package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vbonduro/officepantry/internal/domain"
	"github.com/vbonduro/officepantry/internal/seed"
)

func TestReportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, FormatCSV, seed.ReportRecords()[:2]))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Time,Item,Category,Quantity,User,Notes", lines[0])
	assert.Equal(t, "2024-01-15,09:30,Tea Bags,beverages,3,John Doe,Morning tea break", lines[1])

	var back []*ReportRow
	require.NoError(t, gocsv.Unmarshal(strings.NewReader(buf.String()), &back))
	require.Len(t, back, 2)
	assert.Equal(t, "Coffee Beans", back[1].Item)
	assert.Equal(t, 2, back[1].Quantity)
}

func TestReportXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, FormatXLSX, seed.ReportRecords()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Consumption"}, f.GetSheetList())
	rows, err := f.GetRows("Consumption")
	require.NoError(t, err)
	require.Len(t, rows, 11)
	assert.Equal(t, "Item", rows[0][2])
	assert.Equal(t, "Cookies", rows[10][2])
	assert.Equal(t, "6", rows[10][4])
}

func TestPriceUpdateRows(t *testing.T) {
	ts := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	rows := PriceUpdateRows([]*domain.PriceUpdate{
		{Type: domain.UpdateBulk, ProductName: "Tea Bags", OldPrice: decimal.RequireFromString("2.5"), NewPrice: decimal.RequireFromString("2.75"), Method: "percentage", Value: decimal.NewFromInt(10), Timestamp: ts},
		{Type: domain.UpdateSingle, ProductName: "Milk", OldPrice: decimal.NewFromInt(2), NewPrice: decimal.RequireFromString("1.5"), Reason: "promotion", Timestamp: ts},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-15T09:00:00Z", rows[0].Timestamp)
	assert.Equal(t, "2.50", rows[0].OldPrice)
	assert.Equal(t, "0.25", rows[0].Change)
	assert.Equal(t, "10", rows[0].Value)
	assert.Equal(t, "-0.50", rows[1].Change)
	assert.Empty(t, rows[1].Value)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))
	assert.True(t, strings.HasPrefix(buf.String(), "Timestamp,Type,Product,Old Price,New Price,Change,Reason,Method,Value,Notes\n"))
}

func TestBackupWorkbook(t *testing.T) {
	products := []*domain.Product{
		{ID: 1, Name: "Tea Bags", Category: domain.CategoryBeverages, CurrentPrice: decimal.RequireFromString("2.50"), CostPrice: decimal.RequireFromString("1.80"), Stock: 45, Status: domain.StatusActive},
	}

	var buf bytes.Buffer
	require.NoError(t, Backup(&buf, products, seed.ReportRecords(), nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Products", "Consumption", "Price Updates"}, f.GetSheetList())

	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "Tea Bags", "beverages", "2.50", "1.80", "28.0", "45", "active"}, rows[1])

	rows, err = f.GetRows("Price Updates")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestWriteWorkbookNeedsSheet(t *testing.T) {
	assert.Error(t, WriteWorkbook(&bytes.Buffer{}))
}
