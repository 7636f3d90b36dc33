// Package export renders report rows, the price update history and full
// backups as CSV or XLSX.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/vbonduro/officepantry/internal/domain"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// ReportRow is one consumption record as exported.
type ReportRow struct {
	Date     string `csv:"Date"`
	Time     string `csv:"Time"`
	Item     string `csv:"Item"`
	Category string `csv:"Category"`
	Quantity int    `csv:"Quantity"`
	User     string `csv:"User"`
	Notes    string `csv:"Notes"`
}

func ReportRows(records []domain.ReportRecord) []*ReportRow {
	rows := make([]*ReportRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, &ReportRow{
			Date:     r.Date,
			Time:     r.Time,
			Item:     domain.ItemName(r.Item),
			Category: r.Category,
			Quantity: r.Quantity,
			User:     r.User,
			Notes:    r.Notes,
		})
	}
	return rows
}

// PriceUpdateRow is one price history entry as exported. Money is written
// with two decimals.
type PriceUpdateRow struct {
	Timestamp string `csv:"Timestamp"`
	Type      string `csv:"Type"`
	Product   string `csv:"Product"`
	OldPrice  string `csv:"Old Price"`
	NewPrice  string `csv:"New Price"`
	Change    string `csv:"Change"`
	Reason    string `csv:"Reason"`
	Method    string `csv:"Method"`
	Value     string `csv:"Value"`
	Notes     string `csv:"Notes"`
}

func PriceUpdateRows(updates []*domain.PriceUpdate) []*PriceUpdateRow {
	rows := make([]*PriceUpdateRow, 0, len(updates))
	for _, u := range updates {
		value := ""
		if u.Type == domain.UpdateBulk {
			value = u.Value.String()
		}
		rows = append(rows, &PriceUpdateRow{
			Timestamp: u.Timestamp.UTC().Format(time.RFC3339),
			Type:      string(u.Type),
			Product:   u.ProductName,
			OldPrice:  u.OldPrice.StringFixed(2),
			NewPrice:  u.NewPrice.StringFixed(2),
			Change:    u.NewPrice.Sub(u.OldPrice).StringFixed(2),
			Reason:    u.Reason,
			Method:    u.Method,
			Value:     value,
			Notes:     u.Notes,
		})
	}
	return rows
}

// ProductRow is one product as exported in a backup.
type ProductRow struct {
	ID           int64  `csv:"ID"`
	Name         string `csv:"Name"`
	Category     string `csv:"Category"`
	CurrentPrice string `csv:"Current Price"`
	CostPrice    string `csv:"Cost Price"`
	Margin       string `csv:"Margin %"`
	Stock        int    `csv:"Stock"`
	Status       string `csv:"Status"`
}

func ProductRows(products []*domain.Product) []*ProductRow {
	rows := make([]*ProductRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, &ProductRow{
			ID:           p.ID,
			Name:         p.Name,
			Category:     p.Category,
			CurrentPrice: p.CurrentPrice.StringFixed(2),
			CostPrice:    p.CostPrice.StringFixed(2),
			Margin:       p.Margin().StringFixed(1),
			Stock:        p.Stock,
			Status:       string(p.Status),
		})
	}
	return rows
}

// WriteCSV writes rows, a slice of tagged struct pointers, with a header line.
func WriteCSV(w io.Writer, rows any) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// Sheet is one worksheet of an exported workbook.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// WriteWorkbook writes sheets in order to w as an XLSX file.
func WriteWorkbook(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sh.Name); err != nil {
				return fmt.Errorf("failed to name sheet %s: %w", sh.Name, err)
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", sh.Name, err)
		}

		if err := setRow(f, sh.Name, 1, toAny(sh.Header)); err != nil {
			return err
		}
		for r, row := range sh.Rows {
			if err := setRow(f, sh.Name, r+2, row); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func ReportSheet(records []domain.ReportRecord) Sheet {
	sh := Sheet{Name: "Consumption", Header: []string{"Date", "Time", "Item", "Category", "Quantity", "User", "Notes"}}
	for _, r := range ReportRows(records) {
		sh.Rows = append(sh.Rows, []any{r.Date, r.Time, r.Item, r.Category, r.Quantity, r.User, r.Notes})
	}
	return sh
}

func PriceUpdateSheet(updates []*domain.PriceUpdate) Sheet {
	sh := Sheet{Name: "Price Updates", Header: []string{"Timestamp", "Type", "Product", "Old Price", "New Price", "Change", "Reason", "Method", "Value", "Notes"}}
	for _, r := range PriceUpdateRows(updates) {
		sh.Rows = append(sh.Rows, []any{r.Timestamp, r.Type, r.Product, r.OldPrice, r.NewPrice, r.Change, r.Reason, r.Method, r.Value, r.Notes})
	}
	return sh
}

func ProductSheet(products []*domain.Product) Sheet {
	sh := Sheet{Name: "Products", Header: []string{"ID", "Name", "Category", "Current Price", "Cost Price", "Margin %", "Stock", "Status"}}
	for _, r := range ProductRows(products) {
		sh.Rows = append(sh.Rows, []any{r.ID, r.Name, r.Category, r.CurrentPrice, r.CostPrice, r.Margin, r.Stock, r.Status})
	}
	return sh
}

// Report writes the report rows in the requested format.
func Report(w io.Writer, format Format, records []domain.ReportRecord) error {
	if format == FormatXLSX {
		return WriteWorkbook(w, ReportSheet(records))
	}
	return WriteCSV(w, ReportRows(records))
}

// Backup writes a workbook with one sheet per dataset.
func Backup(w io.Writer, products []*domain.Product, records []domain.ReportRecord, updates []*domain.PriceUpdate) error {
	return WriteWorkbook(w, ProductSheet(products), ReportSheet(records), PriceUpdateSheet(updates))
}
