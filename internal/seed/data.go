// Package seed loads the demo dataset: sign-in accounts, the product
// catalogue with prices, a few recent consumption entries, a January 2024
// report history and a short price update log.
package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vbonduro/officepantry/internal/domain"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "password123"

type User struct {
	Name  string
	Email string
	Role  domain.Role
}

func Users() []User {
	return []User{
		{Name: "Admin User", Email: "admin@officepantry.local", Role: domain.RoleAdmin},
		{Name: "Maya Manager", Email: "manager@officepantry.local", Role: domain.RoleManager},
		{Name: "John Doe", Email: "john@officepantry.local", Role: domain.RoleEmployee},
		{Name: "Guest User", Email: "guest@officepantry.local", Role: domain.RoleGuest},
		{Name: "Victor Vendor", Email: "vendor@officepantry.local", Role: domain.RoleVendor},
	}
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Products returns the vendor catalogue in id order.
func Products() []domain.Product {
	return []domain.Product{
		{Name: "Tea Bags", Category: domain.CategoryBeverages, CurrentPrice: price("2.50"), CostPrice: price("1.80"), Stock: 45, Status: domain.StatusActive, Icon: "fa-coffee"},
		{Name: "Coffee Beans", Category: domain.CategoryBeverages, CurrentPrice: price("4.25"), CostPrice: price("3.20"), Stock: 23, Status: domain.StatusActive, Icon: "fa-coffee"},
		{Name: "Biscuits", Category: domain.CategorySnacks, CurrentPrice: price("3.75"), CostPrice: price("2.50"), Stock: 67, Status: domain.StatusActive, Icon: "fa-cookie-bite"},
		{Name: "Cookies", Category: domain.CategorySnacks, CurrentPrice: price("4.50"), CostPrice: price("3.00"), Stock: 12, Status: domain.StatusLowStock, Icon: "fa-cookie-bite"},
		{Name: "Sugar", Category: domain.CategoryOther, CurrentPrice: price("1.25"), CostPrice: price("0.80"), Stock: 89, Status: domain.StatusActive, Icon: "fa-cube"},
		{Name: "Milk", Category: domain.CategoryOther, CurrentPrice: price("2.00"), CostPrice: price("1.40"), Stock: 5, Status: domain.StatusLowStock, Icon: "fa-tint"},
		{Name: "Instant Coffee", Category: domain.CategoryBeverages, CurrentPrice: price("3.00"), CostPrice: price("2.20"), Stock: 34, Status: domain.StatusActive, Icon: "fa-coffee"},
		{Name: "Chips", Category: domain.CategorySnacks, CurrentPrice: price("2.75"), CostPrice: price("1.90"), Stock: 0, Status: domain.StatusInactive, Icon: "fa-cookie-bite"},
	}
}

// RecentEntries returns two entries for today and one for yesterday, with
// timestamps a few hours before now.
func RecentEntries(now time.Time) []domain.ConsumptionEntry {
	today := now.Format(domain.DateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(domain.DateLayout)
	return []domain.ConsumptionEntry{
		{Item: "tea-bags", Quantity: 3, Date: today, Time: "09:30", ConsumedBy: "John Doe", Notes: "Morning tea break", Mode: domain.ModeDaily, Timestamp: now.Add(-2 * time.Hour)},
		{Item: "coffee-beans", Quantity: 2, Date: today, Time: "10:15", ConsumedBy: "Jane Smith", Mode: domain.ModeDaily, Timestamp: now.Add(-1 * time.Hour)},
		{Item: "biscuits", Quantity: 5, Date: yesterday, Time: "14:20", ConsumedBy: "Mike Johnson", Notes: "Afternoon snack", Mode: domain.ModeDaily, Timestamp: now.Add(-25 * time.Hour)},
	}
}

// ReportRecords is the January 2024 history used by the reports page.
func ReportRecords() []domain.ReportRecord {
	return []domain.ReportRecord{
		{ID: "1", Item: "tea-bags", Quantity: 3, Date: "2024-01-15", Time: "09:30", User: "John Doe", Notes: "Morning tea break", Category: domain.CategoryBeverages},
		{ID: "2", Item: "coffee-beans", Quantity: 2, Date: "2024-01-15", Time: "10:15", User: "Jane Smith", Category: domain.CategoryBeverages},
		{ID: "3", Item: "biscuits", Quantity: 5, Date: "2024-01-15", Time: "14:20", User: "Mike Johnson", Notes: "Afternoon snack", Category: domain.CategorySnacks},
		{ID: "4", Item: "cookies", Quantity: 4, Date: "2024-01-14", Time: "15:45", User: "Sarah Wilson", Notes: "Team meeting", Category: domain.CategorySnacks},
		{ID: "5", Item: "tea-bags", Quantity: 2, Date: "2024-01-14", Time: "11:00", User: "John Doe", Category: domain.CategoryBeverages},
		{ID: "6", Item: "coffee-beans", Quantity: 3, Date: "2024-01-14", Time: "08:30", User: "Jane Smith", Notes: "Early morning coffee", Category: domain.CategoryBeverages},
		{ID: "7", Item: "sugar", Quantity: 1, Date: "2024-01-13", Time: "16:20", User: "Guest User", Notes: "Added to coffee", Category: domain.CategoryOther},
		{ID: "8", Item: "biscuits", Quantity: 3, Date: "2024-01-13", Time: "13:15", User: "Mike Johnson", Notes: "Lunch break", Category: domain.CategorySnacks},
		{ID: "9", Item: "tea-bags", Quantity: 4, Date: "2024-01-12", Time: "10:30", User: "Sarah Wilson", Notes: "Client meeting", Category: domain.CategoryBeverages},
		{ID: "10", Item: "cookies", Quantity: 6, Date: "2024-01-12", Time: "15:00", User: "John Doe", Notes: "Birthday celebration", Category: domain.CategorySnacks},
	}
}

// PriceUpdates returns the sample log oldest first. ProductID is the
// 1-based position of the product in Products.
func PriceUpdates(now time.Time) []domain.PriceUpdate {
	return []domain.PriceUpdate{
		{Type: domain.UpdateBulk, ProductID: 2, ProductName: "Coffee Beans", OldPrice: price("4.00"), NewPrice: price("4.25"), Reason: "bulk-update", Method: "percentage", Value: price("6.25"), Timestamp: now.Add(-6 * time.Hour)},
		{Type: domain.UpdateSingle, ProductID: 3, ProductName: "Biscuits", OldPrice: price("3.50"), NewPrice: price("3.75"), Reason: "market-adjustment", Notes: "Market price adjustment", Timestamp: now.Add(-4 * time.Hour)},
		{Type: domain.UpdateSingle, ProductID: 1, ProductName: "Tea Bags", OldPrice: price("2.25"), NewPrice: price("2.50"), Reason: "cost-increase", Notes: "Supplier cost increased by 8%", Timestamp: now.Add(-2 * time.Hour)},
	}
}
