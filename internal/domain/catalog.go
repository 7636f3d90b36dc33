package domain

const (
	CategoryBeverages = "beverages"
	CategorySnacks    = "snacks"
	CategoryOther     = "other"
)

// CatalogItem describes a consumable the pantry tracks.
type CatalogItem struct {
	Key      string
	Name     string
	Icon     string
	Category string
}

var catalog = []CatalogItem{
	{Key: "tea-bags", Name: "Tea Bags", Icon: "fa-coffee", Category: CategoryBeverages},
	{Key: "coffee-beans", Name: "Coffee Beans", Icon: "fa-coffee", Category: CategoryBeverages},
	{Key: "instant-coffee", Name: "Instant Coffee", Icon: "fa-coffee", Category: CategoryBeverages},
	{Key: "hot-chocolate", Name: "Hot Chocolate", Icon: "fa-coffee", Category: CategoryBeverages},
	{Key: "biscuits", Name: "Biscuits", Icon: "fa-cookie-bite", Category: CategorySnacks},
	{Key: "cookies", Name: "Cookies", Icon: "fa-cookie-bite", Category: CategorySnacks},
	{Key: "chips", Name: "Chips", Icon: "fa-cookie-bite", Category: CategorySnacks},
	{Key: "nuts", Name: "Nuts", Icon: "fa-cookie-bite", Category: CategorySnacks},
	{Key: "sugar", Name: "Sugar", Icon: "fa-cube", Category: CategoryOther},
	{Key: "milk", Name: "Milk", Icon: "fa-tint", Category: CategoryOther},
	{Key: "cream", Name: "Cream", Icon: "fa-tint", Category: CategoryOther},
	{Key: "sweetener", Name: "Sweetener", Icon: "fa-cube", Category: CategoryOther},
}

var catalogByKey = func() map[string]CatalogItem {
	m := make(map[string]CatalogItem, len(catalog))
	for _, c := range catalog {
		m[c.Key] = c
	}
	return m
}()

// Catalog returns a copy of the known items in display order.
func Catalog() []CatalogItem {
	out := make([]CatalogItem, len(catalog))
	copy(out, catalog)
	return out
}

func LookupItem(key string) (CatalogItem, bool) {
	c, ok := catalogByKey[key]
	return c, ok
}

// ItemName returns the display name for key, or key itself when unknown.
func ItemName(key string) string {
	if c, ok := catalogByKey[key]; ok {
		return c.Name
	}
	return key
}

// ItemIcon returns the icon class for key with a generic fallback.
func ItemIcon(key string) string {
	if c, ok := catalogByKey[key]; ok {
		return c.Icon
	}
	return "fa-box"
}

// ItemCategory returns the catalog category for key, or CategoryOther.
func ItemCategory(key string) string {
	if c, ok := catalogByKey[key]; ok {
		return c.Category
	}
	return CategoryOther
}
