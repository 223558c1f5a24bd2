package domain

import "github.com/shopspring/decimal"

// TotalValue prices every line item against the catalog. Unselected or
// unknown products contribute nothing.
func TotalValue(items []LineItem, catalog Catalog) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			continue
		}
		price := catalog.UnitPrice(item.ProductID)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Progress is the share of filled slots, in [0,100]. Every line item has two
// slots: a selected product and a positive quantity. An empty collection has
// no slots and reports 0.
func Progress(items []LineItem) float64 {
	return progress(items, 2*len(items), 0)
}

// ProgressWithTotal is Progress with the order's total value counted as one
// extra slot, filled when the total is positive.
func ProgressWithTotal(items []LineItem, total decimal.Decimal) float64 {
	filled := 0
	if total.IsPositive() {
		filled = 1
	}
	return progress(items, 2*len(items)+1, filled)
}

func progress(items []LineItem, slots, filled int) float64 {
	if slots == 0 {
		return 0
	}
	for _, item := range items {
		if item.ProductID > 0 {
			filled++
		}
		if item.Quantity > 0 {
			filled++
		}
	}
	return float64(filled) / float64(slots) * 100
}
