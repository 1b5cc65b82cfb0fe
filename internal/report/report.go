// Package report holds read-only aggregations over store snapshots.
package report

import (
	"sort"

	"github.com/odyssey-erp/stockroom/internal/inventory"
	"github.com/odyssey-erp/stockroom/internal/masterdata"
)

// TotalProducts returns the product count.
func TotalProducts(products []masterdata.Product) int {
	return len(products)
}

// TotalStockValue sums quantity times unit price.
func TotalStockValue(products []masterdata.Product) float64 {
	var total float64
	for _, p := range products {
		total += p.StockValue()
	}
	return total
}

// TopByQuantity returns the n products with the highest quantity. Ties keep
// store order. n <= 0 yields an empty slice.
func TopByQuantity(products []masterdata.Product, n int) []masterdata.Product {
	return top(products, n, func(a, b masterdata.Product) bool {
		return a.QuantityInStock > b.QuantityInStock
	})
}

// TopByValue returns the n products with the highest stock value. Ties keep
// store order. n <= 0 yields an empty slice.
func TopByValue(products []masterdata.Product, n int) []masterdata.Product {
	return top(products, n, func(a, b masterdata.Product) bool {
		return a.StockValue() > b.StockValue()
	})
}

func top(products []masterdata.Product, n int, greater func(a, b masterdata.Product) bool) []masterdata.Product {
	if n <= 0 {
		return []masterdata.Product{}
	}
	sorted := make([]masterdata.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool { return greater(sorted[i], sorted[j]) })
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// LowStock returns products at or below their reorder level, in store order.
func LowStock(products []masterdata.Product) []masterdata.Product {
	out := []masterdata.Product{}
	for _, p := range products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out
}

// TransactionsInRange returns entries whose date falls in [start, end].
// Dates are YYYY-MM-DD strings compared lexicographically.
func TransactionsInRange(entries []inventory.Transaction, start, end string) []inventory.Transaction {
	out := []inventory.Transaction{}
	for _, t := range entries {
		if d := t.Date(); d >= start && d <= end {
			out = append(out, t)
		}
	}
	return out
}

// CountInRange counts entries whose date falls in [start, end].
func CountInRange(entries []inventory.Transaction, start, end string) int {
	return len(TransactionsInRange(entries, start, end))
}

// Summary aggregates the headline inventory figures.
type Summary struct {
	Products      int
	Suppliers     int
	Transactions  int
	TotalValue    float64
	TotalUnits    int
	LowStockCount int
}

// Summarize builds a Summary from snapshots.
func Summarize(products []masterdata.Product, suppliers []masterdata.Supplier, entries []inventory.Transaction) Summary {
	s := Summary{
		Products:      TotalProducts(products),
		Suppliers:     len(suppliers),
		Transactions:  len(entries),
		TotalValue:    TotalStockValue(products),
		LowStockCount: len(LowStock(products)),
	}
	for _, p := range products {
		s.TotalUnits += p.QuantityInStock
	}
	return s
}
