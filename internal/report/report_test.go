package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/stockroom/internal/inventory"
	"github.com/odyssey-erp/stockroom/internal/masterdata"
)

func catalog() []masterdata.Product {
	return []masterdata.Product{
		{ID: 1, Name: "A", QuantityInStock: 5, ReorderLevel: 5, UnitPrice: 10},
		{ID: 2, Name: "B", QuantityInStock: 20, ReorderLevel: 2, UnitPrice: 1},
		{ID: 3, Name: "C", QuantityInStock: 3, ReorderLevel: 1, UnitPrice: 100},
		{ID: 4, Name: "D", QuantityInStock: 20, ReorderLevel: 25, UnitPrice: 0.5},
	}
}

func ids(products []masterdata.Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestTopByQuantityKeepsStoreOrderOnTies(t *testing.T) {
	products := catalog()
	require.Equal(t, []int64{2, 4}, ids(TopByQuantity(products, 2)))
	require.Equal(t, []int64{2, 4, 1, 3}, ids(TopByQuantity(products, 10)))
	require.Empty(t, TopByQuantity(products, 0))
	require.Equal(t, []int64{1, 2, 3, 4}, ids(products))
}

func TestTopByValue(t *testing.T) {
	require.Equal(t, []int64{3, 1}, ids(TopByValue(catalog(), 2)))
	require.Empty(t, TopByValue(nil, 3))
}

func TestLowStockBoundaryIsInclusive(t *testing.T) {
	require.Equal(t, []int64{1, 4}, ids(LowStock(catalog())))
}

func TestTotals(t *testing.T) {
	products := catalog()
	require.Equal(t, 4, TotalProducts(products))
	require.InDelta(t, 50+20+300+10, TotalStockValue(products), 1e-9)
	require.Zero(t, TotalStockValue(nil))
}

func TestTransactionsInRange(t *testing.T) {
	entries := []inventory.Transaction{
		{ID: 1, Timestamp: "2024-12-31 23:59:59"},
		{ID: 2, Timestamp: "2025-01-01 00:00:00"},
		{ID: 3, Timestamp: "2025-01-15 12:00:00"},
		{ID: 4, Timestamp: "2025-01-31 23:59:59"},
		{ID: 5, Timestamp: "2025-02-01 00:00:00"},
	}
	got := TransactionsInRange(entries, "2025-01-01", "2025-01-31")
	require.Len(t, got, 3)
	require.Equal(t, int64(2), got[0].ID)
	require.Equal(t, int64(4), got[2].ID)
	require.Equal(t, 3, CountInRange(entries, "2025-01-01", "2025-01-31"))
	require.Zero(t, CountInRange(entries, "2025-02-02", "2025-01-01"))
}

func TestSummarize(t *testing.T) {
	s := Summarize(catalog(), []masterdata.Supplier{{ID: 1, Name: "Acme"}}, []inventory.Transaction{{ID: 1}})
	require.Equal(t, Summary{
		Products:      4,
		Suppliers:     1,
		Transactions:  1,
		TotalValue:    380,
		TotalUnits:    48,
		LowStockCount: 2,
	}, s)
}
