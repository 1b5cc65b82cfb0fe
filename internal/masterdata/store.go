package masterdata

import "github.com/odyssey-erp/stockroom/internal/store"

// ProductStore holds products keyed by id.
type ProductStore = store.Store[int64, Product]

// SupplierStore holds suppliers keyed by id.
type SupplierStore = store.Store[int64, Supplier]

// NewProductStore builds a product store bounded by capacity (0 = unbounded).
func NewProductStore(capacity int) *ProductStore {
	return store.New(store.Options[int64, Product]{
		Name:     "product",
		Capacity: capacity,
		Key:      func(p Product) int64 { return p.ID },
		WithKey: func(p Product, id int64) Product {
			p.ID = id
			return p
		},
		Validate: ValidateProduct,
	})
}

// NewSupplierStore builds a supplier store bounded by capacity (0 = unbounded).
func NewSupplierStore(capacity int) *SupplierStore {
	return store.New(store.Options[int64, Supplier]{
		Name:     "supplier",
		Capacity: capacity,
		Key:      func(s Supplier) int64 { return s.ID },
		WithKey: func(s Supplier, id int64) Supplier {
			s.ID = id
			return s
		},
		Validate: ValidateSupplier,
	})
}
