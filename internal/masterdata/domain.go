package masterdata

// Product represents a catalog item and its running stock quantity.
type Product struct {
	ID              int64   `json:"id" validate:"gt=0"`
	Name            string  `json:"name" validate:"required,max=100,flat"`
	Category        string  `json:"category" validate:"max=50,flat"`
	Description     string  `json:"description" validate:"max=200,flat"`
	QuantityInStock int     `json:"quantity" validate:"gte=0"`
	ReorderLevel    int     `json:"reorder_level" validate:"gte=0"`
	UnitPrice       float64 `json:"price" validate:"finite,gte=0"`
	SupplierID      int64   `json:"supplier_id" validate:"gt=0"`
}

// IsLowStock reports whether quantity is at or below the reorder level.
func (p Product) IsLowStock() bool {
	return p.QuantityInStock <= p.ReorderLevel
}

// StockValue is quantity times unit price.
func (p Product) StockValue() float64 {
	return float64(p.QuantityInStock) * p.UnitPrice
}

// Supplier represents a supplier entity.
type Supplier struct {
	ID            int64  `json:"supplier_id" validate:"gt=0"`
	Name          string `json:"name" validate:"required,max=100,flat"`
	ContactNumber string `json:"contact_number" validate:"omitempty,max=20,flat,contact_phone"`
	Email         string `json:"email" validate:"omitempty,max=100,flat,contact_email"`
	Address       string `json:"address" validate:"max=200,flat"`
}
