package masterdata

import (
	"fmt"

	"github.com/odyssey-erp/stockroom/internal/shared"
)

// SupplierLookup is the slice of the supplier store the integrity checks need.
type SupplierLookup interface {
	Exists(id int64) bool
}

// ProductScanner is the slice of the product store the integrity checks need.
type ProductScanner interface {
	FindBy(match func(Product) bool, limit int) []Product
}

// EnsureSupplierExists rejects a product whose supplier reference is dangling.
func EnsureSupplierExists(suppliers SupplierLookup, supplierID int64) error {
	if !suppliers.Exists(supplierID) {
		return fmt.Errorf("supplier %d: %w", supplierID, shared.ErrUnknownSupplier)
	}
	return nil
}

// EnsureSupplierUnused rejects deleting a supplier still referenced by a product.
func EnsureSupplierUnused(products ProductScanner, supplierID int64) error {
	users := products.FindBy(func(p Product) bool { return p.SupplierID == supplierID }, 1)
	if len(users) > 0 {
		return fmt.Errorf("supplier %d referenced by product %d: %w", supplierID, users[0].ID, shared.ErrSupplierInUse)
	}
	return nil
}
