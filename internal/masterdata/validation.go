package masterdata

import "github.com/odyssey-erp/stockroom/internal/validation"

// ValidateProduct checks a product in isolation. Supplier existence is a
// cross-store concern handled by EnsureSupplierExists.
func ValidateProduct(p Product) error {
	return validation.Struct(p)
}

// ValidateSupplier checks a supplier, including optional email and phone shapes.
func ValidateSupplier(s Supplier) error {
	return validation.Struct(s)
}
