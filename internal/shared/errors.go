package shared

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateID indicates the identifier is already taken in the store.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrInvalidRecord indicates a record failed validation.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrCapacityExceeded occurs when a store is at its configured bound.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrUnknownSupplier indicates a product references a missing supplier.
	ErrUnknownSupplier = errors.New("unknown supplier")
	// ErrSupplierInUse blocks deleting a supplier still referenced by products.
	ErrSupplierInUse = errors.New("supplier in use")
	// ErrInsufficientStock rejects a stock out larger than the quantity on hand.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrIOFailure wraps file open, write or copy failures.
	ErrIOFailure = errors.New("io failure")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden indicates the session role may not run the operation.
	ErrForbidden = errors.New("forbidden")
)

// UserSafeMessage maps known errors into messages suitable for the terminal.
func UserSafeMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "Record not found."
	case errors.Is(err, ErrDuplicateID):
		return "ID already exists."
	case errors.Is(err, ErrCapacityExceeded):
		return "Storage limit reached."
	case errors.Is(err, ErrUnknownSupplier):
		return "Supplier ID does not exist."
	case errors.Is(err, ErrSupplierInUse):
		return "Cannot delete supplier: products are using this supplier."
	case errors.Is(err, ErrInsufficientStock):
		return "Insufficient stock. Available quantity is insufficient."
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, ErrForbidden):
		return "You do not have permission to do that."
	case errors.Is(err, ErrIOFailure):
		return "Could not write data files."
	case errors.Is(err, ErrInvalidRecord):
		return err.Error()
	default:
		return "Unexpected error."
	}
}
