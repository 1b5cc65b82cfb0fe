package inventory

import (
	"fmt"

	"github.com/odyssey-erp/stockroom/internal/masterdata"
	"github.com/odyssey-erp/stockroom/internal/shared"
	"github.com/odyssey-erp/stockroom/internal/store"
	"github.com/odyssey-erp/stockroom/internal/validation"
)

// TransactionType enumerates supported stock movements.
type TransactionType string

const (
	// TransactionTypeIn represents an inbound movement.
	TransactionTypeIn TransactionType = "IN"
	// TransactionTypeOut represents an outbound movement.
	TransactionTypeOut TransactionType = "OUT"
)

// TimestampLayout is the ledger timestamp format.
const TimestampLayout = "2006-01-02 15:04:05"

// Transaction is one immutable ledger entry.
type Transaction struct {
	ID        int64           `json:"transaction_id" validate:"gt=0"`
	ProductID int64           `json:"product_id" validate:"gt=0"`
	Type      TransactionType `json:"type" validate:"oneof=IN OUT"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	Timestamp string          `json:"date_time" validate:"required,max=29,flat"`
	Notes     string          `json:"notes" validate:"max=200,flat"`
}

// Date returns the YYYY-MM-DD prefix of the timestamp.
func (t Transaction) Date() string {
	if len(t.Timestamp) < 10 {
		return t.Timestamp
	}
	return t.Timestamp[:10]
}

// MovementInput describes a stock in or stock out request.
type MovementInput struct {
	ProductID int64
	Quantity  int
	Notes     string
}

// Movement is the outcome of a posted movement.
type Movement struct {
	Transaction Transaction
	Product     masterdata.Product
	LowStock    bool
}

// ErrInvalidQuantity is returned when a movement quantity is not positive.
var ErrInvalidQuantity = fmt.Errorf("%w: inventory: quantity must be positive", shared.ErrInvalidRecord)

// ErrNegativeStock is returned when a stock out exceeds the quantity on hand.
var ErrNegativeStock = fmt.Errorf("inventory: negative stock not allowed: %w", shared.ErrInsufficientStock)

// ValidateTransaction checks a ledger entry in isolation.
func ValidateTransaction(t Transaction) error {
	return validation.Struct(t)
}

// LedgerStore holds transactions keyed by id.
type LedgerStore = store.Store[int64, Transaction]

// NewLedgerStore builds a ledger bounded by capacity (0 = unbounded).
func NewLedgerStore(capacity int) *LedgerStore {
	return store.New(store.Options[int64, Transaction]{
		Name:     "transaction",
		Capacity: capacity,
		Key:      func(t Transaction) int64 { return t.ID },
		WithKey: func(t Transaction, id int64) Transaction {
			t.ID = id
			return t
		},
		Validate: ValidateTransaction,
	})
}
