package inventory

import "context"

// LowStockEvent is raised when a movement leaves a product at or below its
// reorder level.
type LowStockEvent struct {
	ProductID    int64
	Name         string
	Quantity     int
	ReorderLevel int
	Timestamp    string
}

// LowStockHandler reacts to low stock events. Handler errors are logged and
// never undo the movement.
type LowStockHandler interface {
	HandleLowStock(ctx context.Context, evt LowStockEvent) error
}

// LowStockHandlerFunc adapts a function to LowStockHandler.
type LowStockHandlerFunc func(ctx context.Context, evt LowStockEvent) error

// HandleLowStock calls f.
func (f LowStockHandlerFunc) HandleLowStock(ctx context.Context, evt LowStockEvent) error {
	return f(ctx, evt)
}
