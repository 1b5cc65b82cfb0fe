package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/odyssey-erp/stockroom/internal/auth"
	"github.com/odyssey-erp/stockroom/internal/masterdata"
	"github.com/odyssey-erp/stockroom/internal/observability"
	"github.com/odyssey-erp/stockroom/internal/shared"
)

// ProductPort abstracts the product store usage of the ledger.
type ProductPort interface {
	FindByID(id int64) (masterdata.Product, bool)
	Update(id int64, values masterdata.Product) error
}

// Flusher persists every store after a successful movement.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Service posts stock movements against the product store and the ledger.
type Service struct {
	products ProductPort
	ledger   *LedgerStore
	flusher  Flusher
	clock    func() time.Time
	metrics  *observability.Metrics
	logger   *slog.Logger
	lowStock LowStockHandler
}

// ServiceConfig groups optional settings.
type ServiceConfig struct {
	Clock    func() time.Time
	Metrics  *observability.Metrics
	Logger   *slog.Logger
	LowStock LowStockHandler
}

// NewService builds Service.
func NewService(products ProductPort, ledger *LedgerStore, flusher Flusher, cfg ServiceConfig) *Service {
	svc := &Service{
		products: products,
		ledger:   ledger,
		flusher:  flusher,
		clock:    cfg.Clock,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
		lowStock: cfg.LowStock,
	}
	if svc.clock == nil {
		svc.clock = time.Now
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc
}

// StockIn adds quantity to a product and records an IN entry.
func (s *Service) StockIn(ctx context.Context, input MovementInput) (Movement, error) {
	return s.postMovement(ctx, TransactionTypeIn, input)
}

// StockOut removes quantity from a product and records an OUT entry. It never
// drives the quantity negative.
func (s *Service) StockOut(ctx context.Context, input MovementInput) (Movement, error) {
	return s.postMovement(ctx, TransactionTypeOut, input)
}

// NextID returns max(existing ids)+1, or 1 for an empty ledger.
func (s *Service) NextID() int64 {
	var maxID int64
	for _, t := range s.ledger.List() {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID + 1
}

// Transactions returns the whole ledger in store order.
func (s *Service) Transactions() []Transaction {
	return s.ledger.List()
}

// History returns the latest limit entries for productID in store order.
// A limit of zero or less returns every entry.
func (s *Service) History(productID int64, limit int) []Transaction {
	entries := s.ledger.FindBy(func(t Transaction) bool { return t.ProductID == productID }, 0)
	return tail(entries, limit)
}

// Recent returns the last n entries in store order. n <= 0 returns every entry.
func (s *Service) Recent(n int) []Transaction {
	return tail(s.ledger.List(), n)
}

func tail(entries []Transaction, n int) []Transaction {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[len(entries)-n:]
}

func (s *Service) postMovement(ctx context.Context, kind TransactionType, input MovementInput) (Movement, error) {
	track := s.metrics.Track("transaction", "stock_"+strings.ToLower(string(kind)))
	if err := ctx.Err(); err != nil {
		return Movement{}, track.End(err)
	}
	if input.Quantity <= 0 {
		return Movement{}, track.End(ErrInvalidQuantity)
	}
	product, ok := s.products.FindByID(input.ProductID)
	if !ok {
		return Movement{}, track.End(fmt.Errorf("product %d: %w", input.ProductID, shared.ErrNotFound))
	}

	updated := product
	switch kind {
	case TransactionTypeIn:
		if product.QuantityInStock > math.MaxInt-input.Quantity {
			return Movement{}, track.End(fmt.Errorf("product %d: quantity overflow: %w", product.ID, ErrInvalidQuantity))
		}
		updated.QuantityInStock += input.Quantity
	case TransactionTypeOut:
		if input.Quantity > product.QuantityInStock {
			return Movement{}, track.End(fmt.Errorf("product %d has %d, requested %d: %w",
				product.ID, product.QuantityInStock, input.Quantity, ErrNegativeStock))
		}
		updated.QuantityInStock -= input.Quantity
	}
	if err := s.products.Update(product.ID, updated); err != nil {
		return Movement{}, track.End(err)
	}

	entry := Transaction{
		ID:        s.NextID(),
		ProductID: product.ID,
		Type:      kind,
		Quantity:  input.Quantity,
		Timestamp: s.clock().Format(TimestampLayout),
		Notes:     input.Notes,
	}
	if err := s.ledger.Add(entry); err != nil {
		// The quantity change is undone so the ledger and stock stay in step.
		if rollbackErr := s.products.Update(product.ID, product); rollbackErr != nil {
			s.logger.Error("revert quantity failed",
				slog.Int64("product_id", product.ID), slog.Any("error", rollbackErr))
		}
		return Movement{}, track.End(err)
	}

	movement := Movement{Transaction: entry, Product: updated, LowStock: updated.IsLowStock()}
	s.metrics.ObserveMovement(string(kind), input.Quantity)
	s.logger.Info("stock movement posted",
		slog.String("actor", auth.Actor(ctx)),
		slog.Int64("transaction_id", entry.ID),
		slog.Int64("product_id", product.ID),
		slog.String("type", string(kind)),
		slog.Int("quantity", input.Quantity),
		slog.Int("balance", updated.QuantityInStock))
	if movement.LowStock && kind == TransactionTypeOut {
		s.raiseLowStock(ctx, updated, entry)
	}

	if s.flusher != nil {
		if err := s.flusher.Flush(ctx); err != nil {
			s.logger.Error("flush after movement failed", slog.Any("error", err))
			return movement, track.End(fmt.Errorf("inventory: persist: %w", err))
		}
	}
	return movement, track.End(nil)
}

func (s *Service) raiseLowStock(ctx context.Context, p masterdata.Product, entry Transaction) {
	s.logger.Warn("product at or below reorder level",
		slog.Int64("product_id", p.ID),
		slog.Int("quantity", p.QuantityInStock),
		slog.Int("reorder_level", p.ReorderLevel))
	if s.lowStock == nil {
		return
	}
	evt := LowStockEvent{
		ProductID:    p.ID,
		Name:         p.Name,
		Quantity:     p.QuantityInStock,
		ReorderLevel: p.ReorderLevel,
		Timestamp:    entry.Timestamp,
	}
	if err := s.lowStock.HandleLowStock(ctx, evt); err != nil {
		s.logger.Warn("low stock handler failed", slog.Int64("product_id", p.ID), slog.Any("error", err))
	}
}
