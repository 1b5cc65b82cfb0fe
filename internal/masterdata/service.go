package masterdata

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/odyssey-erp/stockroom/internal/auth"
	"github.com/odyssey-erp/stockroom/internal/observability"
	"github.com/odyssey-erp/stockroom/internal/shared"
)

// Flusher persists every store after a successful mutation.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Service coordinates catalog mutations: validation and referential checks
// run before a store is touched, and all stores are flushed afterwards.
type Service struct {
	products  *ProductStore
	suppliers *SupplierStore
	flusher   Flusher
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewService builds Service. metrics may be nil.
func NewService(products *ProductStore, suppliers *SupplierStore, flusher Flusher, metrics *observability.Metrics, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{products: products, suppliers: suppliers, flusher: flusher, metrics: metrics, logger: logger}
}

// Products returns every product in store order.
func (s *Service) Products() []Product { return s.products.List() }

// Suppliers returns every supplier in store order.
func (s *Service) Suppliers() []Supplier { return s.suppliers.List() }

// Product fetches a product by id.
func (s *Service) Product(id int64) (Product, error) {
	p, ok := s.products.FindByID(id)
	if !ok {
		return Product{}, fmt.Errorf("product %d: %w", id, shared.ErrNotFound)
	}
	return p, nil
}

// Supplier fetches a supplier by id.
func (s *Service) Supplier(id int64) (Supplier, error) {
	sup, ok := s.suppliers.FindByID(id)
	if !ok {
		return Supplier{}, fmt.Errorf("supplier %d: %w", id, shared.ErrNotFound)
	}
	return sup, nil
}

// Search returns products whose name contains query, ignoring case.
func (s *Service) Search(query string) []Product {
	return SearchByName(s.products, query, 0)
}

// ByCategory returns products in category, ignoring case.
func (s *Service) ByCategory(category string) []Product {
	return FilterByCategory(s.products, category, 0)
}

// AddProduct registers a new product referencing an existing supplier.
func (s *Service) AddProduct(ctx context.Context, p Product) (Product, error) {
	track := s.metrics.Track("product", "add")
	if err := EnsureSupplierExists(s.suppliers, p.SupplierID); err != nil {
		return Product{}, track.End(err)
	}
	if err := s.products.Add(p); err != nil {
		return Product{}, track.End(err)
	}
	s.logger.Info("product added", slog.String("actor", auth.Actor(ctx)), slog.Int64("id", p.ID), slog.String("name", p.Name))
	return p, track.End(s.flush(ctx))
}

// UpdateProduct overwrites every field of product id except the id itself.
func (s *Service) UpdateProduct(ctx context.Context, id int64, p Product) (Product, error) {
	track := s.metrics.Track("product", "update")
	if !s.products.Exists(id) {
		return Product{}, track.End(fmt.Errorf("product %d: %w", id, shared.ErrNotFound))
	}
	if err := EnsureSupplierExists(s.suppliers, p.SupplierID); err != nil {
		return Product{}, track.End(err)
	}
	if err := s.products.Update(id, p); err != nil {
		return Product{}, track.End(err)
	}
	updated, _ := s.products.FindByID(id)
	s.logger.Info("product updated", slog.String("actor", auth.Actor(ctx)), slog.Int64("id", id))
	return updated, track.End(s.flush(ctx))
}

// DeleteProduct removes product id. Ledger entries referencing it are kept.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	track := s.metrics.Track("product", "delete")
	if err := s.products.Delete(id); err != nil {
		return track.End(err)
	}
	s.logger.Info("product deleted", slog.String("actor", auth.Actor(ctx)), slog.Int64("id", id))
	return track.End(s.flush(ctx))
}

// AddSupplier registers a new supplier.
func (s *Service) AddSupplier(ctx context.Context, sup Supplier) (Supplier, error) {
	track := s.metrics.Track("supplier", "add")
	if err := s.suppliers.Add(sup); err != nil {
		return Supplier{}, track.End(err)
	}
	s.logger.Info("supplier added", slog.String("actor", auth.Actor(ctx)), slog.Int64("id", sup.ID), slog.String("name", sup.Name))
	return sup, track.End(s.flush(ctx))
}

// UpdateSupplier overwrites every field of supplier id except the id itself.
func (s *Service) UpdateSupplier(ctx context.Context, id int64, sup Supplier) (Supplier, error) {
	track := s.metrics.Track("supplier", "update")
	if err := s.suppliers.Update(id, sup); err != nil {
		return Supplier{}, track.End(err)
	}
	updated, _ := s.suppliers.FindByID(id)
	s.logger.Info("supplier updated", slog.String("actor", auth.Actor(ctx)), slog.Int64("id", id))
	return updated, track.End(s.flush(ctx))
}

// DeleteSupplier removes supplier id unless a product still references it.
func (s *Service) DeleteSupplier(ctx context.Context, id int64) error {
	track := s.metrics.Track("supplier", "delete")
	if !s.suppliers.Exists(id) {
		return track.End(fmt.Errorf("supplier %d: %w", id, shared.ErrNotFound))
	}
	if err := EnsureSupplierUnused(s.products, id); err != nil {
		return track.End(err)
	}
	if err := s.suppliers.Delete(id); err != nil {
		return track.End(err)
	}
	s.logger.Info("supplier deleted", slog.String("actor", auth.Actor(ctx)), slog.Int64("id", id))
	return track.End(s.flush(ctx))
}

func (s *Service) flush(ctx context.Context) error {
	if s.flusher == nil {
		return nil
	}
	if err := s.flusher.Flush(ctx); err != nil {
		s.logger.Error("flush after mutation failed", slog.Any("error", err))
		return fmt.Errorf("masterdata: persist: %w", err)
	}
	return nil
}
