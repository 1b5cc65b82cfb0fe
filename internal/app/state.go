package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/odyssey-erp/stockroom/internal/auth"
	"github.com/odyssey-erp/stockroom/internal/inventory"
	"github.com/odyssey-erp/stockroom/internal/masterdata"
	"github.com/odyssey-erp/stockroom/internal/observability"
	"github.com/odyssey-erp/stockroom/internal/storage"
)

// State owns the four stores and their on-disk layout.
type State struct {
	Layout    storage.Layout
	Products  *masterdata.ProductStore
	Suppliers *masterdata.SupplierStore
	Ledger    *inventory.LedgerStore
	Users     *auth.UserStore

	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewState builds empty stores sized from cfg.
func NewState(cfg *Config, metrics *observability.Metrics, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	return &State{
		Layout:    storage.Layout{DataDir: cfg.DataDir, BackupDir: cfg.BackupDir},
		Products:  masterdata.NewProductStore(cfg.MaxProducts),
		Suppliers: masterdata.NewSupplierStore(cfg.MaxSuppliers),
		Ledger:    inventory.NewLedgerStore(cfg.MaxTransactions),
		Users:     auth.NewUserStore(cfg.MaxUsers),
		metrics:   metrics,
		logger:    logger,
	}
}

type resettable[T any] interface {
	storage.Collection[T]
	Reset()
	Count() int
}

// Load empties every store and reads it back from the data directory. No
// cross-store check runs at load time.
func (s *State) Load(ctx context.Context) ([]storage.LoadReport, error) {
	if err := s.Layout.EnsureDirs(); err != nil {
		return nil, err
	}
	var reports []storage.LoadReport
	steps := []func() (storage.LoadReport, error){
		func() (storage.LoadReport, error) {
			return load(ctx, s, storage.SupplierCodec, s.Suppliers)
		},
		func() (storage.LoadReport, error) {
			return load(ctx, s, storage.ProductCodec, s.Products)
		},
		func() (storage.LoadReport, error) {
			return load(ctx, s, storage.TransactionCodec, s.Ledger)
		},
		func() (storage.LoadReport, error) {
			return load(ctx, s, storage.UserCodec, s.Users)
		},
	}
	for _, step := range steps {
		report, err := step()
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func load[T any](ctx context.Context, s *State, codec storage.Codec[T], into resettable[T]) (storage.LoadReport, error) {
	into.Reset()
	report, err := storage.LoadFile(ctx, s.Layout.DataPath(codec.File), codec, into)
	if err != nil {
		return report, fmt.Errorf("load %s: %w", codec.Entity, err)
	}
	for _, skipped := range report.Skipped {
		s.logger.Warn("skipped malformed line",
			slog.String("file", codec.File),
			slog.Int("line", skipped.Line),
			slog.String("reason", skipped.Reason))
	}
	s.metrics.AddSkipped(codec.Entity, len(report.Skipped))
	s.metrics.SetRecords(codec.Entity, into.Count())
	s.logger.Debug("loaded file",
		slog.String("file", codec.File),
		slog.Int("loaded", report.Loaded),
		slog.Int("skipped", len(report.Skipped)))
	return report, nil
}

// Flush writes all four stores to the data directory. Files are replaced one
// at a time; a failure leaves earlier files written and later ones stale.
func (s *State) Flush(ctx context.Context) error {
	start := time.Now()
	err := s.flush(ctx)
	s.metrics.ObserveFlush(time.Since(start), err)
	if err != nil {
		return err
	}
	s.metrics.SetRecords(storage.ProductCodec.Entity, s.Products.Count())
	s.metrics.SetRecords(storage.SupplierCodec.Entity, s.Suppliers.Count())
	s.metrics.SetRecords(storage.TransactionCodec.Entity, s.Ledger.Count())
	s.metrics.SetRecords(storage.UserCodec.Entity, s.Users.Count())
	s.logger.Debug("flushed stores", slog.Duration("took", time.Since(start)))
	return nil
}

func (s *State) flush(ctx context.Context) error {
	if err := storage.SaveFile(ctx, s.Layout.DataPath(storage.ProductsFile), storage.ProductCodec, s.Products.List()); err != nil {
		return err
	}
	if err := storage.SaveFile(ctx, s.Layout.DataPath(storage.SuppliersFile), storage.SupplierCodec, s.Suppliers.List()); err != nil {
		return err
	}
	if err := storage.SaveFile(ctx, s.Layout.DataPath(storage.TransactionsFile), storage.TransactionCodec, s.Ledger.List()); err != nil {
		return err
	}
	return storage.SaveFile(ctx, s.Layout.DataPath(storage.UsersFile), storage.UserCodec, s.Users.List())
}

// Backup copies the live files into the backup directory.
func (s *State) Backup(ctx context.Context) (storage.CopyReport, error) {
	report, err := s.Layout.Backup(ctx)
	if err != nil {
		s.logger.Error("backup failed", slog.Any("error", err))
		return report, err
	}
	s.logCopy("backup", report)
	return report, nil
}

// Restore copies the backup files over the live files and reloads every
// store. On a copy failure memory is left as it was.
func (s *State) Restore(ctx context.Context) (storage.CopyReport, []storage.LoadReport, error) {
	report, err := s.Layout.Restore(ctx)
	if err != nil {
		s.logger.Error("restore failed", slog.Any("error", err))
		return report, nil, err
	}
	s.logCopy("restore", report)
	loads, err := s.Load(ctx)
	return report, loads, err
}

func (s *State) logCopy(op string, report storage.CopyReport) {
	s.logger.Info(op+" complete", slog.Any("copied", report.Copied))
	if len(report.Missing) > 0 {
		s.logger.Warn(op+" skipped missing files", slog.Any("missing", report.Missing), slog.Any("removed", report.Removed))
	}
}
