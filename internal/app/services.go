package app

import (
	"log/slog"
	"time"

	"github.com/odyssey-erp/stockroom/internal/auth"
	"github.com/odyssey-erp/stockroom/internal/inventory"
	"github.com/odyssey-erp/stockroom/internal/masterdata"
	"github.com/odyssey-erp/stockroom/internal/observability"
	"github.com/odyssey-erp/stockroom/internal/users"
)

// Services groups the domain services built over one State.
type Services struct {
	Catalog   *masterdata.Service
	Inventory *inventory.Service
	Auth      *auth.Service
	Users     *users.Service
}

// ServicesParams groups dependencies for building Services.
type ServicesParams struct {
	Config   *Config
	State    *State
	Metrics  *observability.Metrics
	Logger   *slog.Logger
	Clock    func() time.Time
	LowStock inventory.LowStockHandler
}

// NewServices wires every service against the state, which doubles as the
// flusher for all mutations.
func NewServices(p ServicesParams) *Services {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	hasher := auth.NewBcryptHasher(p.Config.HashCost())
	return &Services{
		Catalog: masterdata.NewService(p.State.Products, p.State.Suppliers, p.State, p.Metrics, logger.With(slog.String("component", "catalog"))),
		Inventory: inventory.NewService(p.State.Products, p.State.Ledger, p.State, inventory.ServiceConfig{
			Clock:    p.Clock,
			Metrics:  p.Metrics,
			Logger:   logger.With(slog.String("component", "ledger")),
			LowStock: p.LowStock,
		}),
		Auth:  auth.NewService(p.State.Users, hasher, logger.With(slog.String("component", "auth"))),
		Users: users.NewService(p.State.Users, hasher, p.State, p.Metrics, logger.With(slog.String("component", "users"))),
	}
}
