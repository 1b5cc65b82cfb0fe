package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/odyssey-erp/stockroom/cmd/stockroom/cli"
	"github.com/odyssey-erp/stockroom/internal/app"
	"github.com/odyssey-erp/stockroom/internal/observability"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		return cli.ExitFailure
	}

	logger := app.NewLogger(cfg)
	metrics := observability.NewMetrics()

	state := app.NewState(cfg, metrics, logger)
	if _, err := state.Load(ctx); err != nil {
		logger.Error("load data", slog.Any("error", err))
		return cli.ExitFailure
	}

	services := app.NewServices(app.ServicesParams{
		Config:   cfg,
		State:    state,
		Metrics:  metrics,
		Logger:   logger,
		LowStock: cli.LowStockPrinter(os.Stdout),
	})
	if cfg.SeedDefaultUsers {
		if _, err := services.Users.SeedDefaults(ctx); err != nil {
			logger.Error("seed default users", slog.Any("error", err))
			return cli.ExitFailure
		}
	}

	code := cli.Run(ctx, cli.Options{
		Args:     args,
		Username: cfg.User,
		Password: cfg.Password,
		State:    state,
		Services: services,
	})

	if !app.InTestMode() {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Warn("write metrics textfile", slog.Any("error", err))
		}
	}
	return code
}
