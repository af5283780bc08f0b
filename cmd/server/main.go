package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"example.com/wedding-budget/internal/budget"
	"example.com/wedding-budget/internal/config"
	"example.com/wedding-budget/internal/notifications"
	"example.com/wedding-budget/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ensureEnvFile()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	store := newStore(cfg.Budget)
	logger.Info("budget store ready",
		slog.Float64("total_budget", store.Budget()),
		slog.Int("expenses", len(store.Expenses())),
		slog.Bool("demo", cfg.Budget.SeedDemo),
	)

	hub := notifications.NewHub()
	e := server.New(cfg, logger, store, hub)
	httpServer := server.NewHTTPServer(cfg.Server, e, hub.Close)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("http server started", slog.String("addr", httpServer.Addr))
		if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		logger.Error("server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func newStore(cfg config.BudgetConfig) *budget.Store {
	if cfg.SeedDemo {
		store := budget.NewStore(budget.DemoBudget)
		store.Seed(budget.DemoExpenses(), budget.DemoBudget)
		return store
	}

	return budget.NewStore(cfg.InitialTotal)
}

func ensureEnvFile() {
	if os.Getenv("ENV_FILE") != "" {
		return
	}

	if _, err := os.Stat(".env"); err == nil {
		_ = os.Setenv("ENV_FILE", ".env")
		return
	}

	if _, err := os.Stat("../.env"); err == nil {
		_ = os.Setenv("ENV_FILE", "../.env")
	}
}
