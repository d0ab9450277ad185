package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vandine/gateway-api/internal/config"
	"github.com/vandine/gateway-api/internal/executor"
	"github.com/vandine/gateway-api/internal/ledger"
	"github.com/vandine/gateway-api/internal/probe"
	"github.com/vandine/gateway-api/internal/route"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	ledger   *ledger.Ledger
	router   *route.Router
	executor *executor.Executor
	prober   *probe.Prober
}

// newApplication creates a new application instance with all dependencies
// initialized and the background executor started.
func newApplication(cfg *config.Config, logger *slog.Logger) *application {
	app := &application{
		config: cfg,
		logger: logger,
		ledger: ledger.New(),
	}

	app.router = route.New(
		route.NewCloudflare(cfg.Upstream, logger),
		route.NewCollector(cfg.Upstream, logger),
		route.NewDispatcher(cfg.Upstream, logger),
	)

	app.executor = executor.New(app.ledger, app.router, executor.Config{
		WorkerCount: cfg.Executor.WorkerCount,
		QueueSize:   cfg.Executor.QueueSize,
	}, logger)
	app.executor.Start()
	logger.Info("Background executor started",
		"worker_count", cfg.Executor.WorkerCount,
		"queue_size", cfg.Executor.QueueSize)

	app.prober = probe.New([]probe.Target{
		{Name: "collector", URL: cfg.Upstream.CollectorURL},
		{Name: "dispatcher", URL: cfg.Upstream.DispatcherURL},
	}, time.Duration(cfg.Upstream.ProbeTimeoutSeconds)*time.Second, logger)

	logger.Info("Application initialized successfully")
	return app
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.executor != nil {
		app.executor.Stop()
	}

	app.logger.Info("Application shutdown completed")
}
