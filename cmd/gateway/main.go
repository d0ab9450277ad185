// Package main implements the entry point for the gateway agent, which
// routes submitted tasks to their downstream services and tracks their
// status in an in-memory ledger.
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/vandine/gateway-api/internal/config"
	"github.com/vandine/gateway-api/internal/platform/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up structured logging using the configured log level
	appLogger := logger.Setup(cfg.Server)

	slog.Info("Gateway configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"collector_url", cfg.Upstream.CollectorURL,
		"dispatcher_url", cfg.Upstream.DispatcherURL)

	app := newApplication(cfg, appLogger)

	if err := app.Run(context.Background()); err != nil {
		appLogger.Error("Gateway terminated with error", "error", err)
	}
}
