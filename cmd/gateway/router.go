package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vandine/gateway-api/internal/api"
	apiMiddleware "github.com/vandine/gateway-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	// Create API handlers using the application's services
	taskHandler := api.NewTaskHandler(app.ledger, app.executor, app.router, app.logger)
	statusHandler := api.NewStatusHandler(app.ledger, app.prober, app.router, app.logger)

	// Register routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/tasks", taskHandler.CreateTask)
		r.Get("/tasks/{task_id}", taskHandler.GetTask)

		r.Get("/status", statusHandler.GetStatus)
		r.Get("/metrics", statusHandler.GetMetrics)
		r.Get("/capabilities", statusHandler.GetCapabilities)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
