package route

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/vandine/gateway-api/internal/config"
	"github.com/vandine/gateway-api/internal/domain"
)

// Collector handles the system-metrics family by delegating to the local
// collector service over HTTP: health checks hit /health, metric collection
// hits /metrics.
type Collector struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewCollector creates the collector family handler.
func NewCollector(cfg config.UpstreamConfig, logger *slog.Logger) *Collector {
	return &Collector{
		baseURL: cfg.CollectorURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger.With("component", "collector_handler"),
	}
}

// Execute runs one collector-family task.
func (c *Collector) Execute(ctx context.Context, req domain.TaskRequest) (domain.Result, error) {
	path := "/metrics"
	if req.Type == domain.TaskTypeHealthCheck {
		path = "/health"
	}

	c.logger.Info("executing collector task", "task_type", req.Type, "path", path)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building collector request: %v", ErrDependency, err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: collector request: %v", ErrDependency, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("failed to close collector response body", "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: collector returned status %d", ErrDependency, resp.StatusCode)
	}

	var result domain.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decoding collector response: %v", ErrDependency, err)
	}

	return result, nil
}
