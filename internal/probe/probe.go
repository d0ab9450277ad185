// Package probe checks the liveness of the gateway's dependent services.
// Probes are best-effort: any failure, network or HTTP, downgrades to an
// "offline" status string and is never surfaced as an error.
package probe

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Health status strings reported per service.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// Target is one probed dependency.
type Target struct {
	Name string
	URL  string
}

// Prober issues short-timeout liveness probes against a fixed set of
// dependencies.
type Prober struct {
	targets []Target
	client  *http.Client
	logger  *slog.Logger
}

// New creates a prober over the given targets. Each probe is bounded by the
// supplied timeout.
func New(targets []Target, timeout time.Duration, logger *slog.Logger) *Prober {
	return &Prober{
		targets: targets,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With("component", "prober"),
	}
}

// Check probes every target's /health endpoint and returns a map from
// service name to "online" or "offline".
func (p *Prober) Check(ctx context.Context) map[string]string {
	services := make(map[string]string, len(p.targets))
	for _, target := range p.targets {
		services[target.Name] = p.probe(ctx, target)
	}
	return services
}

// probe checks a single target. Anything but a 2xx response within the
// timeout counts as offline.
func (p *Prober) probe(ctx context.Context, target Target) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL+"/health", nil)
	if err != nil {
		p.logger.Warn("failed to build probe request", "service", target.Name, "error", err)
		return StatusOffline
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debug("probe failed", "service", target.Name, "error", err)
		return StatusOffline
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			p.logger.Warn("failed to close probe response body", "service", target.Name, "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p.logger.Debug("probe returned non-success status",
			"service", target.Name,
			"status_code", resp.StatusCode)
		return StatusOffline
	}

	return StatusOnline
}
