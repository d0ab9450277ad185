package route

import (
	"context"
	"fmt"

	"github.com/vandine/gateway-api/internal/domain"
)

// Hybrid handles tasks that need more than one downstream service. It runs
// the collector's system metrics first, then the cloudflare firewall
// listing, and merges the two results keyed by sub-service name.
type Hybrid struct {
	Collector  *Collector
	Cloudflare *Cloudflare
}

// Execute runs one hybrid-family task. A failure of either sub-call fails
// the whole task; partial results are not reported.
func (h *Hybrid) Execute(ctx context.Context, req domain.TaskRequest) (domain.Result, error) {
	system, err := h.Collector.Execute(ctx, domain.TaskRequest{
		Type:     domain.TaskTypeSystemMetric,
		Priority: req.Priority,
		Data:     map[string]any{},
	})
	if err != nil {
		return nil, fmt.Errorf("hybrid %s: system metrics: %w", req.Type, err)
	}

	firewall, err := h.Cloudflare.Execute(ctx, domain.TaskRequest{
		Type:     domain.TaskTypeFirewallRule,
		Priority: req.Priority,
		Data:     map[string]any{"action": "list"},
	})
	if err != nil {
		return nil, fmt.Errorf("hybrid %s: firewall listing: %w", req.Type, err)
	}

	return domain.Result{
		"system":     map[string]any(system),
		"cloudflare": map[string]any(firewall),
	}, nil
}
