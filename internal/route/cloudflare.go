package route

import (
	"context"
	"log/slog"
	"time"

	"github.com/vandine/gateway-api/internal/config"
	"github.com/vandine/gateway-api/internal/domain"
)

// Cloudflare handles the zone-management family: DNS updates, cache purges,
// SSL checks, and firewall rules. Results are synthesized locally in the
// shape the zone API returns; the configured API base and zone are threaded
// into the payloads so callers see which zone was operated on.
type Cloudflare struct {
	apiURL string
	zone   string
	logger *slog.Logger
}

// NewCloudflare creates the cloudflare family handler.
func NewCloudflare(cfg config.UpstreamConfig, logger *slog.Logger) *Cloudflare {
	return &Cloudflare{
		apiURL: cfg.CloudflareAPIURL,
		zone:   cfg.Zone,
		logger: logger.With("component", "cloudflare_handler"),
	}
}

// Execute runs one cloudflare-family task.
func (c *Cloudflare) Execute(ctx context.Context, req domain.TaskRequest) (domain.Result, error) {
	c.logger.Info("executing cloudflare task", "task_type", req.Type, "zone", c.zone)

	result := domain.Result{
		"service":   string(FamilyCloudflare),
		"task_type": string(req.Type),
		"status":    "success",
	}

	now := time.Now().UTC().Format(time.RFC3339)

	switch req.Type {
	case domain.TaskTypeDNSUpdate:
		recordType, _ := req.Data["type"].(string)
		if recordType == "" {
			recordType = "A"
		}
		result["data"] = map[string]any{
			"record":     req.Data["record"],
			"type":       recordType,
			"content":    req.Data["content"],
			"updated_at": now,
		}

	case domain.TaskTypeCachePurge:
		urls, _ := req.Data["urls"].([]any)
		purgeEverything, _ := req.Data["purge_everything"].(bool)
		result["data"] = map[string]any{
			"purged_urls":      urls,
			"purge_everything": purgeEverything,
			"purged_at":        now,
		}

	case domain.TaskTypeSSLCheck:
		result["data"] = map[string]any{
			"zone":               c.zone,
			"certificate_status": "active",
			"min_tls_version":    "1.2",
			"checked_at":         now,
		}

	case domain.TaskTypeFirewallRule:
		action, _ := req.Data["action"].(string)
		if action == "" {
			action = "list"
		}
		result["data"] = map[string]any{
			"zone":   c.zone,
			"action": action,
			"rules": []any{
				map[string]any{"id": "block-bad-bots", "action": "block", "enabled": true},
				map[string]any{"id": "challenge-tor", "action": "challenge", "enabled": true},
			},
			"listed_at": now,
		}

	default:
		result["data"] = map[string]any{}
	}

	return result, nil
}
