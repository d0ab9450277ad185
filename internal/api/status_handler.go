package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vandine/gateway-api/internal/api/shared"
	"github.com/vandine/gateway-api/internal/domain"
	"github.com/vandine/gateway-api/internal/ledger"
	"github.com/vandine/gateway-api/internal/probe"
	"github.com/vandine/gateway-api/internal/route"
)

// StatusHandler serves the aggregate status, metrics, and capabilities
// endpoints.
type StatusHandler struct {
	ledger    *ledger.Ledger
	prober    *probe.Prober
	router    *route.Router
	startTime time.Time
	logger    *slog.Logger
}

// NewStatusHandler creates a new StatusHandler. Uptime is measured from
// the moment this constructor runs.
func NewStatusHandler(
	l *ledger.Ledger,
	prober *probe.Prober,
	router *route.Router,
	logger *slog.Logger,
) *StatusHandler {
	return &StatusHandler{
		ledger:    l,
		prober:    prober,
		router:    router,
		startTime: time.Now().UTC(),
		logger:    logger.With("component", "status_handler"),
	}
}

// GetStatus handles GET /api/v1/status.
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	services := h.prober.Check(r.Context())
	metrics := h.ledger.Metrics()

	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{
		Status:          "operational",
		UptimeSeconds:   time.Since(h.startTime).Seconds(),
		ActiveTasks:     h.ledger.ActiveCount(),
		CompletedTasks:  metrics.Completed,
		FailedTasks:     metrics.Failed,
		Services:        services,
		LastHealthCheck: time.Now().UTC(),
	})
}

// GetMetrics handles GET /api/v1/metrics.
func (h *StatusHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, MetricsResponse{
		TaskMetrics: h.ledger.Metrics(),
		TaskTypes:   domain.AllTaskTypes(),
		Priorities:  domain.AllPriorities(),
		ActiveTasks: h.ledger.ActiveTasks(),
	})
}

// GetCapabilities handles GET /api/v1/capabilities. The catalog is static:
// it lists every routable task type with its owning family.
func (h *StatusHandler) GetCapabilities(w http.ResponseWriter, r *http.Request) {
	capabilities := make([]Capability, 0, len(domain.AllTaskTypes()))
	for _, taskType := range domain.AllTaskTypes() {
		family, _ := h.router.Family(taskType)
		capabilities = append(capabilities, Capability{
			Type:        string(taskType),
			Description: route.Describe(taskType),
			Service:     string(family),
		})
	}

	priorities := make([]string, 0, len(domain.AllPriorities()))
	for _, p := range domain.AllPriorities() {
		priorities = append(priorities, string(p))
	}

	families := make([]string, 0, len(route.Families()))
	for _, f := range route.Families() {
		families = append(families, string(f))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CapabilitiesResponse{
		TaskTypes:  capabilities,
		Priorities: priorities,
		Services:   families,
		Features: []string{
			"Static task routing",
			"Asynchronous background execution",
			"Task status polling",
			"Dependency health probing",
			"Multi-service orchestration",
		},
	})
}
