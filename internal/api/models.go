package api

import (
	"time"

	"github.com/vandine/gateway-api/internal/domain"
	"github.com/vandine/gateway-api/internal/ledger"
)

// CreateTaskRequest represents the request body for submitting a new task.
// Schedule and retry_count are reserved fields: they are validated and
// stored but nothing in the execution path acts on them.
type CreateTaskRequest struct {
	Type       string         `json:"type"        validate:"required"`
	Priority   string         `json:"priority"    validate:"omitempty,oneof=critical high medium low"`
	Data       map[string]any `json:"data"`
	Schedule   string         `json:"schedule"    validate:"omitempty"`
	RetryCount *int           `json:"retry_count" validate:"omitempty,gte=0"`
	Timeout    *int           `json:"timeout"     validate:"omitempty,gt=0"`
}

// TaskCreatedResponse is returned on successful submission. The record is
// pending at response time; the estimated completion is advisory, computed
// from the request timeout.
type TaskCreatedResponse struct {
	TaskID              string    `json:"task_id"`
	Status              string    `json:"status"`
	Message             string    `json:"message"`
	CreatedAt           time.Time `json:"created_at"`
	EstimatedCompletion time.Time `json:"estimated_completion"`
}

// StatusResponse is the aggregate gateway status.
type StatusResponse struct {
	Status          string            `json:"status"`
	UptimeSeconds   float64           `json:"uptime_seconds"`
	ActiveTasks     int               `json:"active_tasks"`
	CompletedTasks  int               `json:"completed_tasks"`
	FailedTasks     int               `json:"failed_tasks"`
	Services        map[string]string `json:"services"`
	LastHealthCheck time.Time         `json:"last_health_check"`
}

// MetricsResponse exposes the raw ledger counters plus the currently
// active tasks.
type MetricsResponse struct {
	TaskMetrics ledger.Metrics      `json:"task_metrics"`
	TaskTypes   []domain.TaskType   `json:"task_types"`
	Priorities  []domain.Priority   `json:"priorities"`
	ActiveTasks []ledger.ActiveTask `json:"active_tasks"`
}

// Capability describes one supported task type in the capabilities catalog.
type Capability struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Service     string `json:"service"`
}

// CapabilitiesResponse is the static catalog of everything the gateway can
// route. Purely informational; no side effects.
type CapabilitiesResponse struct {
	TaskTypes  []Capability `json:"task_types"`
	Priorities []string     `json:"priorities"`
	Services   []string     `json:"services"`
	Features   []string     `json:"features"`
}
