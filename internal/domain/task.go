package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskType identifies which external capability a submitted unit of work
// requires. The set is fixed; routing is total over these values.
type TaskType string

// Declared task types.
const (
	TaskTypeDNSUpdate      TaskType = "dns_update"
	TaskTypeCachePurge     TaskType = "cache_purge"
	TaskTypeSSLCheck       TaskType = "ssl_check"
	TaskTypeFirewallRule   TaskType = "firewall_rule"
	TaskTypeHealthCheck    TaskType = "health_check"
	TaskTypeSystemMetric   TaskType = "system_metric"
	TaskTypeWorkerDeploy   TaskType = "worker_deploy"
	TaskTypeAnalyticsQuery TaskType = "analytics_query"
	TaskTypeSecurityScan   TaskType = "security_scan"
	TaskTypeBackup         TaskType = "backup"
)

// AllTaskTypes lists every declared task type in catalog order.
func AllTaskTypes() []TaskType {
	return []TaskType{
		TaskTypeDNSUpdate,
		TaskTypeCachePurge,
		TaskTypeSSLCheck,
		TaskTypeFirewallRule,
		TaskTypeHealthCheck,
		TaskTypeSystemMetric,
		TaskTypeWorkerDeploy,
		TaskTypeAnalyticsQuery,
		TaskTypeSecurityScan,
		TaskTypeBackup,
	}
}

// Priority is advisory ordering metadata carried on a request. The executor
// does not reorder work by priority; the value is forwarded to downstream
// services that may.
type Priority string

// Possible priority values.
const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// AllPriorities lists every declared priority from most to least urgent.
func AllPriorities() []Priority {
	return []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValidPriority reports whether p is one of the declared priorities.
func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// TaskStatus represents the processing state of a task record.
type TaskStatus string

// Possible task status values. Transitions only move forward:
// pending -> processing -> completed or failed.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// IsTerminal reports whether the status admits no further transitions.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}

// Default request values applied when the submitter omits them.
const (
	DefaultRetryCount     = 3
	DefaultTimeoutSeconds = 300
)

// TaskRequest is the immutable input describing a unit of work. RetryCount
// and Schedule are accepted and stored but reserved: nothing in the
// execution path acts on them.
type TaskRequest struct {
	Type       TaskType       `json:"type"`
	Priority   Priority       `json:"priority"`
	Data       map[string]any `json:"data"`
	Schedule   string         `json:"schedule,omitempty"`
	RetryCount int            `json:"retry_count"`
	Timeout    int            `json:"timeout"`
}

// Result is the opaque payload a handler family produces for a completed
// task.
type Result map[string]any

// TaskRecord is the ledger's mutable view of a submitted task. Exactly one
// of Result/Error is set once the status is terminal.
type TaskRecord struct {
	ID        uuid.UUID   `json:"id"`
	Request   TaskRequest `json:"request"`
	Status    TaskStatus  `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Result    Result      `json:"result,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// NewTaskRecord creates a pending record for the given request with a fresh
// identifier and creation timestamps.
func NewTaskRecord(req TaskRequest) TaskRecord {
	now := time.Now().UTC()
	return TaskRecord{
		ID:        uuid.New(),
		Request:   req,
		Status:    TaskStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
