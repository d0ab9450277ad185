package route

import (
	"context"
	"errors"
	"fmt"

	"github.com/vandine/gateway-api/internal/domain"
)

// ErrDependency marks a failure of a downstream service call. It is
// captured into the task record's error field by the executor, never
// propagated to the submitter.
var ErrDependency = errors.New("dependency call failed")

// Family is the grouping of task types that share a common downstream
// dependency.
type Family string

// Handler families.
const (
	FamilyCloudflare Family = "cloudflare"
	FamilyCollector  Family = "collector"
	FamilyDispatcher Family = "dispatcher"
	FamilyHybrid     Family = "hybrid"
)

// HandlerFunc executes one task and returns its result payload.
type HandlerFunc func(ctx context.Context, req domain.TaskRequest) (domain.Result, error)

// Binding is a resolved routing table entry.
type Binding struct {
	Family  Family
	Handler HandlerFunc
}

// Router resolves task types to handler bindings through a static table.
type Router struct {
	table map[domain.TaskType]Binding
}

// New builds the routing table over the given handler families. The table
// covers every declared task type:
//
//	dns_update, cache_purge, ssl_check, firewall_rule -> cloudflare
//	health_check, system_metric                       -> collector
//	worker_deploy, analytics_query                    -> dispatcher
//	security_scan, backup                             -> hybrid
func New(cf *Cloudflare, col *Collector, disp *Dispatcher) *Router {
	hybrid := &Hybrid{Collector: col, Cloudflare: cf}

	return &Router{table: map[domain.TaskType]Binding{
		domain.TaskTypeDNSUpdate:      {FamilyCloudflare, cf.Execute},
		domain.TaskTypeCachePurge:     {FamilyCloudflare, cf.Execute},
		domain.TaskTypeSSLCheck:       {FamilyCloudflare, cf.Execute},
		domain.TaskTypeFirewallRule:   {FamilyCloudflare, cf.Execute},
		domain.TaskTypeHealthCheck:    {FamilyCollector, col.Execute},
		domain.TaskTypeSystemMetric:   {FamilyCollector, col.Execute},
		domain.TaskTypeWorkerDeploy:   {FamilyDispatcher, disp.Execute},
		domain.TaskTypeAnalyticsQuery: {FamilyDispatcher, disp.Execute},
		domain.TaskTypeSecurityScan:   {FamilyHybrid, hybrid.Execute},
		domain.TaskTypeBackup:         {FamilyHybrid, hybrid.Execute},
	}}
}

// Resolve returns the binding for the given task type, or
// domain.ErrUnknownTaskType for anything outside the declared enumeration.
func (r *Router) Resolve(taskType domain.TaskType) (Binding, error) {
	binding, ok := r.table[taskType]
	if !ok {
		return Binding{}, fmt.Errorf("%w: %q", domain.ErrUnknownTaskType, taskType)
	}
	return binding, nil
}

// Family returns the owning family for a task type without resolving the
// handler. Used by the capabilities catalog.
func (r *Router) Family(taskType domain.TaskType) (Family, bool) {
	binding, ok := r.table[taskType]
	return binding.Family, ok
}

// Families lists the handler families in catalog order.
func Families() []Family {
	return []Family{FamilyCloudflare, FamilyCollector, FamilyDispatcher, FamilyHybrid}
}

// Describe returns the human-readable capability description for a task
// type.
func Describe(taskType domain.TaskType) string {
	switch taskType {
	case domain.TaskTypeDNSUpdate:
		return "Update DNS records"
	case domain.TaskTypeCachePurge:
		return "Purge CDN cache"
	case domain.TaskTypeSSLCheck:
		return "Verify SSL certificate status"
	case domain.TaskTypeFirewallRule:
		return "Manage firewall rules"
	case domain.TaskTypeHealthCheck:
		return "System health check"
	case domain.TaskTypeSystemMetric:
		return "Collect system metrics"
	case domain.TaskTypeWorkerDeploy:
		return "Deploy edge workers"
	case domain.TaskTypeAnalyticsQuery:
		return "Query analytics data"
	case domain.TaskTypeSecurityScan:
		return "Run security scan"
	case domain.TaskTypeBackup:
		return "Perform backup operations"
	default:
		return "Unknown task type"
	}
}
