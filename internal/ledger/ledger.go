// Package ledger holds the authoritative mapping from task identifiers to
// their records, together with the counters derived from record
// transitions. The ledger is process-lifetime state: records are never
// evicted or persisted.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vandine/gateway-api/internal/domain"
)

// Metrics are the process-wide counters derived from ledger transitions.
// They are only mutated as a side effect of Create, Complete, and Fail.
type Metrics struct {
	Total     int                     `json:"total"`
	Completed int                     `json:"completed"`
	Failed    int                     `json:"failed"`
	ByType    map[domain.TaskType]int `json:"by_type"`
}

// ActiveTask is the summary row the metrics endpoint reports for each
// non-terminal record.
type ActiveTask struct {
	ID     uuid.UUID         `json:"id"`
	Type   domain.TaskType   `json:"type"`
	Status domain.TaskStatus `json:"status"`
}

// Ledger is the owned store for task records. All access goes through its
// methods; callers receive copies, never pointers into the map. Safe for
// concurrent use.
type Ledger struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*domain.TaskRecord
	metrics Metrics
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		records: make(map[uuid.UUID]*domain.TaskRecord),
		metrics: Metrics{ByType: make(map[domain.TaskType]int)},
	}
}

// Create inserts a pending record for the request, increments the total and
// per-type counters, and returns a copy of the new record.
func (l *Ledger) Create(req domain.TaskRequest) domain.TaskRecord {
	record := domain.NewTaskRecord(req)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.records[record.ID] = &record
	l.metrics.Total++
	l.metrics.ByType[req.Type]++

	return record
}

// Get returns a copy of the record for the given id, or
// domain.ErrTaskNotFound if no such record exists.
func (l *Ledger) Get(id uuid.UUID) (domain.TaskRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	record, ok := l.records[id]
	if !ok {
		return domain.TaskRecord{}, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}
	return *record, nil
}

// MarkProcessing claims a pending record for execution. The transition is a
// compare-and-set under the ledger lock: if the record is not pending the
// claim fails with domain.ErrNotClaimable, so two executions can never run
// for the same id. Returns a copy of the claimed record.
func (l *Ledger) MarkProcessing(id uuid.UUID) (domain.TaskRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.records[id]
	if !ok {
		return domain.TaskRecord{}, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}
	if record.Status != domain.TaskStatusPending {
		return domain.TaskRecord{}, fmt.Errorf(
			"%w: %s is %s", domain.ErrNotClaimable, id, record.Status)
	}

	record.Status = domain.TaskStatusProcessing
	record.UpdatedAt = time.Now().UTC()
	return *record, nil
}

// Complete transitions a processing record to completed with the handler's
// result and increments the completed counter. Fails with
// domain.ErrNotClaimable unless the record is currently processing, which
// keeps terminal states exactly-once and result/error mutually exclusive.
func (l *Ledger) Complete(id uuid.UUID, result domain.Result) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.records[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}
	if record.Status != domain.TaskStatusProcessing {
		return fmt.Errorf("%w: %s is %s", domain.ErrNotClaimable, id, record.Status)
	}

	record.Status = domain.TaskStatusCompleted
	record.Result = result
	record.UpdatedAt = time.Now().UTC()
	l.metrics.Completed++
	return nil
}

// Fail transitions a processing record to failed with the captured error
// message and increments the failed counter. Same transition guard as
// Complete.
func (l *Ledger) Fail(id uuid.UUID, errMsg string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.records[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}
	if record.Status != domain.TaskStatusProcessing {
		return fmt.Errorf("%w: %s is %s", domain.ErrNotClaimable, id, record.Status)
	}

	record.Status = domain.TaskStatusFailed
	record.Error = errMsg
	record.UpdatedAt = time.Now().UTC()
	l.metrics.Failed++
	return nil
}

// Metrics returns a copy of the current counters, including a copied
// per-type map.
func (l *Ledger) Metrics() Metrics {
	l.mu.RLock()
	defer l.mu.RUnlock()

	byType := make(map[domain.TaskType]int, len(l.metrics.ByType))
	for k, v := range l.metrics.ByType {
		byType[k] = v
	}
	return Metrics{
		Total:     l.metrics.Total,
		Completed: l.metrics.Completed,
		Failed:    l.metrics.Failed,
		ByType:    byType,
	}
}

// ActiveCount returns the number of records whose status is pending or
// processing. This is a full scan over the ledger; fine for a
// single-process store that stays small, a scaling concern beyond that.
func (l *Ledger) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count := 0
	for _, record := range l.records {
		if !record.Status.IsTerminal() {
			count++
		}
	}
	return count
}

// ActiveTasks returns a summary row for each non-terminal record.
func (l *Ledger) ActiveTasks() []ActiveTask {
	l.mu.RLock()
	defer l.mu.RUnlock()

	active := make([]ActiveTask, 0)
	for _, record := range l.records {
		if !record.Status.IsTerminal() {
			active = append(active, ActiveTask{
				ID:     record.ID,
				Type:   record.Request.Type,
				Status: record.Status,
			})
		}
	}
	return active
}
