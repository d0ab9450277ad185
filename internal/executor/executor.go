// Package executor runs submitted tasks in the background and records
// their outcome in the ledger. Execution is fire-and-forget from the
// submitter's point of view: handler failures are captured into the task
// record, never returned to the caller.
package executor

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/vandine/gateway-api/internal/domain"
	"github.com/vandine/gateway-api/internal/ledger"
	"github.com/vandine/gateway-api/internal/route"
)

// Resolver resolves a task type to its handler binding. Satisfied by
// *route.Router.
type Resolver interface {
	Resolve(taskType domain.TaskType) (route.Binding, error)
}

// Config holds configuration for the executor.
type Config struct {
	// WorkerCount determines how many concurrent workers process tasks.
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory work queue.
	QueueSize int
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// Executor manages background task processing over a worker pool.
type Executor struct {
	ledger     *ledger.Ledger
	resolver   Resolver
	queue      chan uuid.UUID
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     Config
	logger     *slog.Logger
}

// New creates a new Executor over the given ledger and router.
func New(l *ledger.Ledger, resolver Resolver, config Config, logger *slog.Logger) *Executor {
	ctx, cancel := context.WithCancel(context.Background())

	return &Executor{
		ledger:     l,
		resolver:   resolver,
		queue:      make(chan uuid.UUID, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger,
	}
}

// Start launches the worker pool.
func (e *Executor) Start() {
	for i := 0; i < e.config.WorkerCount; i++ {
		e.wg.Add(1)
		go e.worker(i)
	}
}

// Stop shuts the executor down. Workers finish the task they are on and
// exit; queued work that has not started stays pending in the ledger.
func (e *Executor) Stop() {
	e.cancelFunc()
	e.wg.Wait()
}

// Dispatch schedules execution of a ledger record without blocking the
// caller. If the queue is full the task runs on its own goroutine instead
// of being rejected, so a created record is always eventually executed.
func (e *Executor) Dispatch(id uuid.UUID) {
	select {
	case e.queue <- id:
	default:
		e.logger.Warn("executor queue full, running task on dedicated goroutine", "task_id", id)
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			e.run(id)
		}()
	}
}

// worker processes tasks from the queue until the executor is stopped.
func (e *Executor) worker(workerID int) {
	defer e.wg.Done()

	e.logger.Debug("starting worker", "worker_id", workerID)

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Debug("stopping worker", "worker_id", workerID)
			return

		case id := <-e.queue:
			e.run(id)
		}
	}
}

// run executes a single task: claim the record, invoke the routed handler,
// and record the terminal state. Exactly one terminal transition happens
// per record because the pending->processing claim is a compare-and-set in
// the ledger.
func (e *Executor) run(id uuid.UUID) {
	record, err := e.ledger.MarkProcessing(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotClaimable) {
			e.logger.Warn("task already claimed, skipping duplicate execution", "task_id", id)
		} else {
			e.logger.Error("failed to claim task", "task_id", id, "error", err)
		}
		return
	}

	logger := e.logger.With(
		"task_id", id,
		"task_type", record.Request.Type,
	)
	logger.Info("processing task")

	binding, err := e.resolver.Resolve(record.Request.Type)
	if err != nil {
		// Submission validates the type, so this only fires if a record
		// was created outside the API path.
		logger.Error("no handler for task type", "error", err)
		if failErr := e.ledger.Fail(id, err.Error()); failErr != nil {
			logger.Error("failed to mark task failed", "error", failErr)
		}
		return
	}

	result, err := binding.Handler(context.Background(), record.Request)
	if err != nil {
		logger.Error("task execution failed", "family", binding.Family, "error", err)
		if failErr := e.ledger.Fail(id, err.Error()); failErr != nil {
			logger.Error("failed to mark task failed", "error", failErr)
		}
		return
	}

	logger.Info("task completed", "family", binding.Family)
	if completeErr := e.ledger.Complete(id, result); completeErr != nil {
		logger.Error("failed to mark task completed", "error", completeErr)
	}
}
