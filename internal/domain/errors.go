// Package domain defines the core task entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrUnknownTaskType is returned when a request names a task type
	// outside the declared enumeration. Surfaced to submitters as a
	// client error before any ledger entry is created.
	ErrUnknownTaskType = errors.New("unknown task type")

	// ErrInvalidPriority is returned when a priority is outside the
	// declared enumeration.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidSchedule is returned when the reserved schedule field is
	// present but does not parse as a cron expression.
	ErrInvalidSchedule = errors.New("invalid schedule expression")

	// ErrTaskNotFound is returned when a task identifier has no ledger
	// entry.
	ErrTaskNotFound = errors.New("task not found")

	// ErrNotClaimable is returned when a status transition is attempted
	// from a state that does not permit it. This is what makes duplicate
	// execution of the same task id a no-op.
	ErrNotClaimable = errors.New("task is not in a claimable state")
)
