package api

import (
	"errors"
	"net/http"

	"github.com/vandine/gateway-api/internal/domain"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrUnknownTaskType),
		errors.Is(err, domain.ErrInvalidPriority),
		errors.Is(err, domain.ErrInvalidSchedule):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrUnknownTaskType):
		return "Unknown task type"

	case errors.Is(err, domain.ErrInvalidPriority):
		return "Invalid priority"

	case errors.Is(err, domain.ErrInvalidSchedule):
		return "Invalid schedule expression"

	case errors.Is(err, domain.ErrTaskNotFound):
		return "Task not found"

	default:
		return "An unexpected error occurred"
	}
}
