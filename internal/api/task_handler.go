package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/vandine/gateway-api/internal/api/shared"
	"github.com/vandine/gateway-api/internal/domain"
	"github.com/vandine/gateway-api/internal/ledger"
	"github.com/vandine/gateway-api/internal/route"
)

// TaskDispatcher schedules background execution of a ledger record.
// Satisfied by *executor.Executor.
type TaskDispatcher interface {
	Dispatch(id uuid.UUID)
}

// TaskHandler handles task submission and lookup.
type TaskHandler struct {
	ledger     *ledger.Ledger
	dispatcher TaskDispatcher
	router     *route.Router
	validator  *validator.Validate
	logger     *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(
	l *ledger.Ledger,
	dispatcher TaskDispatcher,
	router *route.Router,
	logger *slog.Logger,
) *TaskHandler {
	return &TaskHandler{
		ledger:     l,
		dispatcher: dispatcher,
		router:     router,
		validator:  validator.New(),
		logger:     logger.With("component", "task_handler"),
	}
}

// CreateTask handles POST /api/v1/tasks. Validation failures return 4xx
// before any ledger entry exists; once the record is created the response
// always reports it as pending, since execution happens in the background.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	taskType := domain.TaskType(req.Type)
	if _, err := h.router.Resolve(taskType); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	// The reserved schedule field must at least be a well-formed cron
	// expression; it is stored but never drives execution.
	if req.Schedule != "" {
		if _, err := cron.ParseStandard(req.Schedule); err != nil {
			err = fmt.Errorf("%w: %v", domain.ErrInvalidSchedule, err)
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return
		}
	}

	taskReq := domain.TaskRequest{
		Type:       taskType,
		Priority:   domain.PriorityMedium,
		Data:       req.Data,
		Schedule:   req.Schedule,
		RetryCount: domain.DefaultRetryCount,
		Timeout:    domain.DefaultTimeoutSeconds,
	}
	if req.Priority != "" {
		taskReq.Priority = domain.Priority(req.Priority)
	}
	if req.Data == nil {
		taskReq.Data = map[string]any{}
	}
	if req.RetryCount != nil {
		taskReq.RetryCount = *req.RetryCount
	}
	if req.Timeout != nil {
		taskReq.Timeout = *req.Timeout
	}

	record := h.ledger.Create(taskReq)
	h.dispatcher.Dispatch(record.ID)

	h.logger.Info("task submitted",
		"task_id", record.ID,
		"task_type", record.Request.Type,
		"priority", record.Request.Priority)

	shared.RespondWithJSON(w, r, http.StatusOK, TaskCreatedResponse{
		TaskID:              record.ID.String(),
		Status:              string(record.Status),
		Message:             fmt.Sprintf("Task %s queued for processing", record.Request.Type),
		CreatedAt:           record.CreatedAt,
		EstimatedCompletion: record.CreatedAt.Add(time.Duration(record.Request.Timeout) * time.Second),
	})
}

// GetTask handles GET /api/v1/tasks/{task_id}. Task identifiers are opaque
// to clients, so an unparseable id is indistinguishable from an unknown
// one: both are 404.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "task_id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	record, err := h.ledger.Get(id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, record)
}
