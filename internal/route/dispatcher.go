package route

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/vandine/gateway-api/internal/config"
	"github.com/vandine/gateway-api/internal/domain"
)

// Dispatcher handles the worker-delegated family by forwarding the task to
// the remote dispatcher service with a bearer credential.
type Dispatcher struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *slog.Logger
}

// NewDispatcher creates the dispatcher family handler.
func NewDispatcher(cfg config.UpstreamConfig, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		baseURL: cfg.DispatcherURL,
		token:   cfg.DispatcherToken,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger.With("component", "dispatcher_handler"),
	}
}

// dispatchPayload is the body forwarded to the dispatcher's /tasks endpoint.
type dispatchPayload struct {
	Type     domain.TaskType `json:"type"`
	Priority domain.Priority `json:"priority"`
	Data     map[string]any  `json:"data"`
}

// Execute runs one dispatcher-family task.
func (d *Dispatcher) Execute(ctx context.Context, req domain.TaskRequest) (domain.Result, error) {
	d.logger.Info("executing dispatcher task", "task_type", req.Type)

	body, err := json.Marshal(dispatchPayload{
		Type:     req.Type,
		Priority: req.Priority,
		Data:     req.Data,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encoding dispatch payload: %v", ErrDependency, err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, d.baseURL+"/tasks", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: building dispatcher request: %v", ErrDependency, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+d.token)

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: dispatcher request: %v", ErrDependency, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			d.logger.Warn("failed to close dispatcher response body", "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: dispatcher returned status %d", ErrDependency, resp.StatusCode)
	}

	var result domain.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decoding dispatcher response: %v", ErrDependency, err)
	}

	return result, nil
}
