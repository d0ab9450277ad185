package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vandine/gateway-api/internal/config"
	"github.com/vandine/gateway-api/internal/domain"
	"github.com/vandine/gateway-api/internal/ledger"
	"github.com/vandine/gateway-api/internal/route"
)

// recordingDispatcher captures dispatched ids without executing anything,
// so records stay pending for assertions.
type recordingDispatcher struct {
	mu  sync.Mutex
	ids []uuid.UUID
}

func (d *recordingDispatcher) Dispatch(id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ids = append(d.ids, id)
}

func (d *recordingDispatcher) dispatched() []uuid.UUID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]uuid.UUID(nil), d.ids...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRouter() *route.Router {
	cfg := config.UpstreamConfig{
		CollectorURL:        "http://localhost:8000",
		DispatcherURL:       "http://localhost:8787",
		DispatcherToken:     "test-token",
		CloudflareAPIURL:    "https://api.cloudflare.com/client/v4",
		Zone:                "example.com",
		ProbeTimeoutSeconds: 2,
	}
	logger := testLogger()
	return route.New(
		route.NewCloudflare(cfg, logger),
		route.NewCollector(cfg, logger),
		route.NewDispatcher(cfg, logger),
	)
}

type taskHandlerFixture struct {
	ledger     *ledger.Ledger
	dispatcher *recordingDispatcher
	handler    *TaskHandler
	mux        *chi.Mux
}

func newTaskHandlerFixture() *taskHandlerFixture {
	l := ledger.New()
	dispatcher := &recordingDispatcher{}
	handler := NewTaskHandler(l, dispatcher, testRouter(), testLogger())

	mux := chi.NewRouter()
	mux.Post("/api/v1/tasks", handler.CreateTask)
	mux.Get("/api/v1/tasks/{task_id}", handler.GetTask)

	return &taskHandlerFixture{
		ledger:     l,
		dispatcher: dispatcher,
		handler:    handler,
		mux:        mux,
	}
}

func (f *taskHandlerFixture) post(t *testing.T, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func (f *taskHandlerFixture) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func TestCreateTask_Success(t *testing.T) {
	t.Parallel()

	f := newTaskHandlerFixture()

	rec := f.post(t, map[string]any{
		"type":     "dns_update",
		"priority": "high",
		"data": map[string]any{
			"record":  "test.example.com",
			"type":    "A",
			"content": "10.0.0.1",
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp TaskCreatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "pending", resp.Status)
	assert.Contains(t, resp.Message, "dns_update")

	id, err := uuid.Parse(resp.TaskID)
	require.NoError(t, err)

	// Estimated completion is created_at plus the default timeout.
	assert.Equal(t,
		resp.CreatedAt.Add(domain.DefaultTimeoutSeconds*time.Second),
		resp.EstimatedCompletion)

	// The record exists, pending, and was handed to the dispatcher.
	record, err := f.ledger.Get(id)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusPending, record.Status)
	assert.Equal(t, domain.PriorityHigh, record.Request.Priority)
	assert.Equal(t, []uuid.UUID{id}, f.dispatcher.dispatched())

	metrics := f.ledger.Metrics()
	assert.Equal(t, 1, metrics.Total)
	assert.Equal(t, 1, metrics.ByType[domain.TaskTypeDNSUpdate])
}

func TestCreateTask_AppliesDefaults(t *testing.T) {
	t.Parallel()

	f := newTaskHandlerFixture()

	rec := f.post(t, map[string]any{"type": "cache_purge"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TaskCreatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	record, err := f.ledger.Get(uuid.MustParse(resp.TaskID))
	require.NoError(t, err)

	assert.Equal(t, domain.PriorityMedium, record.Request.Priority)
	assert.Equal(t, domain.DefaultRetryCount, record.Request.RetryCount)
	assert.Equal(t, domain.DefaultTimeoutSeconds, record.Request.Timeout)
	assert.NotNil(t, record.Request.Data)
}

func TestCreateTask_UnknownTypeRejectedBeforeLedger(t *testing.T) {
	t.Parallel()

	f := newTaskHandlerFixture()

	rec := f.post(t, map[string]any{"type": "bogus_type", "data": map[string]any{}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Unknown task type", resp["error"])

	// No ledger entry, no metrics movement, no dispatch.
	assert.Zero(t, f.ledger.Metrics().Total)
	assert.Empty(t, f.dispatcher.dispatched())
}

func TestCreateTask_ValidationFailures(t *testing.T) {
	t.Parallel()

	negative := -1
	zero := 0

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing type", map[string]any{"data": map[string]any{}}},
		{"invalid priority", map[string]any{"type": "dns_update", "priority": "urgent"}},
		{"negative retry count", map[string]any{"type": "dns_update", "retry_count": negative}},
		{"zero timeout", map[string]any{"type": "dns_update", "timeout": zero}},
		{"malformed schedule", map[string]any{"type": "dns_update", "schedule": "every five minutes"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newTaskHandlerFixture()
			rec := f.post(t, tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, f.ledger.Metrics().Total, "no ledger entry for a rejected submission")
			assert.Empty(t, f.dispatcher.dispatched())
		})
	}
}

func TestCreateTask_InvalidJSON(t *testing.T) {
	t.Parallel()

	f := newTaskHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, f.ledger.Metrics().Total)
}

func TestCreateTask_AcceptsValidSchedule(t *testing.T) {
	t.Parallel()

	f := newTaskHandlerFixture()

	rec := f.post(t, map[string]any{"type": "backup", "schedule": "*/5 * * * *"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TaskCreatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	record, err := f.ledger.Get(uuid.MustParse(resp.TaskID))
	require.NoError(t, err)
	assert.Equal(t, "*/5 * * * *", record.Request.Schedule)
}

func TestGetTask(t *testing.T) {
	t.Parallel()

	t.Run("existing task", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture()
		record := f.ledger.Create(domain.TaskRequest{
			Type:     domain.TaskTypeSSLCheck,
			Priority: domain.PriorityLow,
			Data:     map[string]any{},
		})

		rec := f.get(t, "/api/v1/tasks/"+record.ID.String())
		require.Equal(t, http.StatusOK, rec.Code)

		var got domain.TaskRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, record.ID, got.ID)
		assert.Equal(t, domain.TaskStatusPending, got.Status)
		assert.Equal(t, domain.TaskTypeSSLCheck, got.Request.Type)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture()
		rec := f.get(t, "/api/v1/tasks/"+uuid.NewString())
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture()
		rec := f.get(t, "/api/v1/tasks/not-a-uuid")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
