package route

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vandine/gateway-api/internal/config"
	"github.com/vandine/gateway-api/internal/domain"
)

func testUpstreamConfig(collectorURL, dispatcherURL string) config.UpstreamConfig {
	return config.UpstreamConfig{
		CollectorURL:        collectorURL,
		DispatcherURL:       dispatcherURL,
		DispatcherToken:     "test-token",
		CloudflareAPIURL:    "https://api.cloudflare.com/client/v4",
		Zone:                "example.com",
		ProbeTimeoutSeconds: 2,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(collectorURL, dispatcherURL string) *Router {
	cfg := testUpstreamConfig(collectorURL, dispatcherURL)
	logger := testLogger()
	return New(
		NewCloudflare(cfg, logger),
		NewCollector(cfg, logger),
		NewDispatcher(cfg, logger),
	)
}

func TestRouter_TableIsTotal(t *testing.T) {
	t.Parallel()

	router := newTestRouter("http://localhost:8000", "http://localhost:8787")

	for _, taskType := range domain.AllTaskTypes() {
		binding, err := router.Resolve(taskType)
		require.NoError(t, err, "routing must cover %s", taskType)
		assert.NotNil(t, binding.Handler)
		assert.NotEmpty(t, binding.Family)
	}
}

func TestRouter_FamilyAssignments(t *testing.T) {
	t.Parallel()

	router := newTestRouter("http://localhost:8000", "http://localhost:8787")

	expected := map[domain.TaskType]Family{
		domain.TaskTypeDNSUpdate:      FamilyCloudflare,
		domain.TaskTypeCachePurge:     FamilyCloudflare,
		domain.TaskTypeSSLCheck:       FamilyCloudflare,
		domain.TaskTypeFirewallRule:   FamilyCloudflare,
		domain.TaskTypeHealthCheck:    FamilyCollector,
		domain.TaskTypeSystemMetric:   FamilyCollector,
		domain.TaskTypeWorkerDeploy:   FamilyDispatcher,
		domain.TaskTypeAnalyticsQuery: FamilyDispatcher,
		domain.TaskTypeSecurityScan:   FamilyHybrid,
		domain.TaskTypeBackup:         FamilyHybrid,
	}

	for taskType, family := range expected {
		got, ok := router.Family(taskType)
		require.True(t, ok)
		assert.Equal(t, family, got, "family for %s", taskType)
	}
}

func TestRouter_UnknownType(t *testing.T) {
	t.Parallel()

	router := newTestRouter("http://localhost:8000", "http://localhost:8787")

	_, err := router.Resolve(domain.TaskType("bogus_type"))
	assert.ErrorIs(t, err, domain.ErrUnknownTaskType)

	_, ok := router.Family(domain.TaskType("bogus_type"))
	assert.False(t, ok)
}

func TestDescribe_CoversAllTypes(t *testing.T) {
	t.Parallel()

	for _, taskType := range domain.AllTaskTypes() {
		desc := Describe(taskType)
		assert.NotEmpty(t, desc)
		assert.NotEqual(t, "Unknown task type", desc, "missing description for %s", taskType)
	}
	assert.Equal(t, "Unknown task type", Describe(domain.TaskType("bogus")))
}
