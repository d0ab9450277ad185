package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Upstream UpstreamConfig `mapstructure:"upstream" validate:"required"`
	Executor ExecutorConfig `mapstructure:"executor" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// UpstreamConfig names the external services the gateway routes tasks to.
type UpstreamConfig struct {
	// CollectorURL is the local system-metrics collector.
	CollectorURL string `mapstructure:"collector_url" validate:"required,url"`

	// DispatcherURL is the remote task dispatcher reached with a bearer
	// credential.
	DispatcherURL string `mapstructure:"dispatcher_url" validate:"required,url"`

	// DispatcherToken is sent as the Authorization bearer token on
	// dispatcher calls.
	DispatcherToken string `mapstructure:"dispatcher_token" validate:"required"`

	// CloudflareAPIURL is the DNS/CDN management API base. The zone
	// handlers currently synthesize their results locally, but the base
	// URL and zone name are threaded through so they appear in result
	// payloads.
	CloudflareAPIURL string `mapstructure:"cloudflare_api_url" validate:"required,url"`

	// Zone is the DNS zone the cloudflare family operates on.
	Zone string `mapstructure:"zone" validate:"required"`

	// ProbeTimeoutSeconds bounds each liveness probe issued by the status
	// endpoint.
	ProbeTimeoutSeconds int `mapstructure:"probe_timeout_seconds" validate:"required,gt=0"`
}

// ExecutorConfig tunes the background worker pool.
type ExecutorConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0"`
	QueueSize   int `mapstructure:"queue_size"   validate:"required,gt=0"`
}
