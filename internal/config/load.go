package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config file. Environment variables take precedence over values from the
// config file; both take precedence over defaults. Returns a populated
// Config struct or an error if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Optional config file in the working directory or /etc/gateway.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/gateway")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; a malformed one is not.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables use the GATEWAY_ prefix with underscores for
	// nesting, e.g. GATEWAY_SERVER_PORT, GATEWAY_UPSTREAM_DISPATCHER_TOKEN.
	v.SetEnvPrefix("GATEWAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers default values for all settings so the gateway
// starts without any configuration in a local development setup.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8888)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("upstream.collector_url", "http://localhost:8000")
	v.SetDefault("upstream.dispatcher_url", "http://localhost:8787")
	v.SetDefault("upstream.dispatcher_token", "dev-token")
	v.SetDefault("upstream.cloudflare_api_url", "https://api.cloudflare.com/client/v4")
	v.SetDefault("upstream.zone", "example.com")
	v.SetDefault("upstream.probe_timeout_seconds", 2)

	v.SetDefault("executor.worker_count", 2)
	v.SetDefault("executor.queue_size", 100)
}
