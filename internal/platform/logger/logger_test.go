package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vandine/gateway-api/internal/config"
)

func TestSetup_ReturnsLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "Info"} {
		logger := Setup(config.ServerConfig{Port: 8888, LogLevel: level})
		assert.NotNil(t, logger, "Setup should return a logger for level %q", level)
	}
}

func TestSetup_InvalidLevelFallsBack(t *testing.T) {
	logger := Setup(config.ServerConfig{Port: 8888, LogLevel: "verbose"})
	assert.NotNil(t, logger)
}
