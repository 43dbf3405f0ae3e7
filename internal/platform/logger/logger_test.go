package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedasmart/deck-api/internal/config"
)

func TestSetupReturnsLogger(t *testing.T) {
	cases := []string{"debug", "info", "warn", "error", "DEBUG", "Info"}
	for _, level := range cases {
		t.Run(level, func(t *testing.T) {
			logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: level})
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestSetupInvalidLevelFallsBackToInfo(t *testing.T) {
	logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: "loud"})
	require.NoError(t, err)
	require.NotNil(t, logger)

	// Info must be enabled, debug must not.
	assert.True(t, logger.Enabled(t.Context(), slog.LevelInfo))
	assert.False(t, logger.Enabled(t.Context(), slog.LevelDebug))
}

func TestSetupSetsDefaultLogger(t *testing.T) {
	logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: "warn"})
	require.NoError(t, err)
	assert.Equal(t, logger, slog.Default())
}
