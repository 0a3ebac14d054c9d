package infrastructure

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderetl/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"garbage", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.input))
		})
	}
}

func TestInitializeLogger_FileOutput(t *testing.T) {
	ResetLoggerForTesting()
	t.Cleanup(ResetLoggerForTesting)

	logPath := filepath.Join(t.TempDir(), "logs", "orderetl.log")
	logger, err := InitializeLogger(config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logPath,
	})
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("transform started", slog.String("run_id", "test"))
	require.NoError(t, CloseLogFile())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "transform started")
	assert.Contains(t, string(data), `"run_id":"test"`)
}

func TestInitializeLogger_Once(t *testing.T) {
	ResetLoggerForTesting()
	t.Cleanup(ResetLoggerForTesting)

	first, err := InitializeLogger(config.LoggingConfig{Level: "debug", Output: "console"})
	require.NoError(t, err)

	second, err := InitializeLogger(config.LoggingConfig{Level: "error", Output: "console"})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, first, GetLogger())
}
