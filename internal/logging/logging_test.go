package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"yamdb/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := newWithWriter(&config.Config{LogLevel: "info", LogFormat: "json"}, &buf)

	logger.Debug("hidden")
	logger.Info("starting_api_server", "addr", "127.0.0.1:8080")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "starting_api_server", entry["msg"])
	assert.Equal(t, "yamdb-api", entry["service"])
	assert.Equal(t, "127.0.0.1:8080", entry["addr"])
	assert.Same(t, logger, slog.Default())
}

func TestNewTextLoggerHonoursLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := newWithWriter(&config.Config{LogLevel: "error", LogFormat: "text"}, &buf)

	logger.Warn("dropped")
	assert.Empty(t, buf.String())

	logger.Error("kept")
	assert.Contains(t, buf.String(), "msg=kept")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("anything"))
}
