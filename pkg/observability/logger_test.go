package observability_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-chip/chipcmp/pkg/observability"
)

func TestDefaultConfig_HasSensibleDefaults(t *testing.T) {
	t.Parallel()

	cfg := observability.DefaultConfig()

	assert.Equal(t, "chipcmp", cfg.ServiceName)
	assert.Equal(t, observability.ModeCLI, cfg.Mode)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.False(t, cfg.LogJSON)
	assert.Nil(t, cfg.Output)
}

func TestNewLogger_JSON_ServiceAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cfg := observability.DefaultConfig()
	cfg.Output = &buf
	cfg.LogJSON = true
	cfg.LogLevel = slog.LevelDebug
	cfg.ServiceVersion = "1.2.3"

	logger := observability.NewLogger(cfg)
	logger.WithGroup("compare").Debug("read file", "lines", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	assert.Equal(t, "chipcmp", record["service"])
	assert.Equal(t, "cli", record["mode"])
	assert.Equal(t, "1.2.3", record["version"])
	assert.Equal(t, "read file", record["msg"])

	group, ok := record["compare"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 3, group["lines"], 0)
}

func TestNewLogger_LevelFilters(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cfg := observability.DefaultConfig()
	cfg.Output = &buf

	logger := observability.NewLogger(cfg)
	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "service=chipcmp")
	assert.NotContains(t, buf.String(), "version=")
}
