package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/oliverbestmann/xylo/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })
}

func TestSetupText(t *testing.T) {
	restoreDefault(t)

	var buf bytes.Buffer
	logger := SetupWithWriter(config.Default(), &buf)

	logger.Debug("hidden")
	slog.Info("World created", slog.Int("seed", 42))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=\"World created\"")
	assert.Contains(t, out, "seed=42")
}

func TestSetupJSON(t *testing.T) {
	restoreDefault(t)

	cfg := config.Default()
	cfg.Environment = "production"
	cfg.LogLevel = "debug"

	var buf bytes.Buffer
	SetupWithWriter(cfg, &buf)

	slog.Debug("Resize surface", slog.Int("width", 800))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	assert.Equal(t, "Resize surface", record["msg"])
	assert.Equal(t, float64(800), record["width"])
	assert.Contains(t, record, "source")
}
