package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purplebook-dev/purplebook/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LogConfig{Level: "info", Format: "json"}, &buf)

	logger.Debug("hidden")
	logger.Info("entry appended", "owner", "o", "entry_id", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "entry appended", rec["msg"])
	assert.Equal(t, "o", rec["owner"])
	assert.EqualValues(t, 3, rec["entry_id"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LogConfig{Level: "warn", Format: "text"}, &buf)

	logger.Info("hidden")
	logger.Warn("balance sheet does not balance", "owner", "o")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "owner=o")
}
