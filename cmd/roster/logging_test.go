package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/roster/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" DEBUG ": slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "parseLevel(%q)", in)
	}
}

func TestNewLogger_Prod(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Config{Env: "prod", Log: config.LogConfig{Level: "warn"}})

	logger.Info("dropped")
	logger.Warn("kept", "kind", "users")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "users", entry["kind"])
	assert.Contains(t, entry, "ts")
	assert.NotContains(t, entry, "time")
}

func TestNewLogger_Dev(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Config{Env: "dev", Log: config.LogConfig{Level: "debug"}})

	logger.Debug("hello", "kind", "cars")

	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "cars")
}
