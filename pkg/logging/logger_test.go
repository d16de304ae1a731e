package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"", "hello"},
		{FormatCLI, "hello"},
		{FormatText, "msg=hello"},
		{FormatJSON, `"msg":"hello"`},
		{" JSON ", `"msg":"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := NewLogger(&buf, slog.LevelInfo, tt.format)
			require.NoError(t, err)
			require.NotNil(t, logger)

			logger.Info("hello")
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestNewLogger_JSONIsParsable(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, slog.LevelInfo, FormatJSON)
	require.NoError(t, err)

	logger.Info("evaluated", "score", 3)

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "evaluated", m["msg"])
	assert.InDelta(t, 3, m["score"], 0)
}

func TestNewLogger_UnknownFormat(t *testing.T) {
	logger, err := NewLogger(&bytes.Buffer{}, slog.LevelInfo, "xml")
	assert.Error(t, err)
	assert.Nil(t, logger)
}

func TestSetDefault(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	var buf bytes.Buffer
	require.NoError(t, SetDefault(&buf, "debug", FormatText))

	slog.Debug("from default")
	assert.Contains(t, buf.String(), "msg=\"from default\"")

	assert.Error(t, SetDefault(&buf, "info", "yaml"))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"  debug  ", slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.input))
		})
	}
}

func TestIsFormat(t *testing.T) {
	assert.True(t, IsFormat(""))
	assert.True(t, IsFormat("cli"))
	assert.True(t, IsFormat("Text"))
	assert.True(t, IsFormat("json"))
	assert.False(t, IsFormat("xml"))
}
