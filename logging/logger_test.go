package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LogLevelDebug,
		"INFO":    LogLevelInfo,
		"":        LogLevelInfo,
		"warning": LogLevelWarn,
		" error ": LogLevelError,
	}
	for in, want := range tests {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLogLevel("verbose")
	assert.Error(t, err)
}

func TestCuboLogger_JSONAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LogLevelInfo, Format: "json", Output: &buf}).
		WithComponent("resolver").
		WithContext("site", "demo")

	logger.Info("resolved source", "locator", "./app.json", "keys", 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "resolved source", entry["msg"])
	assert.Equal(t, "resolver", entry["component"])
	assert.Equal(t, "demo", entry["site"])
	assert.Equal(t, "./app.json", entry["locator"])
	assert.Equal(t, 2.0, entry["keys"])
}

func TestCuboLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LogLevelWarn, Format: "text", Output: &buf})

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestCuboLogger_WithDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger(&LoggerConfig{Level: LogLevelInfo, Format: "text", Output: &buf})
	_ = parent.WithContext("child", true)

	parent.Info("from parent")
	assert.NotContains(t, buf.String(), "child")
}

func TestCuboLogger_LogResolution(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LogLevelDebug, Format: "text", Output: &buf})

	logger.LogResolution("http://example.test/x", "remote", 5*time.Millisecond, errors.New("refused"))

	out := buf.String()
	assert.True(t, strings.Contains(out, "success=false"), out)
	assert.Contains(t, out, "error=refused")
}

func TestNoOpLogger(t *testing.T) {
	var l Logger = NoOpLogger{}
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
}

func TestNewSlogLogger(t *testing.T) {
	l := NewSlogLogger(LogLevelDebug, "", false)
	require.NotNil(t, l)
	assert.Equal(t, LogLevelDebug, l.level)

	cli := l.WithComponent("cli")
	assert.Equal(t, "cli", cli.component)
	assert.Empty(t, l.component)
}
