package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.in))
		})
	}
}

func TestNew_WritesSessionToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "app.log")

	logger, err := New(Config{Level: "debug", Format: FormatJSON, OutputPath: out})
	require.NoError(t, err)

	logger.Info("hello", zap.String("k", "v"))
	require.NoError(t, Sync(logger))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "v", entry["k"])

	session, ok := entry[SessionField].(string)
	require.True(t, ok, "session field should be a string")
	_, err = uuid.Parse(session)
	assert.NoError(t, err)
}

func TestNew_LevelFilters(t *testing.T) {
	out := filepath.Join(t.TempDir(), "app.log")

	logger, err := New(Config{Level: "warn", Format: FormatJSON, OutputPath: out})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, Sync(logger))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "dropped")
	assert.Contains(t, string(raw), "kept")
}

func TestNew_BadOutputPath(t *testing.T) {
	_, err := New(Config{OutputPath: filepath.Join(t.TempDir(), "missing", "dir", "app.log")})
	assert.Error(t, err)
}

func TestWithSessionAndNamed(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := Named(WithSession(zap.New(core), "abc"), "ui")

	logger.Info("opened")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "ui", entry.LoggerName)
	assert.Equal(t, "abc", entry.ContextMap()[SessionField])
}

func TestNamed_NilLogger(t *testing.T) {
	assert.NotNil(t, Named(nil, "x"))
	assert.NoError(t, Sync(nil))
}
