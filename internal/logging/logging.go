// Package logging builds the application's zap logger. Console output is always
// attached; a log file can be added on top. Each logger carries the id of the
// session (one application run) so interleaved runs can be told apart.
package logging

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output formats
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// DefaultLevel is used when Config.Level is empty or unknown
const DefaultLevel = "info"

// SessionField is the field name carrying the session id
const SessionField = "session"

// Config holds logging configuration.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // console, json
	OutputPath string // optional file path, written in addition to stderr
}

// Levels returns the level names accepted in Config.Level
func Levels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ParseLevel converts a level name, falling back to info
func ParseLevel(level string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// New builds a logger for cfg and tags it with a fresh session id
func New(cfg Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Format == FormatJSON {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zc.Level = zap.NewAtomicLevelAt(ParseLevel(cfg.Level))
	zc.OutputPaths = []string{"stderr"}
	if cfg.OutputPath != "" {
		zc.OutputPaths = append(zc.OutputPaths, cfg.OutputPath)
	}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return WithSession(logger, uuid.NewString()), nil
}

// WithSession returns logger tagged with the given session id
func WithSession(logger *zap.Logger, sessionID string) *zap.Logger {
	return logger.With(zap.String(SessionField, sessionID))
}

// Named returns a child logger for a component
func Named(logger *zap.Logger, component string) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger.Named(component)
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func Sync(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}
	if err := logger.Sync(); err != nil && !isTerminalSyncError(err) {
		return err
	}
	return nil
}

// isTerminalSyncError matches the errors fsync returns for stderr on a tty
func isTerminalSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "inappropriate ioctl for device") ||
		strings.Contains(msg, "invalid argument") ||
		strings.Contains(msg, "bad file descriptor")
}
