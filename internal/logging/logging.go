// Package logging builds the zap loggers used by the CLI and the HTTP
// service. Library packages never log; they return errors.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// ErrInvalidLevel is returned for level names outside the fixed severity set.
var ErrInvalidLevel = errors.New("invalid log level")

// DefaultLevel mirrors the historical CLI default of WARNING.
const DefaultLevel = "warning"

// ParseLevel resolves a free-text level name, case-insensitively. "warning"
// is accepted as an alias of "warn".
func ParseLevel(name string) (zapcore.Level, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case "warning":
		normalized = "warn"
	case "critical":
		normalized = "fatal"
	}
	lvl, err := zapcore.ParseLevel(normalized)
	if err != nil || normalized == "" {
		return zapcore.InfoLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
	}
	return lvl, nil
}

// New returns a console logger writing to w at level.
func New(level zapcore.Level, w io.Writer) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), level)
	return zap.New(core).Sugar()
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.New(zapcore.NewNopCore()).Sugar()
}

// NewObserved returns a logger recording entries at or above level in memory.
func NewObserved(level zapcore.Level) (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core).Sugar(), logs
}
