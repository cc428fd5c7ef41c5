// Package logging defines the logger used across pagesim. Its method set
// matches log/slog, so a *slog.Logger satisfies Logger directly.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger interface.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Discard is a Logger that drops everything.
var Discard Logger = discardLogger{}

type discardLogger struct{}

func (discardLogger) Debug(string, ...any) {}

func (discardLogger) Info(string, ...any) {}

func (discardLogger) Warn(string, ...any) {}

func (discardLogger) Error(string, ...any) {}

// Zap wraps a zap.Logger to implement Logger.
type Zap struct {
	logger *zap.SugaredLogger
}

// NewZap creates a Logger from a zap.Logger.
func NewZap(logger *zap.Logger) Logger {
	return &Zap{logger: logger.Sugar()}
}

// Debug logs a debug message with key-value pairs.
func (z *Zap) Debug(msg string, args ...any) {
	z.logger.Debugw(msg, args...)
}

// Info logs an info message with key-value pairs.
func (z *Zap) Info(msg string, args ...any) {
	z.logger.Infow(msg, args...)
}

// Warn logs a warning message with key-value pairs.
func (z *Zap) Warn(msg string, args ...any) {
	z.logger.Warnw(msg, args...)
}

// Error logs an error message with key-value pairs.
func (z *Zap) Error(msg string, args ...any) {
	z.logger.Errorw(msg, args...)
}

// Sync flushes buffered log entries.
func (z *Zap) Sync() error {
	return z.logger.Sync()
}

// ParseLevel converts "debug", "info", "warn" or "error" to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	var l zapcore.Level

	err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level))))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return l, nil
}

// NewConsole builds a human readable zap logger writing to stderr at the
// given level.
func NewConsole(level string) (*Zap, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(l)
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &Zap{logger: logger.Sugar()}, nil
}
