package wick

import (
	"fmt"
	"log/slog"
	"strings"
)

// logger is the package logger. Replace it with SetLogger.
var logger = slog.Default().With("pkg", "wick")

// SetLogger replaces the package logger. nil restores slog.Default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	logger = l.With("pkg", "wick")
}

// Logger returns the package logger, for adapters that log alongside the
// model.
func Logger() *slog.Logger {
	return logger
}

// ParseLogLevel maps "debug", "info", "warn" or "error" to a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
