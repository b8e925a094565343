// Package logging provides the service-wide structured logger.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog with a fixed component attribute.
type Logger struct {
	*slog.Logger
}

// Config controls level, format and destination.
type Config struct {
	Level     string // debug, info, warn, error
	Format    string // "json" or "text"
	Output    io.Writer
	Component string
}

// New creates a logger from cfg. Unknown levels fall back to info.
func New(cfg Config) *Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	logger := slog.New(handler)
	if cfg.Component != "" {
		logger = logger.With(slog.String("component", cfg.Component))
	}
	return &Logger{Logger: logger}
}

// Default builds a logger for component configured via LOG_LEVEL and
// LOG_FORMAT.
func Default(component string) *Logger {
	return New(Config{
		Level:     os.Getenv("LOG_LEVEL"),
		Format:    os.Getenv("LOG_FORMAT"),
		Component: component,
	})
}

// Discard returns a logger that drops everything. Used in tests.
func Discard() *Logger {
	return New(Config{Output: io.Discard, Level: "error"})
}

// WithComponent returns a child logger tagged with name.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("component", name))}
}
