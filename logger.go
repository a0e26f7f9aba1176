package relago

import (
	"log/slog"
	"os"

	"github.com/relago/relago/ecs"
)

// Logger wraps slog.Logger with relago-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithKind adds a relationship kind field to the logger.
func (l *Logger) WithKind(kind string) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind),
	}
}

// LogAdd logs an add-relationship operation.
func (l *Logger) LogAdd(kind string, source, target ecs.Entity, err error) {
	if err != nil {
		l.Error("add relationship failed",
			"kind", kind,
			"source", source,
			"target", target,
			"error", err,
		)
	} else {
		l.Debug("relationship added",
			"kind", kind,
			"source", source,
			"target", target,
		)
	}
}

// LogRemove logs a remove-relationship operation.
func (l *Logger) LogRemove(kind string, source, target ecs.Entity, err error) {
	if err != nil {
		l.Error("remove relationship failed",
			"kind", kind,
			"source", source,
			"target", target,
			"error", err,
		)
	} else {
		l.Debug("relationship removed",
			"kind", kind,
			"source", source,
			"target", target,
		)
	}
}

// LogCascade logs a destruction cascade.
func (l *Logger) LogCascade(entity ecs.Entity, partners int) {
	l.Debug("destruction cascade completed",
		"entity", entity,
		"partners", partners,
	)
}
