package matchgo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with matchgo-specific context.
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

// WithUID adds a uid field to the logger.
func (l *Logger) WithUID(uid uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("uid", uid),
	}
}

// WithN adds an n (requested result count) field to the logger.
func (l *Logger) WithN(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("n", n),
	}
}

// WithSize adds a size (live entry count) field to the logger.
func (l *Logger) WithSize(size int) *Logger {
	return &Logger{
		Logger: l.Logger.With("size", size),
	}
}

// LogPut logs a put operation.
func (l *Logger) LogPut(uid uint64, size int) {
	l.Debug("put completed",
		"uid", uid,
		"size", size,
	)
}

// LogErase logs an erase operation.
func (l *Logger) LogErase(uid uint64, found bool) {
	if !found {
		l.Debug("erase skipped, uid not present",
			"uid", uid,
		)
	} else {
		l.Debug("erase completed",
			"uid", uid,
		)
	}
}

// LogQuery logs a query operation.
func (l *Logger) LogQuery(n, candidates, results int) {
	l.Debug("query completed",
		"n", n,
		"candidates", candidates,
		"results", results,
	)
}

// LogClear logs a clear operation.
func (l *Logger) LogClear(removed int) {
	l.Debug("clear completed",
		"removed", removed,
	)
}
