package logging

import (
	"context"
	"sync"
)

// Log levels understood by every Logger
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARNING"
	LevelError = "ERROR"
)

// Logger provides structured logging for tracker operations
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

// Context keys for passing logger through context
type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return NoOpLogger{}
}

// OrNoOp returns logger, or a no-op logger when it is nil
func OrNoOp(logger Logger) Logger {
	if logger == nil {
		return NoOpLogger{}
	}
	return logger
}

// NoOpLogger discards everything
type NoOpLogger struct{}

func (NoOpLogger) Log(level, message string, metadata map[string]interface{}) {}

// RecordingLogger keeps entries in memory; used by tests
type RecordingLogger struct {
	mu      sync.Mutex
	Entries []RecordedEntry
}

// RecordedEntry is one captured log call
type RecordedEntry struct {
	Level    string
	Message  string
	Metadata map[string]interface{}
}

func (r *RecordingLogger) Log(level, message string, metadata map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, RecordedEntry{Level: level, Message: message, Metadata: metadata})
}

// Count returns how many entries were logged at level
func (r *RecordingLogger) Count(level string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}
