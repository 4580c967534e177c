package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	appLogging "github.com/andrescamacho/architect-tracker/internal/application/logging"
	"github.com/andrescamacho/architect-tracker/internal/infrastructure/config"
)

var levelRank = map[string]int{
	appLogging.LevelDebug: 0,
	appLogging.LevelInfo:  1,
	appLogging.LevelWarn:  2,
	appLogging.LevelError: 3,
}

// WriterLogger writes structured log lines to an io.Writer
type WriterLogger struct {
	mu            sync.Mutex
	out           *log.Logger
	closer        io.Closer
	minRank       int
	json          bool
	includeCaller bool
	now           func() time.Time
}

// NewWriterLogger builds a logger from the logging configuration
func NewWriterLogger(cfg config.LoggingConfig) (*WriterLogger, error) {
	var (
		w      io.Writer
		closer io.Closer
	)
	switch cfg.Output {
	case "", "stderr":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	case "file":
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f
	default:
		return nil, fmt.Errorf("unsupported log output: %s", cfg.Output)
	}

	logger := NewLogger(w, cfg.Level, cfg.Format == "json")
	logger.includeCaller = cfg.IncludeCaller
	logger.closer = closer
	return logger, nil
}

// NewLogger creates a logger writing to w at the given minimum level
func NewLogger(w io.Writer, level string, asJSON bool) *WriterLogger {
	return &WriterLogger{
		out:     log.New(w, "", 0),
		minRank: levelRank[normalizeLevel(level)],
		json:    asJSON,
		now:     time.Now,
	}
}

// Log implements the application Logger interface
func (l *WriterLogger) Log(level, message string, metadata map[string]interface{}) {
	level = normalizeLevel(level)
	if levelRank[level] < l.minRank {
		return
	}

	caller := ""
	if l.includeCaller {
		if _, file, line, ok := runtime.Caller(1); ok {
			caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := l.now().UTC().Format(time.RFC3339)
	if l.json {
		record := make(map[string]interface{}, len(metadata)+4)
		for k, v := range metadata {
			record[k] = v
		}
		record["time"] = timestamp
		record["level"] = level
		record["msg"] = message
		if caller != "" {
			record["caller"] = caller
		}
		data, err := json.Marshal(record)
		if err != nil {
			l.out.Printf(`{"time":%q,"level":"ERROR","msg":"failed to encode log record: %s"}`, timestamp, err)
			return
		}
		l.out.Println(string(data))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", timestamp, level, message)
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, metadata[k])
	}
	if caller != "" {
		fmt.Fprintf(&b, " caller=%s", caller)
	}
	l.out.Println(b.String())
}

// Close releases the log file, if any
func (l *WriterLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func normalizeLevel(level string) string {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return appLogging.LevelDebug
	case "WARN", "WARNING":
		return appLogging.LevelWarn
	case "ERROR":
		return appLogging.LevelError
	default:
		return appLogging.LevelInfo
	}
}
