// Package debug provides development logging for the chatlog CLI.
package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	mu        sync.Mutex
	enabled   bool
	logFile   *os.File
	logger    *slog.Logger
	logPath   string
	sessionID string
)

// Enable turns on debug logging to the file at path (append mode).
func Enable(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	//nolint:gosec // G304: path is built from the xdg data directory or a flag.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	logFile = f
	logPath = path
	sessionID = uuid.New().String()
	logger = newLogger(f).With("session", sessionID)
	enabled = true

	logger.Info("debug session started", "time", time.Now().Format(time.RFC3339), "log_file", path)
	return nil
}

// EnableWriter turns on debug logging to w. Used by tests.
func EnableWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	sessionID = uuid.New().String()
	logger = newLogger(w).With("session", sessionID)
	enabled = true
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Disable turns off debug logging and closes the file.
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}

	if logFile != nil {
		_ = logFile.Close() //nolint:errcheck // Nothing useful to do on close failure.
		logFile = nil
	}
	logger = nil
	enabled = false
}

// IsEnabled returns whether debug logging is enabled.
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Log writes a debug message if logging is enabled.
func Log(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || logger == nil {
		return
	}
	logger.Debug(fmt.Sprintf(format, args...))
}

// LogPath returns the path to the log file.
func LogPath() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// SessionID returns the id written with every record of this session.
func SessionID() string {
	mu.Lock()
	defer mu.Unlock()
	return sessionID
}

// Event logs an operation with component context.
func Event(component, eventType string, attrs ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || logger == nil {
		return
	}
	logger.Info(eventType, append([]any{"component", component}, attrs...)...)
}

// Error logs an error with context.
func Error(component string, err error, context string) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || logger == nil {
		return
	}
	logger.Error(context, "component", component, "error", err)
}
