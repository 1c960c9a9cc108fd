// Package logging builds the slog backend shared by every subsystem. Output
// goes to stderr and, when a log file is configured, to a rotating file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
)

// LogConfig configures a LogBackend.
type LogConfig struct {
	// LogFile enables file output. Empty logs to stderr only.
	LogFile string
	// DebugLevel is a level name (trace, debug, info, warn, error,
	// critical, off) applied to every subsystem.
	DebugLevel string
	// MaxLogFiles is the number of rotated files kept.
	MaxLogFiles int
	// MaxSizeKB rolls the file once it grows past this size.
	MaxSizeKB int64
	// Stderr overrides the console writer. Nil means os.Stderr.
	Stderr io.Writer
}

// LogBackend hands out per-subsystem loggers that share one output.
type LogBackend struct {
	mu      sync.Mutex
	backend *slog.Backend
	rotator *rotator.Rotator
	level   slog.Level
	loggers map[string]slog.Logger
}

// logWriter copies every record to the console and the log file. The
// backend serializes writes, so it needs no lock of its own.
type logWriter struct {
	console io.Writer
	file    io.Writer

	// fileFailed is set after the first failed file write has been
	// reported on the console.
	fileFailed bool
}

func (w *logWriter) Write(p []byte) (int, error) {
	n, err := w.console.Write(p)
	if w.file != nil {
		if _, ferr := w.file.Write(p); ferr != nil {
			if !w.fileFailed {
				w.fileFailed = true
				fmt.Fprintf(w.console, "log file write failed, further file errors are not reported: %v\n", ferr)
			}
			if err == nil {
				return len(p), fmt.Errorf("log file: %w", ferr)
			}
		}
	}
	if err != nil {
		return n, fmt.Errorf("console: %w", err)
	}
	return len(p), nil
}

// NewLogBackend creates the backend described by cfg.
func NewLogBackend(cfg LogConfig) (*LogBackend, error) {
	level := slog.LevelInfo
	if cfg.DebugLevel != "" {
		l, ok := slog.LevelFromString(cfg.DebugLevel)
		if !ok {
			return nil, fmt.Errorf("invalid debug level %q", cfg.DebugLevel)
		}
		level = l
	}

	w := &logWriter{console: cfg.Stderr}
	if w.console == nil {
		w.console = os.Stderr
	}

	lb := &LogBackend{
		level:   level,
		loggers: make(map[string]slog.Logger),
	}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0700); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		maxSize := cfg.MaxSizeKB
		if maxSize <= 0 {
			maxSize = 10 * 1024
		}
		maxFiles := cfg.MaxLogFiles
		if maxFiles <= 0 {
			maxFiles = 3
		}
		r, err := rotator.New(cfg.LogFile, maxSize, false, maxFiles)
		if err != nil {
			return nil, fmt.Errorf("failed to create file rotator: %w", err)
		}
		lb.rotator = r
		w.file = r
	}
	lb.backend = slog.NewBackend(w)
	return lb, nil
}

// Logger returns the logger for subsystem, creating it on first use.
func (lb *LogBackend) Logger(subsystem string) slog.Logger {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	if l, ok := lb.loggers[subsystem]; ok {
		return l
	}
	l := lb.backend.Logger(subsystem)
	l.SetLevel(lb.level)
	lb.loggers[subsystem] = l
	return l
}

// SetLevel changes the level of every subsystem, present and future.
func (lb *LogBackend) SetLevel(level slog.Level) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.level = level
	for _, l := range lb.loggers {
		l.SetLevel(level)
	}
}

// Subsystems returns the names of the loggers created so far.
func (lb *LogBackend) Subsystems() []string {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	names := make([]string, 0, len(lb.loggers))
	for name := range lb.loggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close flushes and closes the log file, if any.
func (lb *LogBackend) Close() error {
	if lb.rotator == nil {
		return nil
	}
	return lb.rotator.Close()
}
