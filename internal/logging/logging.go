// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Log levels accepted by Setup.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Formats accepted by Setup.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options selects the handler.
type Options struct {
	Level  string
	Format string

	// Writer receives log output. When nil, File is opened for appending,
	// or output goes to stderr when File is empty too.
	Writer io.Writer
	File   string
}

// Setup builds a logger from opts and installs it as slog.Default. The
// returned close func releases the log file, if one was opened.
func Setup(opts Options) (*slog.Logger, func() error, error) {
	w := opts.Writer
	closeFn := func() error { return nil }
	if w == nil && opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closeFn = f, f.Close
	}
	if w == nil {
		w = os.Stderr
	}

	logger := New(w, opts.Level, opts.Format)
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

// New builds a logger without touching slog.Default.
func New(w io.Writer, level, format string) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(format, FormatJSON) {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}

// Discard returns a logger that drops everything. The TUI uses it when no
// log file is configured, since stderr belongs to the terminal UI.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn, "WARNING":
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidLevel reports whether level names one of the four levels.
func ValidLevel(level string) bool {
	switch strings.ToUpper(level) {
	case LevelDebug, LevelInfo, LevelWarn, "WARNING", LevelError:
		return true
	}
	return false
}
