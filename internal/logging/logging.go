// Package logging builds the structured logger shared by the CLI, the
// interactive board and the stores.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

const Prefix = "taskflow"

type Options struct {
	Level string
	// File, when set, receives log lines in append mode.
	File string
	// Fallback is used when File is empty: stderr for CLI commands,
	// io.Discard while the terminal UI owns the screen.
	Fallback io.Writer
}

// New returns the logger and a close func for the underlying file.
func New(opts Options) (*log.Logger, func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	out := opts.Fallback
	if out == nil {
		out = io.Discard
	}
	closeFn := func() error { return nil }
	if strings.TrimSpace(opts.File) != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}
	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          Prefix,
		ReportTimestamp: opts.File != "",
	})
	return logger, closeFn, nil
}

// ParseLevel maps debug|info|warn|error to a log level; empty means info.
func ParseLevel(raw string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "info":
		return log.InfoLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("logging: unknown level %q", raw)
	}
}

// Discard is a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
