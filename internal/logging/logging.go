// Package logging builds the application logger from configuration.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/tessro/spin/internal/config"
)

// New returns a logger for cfg writing to w, or to cfg.File when set.
// verbose forces debug level. The returned close func releases the log file.
func New(cfg config.LogConfig, verbose bool, w io.Writer) (*log.Logger, func() error, error) {
	closer := func() error { return nil }

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0700); err != nil {
			return nil, closer, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, closer, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closer = f.Close
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		_ = closer()
		return nil, func() error { return nil }, err
	}
	if verbose {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "spin",
		ReportTimestamp: cfg.File != "",
	})
	return logger, closer, nil
}

// ParseLevel maps a configured level name to a log level. Empty means info.
func ParseLevel(s string) (log.Level, error) {
	if s == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
