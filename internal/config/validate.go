package config

import (
	"errors"
	"fmt"

	"github.com/tessro/spin/internal/recent"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.History.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("history: %w", err))
	}
	if err := c.Tail.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tail: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks HistoryConfig for errors.
func (c *HistoryConfig) Validate() error {
	var errs []error
	for _, f := range []struct {
		name  string
		value int
	}{
		{"search_max", c.SearchMax},
		{"play_max", c.PlayMax},
		{"favorite_max", c.FavoriteMax},
	} {
		if f.value < -1 {
			errs = append(errs, fmt.Errorf("%s must be -1 (unbounded) or greater", f.name))
		}
	}
	if _, err := recent.ParseRemovePolicy(c.RemovePolicy); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Validate checks TailConfig for errors.
func (c *TailConfig) Validate() error {
	if c.Interval < 0 {
		return errors.New("interval must be non-negative")
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	return nil
}
