package mailparse

import (
	"fmt"
	"log/slog"
)

// Config holds the settings of one Parse call.
type Config struct {
	// Log receives a debug record every time the parser recovers from
	// malformed multipart structure. Defaults to a logger that discards everything.
	Log *slog.Logger

	// MaxDepth bounds multipart nesting. A part at this depth is kept as a
	// leaf even if it declares a boundary. Defaults to DefaultMaxDepth.
	MaxDepth int
}

// Option changes a Config.
type Option func(*Config)

// WithLogger sets the logger used for lenient-recovery diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(c *Config) {
		c.Log = log
	}
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(c *Config) {
		c.MaxDepth = depth
	}
}

// setDefaults fills in what was not configured and rejects what cannot work.
func (c *Config) setDefaults() error {
	if c.Log == nil {
		c.Log = noopLogger()
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth %d", ErrInvalidConfig, c.MaxDepth)
	}
	return nil
}
