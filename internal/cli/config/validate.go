package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/leapstack-labs/esenrich/pkg/adapter"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.InputDir == "" {
		return fmt.Errorf("input_dir is required")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %s", c.HTTPTimeout)
	}
	if !adapter.IsRegistered(c.Database.Type) {
		return &adapter.UnknownAdapterError{Type: c.Database.Type, Available: adapter.ListAdapters()}
	}
	return nil
}

// ValidateDirectories checks that the data and input directories exist.
func (c *Config) ValidateDirectories() error {
	for _, d := range []struct{ key, path string }{
		{"data_dir", c.DataDir},
		{"input_dir", c.InputDir},
	} {
		info, err := os.Stat(d.path)
		if err != nil {
			return fmt.Errorf("%s does not exist: %s\nHint: create the directory or use --%s", d.key, d.path, strings.ReplaceAll(d.key, "_", "-"))
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory: %s", d.key, d.path)
		}
	}
	return nil
}

// ParseLevel parses a log level name (debug, info, warn, error).
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: use debug, info, warn or error", s)
	}
	return level, nil
}
