// Package config provides configuration management for the esenrich CLI.
package config

import (
	"time"

	"github.com/leapstack-labs/esenrich/internal/service"
	"github.com/leapstack-labs/esenrich/pkg/adapter"
)

// Defaults applied before any config file, env var or flag.
const (
	DefaultDataDir     = "data"
	DefaultInputDir    = "input"
	DefaultLogLevel    = "info"
	DefaultAddr        = ":8080"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultDatabase    = "duckdb"
	DefaultMemoryPath  = ":memory:"
)

// Config holds all CLI configuration options.
type Config struct {
	// DataDir backs data:// pointers (reference lookups)
	DataDir string `koanf:"data_dir"`
	// InputDir backs s3+input:// pointers (survey uploads)
	InputDir string `koanf:"input_dir"`
	// TempDir stages fetched files; empty means the OS default
	TempDir     string           `koanf:"temp_dir"`
	LogLevel    string           `koanf:"log_level"`
	Verbose     bool             `koanf:"verbose"`
	Addr        string           `koanf:"addr"`
	HTTPTimeout time.Duration    `koanf:"http_timeout"`
	References  ReferencesConfig `koanf:"references"`
	Database    DatabaseConfig   `koanf:"database"`

	// ConfigFile is the file the config was read from, if any.
	ConfigFile string `koanf:"-"`
}

// ReferencesConfig overrides the lookup dataset pointers.
type ReferencesConfig struct {
	Locations  string `koanf:"locations"`
	Responders string `koanf:"responders"`
	Counties   string `koanf:"counties"`
}

// DatabaseConfig selects the CSV loading backend.
type DatabaseConfig struct {
	Type   string         `koanf:"type"`
	Path   string         `koanf:"path"`
	Params map[string]any `koanf:"params"`
}

// AdapterConfig converts the database section to an adapter.Config.
func (d DatabaseConfig) AdapterConfig() adapter.Config {
	return adapter.Config{
		Type:   d.Type,
		Path:   d.Path,
		Params: d.Params,
	}
}

// ServiceReferences converts the references section for the service layer.
func (r ReferencesConfig) ServiceReferences() service.References {
	return service.References{
		Locations:  r.Locations,
		Responders: r.Responders,
		Counties:   r.Counties,
	}
}
