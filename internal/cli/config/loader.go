package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable read by the loader.
const EnvPrefix = "ESENRICH_"

type (
	configKey struct{}
	loggerKey struct{}
)

// flagKeys maps CLI flag names to config keys. Flags not listed here are
// command options and never reach the config.
var flagKeys = map[string]string{
	"data-dir":      "data_dir",
	"input-dir":     "input_dir",
	"temp-dir":      "temp_dir",
	"log-level":     "log_level",
	"verbose":       "verbose",
	"addr":          "addr",
	"http-timeout":  "http_timeout",
	"database":      "database.path",
	"database-type": "database.type",
}

// sections are nested config blocks addressable from env vars:
// ESENRICH_REFERENCES_COUNTIES -> references.counties.
var sections = []string{"references", "database"}

// findConfigFile returns the config file to use.
// Priority: explicit path > esenrich.yaml > esenrich.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"esenrich.yaml", "esenrich.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// envKey transforms ESENRICH_DATA_DIR into data_dir.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, sec := range sections {
		if rest, ok := strings.CutPrefix(key, sec+"_"); ok {
			return sec + "." + rest
		}
	}
	return key
}

func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// Load reads configuration from defaults, the config file, environment
// variables and changed flags, in increasing order of precedence.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"data_dir":      DefaultDataDir,
		"input_dir":     DefaultInputDir,
		"log_level":     DefaultLogLevel,
		"verbose":       false,
		"addr":          DefaultAddr,
		"http_timeout":  DefaultHTTPTimeout.String(),
		"database.type": DefaultDatabase,
		"database.path": DefaultMemoryPath,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those explicitly set
	flagPaths := map[string]bool{}
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			if key == "data_dir" || key == "input_dir" || key == "temp_dir" {
				flagPaths[key] = true
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ConfigFile = used

	// Paths from the config file are relative to it; flag and env paths
	// are relative to the working directory.
	baseDir := ""
	if used != "" {
		if abs, err := filepath.Abs(used); err == nil {
			baseDir = filepath.Dir(abs)
		}
	}
	fromFile := func(key string) bool {
		return used != "" && !flagPaths[key] && os.Getenv(EnvPrefix+strings.ToUpper(key)) == ""
	}
	if fromFile("data_dir") {
		cfg.DataDir = resolvePathRelativeTo(cfg.DataDir, baseDir)
	}
	if fromFile("input_dir") {
		cfg.InputDir = resolvePathRelativeTo(cfg.InputDir, baseDir)
	}
	if fromFile("temp_dir") {
		cfg.TempDir = resolvePathRelativeTo(cfg.TempDir, baseDir)
	}

	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// NewLogger builds the CLI's text logger at the configured level.
func NewLogger(w io.Writer, cfg *Config) *slog.Logger {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// WithConfig stores cfg in ctx.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// GetConfig retrieves the config from ctx, or nil if none was stored.
func GetConfig(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return nil
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
