package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/leapstack-labs/esenrich/pkg/adapter"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// Adapter implements the adapter.Adapter interface for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
	params *Params
}

// New creates a new DuckDB adapter instance. A nil logger discards output.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
		params:         &Params{},
	}
}

// Connect establishes a connection to DuckDB and applies the configured
// extensions and settings.
// Use ":memory:" (or an empty path) for an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	params, err := parseParams(cfg.Params)
	if err != nil {
		return err
	}

	path := cfg.Path
	if path == ":memory:" {
		path = ""
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	a.params = params

	if err := a.configure(ctx); err != nil {
		_ = a.Close()
		return err
	}

	a.Logger.Debug("connected to duckdb", "path", cfg.Path, "extensions", params.Extensions)
	return nil
}

func (a *Adapter) configure(ctx context.Context) error {
	for _, ext := range a.params.Extensions {
		if err := a.Exec(ctx, "INSTALL "+adapter.QuoteIdentifier(ext)); err != nil {
			return fmt.Errorf("failed to install extension %s: %w", ext, err)
		}
		if err := a.Exec(ctx, "LOAD "+adapter.QuoteIdentifier(ext)); err != nil {
			return fmt.Errorf("failed to load extension %s: %w", ext, err)
		}
	}

	keys := make([]string, 0, len(a.params.Settings))
	for k := range a.params.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		stmt := fmt.Sprintf("SET %s = %s", k, adapter.QuoteString(a.params.Settings[k]))
		if err := a.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply setting %s: %w", k, err)
		}
	}
	return nil
}

// LoadCSV loads data from a CSV file into a table.
// DuckDB infers the schema from the file; row order is preserved.
func (a *Adapter) LoadCSV(ctx context.Context, tableName string, filePath string) error {
	if a.DB == nil {
		return adapter.ErrNotConnected
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	query := fmt.Sprintf(
		"CREATE OR REPLACE TABLE %s AS SELECT * FROM read_csv_auto(%s, header=true, sample_size=%d, all_varchar=%t)",
		adapter.QuoteIdentifier(tableName),
		adapter.QuoteString(absPath),
		a.params.CSV.sampleSize(),
		a.params.CSV.AllVarchar,
	)

	a.Logger.Debug("loading csv", "table", tableName, "path", absPath)
	if err := a.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to load CSV %s: %w", filepath.Base(filePath), err)
	}

	return nil
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
