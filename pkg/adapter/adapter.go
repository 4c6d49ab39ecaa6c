// Package adapter defines the contract of the tabular loading backends used
// by the enrichment service.
//
// A backend reads CSV files into named tables and serves them back through
// database/sql. Concrete implementations live in pkg/adapters/ subdirectories
// and register themselves in init().
package adapter

import (
	"context"
	"database/sql"
)

// Config holds the configuration for opening a backend.
type Config struct {
	// Type selects the registered adapter (e.g., "duckdb").
	Type string

	// Path is the database file. Empty or ":memory:" means in-memory.
	Path string

	// Params contains adapter-specific settings, decoded by each adapter.
	Params map[string]any
}

// Rows wraps sql.Rows to provide a consistent interface across adapters.
type Rows struct {
	*sql.Rows
}

// Adapter defines the interface that all backends must implement.
type Adapter interface {
	// Connect opens the backend using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the connection and releases resources.
	Close() error

	// Exec executes a statement that doesn't return rows.
	Exec(ctx context.Context, sql string) error

	// Query executes a statement that returns rows.
	Query(ctx context.Context, sql string) (*Rows, error)

	// LoadCSV creates or replaces tableName with the contents of a CSV file,
	// inferring column types from the data. The first line is the header.
	LoadCSV(ctx context.Context, tableName string, filePath string) error
}
