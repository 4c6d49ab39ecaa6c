// Package duckdb provides a DuckDB loading backend for esenrich.
//
// This file registers the DuckDB adapter with the adapter registry.
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/leapstack-labs/esenrich/pkg/adapters/duckdb"
package duckdb

import (
	"log/slog"

	"github.com/leapstack-labs/esenrich/pkg/adapter"
)

// Name is the registry name of the DuckDB adapter.
const Name = "duckdb"

func init() {
	adapter.Register(Name, func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
