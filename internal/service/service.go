// Package service is the request/response boundary around the enrichment
// core. It resolves the four data pointers, loads them into tables, runs the
// enrichment and wraps the outcome in a success/error envelope.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/esenrich/internal/enrich"
	"github.com/leapstack-labs/esenrich/internal/source"
	"github.com/leapstack-labs/esenrich/internal/table"
	"github.com/leapstack-labs/esenrich/pkg/adapter"

	_ "github.com/leapstack-labs/esenrich/pkg/adapters/duckdb" // default loading backend
)

// Default reference data locations.
const (
	DefaultLocationLookup  = "data://ons/enrichment/location_lookup.csv"
	DefaultResponderLookup = "data://ons/enrichment/responder_lookup.csv"
	DefaultCountyLookup    = "data://thomashensonons/testcollection/_countyLookup.csv"
)

// ErrNoRows is returned when no survey row matched all three lookups.
var ErrNoRows = errors.New("enrichment produced no rows: no survey row matched all lookups")

// Request asks for one enrichment run.
type Request struct {
	// S3Pointer locates the survey upload ("bucket/key.csv").
	S3Pointer string `json:"s3Pointer"`
}

// Response is the envelope returned to callers. Exactly one of Data and
// Error is meaningful, selected by Success.
type Response struct {
	Success bool   `json:"success"`
	Data    string `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// References holds the pointers of the fixed lookup datasets.
type References struct {
	Locations  string
	Responders string
	Counties   string
}

// DefaultReferences returns the standard lookup locations.
func DefaultReferences() References {
	return References{
		Locations:  DefaultLocationLookup,
		Responders: DefaultResponderLookup,
		Counties:   DefaultCountyLookup,
	}
}

// Config configures a Service.
type Config struct {
	// Store resolves data pointers (required)
	Store source.Store
	// Database selects and configures the CSV loading backend
	Database adapter.Config
	// References overrides the lookup locations; empty fields use defaults
	References References
	// TempDir is where fetched files are staged (default os.TempDir())
	TempDir string
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Service runs enrichment requests. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	store   source.Store
	dbCfg   adapter.Config
	refs    References
	tempDir string
	logger  *slog.Logger
}

// New creates a Service.
func New(cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, errors.New("service: a data store is required")
	}
	if cfg.Database.Type == "" {
		cfg.Database.Type = "duckdb"
	}
	if !adapter.IsRegistered(cfg.Database.Type) {
		return nil, &adapter.UnknownAdapterError{Type: cfg.Database.Type, Available: adapter.ListAdapters()}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	refs := DefaultReferences()
	if cfg.References.Locations != "" {
		refs.Locations = cfg.References.Locations
	}
	if cfg.References.Responders != "" {
		refs.Responders = cfg.References.Responders
	}
	if cfg.References.Counties != "" {
		refs.Counties = cfg.References.Counties
	}

	return &Service{
		store:   cfg.Store,
		dbCfg:   cfg.Database,
		refs:    refs,
		tempDir: cfg.TempDir,
		logger:  logger,
	}, nil
}

// References returns the lookup locations in use.
func (s *Service) References() References {
	return s.refs
}

// Apply runs one enrichment and never fails: every error is reported in the
// envelope. Fetch failures are reported by their message; anything else is
// reported as an unexpected exception.
func (s *Service) Apply(ctx context.Context, req Request) Response {
	enriched, err := s.Enrich(ctx, req)
	if err != nil {
		return failure(err)
	}

	data, err := Records(enriched)
	if err != nil {
		return failure(err)
	}
	return Response{Success: true, Data: data}
}

func failure(err error) Response {
	var fetchErr *source.FetchError
	if errors.As(err, &fetchErr) {
		return Response{Error: fetchErr.Error()}
	}
	return Response{Error: fmt.Sprintf("Unexpected exception %v", err)}
}

// Enrich loads the survey named by req and the reference datasets and
// returns the enriched table.
func (s *Service) Enrich(ctx context.Context, req Request) (*table.Table, error) {
	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID)
	start := time.Now()

	if req.S3Pointer == "" {
		return nil, errors.New("request has no s3Pointer")
	}

	dir, err := os.MkdirTemp(s.tempDir, "esenrich-"+runID+"-")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	db, err := adapter.Open(ctx, s.dbCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.dbCfg.Type, err)
	}
	defer func() { _ = db.Close() }()

	l := &loader{store: s.store, db: db, dir: dir, logger: logger}

	survey, err := l.load(ctx, "survey", source.SurveyPointer(req.S3Pointer))
	if err != nil {
		return nil, err
	}
	locations, err := l.load(ctx, "locations", s.refs.Locations)
	if err != nil {
		return nil, err
	}
	responders, err := l.load(ctx, "responders", s.refs.Responders)
	if err != nil {
		return nil, err
	}
	counties, err := l.load(ctx, "counties", s.refs.Counties)
	if err != nil {
		return nil, err
	}

	enriched, stats, err := enrich.EnrichWithStats(survey, responders, counties, locations)
	if err != nil {
		return nil, err
	}

	logger.Info("enrichment complete",
		"pointer", req.S3Pointer,
		"survey_rows", stats.SurveyRows,
		"enriched_rows", stats.AfterCounties,
		"dropped_rows", stats.Dropped(),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	if enriched.Len() == 0 {
		return nil, ErrNoRows
	}
	if stats.Dropped() > 0 {
		logger.Debug("rows dropped by lookups",
			"after_responders", stats.AfterResponders,
			"after_locations", stats.AfterLocations,
			"after_counties", stats.AfterCounties,
		)
	}

	return enriched, nil
}

// loader stages pointers on disk and reads them through the backend.
type loader struct {
	store  source.Store
	db     adapter.Adapter
	dir    string
	logger *slog.Logger
}

func (l *loader) load(ctx context.Context, name, pointer string) (*table.Table, error) {
	l.logger.Debug("fetching dataset", "table", name, "pointer", pointer)

	rc, err := l.store.Open(ctx, pointer)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	path := filepath.Join(l.dir, name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stage %s: %w", name, err)
	}
	if _, err := io.Copy(f, rc); err != nil {
		_ = f.Close()
		return nil, &source.FetchError{Pointer: pointer, Err: err}
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to stage %s: %w", name, err)
	}

	if err := l.db.LoadCSV(ctx, name, path); err != nil {
		return nil, fmt.Errorf("load %s (%s): %w", name, pointer, err)
	}

	rows, err := l.db.Query(ctx, "SELECT * FROM "+adapter.QuoteIdentifier(name))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	defer func() { _ = rows.Close() }()

	t, err := table.FromRows(name, rows.Rows)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	l.logger.Debug("dataset loaded", "table", name, "rows", t.Len(), "columns", len(t.Columns()))
	return t, nil
}
