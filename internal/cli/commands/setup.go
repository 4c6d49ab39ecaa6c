// Package commands implements the esenrich subcommands.
package commands

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/leapstack-labs/esenrich/internal/cli/config"
	"github.com/leapstack-labs/esenrich/internal/service"
	"github.com/leapstack-labs/esenrich/internal/source"
	"github.com/spf13/cobra"
)

// errNoConfig is returned when a command runs without the root command's
// config loading.
var errNoConfig = errors.New("configuration not loaded")

// newStore maps every pointer scheme to its backing store.
func newStore(cfg *config.Config) *source.Mux {
	mux := source.NewMux()
	mux.Handle(source.SchemeData, source.NewDirStore(cfg.DataDir))
	mux.Handle(source.SchemeS3Input, source.NewDirStore(cfg.InputDir))
	mux.Handle(source.SchemeFile, source.NewDirStore("/"))

	web := source.NewHTTPStore(&http.Client{Timeout: cfg.HTTPTimeout})
	mux.Handle(source.SchemeHTTP, web)
	mux.Handle(source.SchemeHTTPS, web)
	return mux
}

// newService builds the enrichment service from the loaded configuration.
func newService(cfg *config.Config, logger *slog.Logger) (*service.Service, error) {
	return service.New(service.Config{
		Store:      newStore(cfg),
		Database:   cfg.Database.AdapterConfig(),
		References: cfg.References.ServiceReferences(),
		TempDir:    cfg.TempDir,
		Logger:     logger,
	})
}

// setup returns the config, logger and service for a command.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, *service.Service, error) {
	cfg := config.GetConfig(cmd.Context())
	if cfg == nil {
		return nil, nil, nil, errNoConfig
	}
	logger := config.GetLogger(cmd.Context())

	svc, err := newService(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, svc, nil
}
