// Package cli provides the command-line interface for esenrich.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/leapstack-labs/esenrich/internal/cli/commands"
	"github.com/leapstack-labs/esenrich/internal/cli/config"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// skipConfig lists commands that run without loading configuration.
var skipConfig = map[string]bool{
	"help":       true,
	"completion": true,
	"__complete": true,
	"version":    true,
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "esenrich",
		Short: "esenrich - survey enrichment service",
		Long: `esenrich enriches survey uploads with responder, location and county
reference data and derives each row's strata and time-series period.

Pointers use URI schemes: s3+input:// resolves under --input-dir and data://
under --data-dir. http(s):// and file:// pointers are read directly.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipConfig[cmd.Name()] {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger := config.NewLogger(cmd.ErrOrStderr(), cfg)
			if cfg.ConfigFile != "" {
				logger.Debug("using config file", "path", cfg.ConfigFile)
			}

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./esenrich.yaml)")
	pf.String("data-dir", "", "Directory backing data:// reference pointers")
	pf.String("input-dir", "", "Directory backing s3+input:// survey pointers")
	pf.String("temp-dir", "", "Directory for staging fetched files")
	pf.String("log-level", "", "Log level (debug|info|warn|error)")
	pf.BoolP("verbose", "v", false, "Verbose output (same as --log-level debug)")
	pf.String("database", "", "Path to DuckDB database (default :memory:)")
	pf.String("database-type", "", "CSV loading backend")
	pf.Duration("http-timeout", 0, "Timeout for http(s):// pointers")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(commands.BuildInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
	}))
	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewPreviewCommand())
	rootCmd.AddCommand(commands.NewServeCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return execute(NewRootCmd(), os.Stderr)
}

func execute(rootCmd *cobra.Command, errOut io.Writer) error {
	if err := rootCmd.Execute(); err != nil {
		// run has already printed the failure envelope and status line.
		if !errors.Is(err, commands.ErrEnrichmentFailed) {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		}
		return err
	}
	return nil
}
