package commands

import (
	"errors"

	"github.com/leapstack-labs/esenrich/internal/cli/output"
	"github.com/leapstack-labs/esenrich/internal/service"
	"github.com/spf13/cobra"
)

// ErrEnrichmentFailed makes the process exit non-zero after a failure
// envelope has been printed. The failure is already reported, so callers
// should not print it again.
var ErrEnrichmentFailed = errors.New("enrichment failed")

// RunOptions holds options for the run command.
type RunOptions struct {
	Pointer string
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Enrich one survey upload",
		Long: `Enrich a survey upload with responder, location and county lookups.

The result envelope is printed to stdout as JSON:
  {"success": true, "data": "<records>"} or {"success": false, "error": "<message>"}

The command exits non-zero when the envelope reports a failure.`,
		Example: `  # Enrich input/ons-bucket/datafile.csv
  esenrich run --pointer ons-bucket/datafile.csv

  # Use a different reference directory
  esenrich run --pointer ons-bucket/datafile.csv --data-dir /srv/reference`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRun(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Pointer, "pointer", "p", "", "Survey pointer (bucket/key.csv)")
	_ = cmd.MarkFlagRequired("pointer")

	return cmd
}

func runRun(cmd *cobra.Command, opts *RunOptions) error {
	_, _, svc, err := setup(cmd)
	if err != nil {
		return err
	}

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeJSON)

	resp := svc.Apply(cmd.Context(), service.Request{S3Pointer: opts.Pointer})
	if err := r.JSON(resp); err != nil {
		return err
	}
	if !resp.Success {
		r.StatusLine(false, resp.Error)
		return ErrEnrichmentFailed
	}
	return nil
}
