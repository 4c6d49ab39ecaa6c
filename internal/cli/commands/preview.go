package commands

import (
	"fmt"

	"github.com/leapstack-labs/esenrich/internal/cli/output"
	"github.com/leapstack-labs/esenrich/internal/service"
	"github.com/leapstack-labs/esenrich/internal/table"
	"github.com/spf13/cobra"
)

// PreviewOptions holds options for the preview command.
type PreviewOptions struct {
	Pointer string
	Limit   int
	Output  string
}

// NewPreviewCommand creates the preview command.
func NewPreviewCommand() *cobra.Command {
	opts := &PreviewOptions{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show enriched rows as a table",
		Long: `Run the enrichment for a survey upload and show the first rows.

On a terminal the rows are drawn as a table; when piped they are written
as a JSON array. Use --output to force either form.`,
		Example: `  esenrich preview --pointer ons-bucket/datafile.csv --limit 5`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreview(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Pointer, "pointer", "p", "", "Survey pointer (bucket/key.csv)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum rows to show (0 for all)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "auto", "Output format (auto|text|json)")
	_ = cmd.MarkFlagRequired("pointer")

	_ = cmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runPreview(cmd *cobra.Command, opts *PreviewOptions) error {
	if opts.Limit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}

	_, _, svc, err := setup(cmd)
	if err != nil {
		return err
	}

	enriched, err := svc.Enrich(cmd.Context(), service.Request{S3Pointer: opts.Pointer})
	if err != nil {
		return err
	}

	shown := head(enriched, opts.Limit)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Output))

	switch r.EffectiveMode() {
	case output.ModeJSON:
		data, err := service.Records(shown)
		if err != nil {
			return err
		}
		r.Println("[" + data + "]")
	default:
		r.Header(fmt.Sprintf("%s (%d of %d rows)", opts.Pointer, shown.Len(), enriched.Len()))
		rows := make([][]any, shown.Len())
		for i := range rows {
			rows[i] = shown.Row(i).Values()
		}
		r.Table(shown.Columns(), rows)
	}
	return nil
}

// head returns the first n rows of t, or t itself when n is 0 or covers it.
func head(t *table.Table, n int) *table.Table {
	if n == 0 || n >= t.Len() {
		return t
	}
	out := table.New(t.Name, t.Columns()...)
	for i := 0; i < n; i++ {
		_ = out.Append(t.Row(i).Values()...)
	}
	return out
}
