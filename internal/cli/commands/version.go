package commands

import (
	"fmt"
	"runtime"

	"github.com/leapstack-labs/esenrich/pkg/adapter"
	"github.com/spf13/cobra"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display esenrich version, build information and the available loading backends.`,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "esenrich v%s\n", info.Version)
			_, _ = fmt.Fprintf(w, "commit %s, built %s, %s\n", info.GitCommit, info.BuildDate, runtime.Version())
			_, _ = fmt.Fprintf(w, "backends: %v\n", adapter.ListAdapters())
		},
	}
}
