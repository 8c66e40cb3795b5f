package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wpmake/cli/internal/output"
	"github.com/wpmake/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show wpmake version information.

Displays:
  - wpmake version, commit, and build date
  - CUE SDK version used for blueprint validation`,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	output.Println(version.GetInfo().String())
	return nil
}
