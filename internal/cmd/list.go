package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/wpmake/cli/internal/generators"
	"github.com/wpmake/cli/internal/output"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in generators",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	gens, err := generators.List()
	if err != nil {
		return exitWithCode(err)
	}

	tbl := output.NewTable("GENERATOR", "TYPE", "INSTALLERS", "DESCRIPTION")
	for _, g := range gens {
		run, _ := g.Blueprint.InstallCommands(nil).Partition()
		installers := "-"
		if len(run) > 0 {
			installers = strings.Join(run, ", ")
		}
		tbl.Row(output.StyleNoun.Render(g.Name()), g.Blueprint.Type, installers, g.Description())
	}
	output.Println(tbl.String())
	return nil
}

