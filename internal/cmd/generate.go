package cmd

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wpmake/cli/internal/config"
	oerrors "github.com/wpmake/cli/internal/errors"
	"github.com/wpmake/cli/internal/generator"
	"github.com/wpmake/cli/internal/generators"
	"github.com/wpmake/cli/internal/output"
	"github.com/wpmake/cli/internal/prompt"
)

// generateFlags are shared by every generator subcommand and `new`.
type generateFlags struct {
	dir          string
	yes          bool
	answers      string
	profile      string
	skipInstall  bool
	skipNpm      bool
	skipComposer bool
	skipMessage  bool
	pretend      bool
}

func (f *generateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.dir, "dir", "d", "", "Destination directory (default: current directory)")
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "Accept the default answer for every question")
	cmd.Flags().StringVar(&f.answers, "answers", "", "YAML file of answers keyed by question name")
	cmd.Flags().StringVar(&f.profile, "profile", "", "RC profile to seed answers from (env: WPMAKE_PROFILE)")
	cmd.Flags().BoolVar(&f.skipInstall, "skip-install", false, "Do not run any installer")
	cmd.Flags().BoolVar(&f.skipNpm, "skip-npm", false, "Do not run npm install")
	cmd.Flags().BoolVar(&f.skipComposer, "skip-composer", false, "Do not run composer install")
	cmd.Flags().BoolVar(&f.skipMessage, "skip-install-message", false, "Do not print the installer summary")
	cmd.Flags().BoolVar(&f.pretend, "pretend", false, "Show what would be written without touching the disk")
}

// NewGeneratorCmd creates the subcommand for a built-in generator.
func NewGeneratorCmd(name string) *cobra.Command {
	var flags generateFlags

	short := "Generate a WordPress " + name
	if g, err := generators.Get(name); err == nil && g.Description() != "" {
		short = g.Description()
	}

	cmd := &cobra.Command{
		Use:   name + " [dir]",
		Short: short,
		Long: fmt.Sprintf(`Scaffold a %s into a directory.

The questions are answered interactively on a terminal. Use --yes to take
every default, or --answers to read them from a YAML file. Defaults come
from the selected profile of the RC file.

Examples:
  # Scaffold into ./my-%[1]s
  wpmake %[1]s my-%[1]s

  # Non-interactive, without installing dependencies
  wpmake %[1]s my-%[1]s --yes --skip-install

  # Preview the files only
  wpmake %[1]s my-%[1]s --yes --pretend`, name),
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			g, err := generators.Get(name)
			if err != nil {
				return exitWithCode(err)
			}
			return runGenerator(c, g, &flags, args)
		},
	}
	flags.register(cmd)
	return cmd
}

// NewNewCmd creates the command that runs a custom blueprint.
func NewNewCmd() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "new <blueprint.yaml> [dir]",
		Short: "Generate a project from a custom blueprint",
		Long: `Run a custom blueprint.

The blueprint file declares the questions and the file tree. Templates are
read from the templates/ directory next to it, falling back to the shared
templates shipped with wpmake.

Examples:
  wpmake new ./blueprints/block/blueprint.yaml my-block`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(c *cobra.Command, args []string) error {
			g, err := generators.LoadFile(args[0])
			if err != nil {
				return exitWithCode(err)
			}
			return runGenerator(c, g, &flags, args[1:])
		},
	}
	flags.register(cmd)
	return cmd
}

func runGenerator(cmd *cobra.Command, g *generators.Generator, flags *generateFlags, args []string) error {
	cfg := GetConfig()

	dir := flags.dir
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		dir = "."
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return exitWithCode(fmt.Errorf("resolving destination: %w", err))
	}

	asker, err := newAsker(flags)
	if err != nil {
		return exitWithCode(err)
	}

	var dest *generator.Destination
	if flags.pretend {
		dest = generator.NewPretendDestination(dir)
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exitWithCode(fmt.Errorf("creating %s: %w", dir, err))
		}
		dest = generator.NewDestination(dir)
	}

	profile := config.ResolveProfile(flags.profile, cfg)
	output.Debug("resolved profile", "name", profile.Name, "source", profile.Source)

	opts, err := g.Options(generators.RunOptions{
		Basename:    filepath.Base(dir),
		Profile:     profile.Values.Normalize(),
		Pad:         cfg.Pad,
		SkipInstall: flags.skipInstall || flags.pretend,
		SkipMessage: flags.skipMessage,
		Install:     installOverrides(cfg, flags),
	})
	if err != nil {
		return exitWithCode(err)
	}

	gen, err := generator.New(opts, generator.Deps{
		Asker:       asker,
		Destination: dest,
	})
	if err != nil {
		return exitWithCode(err)
	}

	output.Debug("generating", "generator", g.Name(), "dir", dir, "pretend", flags.pretend)
	if err := gen.Run(cmd.Context()); err != nil {
		return exitWithCode(err)
	}
	return nil
}

// newAsker picks how questions are answered: an answers file first, then
// defaults when --yes is set or no terminal is attached.
func newAsker(flags *generateFlags) (prompt.Asker, error) {
	var fallback prompt.Asker = prompt.DefaultsAsker{}
	if !flags.yes && output.IsInteractive() {
		fallback = prompt.NewTerminalAsker()
	}
	if flags.answers == "" {
		return fallback, nil
	}

	answers, err := readAnswers(flags.answers)
	if err != nil {
		return nil, err
	}
	return prompt.PresetAsker{Answers: answers, Fallback: fallback}, nil
}

func readAnswers(path string) (prompt.Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError(
				fmt.Sprintf("answers file %s does not exist", path), path, "")
		}
		return nil, fmt.Errorf("reading answers: %w", err)
	}

	answers := prompt.Answers{}
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("answers file is not a YAML mapping: %v", err), path, "",
			"Write one `question: answer` pair per line.")
	}
	return answers, nil
}

// installOverrides merges the RC install toggles with the skip flags.
func installOverrides(cfg *config.Config, flags *generateFlags) map[string]bool {
	out := make(map[string]bool, len(cfg.Install)+2)
	maps.Copy(out, cfg.Install)
	if flags.skipNpm {
		out["npm"] = false
	}
	if flags.skipComposer {
		out["composer"] = false
	}
	return out
}
