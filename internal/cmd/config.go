package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wpmake/cli/internal/config"
	oerrors "github.com/wpmake/cli/internal/errors"
	"github.com/wpmake/cli/internal/installer"
	"github.com/wpmake/cli/internal/output"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the wpmake RC file",
		Long: `Manage the wpmake RC file (~/.wpmakerc).

The RC file is YAML. Top-level keys select a profile and configure the
CLI; every other mapping is a profile of answer defaults.`,
	}
	cmd.AddCommand(NewConfigInitCmd())
	cmd.AddCommand(NewConfigShowCmd())
	return cmd
}

var configInitForce bool

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter RC file",
		Long: `Write a starter RC file with an empty default profile.

Examples:
  # Create ~/.wpmakerc
  wpmake config init

  # Overwrite an existing file
  wpmake config init --force`,
		Args: cobra.NoArgs,
		RunE: runConfigInit,
	}

	cmd.Flags().BoolVarP(&configInitForce, "force", "f", false,
		"Overwrite an existing RC file")

	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return exitWithCode(err)
	}

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return exitWithCode(err)
	}
	if exists && !configInitForce {
		return exitWithCode(&oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite the existing RC file.",
			Cause:    oerrors.ErrValidation,
		})
	}

	if err := config.WriteStarter(path, configInitForce); err != nil {
		return exitWithCode(err)
	}

	output.Println(output.FormatCheckmark("Configuration written to " + output.StyleNoun.Render(path)))
	output.Println("Fill in the default-profile section to seed your answers.")
	return nil
}

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
}

// effectiveConfig is what `config show` prints.
type effectiveConfig struct {
	File       string             `yaml:"file"`
	Profile    string             `yaml:"profile"`
	Source     string             `yaml:"source"`
	Pad        string             `yaml:"pad"`
	Installers installer.Commands `yaml:"installers"`
	Values     map[string]any     `yaml:"values"`
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	profile := config.ResolveProfile("", cfg)

	file := cfg.Path
	if file == "" {
		file = "(none)"
	}
	source := string(profile.Source)
	if source == "" {
		source = "none"
	}

	data, err := yaml.Marshal(effectiveConfig{
		File:       file,
		Profile:    profile.Name,
		Source:     source,
		Pad:        strconv.Quote(cfg.Pad),
		Installers: cfg.InstallCommands(installer.DefaultCommands()),
		Values:     profile.Values.Normalize(),
	})
	if err != nil {
		return exitWithCode(fmt.Errorf("encoding config: %w", err))
	}
	output.Print(string(data))

	if len(cfg.Profiles) > 0 {
		names := make([]string, 0, len(cfg.Profiles))
		for name := range cfg.Profiles {
			names = append(names, name)
		}
		sort.Strings(names)

		tbl := output.NewTable("PROFILE", "KEYS")
		for _, name := range names {
			tbl.Row(name, strconv.Itoa(len(cfg.Profiles[name])))
		}
		output.Println(tbl.String())
	}
	return nil
}

// configPath returns the RC file path: --config, then WPMAKE_CONFIG, then
// ~/.wpmakerc.
func configPath() (string, error) {
	if configFlag != "" {
		return config.ExpandPath(configFlag)
	}
	path, err := config.GetConfigFile()
	if err != nil {
		return "", oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}
	return config.ExpandPath(path)
}
