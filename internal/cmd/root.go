// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wpmake/cli/internal/config"
	"github.com/wpmake/cli/internal/generators"
	"github.com/wpmake/cli/internal/output"
	"github.com/wpmake/cli/internal/version"
)

var (
	// Global flags
	configFlag     string
	verboseFlag    bool
	timestampsFlag bool

	// Loaded configuration (set during PersistentPreRunE)
	wpmConfig *config.Config
)

// NewRootCmd creates the root command for the wpmake CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wpmake",
		Short: "Scaffold WordPress plugins, themes and libraries",
		Long: `wpmake asks a few questions and generates a ready-to-build WordPress
project: PHP bootstrap files, assets, package.json, composer.json and a
Gruntfile with its task configs.

Defaults for the questions come from the selected profile in ~/.wpmakerc.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to the RC file (env: WPMAKE_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	for _, name := range generators.Names() {
		rootCmd.AddCommand(NewGeneratorCmd(name))
	}
	rootCmd.AddCommand(NewNewCmd())
	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command) error {
	loaded, err := config.NewLoader().LoadWithDefaults(configFlag)
	if err != nil {
		// A broken RC file must not lock the user out of config init.
		output.Debug("config load error", "error", err)
		if cmd.Name() != "init" {
			return exitWithCode(err)
		}
		loaded = (&config.Config{}).WithDefaults()
	}
	wpmConfig = loaded

	// Build LogConfig with precedence: flag > config > default(true)
	logCfg := output.LogConfig{
		Verbose: verboseFlag,
	}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if wpmConfig.Log.Timestamps != nil {
		logCfg.Timestamps = wpmConfig.Log.Timestamps
	}

	output.SetupLogging(logCfg)

	info := version.GetInfo()
	output.Debug("wpmake started",
		"version", info.Version,
		"config", wpmConfig.Path,
		"profile", wpmConfig.ProfileName(),
	)

	return nil
}

// GetConfig returns the loaded configuration, or defaults when none was
// loaded.
func GetConfig() *config.Config {
	if wpmConfig == nil {
		return (&config.Config{}).WithDefaults()
	}
	return wpmConfig
}
