// Package config loads the wpmake RC file: the selected profile of answer
// defaults plus CLI settings such as installer toggles and indentation.
package config

import (
	"github.com/wpmake/cli/internal/installer"
)

// DefaultPad is the indent used for generated JSON and JS.
const DefaultPad = "\t"

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Nil means on. Override with --timestamps.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Config is the parsed RC file.
type Config struct {
	// Profile explicitly selects a profile section.
	// Env: WPMAKE_PROFILE
	Profile string `mapstructure:"profile" yaml:"profile,omitempty"`

	// Default selects a profile section when Profile is unset.
	Default string `mapstructure:"default" yaml:"default,omitempty"`

	// Pad is the indent for generated JSON and JS.
	// Env: WPMAKE_PAD
	Pad string `mapstructure:"pad" yaml:"pad,omitempty"`

	// Install enables or disables individual installers by name.
	Install map[string]bool `mapstructure:"install" yaml:"install,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log,omitempty"`

	// Profiles holds every named profile section, keys preserved as written.
	Profiles map[string]Profile `mapstructure:"-" yaml:"-"`

	// Path is the file the config was read from, empty if none existed.
	Path string `mapstructure:"-" yaml:"-"`
}

// WithDefaults returns a copy of c with unset values filled in.
func (c *Config) WithDefaults() *Config {
	out := *c
	if out.Pad == "" {
		out.Pad = DefaultPad
	}
	return &out
}

// ProfileName returns the selected profile section name: Profile, falling
// back to Default.
func (c *Config) ProfileName() string {
	if c.Profile != "" {
		return c.Profile
	}
	return c.Default
}

// SelectedProfile returns the values of the selected profile, or an empty
// profile when none is selected or the section does not exist.
func (c *Config) SelectedProfile() Profile {
	p, ok := c.Profiles[c.ProfileName()]
	if !ok {
		return Profile{}
	}
	return p
}

// InstallCommands applies the Install toggles to base.
func (c *Config) InstallCommands(base installer.Commands) installer.Commands {
	out := base
	for _, cmd := range base {
		if enabled, ok := c.Install[cmd.Name]; ok {
			out = out.With(cmd.Name, enabled)
		}
	}
	return out
}
