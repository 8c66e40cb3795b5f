// Package generators holds the built-in generator catalog and loads custom
// blueprints.
package generators

import (
	"io/fs"

	"github.com/wpmake/cli/internal/generator"
	"github.com/wpmake/cli/internal/installer"
	"github.com/wpmake/cli/internal/prompt"
	"github.com/wpmake/cli/internal/tree"
)

// Blueprint is the declarative part of a generator, read from
// blueprint.yaml.
type Blueprint struct {
	// Name is the generator identifier, also used as the CLI subcommand.
	Name string `json:"name"`

	// Type is the project kind shown in the goodbye message.
	Type string `json:"type"`

	Description string `json:"description,omitempty"`

	// Grunt enables Gruntfile.js handling.
	Grunt bool `json:"grunt,omitempty"`

	// GruntTasks lists task configs written to tasks/ from the starter of
	// the same name.
	GruntTasks []string `json:"gruntTasks,omitempty"`

	// Install lists the installers to run. Empty means npm and composer.
	Install []string `json:"install,omitempty"`

	Prompts []prompt.Question `json:"prompts,omitempty"`
	Tree    *tree.Node        `json:"tree,omitempty"`
}

// Generator is a blueprint plus the files and hooks it runs with.
type Generator struct {
	Blueprint *Blueprint

	// Templates is the generator's template directory.
	Templates fs.FS

	// Hooks run after the blueprint hooks.
	Hooks []generator.Hook

	// Builtin marks generators shipped with the binary.
	Builtin bool
}

// Name returns the blueprint name.
func (g *Generator) Name() string { return g.Blueprint.Name }

// Description returns the blueprint description.
func (g *Generator) Description() string { return g.Blueprint.Description }

// RunOptions are the per-run settings that do not come from the blueprint.
type RunOptions struct {
	Basename    string
	Profile     map[string]any
	Pad         string
	SkipInstall bool
	SkipMessage bool

	// Install overrides individual installers by name.
	Install map[string]bool
}

// InstallCommands returns the blueprint installers with overrides applied.
func (b *Blueprint) InstallCommands(overrides map[string]bool) installer.Commands {
	cmds := installer.DefaultCommands()
	if len(b.Install) > 0 {
		cmds = make(installer.Commands, 0, len(b.Install))
		for _, name := range b.Install {
			cmds = append(cmds, installer.Command{Name: name, Enabled: true})
		}
	}
	for _, c := range cmds {
		if enabled, ok := overrides[c.Name]; ok {
			cmds = cmds.With(c.Name, enabled)
		}
	}
	return cmds
}
