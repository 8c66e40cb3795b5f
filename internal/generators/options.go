package generators

import (
	"github.com/wpmake/cli/internal/generator"
)

// Options assembles the lifecycle options for one run of g.
func (g *Generator) Options(run RunOptions) (generator.Options, error) {
	b := g.Blueprint
	lifecycle, err := b.Lifecycle()
	if err != nil {
		return generator.Options{}, err
	}

	return generator.Options{
		Name:            b.Name,
		Type:            b.Type,
		Basename:        run.Basename,
		Lifecycle:       func() generator.Lifecycle { return lifecycle },
		Hooks:           g.Hooks,
		InstallCommands: b.InstallCommands(run.Install),
		SkipInstall:     run.SkipInstall,
		SkipMessage:     run.SkipMessage,
		Grunt:           b.Grunt,
		Pad:             run.Pad,
		Profile:         run.Profile,
		Templates:       g.Templates,
		Starters:        Starters(),
	}, nil
}
