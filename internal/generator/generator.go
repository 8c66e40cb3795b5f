// Package generator runs the WP Make scaffolding lifecycle: it asks the
// configured questions, builds the file tree and writes it out, then runs
// the dependency installers.
package generator

import (
	"context"
	"fmt"
	"io/fs"
	"path"

	"github.com/wpmake/cli/internal/astconfig"
	"github.com/wpmake/cli/internal/installer"
	"github.com/wpmake/cli/internal/output"
	"github.com/wpmake/cli/internal/prompt"
	"github.com/wpmake/cli/internal/runloop"
	"github.com/wpmake/cli/internal/tree"
)

// Step tags. Each is scheduled at most once per run.
const (
	TagWelcome      = "wpm:welcome"
	TagInitGrunt    = "wpm:initGrunt"
	TagSetLifecycle = "wpm:setLifecycle"
	TagInstall      = "wpm:install"
	TagPrompts      = "wpm:prompts"
	TagMakeObjects  = "wpm:makeObjects"
	TagHooks        = "wpm:hooks"
	TagWalkTree     = "wpm:walkTree"
	TagGrunt        = "wpm:grunt"
	TagInstallMsg   = "installMessage"
	TagRunInstall   = "wpm:runInstall"
	TagGoodbye      = "wpm:goodbye"
)

// GruntfileName is the file the Gruntfile config is written to.
const GruntfileName = "Gruntfile.js"

// Hook customises a run after the data bag is known and before anything is
// written. Hooks typically add dependencies or Grunt tasks.
type Hook func(g *Generator) error

// Options describes one generator.
type Options struct {
	// Name identifies the generator in logs.
	Name string

	// Type is the kind of project generated ("plugin", "theme", ...). It is
	// used in the goodbye message.
	Type string

	// Basename is the name of the destination directory. It is added to the
	// data bag as "basename".
	Basename string

	// Lifecycle returns the generator's questions and tree. It is called
	// once, during initializing.
	Lifecycle func() Lifecycle

	Hooks []Hook

	// InstallCommands lists the installers. Nil means npm and composer.
	InstallCommands installer.Commands

	SkipInstall bool
	SkipMessage bool

	// Grunt enables Gruntfile.js handling.
	Grunt bool

	// Pad is the indent used for JSON files and JS config. Defaults to a tab.
	Pad string

	// Profile seeds the data bag and the question defaults.
	Profile map[string]any

	// Templates holds the generator's templates, rooted the way tree leaves
	// refer to them. It may contain starters/ overrides.
	Templates fs.FS

	// Starters holds the global starters/ directory.
	Starters fs.FS
}

// Deps are the collaborators of a run.
type Deps struct {
	Asker       prompt.Asker
	Installer   *installer.Installer
	Destination *Destination
	Renderer    *Renderer
}

// Generator is one lifecycle run.
type Generator struct {
	opts     Options
	asker    prompt.Asker
	inst     *installer.Installer
	dest     *Destination
	renderer *Renderer
	loop     *runloop.Loop

	lifecycle Lifecycle
	data      Data
	grunt     *astconfig.Config
	results   []installer.Result
	commands  installer.Commands
}

// New returns a generator with its default steps queued.
func New(opts Options, deps Deps) (*Generator, error) {
	if deps.Destination == nil {
		return nil, fmt.Errorf("generator %s: no destination", opts.Name)
	}
	if opts.Pad == "" {
		opts.Pad = "\t"
	}
	if deps.Asker == nil {
		deps.Asker = prompt.DefaultsAsker{}
	}
	if deps.Installer == nil {
		deps.Installer = installer.New()
	}
	if deps.Renderer == nil {
		deps.Renderer = NewRenderer()
	}

	commands := opts.InstallCommands
	if commands == nil {
		commands = installer.DefaultCommands()
	}
	if opts.SkipInstall {
		commands = commands.DisableAll()
	}

	g := &Generator{
		opts:      opts,
		asker:     deps.Asker,
		inst:      deps.Installer,
		dest:      deps.Destination,
		renderer:  deps.Renderer,
		loop:      runloop.New(),
		lifecycle: DefaultLifecycle(),
		data:      Data{},
		commands:  commands,
	}
	g.schedule()
	return g, nil
}

func (g *Generator) schedule() {
	g.loop.Add(runloop.Initializing, TagWelcome, g.welcome)
	g.loop.Add(runloop.Initializing, TagInitGrunt, g.initGrunt)
	g.loop.Add(runloop.Initializing, TagSetLifecycle, g.setLifecycle)
	g.loop.Add(runloop.Initializing, TagInstall, g.install)
	g.loop.Add(runloop.Prompting, TagPrompts, g.prompts)
	g.loop.Add(runloop.Configuring, TagMakeObjects, g.makeObjects)
	g.loop.Add(runloop.Default, TagHooks, g.runHooks)
	g.loop.Add(runloop.Writing, TagWalkTree, g.walkTree)
	g.loop.Add(runloop.End, TagGoodbye, g.goodbye)
}

// Run executes every queued step.
func (g *Generator) Run(ctx context.Context) error {
	output.Debug("running generator", "name", g.opts.Name, "type", g.opts.Type)
	if err := g.loop.Run(ctx); err != nil {
		return fmt.Errorf("generator %s: %w", g.opts.Name, err)
	}
	return nil
}

// Loop exposes the run loop so callers can queue extra steps.
func (g *Generator) Loop() *runloop.Loop { return g.loop }

// Data returns the data bag. It is filled in during prompting.
func (g *Generator) Data() Data { return g.data }

// Lifecycle returns the lifecycle in use.
func (g *Generator) Lifecycle() *Lifecycle { return &g.lifecycle }

// Destination returns where files are written.
func (g *Generator) Destination() *Destination { return g.dest }

// Gruntfile returns the Gruntfile config, or nil when Grunt is disabled.
func (g *Generator) Gruntfile() *astconfig.Config { return g.grunt }

// Results returns the installer outcomes once the install phase ran.
func (g *Generator) Results() []installer.Result { return g.results }

// Commands returns the installers with their final enabled state.
func (g *Generator) Commands() installer.Commands { return g.commands }

func (g *Generator) welcome(context.Context) error {
	output.Println(output.StyleWelcome.Render(output.Welcome()))
	return nil
}

func (g *Generator) initGrunt(context.Context) error {
	if !g.opts.Grunt {
		return nil
	}

	source, err := g.dest.ReadString(GruntfileName, func() (string, error) {
		return g.Starter("gruntfile", "js")
	})
	if err != nil {
		return err
	}

	cfg, err := astconfig.NewGruntfile(source, astconfig.WithIndent(g.opts.Pad))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", GruntfileName, err)
	}
	g.grunt = cfg
	g.loop.Add(runloop.Writing, TagGrunt, g.writeGruntfile)
	return nil
}

func (g *Generator) setLifecycle(context.Context) error {
	if g.opts.Lifecycle != nil {
		g.lifecycle = merge(DefaultLifecycle(), g.opts.Lifecycle())
	}
	return nil
}

func (g *Generator) install(context.Context) error {
	run, skipped := g.commands.Partition()
	if !g.opts.SkipMessage {
		g.loop.Add(runloop.Install, TagInstallMsg, func(context.Context) error {
			msg := installer.Summary(run, skipped,
				func(s string) string { return output.StyleInstall.Render(s) },
				func(s string) string { return output.StyleSkip.Render(s) })
			if msg != "" {
				output.Print(msg)
			}
			return nil
		})
	}
	if len(run) > 0 {
		g.loop.Add(runloop.Install, TagRunInstall, func(ctx context.Context) error {
			return g.runInstallers(ctx, run)
		})
	}
	return nil
}

func (g *Generator) runInstallers(ctx context.Context, names []string) error {
	err := output.RunWithSpinner(ctx, func() error {
		g.results = g.inst.RunAll(ctx, g.dest.Root, names)
		return nil
	}, output.WithTitle("Installing dependencies"))
	if err != nil {
		return err
	}

	for _, r := range g.results {
		if r.Err != nil {
			output.Warn("installer failed", "command", r.Name, "error", r.Err)
			if len(r.Output) > 0 {
				output.Debug("installer output", "command", r.Name, "output", string(r.Output))
			}
			continue
		}
		output.Info("installed dependencies", "command", r.Name)
	}
	return nil
}

func (g *Generator) prompts(ctx context.Context) error {
	seed := prompt.Answers{}
	for k, v := range g.opts.Profile {
		seed[k] = v
	}

	questions := prompt.WithDefaults(g.lifecycle.Prompts, g.opts.Profile)
	answers, err := prompt.Run(ctx, questions, seed, g.asker)
	if err != nil {
		return err
	}

	data := Data(answers)
	data["basename"] = g.opts.Basename
	data["generator"] = g.opts.Name
	g.data = data
	return nil
}

func (g *Generator) makeObjects(context.Context) error {
	return tree.Walk(g.lifecycle.Tree, tree.Handlers{
		Kinds: map[tree.Kind]tree.Handler{
			tree.KindModules: g.initModule,
		},
	}, "")
}

func (g *Generator) runHooks(context.Context) error {
	for i, hook := range g.opts.Hooks {
		if err := hook(g); err != nil {
			return fmt.Errorf("hook %d: %w", i, err)
		}
	}
	return nil
}

func (g *Generator) walkTree(context.Context) error {
	return tree.Walk(g.lifecycle.Tree, tree.Handlers{
		Pre: func(_ *tree.Node, dir string) error {
			target, err := g.render(dir)
			if err != nil {
				return err
			}
			return g.dest.MkdirAll(target)
		},
		Kinds: map[tree.Kind]tree.Handler{
			tree.KindJSON:      g.writeJSON,
			tree.KindModules:   g.writeModule,
			tree.KindCopies:    g.writeCopy,
			tree.KindTemplates: g.writeTemplate,
		},
	}, "")
}

func (g *Generator) goodbye(context.Context) error {
	output.Println(output.StyleGoodbye.Render(output.Goodbye(g.opts.Type)))

	if g.dest.Pretend() {
		changes, err := g.dest.Changes()
		if err != nil {
			return err
		}
		output.Print(output.RenderChanges(changes))
		return nil
	}

	root := g.opts.Basename
	if root == "" {
		root = path.Base(g.dest.Root)
	}
	if listing := output.RenderFileTree(root, g.dest.Files()); listing != "" {
		output.Print(listing)
	}
	return nil
}

func (g *Generator) render(text string) (string, error) {
	return g.renderer.Render(g.opts.Name, text, g.data)
}
