package generator

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/wpmake/cli/internal/errors"
	"github.com/wpmake/cli/internal/installer"
	"github.com/wpmake/cli/internal/output"
	"github.com/wpmake/cli/internal/prompt"
	"github.com/wpmake/cli/internal/runloop"
	"github.com/wpmake/cli/internal/tree"
)

func init() {
	output.SetWriters(io.Discard, io.Discard)
}

type fakeRunner struct {
	mu    sync.Mutex
	ran   []string
	fails map[string]error
}

func (f *fakeRunner) Run(_ context.Context, _, name string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ran = append(f.ran, name)
	return nil, f.fails[name]
}

var globalStarters = fstest.MapFS{
	"starters/_module.js":     {Data: []byte("module.exports = {};\n")},
	"starters/_gruntfile.js":  {Data: []byte("var gruntConfig = require( 'load-grunt-config' );\n\nmodule.exports = function ( grunt ) {\n\tvar conf = {\n\t\tjitGrunt: true,\n\t};\n\n\tgruntConfig( grunt, conf );\n};\n")},
	"starters/_package.json":  {Data: []byte(`{"name": "{{ .basename }}", "devDependencies": {"grunt": "^1.0.0"}}`)},
	"starters/_composer.json": {Data: []byte("")},
}

type recordingAsker struct {
	answers prompt.Answers
	asked   []string
}

func (r *recordingAsker) Ask(ctx context.Context, q prompt.Question) (prompt.Answers, error) {
	r.asked = append(r.asked, q.Name)
	return prompt.PresetAsker{Answers: r.answers}.Ask(ctx, q)
}

func sassLifecycle() Lifecycle {
	n := tree.New()
	n.Subtree(tree.KindJSON, "")["package.json"] = "package"
	n.Subtree(tree.KindTemplates, "")["style.{{ if .useSass }}scss{{ else }}css{{ end }}"] = "style"
	return Lifecycle{
		Prompts: []prompt.Question{
			{Name: "name", Message: "Project name"},
			{
				Name:    "useSass",
				Message: "Use Sass?",
				Type:    prompt.TypeConfirm,
				Tree: map[string][]prompt.Question{
					"false": {{Name: "useAutoprefixer", Message: "Use Autoprefixer?", Type: prompt.TypeConfirm}},
				},
			},
		},
		Tree: n,
	}
}

func sassHook(g *Generator) error {
	d := g.Data()
	if d.Bool("useSass") {
		return g.NodeDependency("grunt-sass", "^3.0.0", true)
	}
	if d.Bool("useAutoprefixer") {
		return g.NodeDependency("autoprefixer", "^10.0.0", true)
	}
	return nil
}

var styleTemplates = fstest.MapFS{
	"style": {Data: []byte("/* {{ .name }} */\n")},
}

type harness struct {
	gen    *Generator
	asker  *recordingAsker
	runner *fakeRunner
	dest   *Destination
}

func newHarness(t *testing.T, opts Options, answers prompt.Answers) *harness {
	t.Helper()
	if opts.Starters == nil {
		opts.Starters = globalStarters
	}
	if opts.Templates == nil {
		opts.Templates = styleTemplates
	}
	asker := &recordingAsker{answers: answers}
	runner := &fakeRunner{}
	dest := NewMemoryDestination(memfs.New())

	g, err := New(opts, Deps{
		Asker:       asker,
		Installer:   &installer.Installer{Runner: runner},
		Destination: dest,
	})
	require.NoError(t, err)
	return &harness{gen: g, asker: asker, runner: runner, dest: dest}
}

func (h *harness) read(t *testing.T, p string) string {
	t.Helper()
	data, err := util.ReadFile(h.dest.Filesystem(), p)
	require.NoError(t, err)
	return string(data)
}

func TestGenerator_SassTreeEndToEnd(t *testing.T) {
	h := newHarness(t, Options{
		Name:      "theme",
		Type:      "theme",
		Basename:  "demo",
		Lifecycle: sassLifecycle,
		Hooks:     []Hook{sassHook},
		Templates: fstest.MapFS{
			"style": {Data: []byte("/* Theme Name: {{ .name }} */\n")},
		},
	}, prompt.Answers{"name": "Demo", "useSass": "no", "useAutoprefixer": "yes"})

	require.NoError(t, h.gen.Run(context.Background()))

	assert.Equal(t, []string{"name", "useSass", "useAutoprefixer"}, h.asker.asked)
	assert.Equal(t, "/* Theme Name: Demo */\n", h.read(t, "style.css"))
	assert.Equal(t,
		"{\n\t\"name\": \"demo\",\n\t\"devDependencies\": {\n\t\t\"grunt\": \"^1.0.0\",\n\t\t\"autoprefixer\": \"^10.0.0\"\n\t}\n}\n",
		h.read(t, "package.json"))
	assert.Equal(t, "demo", h.gen.Data()["basename"])
	assert.Equal(t, "theme", h.gen.Data()["generator"])

	assert.ElementsMatch(t, []string{"npm", "composer"}, h.runner.ran)
	assert.Equal(t, map[string]string{
		"package.json": output.StatusCreated,
		"style.css":    output.StatusCreated,
	}, h.gen.Destination().Files())
}

func TestGenerator_SassTrueSkipsFollowUp(t *testing.T) {
	h := newHarness(t, Options{
		Name:        "theme",
		Basename:    "demo",
		Lifecycle:   sassLifecycle,
		Hooks:       []Hook{sassHook},
		SkipInstall: true,
	}, prompt.Answers{"name": "Demo", "useSass": true})

	require.NoError(t, h.gen.Run(context.Background()))

	assert.Equal(t, []string{"name", "useSass"}, h.asker.asked)
	assert.False(t, h.gen.Destination().Exists("style.css"))
	assert.Equal(t, "/* Demo */\n", h.read(t, "style.scss"))
	assert.Contains(t, h.read(t, "package.json"), `"grunt-sass": "^3.0.0"`)
	assert.Empty(t, h.runner.ran)
}

func TestGenerator_ExistingJSONWins(t *testing.T) {
	h := newHarness(t, Options{
		Name:        "plugin",
		Basename:    "demo",
		Lifecycle:   sassLifecycle,
		SkipInstall: true,
	}, prompt.Answers{"useSass": true})
	require.NoError(t, util.WriteFile(h.dest.Filesystem(), "package.json",
		[]byte(`{"version": "2.0.0", "name": "kept"}`), 0o644))

	require.NoError(t, h.gen.Run(context.Background()))

	assert.Equal(t,
		"{\n\t\"version\": \"2.0.0\",\n\t\"name\": \"kept\",\n\t\"devDependencies\": {\n\t\t\"grunt\": \"^1.0.0\"\n\t}\n}\n",
		h.read(t, "package.json"))
	assert.Equal(t, output.StatusModified, h.gen.Destination().Files()["package.json"])
}

func TestGenerator_BowerDependency(t *testing.T) {
	h := newHarness(t, Options{
		Name:     "library",
		Basename: "demo",
		Lifecycle: func() Lifecycle {
			return Lifecycle{Tree: tree.New()}
		},
		Hooks: []Hook{func(g *Generator) error {
			if err := g.BowerDependency("jquery", "^3.7.0", false); err != nil {
				return err
			}
			return g.BowerDependency("qunit", "^2.20.0", true)
		}},
		InstallCommands: installer.Commands{{Name: "bower", Enabled: true}},
		Starters: fstest.MapFS{
			"starters/_bower.json": {Data: []byte(`{"name": "{{ .basename }}", "private": true}`)},
		},
	}, nil)

	require.NoError(t, h.gen.Run(context.Background()))

	assert.Equal(t,
		"{\n\t\"name\": \"demo\",\n\t\"private\": true,\n\t\"dependencies\": {\n\t\t\"jquery\": \"^3.7.0\"\n\t},\n\t\"devDependencies\": {\n\t\t\"qunit\": \"^2.20.0\"\n\t}\n}\n",
		h.read(t, "bower.json"))
	assert.Equal(t, []string{"bower"}, h.runner.ran)
}

func TestGenerator_ProfileSeedsAnswers(t *testing.T) {
	h := newHarness(t, Options{
		Name: "plugin",
		Lifecycle: func() Lifecycle {
			return Lifecycle{Prompts: []prompt.Question{{Name: "authorName", Message: "Author"}}}
		},
		Profile:     map[string]any{"authorName": "10up", "license": "GPLv2+"},
		SkipInstall: true,
	}, nil)

	require.NoError(t, h.gen.Run(context.Background()))

	assert.Equal(t, "10up", h.gen.Data()["authorName"])
	assert.Equal(t, "GPLv2+", h.gen.Data()["license"])
}

func TestGenerator_ModulesAndGrunt(t *testing.T) {
	h := newHarness(t, Options{
		Name:  "plugin",
		Grunt: true,
		Lifecycle: func() Lifecycle {
			n := tree.New()
			n.Subtree(tree.KindModules, "assets/js")["main.js"] = nil
			return Lifecycle{Tree: n}
		},
		Hooks: []Hook{
			func(g *Generator) error {
				if err := g.GruntTask("concat", map[string]any{"dist": "x.js"}); err != nil {
					return err
				}
				return g.Gruntfile().SetDefault(map[string]any{"jitGrunt": false})
			},
		},
		SkipInstall: true,
	}, nil)

	require.NoError(t, h.gen.Run(context.Background()))

	assert.Equal(t, "module.exports = {};\n", h.read(t, "assets/js/main.js"))
	assert.Equal(t, "module.exports = {\n\tdist: 'x.js',\n};\n", h.read(t, "tasks/concat.js"))
	assert.Contains(t, h.read(t, GruntfileName), "\tvar conf = {\n\t\tjitGrunt: false,\n\t};")
}

func TestGenerator_ExistingModuleIsKept(t *testing.T) {
	h := newHarness(t, Options{
		Name: "plugin",
		Lifecycle: func() Lifecycle {
			n := tree.New()
			n.Subtree(tree.KindModules, "")["config.js"] = "module.exports = { fresh: true };\n"
			return Lifecycle{Tree: n}
		},
		SkipInstall: true,
	}, nil)
	require.NoError(t, util.WriteFile(h.dest.Filesystem(), "config.js",
		[]byte("module.exports = { edited: true };\n"), 0o644))

	require.NoError(t, h.gen.Run(context.Background()))

	assert.Equal(t, "module.exports = { edited: true };\n", h.read(t, "config.js"))
	assert.Equal(t, output.StatusIdentical, h.gen.Destination().Files()["config.js"])
}

func TestGenerator_MissingStarter(t *testing.T) {
	h := newHarness(t, Options{
		Name:     "plugin",
		Grunt:    true,
		Starters: fstest.MapFS{},
	}, nil)

	err := h.gen.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrStarterNotFound)
	assert.Contains(t, err.Error(), "Unable to locate starters/_gruntfile.js.")
}

func TestGenerator_InstallerFailureIsNotFatal(t *testing.T) {
	h := newHarness(t, Options{Name: "plugin"}, nil)
	h.runner.fails = map[string]error{"npm": errors.New("boom")}

	require.NoError(t, h.gen.Run(context.Background()))

	results := h.gen.Results()
	require.Len(t, results, 2)
	assert.Equal(t, "npm", results[0].Name)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
}

func TestGenerator_TemplatedLocations(t *testing.T) {
	h := newHarness(t, Options{
		Name: "plugin",
		Lifecycle: func() Lifecycle {
			n := tree.New()
			n.Child("includes").Subtree(tree.KindCopies, "")["{{ .slug }}.php"] = "raw.php"
			return Lifecycle{
				Prompts: []prompt.Question{{Name: "slug", Message: "Slug"}},
				Tree:    n,
			}
		},
		Templates:   fstest.MapFS{"raw.php": {Data: []byte("<?php // {{ not rendered }}\n")}},
		SkipInstall: true,
	}, prompt.Answers{"slug": "my-plugin"})

	require.NoError(t, h.gen.Run(context.Background()))

	assert.Equal(t, "<?php // {{ not rendered }}\n", h.read(t, "includes/my-plugin.php"))
}

func TestGenerator_StepsRunOnce(t *testing.T) {
	h := newHarness(t, Options{Name: "plugin", SkipInstall: true}, nil)
	assert.False(t, h.gen.Loop().Add(runloop.Writing, TagWalkTree, func(context.Context) error {
		t.Fatal("duplicate step ran")
		return nil
	}))
	require.NoError(t, h.gen.Run(context.Background()))
}

func TestNew_RequiresDestination(t *testing.T) {
	_, err := New(Options{Name: "x"}, Deps{})
	assert.Error(t, err)
}
