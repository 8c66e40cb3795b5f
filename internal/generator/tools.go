package generator

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/wpmake/cli/internal/astconfig"
	oerrors "github.com/wpmake/cli/internal/errors"
	"github.com/wpmake/cli/internal/tree"
)

// Subtree returns the branch of kind at the slash separated directory path,
// creating nodes and the branch on the way.
func (g *Generator) Subtree(kind tree.Kind, dir string) tree.Branch {
	if g.lifecycle.Tree == nil {
		g.lifecycle.Tree = tree.New()
	}
	return g.lifecycle.Tree.Subtree(kind, dir)
}

// Starter returns the content of starters/_<name>.<ext>, looked up in the
// generator's templates first and the global starters second.
func (g *Generator) Starter(name, ext string) (string, error) {
	if ext == "" {
		ext = "js"
	}
	file := fmt.Sprintf("starters/_%s.%s", name, ext)

	for _, fsys := range []fs.FS{g.opts.Templates, g.opts.Starters} {
		if fsys == nil {
			continue
		}
		data, err := fs.ReadFile(fsys, file)
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("reading %s: %w", file, err)
		}
	}
	return "", oerrors.NewStarterNotFoundError(file)
}

// StarterJSON parses the JSON starter name. An empty starter is an empty
// object.
func (g *Generator) StarterJSON(name string) (*Object, error) {
	src, err := g.Starter(name, "json")
	if err != nil {
		return nil, err
	}
	obj, err := decodeObject([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("parsing starter %s: %w", name, err)
	}
	return obj, nil
}

// DependencyKeys locates a dependency manifest in the tree.
type DependencyKeys struct {
	// File is the manifest file name in the json branch of the root.
	File string
	// Starter is the JSON starter used when the manifest is not in the tree.
	Starter string
	// Normal and Dev are the keys holding runtime and development
	// dependencies.
	Normal string
	Dev    string
}

// Manifests.
var (
	NodeKeys = DependencyKeys{
		File:    "package.json",
		Starter: "package",
		Normal:  "dependencies",
		Dev:     "devDependencies",
	}
	ComposerKeys = DependencyKeys{
		File:    "composer.json",
		Starter: "composer",
		Normal:  "require",
		Dev:     "require-dev",
	}
	BowerKeys = DependencyKeys{
		File:    "bower.json",
		Starter: "bower",
		Normal:  "dependencies",
		Dev:     "devDependencies",
	}
)

// JSONDependency records name at version in the manifest described by keys.
func (g *Generator) JSONDependency(keys DependencyKeys, name, version string, dev bool) error {
	root := g.Subtree(tree.KindJSON, "")

	manifest, err := g.manifest(root, keys)
	if err != nil {
		return err
	}

	depKey := keys.Normal
	if dev {
		depKey = keys.Dev
	}

	deps := NewObject()
	if current, ok := manifest.Get(depKey); ok {
		if deps, err = toObject(current); err != nil {
			return fmt.Errorf("%s %s: %w", keys.File, depKey, err)
		}
	}
	deps.Set(name, version)
	manifest.Set(depKey, deps)
	return nil
}

func (g *Generator) manifest(root tree.Branch, keys DependencyKeys) (*Object, error) {
	var (
		obj *Object
		err error
	)
	switch v := root[keys.File].(type) {
	case nil:
		obj, err = g.StarterJSON(keys.Starter)
	case string:
		obj, err = g.StarterJSON(v)
	default:
		obj, err = toObject(v)
	}
	if err != nil {
		return nil, err
	}
	root[keys.File] = obj
	return obj, nil
}

// NodeDependency adds an npm package to package.json.
func (g *Generator) NodeDependency(name, version string, dev bool) error {
	return g.JSONDependency(NodeKeys, name, version, dev)
}

// ComposerDependency adds a Composer package to composer.json.
func (g *Generator) ComposerDependency(name, version string, dev bool) error {
	return g.JSONDependency(ComposerKeys, name, version, dev)
}

// BowerDependency adds a Bower package to bower.json.
func (g *Generator) BowerDependency(name, version string, dev bool) error {
	return g.JSONDependency(BowerKeys, name, version, dev)
}

// GruntTask registers the config module of a Grunt task under tasks/. config
// is module source, a value printed as the module's export, or nil for the
// module starter.
func (g *Generator) GruntTask(task string, config any) error {
	modules := g.Subtree(tree.KindModules, "tasks")
	location := task + ".js"

	switch v := config.(type) {
	case nil, string, *astconfig.Config:
		modules[location] = v
		return nil
	}

	src, err := g.Starter("module", "js")
	if err != nil {
		return err
	}
	cfg, err := astconfig.New(src, astconfig.WithIndent(g.opts.Pad))
	if err != nil {
		return err
	}
	if err := cfg.SetDefault(config); err != nil {
		return fmt.Errorf("grunt task %s: %w", task, err)
	}
	modules[location] = cfg
	return nil
}
