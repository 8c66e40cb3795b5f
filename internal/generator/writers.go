package generator

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/wpmake/cli/internal/astconfig"
)

// initModule turns a module leaf into a parsed config. An existing file at
// the destination wins over the leaf's source, which wins over the module
// starter.
func (g *Generator) initModule(value any, location string) (any, error) {
	if _, ok := value.(*astconfig.Config); ok {
		return nil, nil
	}
	cfg, err := g.moduleConfig(value, location)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (g *Generator) moduleConfig(value any, location string) (*astconfig.Config, error) {
	target, err := g.render(location)
	if err != nil {
		return nil, err
	}

	source, err := g.dest.ReadString(target, func() (string, error) {
		if s, ok := value.(string); ok && s != "" {
			return s, nil
		}
		return g.Starter("module", "js")
	})
	if err != nil {
		return nil, err
	}

	cfg, err := astconfig.New(source, astconfig.WithIndent(g.opts.Pad))
	if err != nil {
		return nil, fmt.Errorf("parsing module: %w", err)
	}
	return cfg, nil
}

// writeJSON merges the leaf object into the file at location. Keys already in
// the file keep their values. A string leaf names a JSON starter.
func (g *Generator) writeJSON(value any, location string) (any, error) {
	target, err := g.render(location)
	if err != nil {
		return nil, err
	}

	var generated *Object
	if name, ok := value.(string); ok {
		generated, err = g.StarterJSON(name)
	} else {
		generated, err = toObject(value)
	}
	if err != nil {
		return nil, err
	}

	existing := NewObject()
	data, err := g.dest.Read(target)
	switch {
	case err == nil:
		if existing, err = decodeObject(data); err != nil {
			return nil, fmt.Errorf("parsing existing %s: %w", target, err)
		}
	case !isNotExist(err):
		return nil, err
	}

	encoded, err := encodeObject(mergeObjects(generated, existing), g.opts.Pad)
	if err != nil {
		return nil, err
	}
	rendered, err := g.render(string(encoded))
	if err != nil {
		return nil, err
	}
	return nil, g.dest.Write(target, []byte(rendered))
}

// writeModule writes a module config, rendering the result.
func (g *Generator) writeModule(value any, location string) (any, error) {
	cfg, ok := value.(*astconfig.Config)
	if !ok {
		var err error
		if cfg, err = g.moduleConfig(value, location); err != nil {
			return nil, err
		}
	}

	target, err := g.render(location)
	if err != nil {
		return nil, err
	}
	rendered, err := g.render(cfg.String())
	if err != nil {
		return nil, err
	}
	return nil, g.dest.Write(target, []byte(rendered))
}

// writeTemplate renders the template named by value to location.
func (g *Generator) writeTemplate(value any, location string) (any, error) {
	source, err := g.templateSource(value)
	if err != nil {
		return nil, err
	}
	target, err := g.render(location)
	if err != nil {
		return nil, err
	}
	rendered, err := g.renderer.Render(target, string(source), g.data)
	if err != nil {
		return nil, err
	}
	return nil, g.dest.Write(target, []byte(rendered))
}

// writeCopy copies the file named by value to location verbatim.
func (g *Generator) writeCopy(value any, location string) (any, error) {
	source, err := g.templateSource(value)
	if err != nil {
		return nil, err
	}
	target, err := g.render(location)
	if err != nil {
		return nil, err
	}
	return nil, g.dest.Write(target, source)
}

func (g *Generator) templateSource(value any) ([]byte, error) {
	name, ok := value.(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("expected a template path, got %T", value)
	}
	if g.opts.Templates == nil {
		return nil, fmt.Errorf("no templates to read %s from", name)
	}
	data, err := fs.ReadFile(g.opts.Templates, name)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}
	return data, nil
}

func (g *Generator) writeGruntfile(context.Context) error {
	if g.grunt == nil {
		return nil
	}
	return g.dest.Write(GruntfileName, []byte(g.grunt.String()))
}
