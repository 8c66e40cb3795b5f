package generators

import (
	"embed"
	"errors"
	"io/fs"
	"path"
)

//go:embed blueprints
var blueprintsFS embed.FS

//go:embed starters/*
var startersFS embed.FS

// Starters returns the global starters. Paths are starters/_<name>.<ext>.
func Starters() fs.FS {
	return startersFS
}

func builtinBlueprint(name string) ([]byte, error) {
	return fs.ReadFile(blueprintsFS, path.Join("blueprints", name, BlueprintFile))
}

func builtinTemplates(name string) fs.FS {
	sub, err := fs.Sub(blueprintsFS, path.Join("blueprints", name, "templates"))
	if err != nil {
		// fs.Sub only fails on an invalid path, and name comes from the
		// catalog.
		panic(err)
	}
	return layered{sub, sharedTemplates()}
}

func sharedTemplates() fs.FS {
	sub, err := fs.Sub(blueprintsFS, "blueprints/shared")
	if err != nil {
		panic(err)
	}
	return sub
}

// layered is a read-only union of filesystems. The first one holding a path
// wins.
type layered []fs.FS

// Open implements fs.FS.
func (l layered) Open(name string) (fs.File, error) {
	for _, fsys := range l {
		f, err := fsys.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
