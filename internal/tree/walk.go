package tree

import (
	"fmt"
	"path"
)

// Handler consumes one leaf. location is the leaf path joined onto the
// directory of its node. A non-nil result replaces the leaf value in place;
// returning nil leaves the tree untouched.
type Handler func(value any, location string) (any, error)

// Visitor is called once per node with the node's directory.
type Visitor func(n *Node, dir string) error

// Handlers configures a walk. Pre runs before any branch of a node and Post
// after all of them. Kinds without a handler are skipped.
type Handlers struct {
	Pre   Visitor
	Post  Visitor
	Kinds map[Kind]Handler
}

// Walk visits root and its descendants depth first, dispatching every leaf of
// a handled kind to its handler. The first error aborts the walk.
func Walk(root *Node, h Handlers, dir string) error {
	if root == nil {
		return nil
	}

	if h.Pre != nil {
		if err := h.Pre(root, dir); err != nil {
			return fmt.Errorf("entering %q: %w", dir, err)
		}
	}

	for _, kind := range root.Kinds() {
		handle := h.Kinds[kind]
		if handle == nil {
			continue
		}
		b := root.Branches[kind]
		for _, name := range b.Names() {
			location := path.Join(dir, name)
			result, err := handle(b[name], location)
			if err != nil {
				return fmt.Errorf("%s %s: %w", kind, location, err)
			}
			if result != nil {
				b[name] = result
			}
		}
	}

	if h.Post != nil {
		if err := h.Post(root, dir); err != nil {
			return fmt.Errorf("leaving %q: %w", dir, err)
		}
	}

	for _, name := range root.ChildNames() {
		if err := Walk(root.Children[name], h, path.Join(dir, name)); err != nil {
			return err
		}
	}

	return nil
}
