// Package tree models the nested lifecycle tree of output files and walks it.
package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Kind names a branch of a node. Each kind maps relative output paths to a
// source value that a kind-specific handler knows how to consume.
type Kind string

// Built-in branch kinds.
const (
	KindJSON      Kind = "json"
	KindModules   Kind = "modules"
	KindTemplates Kind = "templates"
	KindCopies    Kind = "copies"
)

// KnownKinds lists the built-in kinds in walk order.
var KnownKinds = []Kind{KindJSON, KindModules, KindTemplates, KindCopies}

// childrenKey is the reserved key holding nested directories.
const childrenKey = "tree"

// Branch maps a relative output path to its source value.
type Branch map[string]any

// Names returns the branch leaf names, sorted.
func (b Branch) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Node is one directory level of the lifecycle tree.
type Node struct {
	Branches map[Kind]Branch
	Children map[string]*Node
}

// New returns an empty node.
func New() *Node {
	return &Node{
		Branches: make(map[Kind]Branch),
		Children: make(map[string]*Node),
	}
}

// Branch returns the branch of the given kind, or nil if the node has none.
func (n *Node) Branch(kind Kind) Branch {
	if n == nil || n.Branches == nil {
		return nil
	}
	return n.Branches[kind]
}

// SetBranch replaces the branch of the given kind.
func (n *Node) SetBranch(kind Kind, b Branch) {
	if n.Branches == nil {
		n.Branches = make(map[Kind]Branch)
	}
	n.Branches[kind] = b
}

// Child returns the named child, creating it if needed.
func (n *Node) Child(name string) *Node {
	if n.Children == nil {
		n.Children = make(map[string]*Node)
	}
	child, ok := n.Children[name]
	if !ok || child == nil {
		child = New()
		n.Children[name] = child
	}
	return child
}

// Subtree returns the branch of kind at the slash separated path below n.
// Missing directories and the branch itself are created on the way, so two
// calls with the same arguments return the same map.
func (n *Node) Subtree(kind Kind, path string) Branch {
	node := n
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		node = node.Child(seg)
	}
	b := node.Branch(kind)
	if b == nil {
		b = make(Branch)
		node.SetBranch(kind, b)
	}
	return b
}

// Kinds returns the kinds present on the node: built-in kinds first in walk
// order, then any custom kinds sorted by name.
func (n *Node) Kinds() []Kind {
	if n == nil {
		return nil
	}
	var kinds []Kind
	for _, k := range KnownKinds {
		if _, ok := n.Branches[k]; ok {
			kinds = append(kinds, k)
		}
	}
	var custom []string
	for k := range n.Branches {
		if !isKnown(k) {
			custom = append(custom, string(k))
		}
	}
	sort.Strings(custom)
	for _, k := range custom {
		kinds = append(kinds, Kind(k))
	}
	return kinds
}

// ChildNames returns the names of the child directories, sorted.
func (n *Node) ChildNames() []string {
	if n == nil {
		return nil
	}
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isKnown(k Kind) bool {
	for _, known := range KnownKinds {
		if k == known {
			return true
		}
	}
	return false
}

// UnmarshalJSON decodes the literal form of a node: every key except "tree"
// is a branch of that kind, and "tree" holds the child directories.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = *New()
	for key, value := range raw {
		if key == childrenKey {
			var children map[string]*Node
			if err := json.Unmarshal(value, &children); err != nil {
				return fmt.Errorf("decoding children: %w", err)
			}
			for name, child := range children {
				if child == nil {
					child = New()
				}
				n.Children[name] = child
			}
			continue
		}
		b, err := decodeBranch(Kind(key), value)
		if err != nil {
			return fmt.Errorf("decoding %s branch: %w", key, err)
		}
		if b == nil {
			b = make(Branch)
		}
		n.Branches[Kind(key)] = b
	}
	return nil
}

// decodeBranch decodes one branch. Object leaves of a json branch stay
// encoded so their key order survives until the JSON writer reads them.
func decodeBranch(kind Kind, data []byte) (Branch, error) {
	if kind != KindJSON {
		var b Branch
		err := json.Unmarshal(data, &b)
		return b, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	b := make(Branch, len(raw))
	for name, leaf := range raw {
		trimmed := bytes.TrimSpace(leaf)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			b[name] = json.RawMessage(bytes.Clone(trimmed))
			continue
		}
		var v any
		if err := json.Unmarshal(leaf, &v); err != nil {
			return nil, err
		}
		b[name] = v
	}
	return b, nil
}

// MarshalJSON encodes the node in the same literal form UnmarshalJSON reads.
// Leaf values that do not encode as JSON are written as their string form.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(n.Branches)+1)
	for kind, b := range n.Branches {
		leaves := make(map[string]any, len(b))
		for name, v := range b {
			if _, err := json.Marshal(v); err != nil {
				v = fmt.Sprint(v)
			}
			leaves[name] = v
		}
		out[string(kind)] = leaves
	}
	if len(n.Children) > 0 {
		out[childrenKey] = n.Children
	}
	return json.Marshal(out)
}
