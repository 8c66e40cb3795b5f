package astconfig

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Node is a handle on a syntax node of a Config. Any edit to the Config
// re-parses the source, after which earlier handles must be looked up again.
type Node struct {
	cfg *Config
	n   *sitter.Node
}

// Type returns the grammar type, such as "object" or "call_expression".
func (n *Node) Type() string {
	if n == nil {
		return ""
	}
	return n.n.Type()
}

// Value returns the source text of the node.
func (n *Node) Value() string {
	if n == nil {
		return ""
	}
	return n.n.Content(n.cfg.src)
}

// SetValue replaces the node's source text and re-parses the file. Lines
// after the first are indented to match the line the node starts on.
func (n *Node) SetValue(text string) error {
	if n == nil {
		return fmt.Errorf("set value: %w", ErrQueryNotFound)
	}
	src := n.cfg.src
	start, end := n.n.StartByte(), n.n.EndByte()

	text = reindent(text, lineIndent(src, start))

	next := make([]byte, 0, len(src)-int(end-start)+len(text))
	next = append(next, src[:start]...)
	next = append(next, text...)
	next = append(next, src[end:]...)

	return n.cfg.parse(next)
}

// Arguments returns the arguments of a call expression.
func (n *Node) Arguments() []*Node {
	if n == nil || n.n.Type() != "call_expression" {
		return nil
	}
	args := n.n.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	out := make([]*Node, 0, args.NamedChildCount())
	for i := 0; i < int(args.NamedChildCount()); i++ {
		child := args.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		out = append(out, n.cfg.wrap(child))
	}
	return out
}

// Argument returns the i-th call argument, or nil.
func (n *Node) Argument(i int) *Node {
	args := n.Arguments()
	if i < 0 || i >= len(args) {
		return nil
	}
	return args[i]
}

// Property returns the value of the named key of an object literal, or nil.
func (n *Node) Property(key string) *Node {
	if n == nil || n.n.Type() != "object" {
		return nil
	}
	for i := 0; i < int(n.n.NamedChildCount()); i++ {
		pair := n.n.NamedChild(i)
		if pair.Type() != "pair" {
			continue
		}
		k := pair.ChildByFieldName("key")
		if k == nil || unquote(k.Content(n.cfg.src)) != key {
			continue
		}
		return n.cfg.wrap(pair.ChildByFieldName("value"))
	}
	return nil
}

// Resolve follows an identifier to the value of its variable declaration.
// Anything else, or an identifier with no initialised declaration, resolves
// to itself.
func (n *Node) Resolve() *Node {
	if n == nil || n.n.Type() != "identifier" {
		return n
	}
	name := n.Value()
	const pattern = `(variable_declarator name: (identifier) @name value: (_) @value)`
	var found *Node
	n.cfg.match(pattern, func(captures map[string]*sitter.Node) bool {
		if captures["name"].Content(n.cfg.src) == name {
			found = n.cfg.wrap(captures["value"])
			return false
		}
		return true
	})
	if found == nil {
		return n
	}
	return found
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// lineIndent returns the leading whitespace of the line containing offset.
func lineIndent(src []byte, offset uint32) string {
	lineStart := strings.LastIndexByte(string(src[:offset]), '\n') + 1
	end := lineStart
	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return string(src[lineStart:end])
}

func reindent(text, indent string) string {
	if indent == "" || !strings.Contains(text, "\n") {
		return text
	}
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = indent + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
