// Package astconfig wraps a JavaScript source file and exposes one
// configuration value inside it, typically the object assigned to
// module.exports, so it can be read and replaced without disturbing the rest
// of the file.
package astconfig

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// Method selects how the default location is looked up.
type Method string

const (
	// MethodAssignment finds the right-hand side of `<query> = value`.
	MethodAssignment Method = "assignment"
	// MethodCallExpression finds the first call to `<query>(...)`.
	MethodCallExpression Method = "callExpression"
)

// Defaults for a plain module file.
const (
	DefaultType   = "module"
	DefaultQuery  = "module.exports"
	DefaultIndent = "\t"
)

// ErrQueryNotFound is returned when the source has no node matching the query.
var ErrQueryNotFound = errors.New("query not found")

// Filter narrows the query result down to the configuration value.
type Filter func(*Node) *Node

// Options controls where the default value lives and how values are printed.
type Options struct {
	Type   string
	Query  string
	Method Method
	Filter Filter
	Indent string
}

// Option configures a Config.
type Option func(*Options)

// WithType sets the descriptive type tag.
func WithType(t string) Option {
	return func(o *Options) { o.Type = t }
}

// WithQuery sets the lookup method and its target.
func WithQuery(m Method, query string) Option {
	return func(o *Options) {
		o.Method = m
		o.Query = query
	}
}

// WithFilter sets the post-query filter.
func WithFilter(f Filter) Option {
	return func(o *Options) { o.Filter = f }
}

// WithIndent sets the indent used when printing non-string values.
func WithIndent(indent string) Option {
	return func(o *Options) { o.Indent = indent }
}

// Config is a parsed JavaScript file with a designated default location.
type Config struct {
	Type   string
	Query  string
	Method Method

	filter Filter
	indent string
	src    []byte
	tree   *sitter.Tree
}

// New parses source and returns a Config using the module defaults unless
// overridden by opts.
func New(source string, opts ...Option) (*Config, error) {
	o := Options{
		Type:   DefaultType,
		Query:  DefaultQuery,
		Method: MethodAssignment,
		Indent: DefaultIndent,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Filter == nil {
		o.Filter = func(n *Node) *Node { return n }
	}

	c := &Config{
		Type:   o.Type,
		Query:  o.Query,
		Method: o.Method,
		filter: o.Filter,
		indent: o.Indent,
	}
	if err := c.parse([]byte(source)); err != nil {
		return nil, err
	}
	return c, nil
}

// NewGruntfile wraps a Gruntfile. The default location is the second
// argument of the gruntConfig(grunt, conf) call, followed through to its
// declaration when it is a variable.
func NewGruntfile(source string, opts ...Option) (*Config, error) {
	base := []Option{
		WithType("gruntfile"),
		WithQuery(MethodCallExpression, "gruntConfig"),
		WithFilter(func(n *Node) *Node {
			return n.Argument(1).Resolve()
		}),
	}
	return New(source, append(base, opts...)...)
}

func (c *Config) parse(src []byte) error {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return fmt.Errorf("parsing %s source: %w", c.Type, err)
	}
	if tree.RootNode() == nil {
		return fmt.Errorf("parsing %s source: empty syntax tree", c.Type)
	}

	c.src = src
	c.tree = tree
	return nil
}

// Root returns the program node.
func (c *Config) Root() *Node {
	return c.wrap(c.tree.RootNode())
}

// HasErrors reports whether the parser had to recover from syntax errors.
// Sources that still contain template directives usually do.
func (c *Config) HasErrors() bool {
	return c.tree.RootNode().HasError()
}

// GetDefault returns the configured default location.
func (c *Config) GetDefault() (*Node, error) {
	var found *Node
	switch c.Method {
	case MethodAssignment:
		found = c.findAssignment()
	case MethodCallExpression:
		found = c.findCall()
	default:
		return nil, fmt.Errorf("unknown query method %q", c.Method)
	}
	if found == nil {
		return nil, fmt.Errorf("%s %s: %w", c.Method, c.Query, ErrQueryNotFound)
	}
	n := c.filter(found)
	if n == nil {
		return nil, fmt.Errorf("%s %s: filter matched nothing: %w", c.Method, c.Query, ErrQueryNotFound)
	}
	return n, nil
}

// SetDefault replaces the default location. Strings are inserted as source
// text; any other value is printed as a JavaScript literal first.
func (c *Config) SetDefault(v any) error {
	text, ok := v.(string)
	if !ok {
		text = Literal(v, c.indent)
	}
	n, err := c.GetDefault()
	if err != nil {
		return err
	}
	return n.SetValue(text)
}

// String returns the current source text.
func (c *Config) String() string {
	return string(c.src)
}

// Indent returns the indent used when printing values.
func (c *Config) Indent() string {
	return c.indent
}

func (c *Config) findAssignment() *Node {
	const pattern = `(assignment_expression left: (_) @left right: (_) @right)`
	var found *Node
	c.match(pattern, func(captures map[string]*sitter.Node) bool {
		if sameExpr(captures["left"].Content(c.src), c.Query) {
			found = c.wrap(captures["right"])
			return false
		}
		return true
	})
	return found
}

func (c *Config) findCall() *Node {
	const pattern = `(call_expression function: (_) @fn) @call`
	var found *Node
	c.match(pattern, func(captures map[string]*sitter.Node) bool {
		if sameExpr(captures["fn"].Content(c.src), c.Query) {
			found = c.wrap(captures["call"])
			return false
		}
		return true
	})
	return found
}

// match runs a tree-sitter query over the program and calls fn with the
// named captures of each match, in document order, until fn returns false.
func (c *Config) match(pattern string, fn func(map[string]*sitter.Node) bool) {
	q, err := sitter.NewQuery([]byte(pattern), javascript.GetLanguage())
	if err != nil {
		// Patterns are constants; a failure here is a programming error.
		panic(fmt.Sprintf("astconfig: bad query %q: %v", pattern, err))
	}
	defer q.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, c.tree.RootNode())

	for {
		m, ok := qc.NextMatch()
		if !ok {
			return
		}
		captures := make(map[string]*sitter.Node, len(m.Captures))
		for _, capture := range m.Captures {
			captures[q.CaptureNameForId(capture.Index)] = capture.Node
		}
		if !fn(captures) {
			return
		}
	}
}

func (c *Config) wrap(n *sitter.Node) *Node {
	if n == nil {
		return nil
	}
	return &Node{cfg: c, n: n}
}

// sameExpr compares two expressions ignoring whitespace.
func sameExpr(a, b string) bool {
	return strings.Join(strings.Fields(a), "") == strings.Join(strings.Fields(b), "")
}
