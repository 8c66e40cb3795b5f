package generators

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema/blueprint.cue
var blueprintSchemaCUE []byte

// Validator checks decoded blueprints against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	compiled := ctx.CompileBytes(blueprintSchemaCUE)
	if compiled.Err() != nil {
		return nil, fmt.Errorf("compiling blueprint schema: %w", compiled.Err())
	}
	schema := compiled.LookupPath(cue.ParsePath("#Blueprint"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("looking up #Blueprint: %w", schema.Err())
	}

	return &Validator{ctx: ctx, schema: schema}, nil
}

// Validate checks raw and returns every violation found.
func (v *Validator) Validate(raw map[string]any) error {
	value := v.ctx.Encode(raw)
	if value.Err() != nil {
		return fmt.Errorf("encoding blueprint: %w", value.Err())
	}

	err := v.schema.Unify(value).Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var msgs []string
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		field := strings.Join(e.Path(), ".")
		if field == "" {
			field = "(root)"
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, fmt.Sprintf(format, args...)))
	}
	return fmt.Errorf("blueprint validation failed:\n  %s", strings.Join(msgs, "\n  "))
}

var phpIdentifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidateFuncPrefix checks a PHP function prefix.
func ValidateFuncPrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("function prefix cannot be empty")
	}
	if !phpIdentifierRegex.MatchString(prefix) {
		return fmt.Errorf("invalid function prefix %q: must start with a letter or underscore and contain only letters, digits, and underscores", prefix)
	}
	return nil
}

// ValidateNamespace checks a PHP namespace such as TenUp\Plugin.
func ValidateNamespace(ns string) error {
	if ns == "" {
		return fmt.Errorf("namespace cannot be empty")
	}
	for _, part := range strings.Split(ns, `\`) {
		if !phpIdentifierRegex.MatchString(part) {
			return fmt.Errorf("invalid namespace %q: segment %q is not a PHP identifier", ns, part)
		}
	}
	return nil
}

// ValidateSlug checks a file slug.
func ValidateSlug(s string) error {
	if s == "" {
		return fmt.Errorf("slug cannot be empty")
	}
	for _, r := range s {
		if !unicode.IsLower(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return fmt.Errorf("invalid slug %q: contains invalid character %q", s, r)
		}
	}
	if !unicode.IsLetter(rune(s[0])) {
		return fmt.Errorf("invalid slug %q: must start with a letter", s)
	}
	return nil
}
