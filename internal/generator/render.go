package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/gosimple/slug"
	"github.com/iancoleman/strcase"
)

// Renderer executes text/template sources against the data bag.
type Renderer struct {
	funcs template.FuncMap
}

// NewRenderer returns a renderer with the standard helper functions.
func NewRenderer() *Renderer {
	return &Renderer{funcs: FuncMap()}
}

// FuncMap returns the helpers available in every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"slug":           func(s any) string { return slug.Make(toString(s)) },
		"camel":          func(s any) string { return strcase.ToCamel(toString(s)) },
		"lowerCamel":     func(s any) string { return strcase.ToLowerCamel(toString(s)) },
		"snake":          func(s any) string { return strcase.ToSnake(toString(s)) },
		"screamingSnake": func(s any) string { return strcase.ToScreamingSnake(toString(s)) },
		"kebab":          func(s any) string { return strcase.ToKebab(toString(s)) },
		"upper":          func(s any) string { return strings.ToUpper(toString(s)) },
		"lower":          func(s any) string { return strings.ToLower(toString(s)) },
		"default": func(def, v any) any {
			if v == nil || v == "" {
				return def
			}
			return v
		},
		"json": func(v any) (string, error) {
			b, err := json.Marshal(v)
			return string(b), err
		},
	}
}

// Render executes text with data. Text without template actions is
// returned as is.
func (r *Renderer) Render(name, text string, data Data) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}

	tmpl, err := template.New(name).Funcs(r.funcs).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any(data)); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}
