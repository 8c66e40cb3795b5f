package generators

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	oerrors "github.com/wpmake/cli/internal/errors"
)

// builtinNames lists the catalog in display order.
var builtinNames = []string{"plugin", "theme", "child-theme", "library"}

var (
	catalogOnce sync.Once
	catalog     map[string]*Generator
	catalogErr  error
)

func loadCatalog() {
	catalog = make(map[string]*Generator, len(builtinNames))
	for _, name := range builtinNames {
		data, err := builtinBlueprint(name)
		if err != nil {
			catalogErr = fmt.Errorf("reading built-in blueprint %s: %w", name, err)
			return
		}
		b, err := ParseBlueprint(data, "built-in "+name)
		if err != nil {
			catalogErr = err
			return
		}
		catalog[name] = &Generator{
			Blueprint: b,
			Templates: builtinTemplates(name),
			Hooks:     append(commonHooks(b), extraHooks[name]...),
			Builtin:   true,
		}
	}
}

// Get returns the built-in generator called name.
func Get(name string) (*Generator, error) {
	catalogOnce.Do(loadCatalog)
	if catalogErr != nil {
		return nil, catalogErr
	}
	g, ok := catalog[name]
	if !ok {
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("unknown generator %q", name), name,
			fmt.Sprintf("Valid generators: %s", strings.Join(Names(), ", ")))
	}
	return g, nil
}

// List returns every built-in generator in display order.
func List() ([]*Generator, error) {
	catalogOnce.Do(loadCatalog)
	if catalogErr != nil {
		return nil, catalogErr
	}
	out := make([]*Generator, 0, len(builtinNames))
	for _, name := range builtinNames {
		out = append(out, catalog[name])
	}
	return out, nil
}

// Names returns the built-in generator names in display order.
func Names() []string {
	return append([]string(nil), builtinNames...)
}

// SortedNames returns the built-in generator names sorted.
func SortedNames() []string {
	names := Names()
	sort.Strings(names)
	return names
}
