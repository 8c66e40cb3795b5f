package config

import (
	"maps"

	"github.com/iancoleman/strcase"
)

// Profile is a set of answer defaults keyed by question name.
type Profile map[string]any

// legacyKeys are snake_case profile keys still accepted from older RC files.
var legacyKeys = []string{"root_namespace", "php_min", "wp_tested", "wp_min"}

// Normalize returns a copy of p with legacy snake_case keys renamed to
// their camelCase form. A camelCase key already present wins.
func (p Profile) Normalize() Profile {
	out := make(Profile, len(p))
	maps.Copy(out, p)
	for _, key := range legacyKeys {
		v, ok := out[key]
		if !ok {
			continue
		}
		delete(out, key)
		camel := strcase.ToLowerCamel(key)
		if _, exists := out[camel]; !exists {
			out[camel] = v
		}
	}
	return out
}
