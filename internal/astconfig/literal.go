package astconfig

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Raw is JavaScript source that Literal emits verbatim, for values such as
// require('autoprefixer') or a function expression.
type Raw string

// Literal prints v as a JavaScript literal. Objects and arrays are spread
// over multiple lines with one indent per level and trailing commas. Map keys
// are sorted unless v is an ordered map.
func Literal(v any, indent string) string {
	var sb strings.Builder
	writeLiteral(&sb, v, indent, 0)
	return sb.String()
}

func writeLiteral(sb *strings.Builder, v any, indent string, depth int) {
	switch t := v.(type) {
	case nil:
		sb.WriteString("null")
		return
	case Raw:
		sb.WriteString(string(t))
		return
	case string:
		sb.WriteString(quote(t))
		return
	case bool:
		sb.WriteString(strconv.FormatBool(t))
		return
	case json.Number:
		sb.WriteString(t.String())
		return
	case *orderedmap.OrderedMap[string, any]:
		keys := make([]string, 0, t.Len())
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			keys = append(keys, pair.Key)
		}
		writeObject(sb, keys, func(k string) any {
			v, _ := t.Get(k)
			return v
		}, indent, depth)
		return
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		sb.WriteString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		sb.WriteString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		sb.WriteString(strconv.FormatFloat(rv.Float(), 'g', -1, 64))
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			sb.WriteString("[]")
			return
		}
		sb.WriteString("[\n")
		for i := 0; i < rv.Len(); i++ {
			sb.WriteString(strings.Repeat(indent, depth+1))
			writeLiteral(sb, rv.Index(i).Interface(), indent, depth+1)
			sb.WriteString(",\n")
		}
		sb.WriteString(strings.Repeat(indent, depth))
		sb.WriteString("]")
	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		values := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := fmt.Sprint(iter.Key().Interface())
			keys = append(keys, k)
			values[k] = iter.Value().Interface()
		}
		sort.Strings(keys)
		writeObject(sb, keys, func(k string) any { return values[k] }, indent, depth)
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			sb.WriteString("null")
			return
		}
		writeLiteral(sb, rv.Elem().Interface(), indent, depth)
	default:
		sb.WriteString(quote(fmt.Sprint(v)))
	}
}

func writeObject(sb *strings.Builder, keys []string, value func(string) any, indent string, depth int) {
	if len(keys) == 0 {
		sb.WriteString("{}")
		return
	}
	sb.WriteString("{\n")
	for _, k := range keys {
		sb.WriteString(strings.Repeat(indent, depth+1))
		sb.WriteString(objectKey(k))
		sb.WriteString(": ")
		writeLiteral(sb, value(k), indent, depth+1)
		sb.WriteString(",\n")
	}
	sb.WriteString(strings.Repeat(indent, depth))
	sb.WriteString("}")
}

func objectKey(k string) string {
	if isIdentifier(k) {
		return k
	}
	return quote(k)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// quote returns s as a single-quoted JavaScript string.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			sb.WriteString(`\'`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}
