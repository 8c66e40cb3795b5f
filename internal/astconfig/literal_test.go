package astconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func TestLiteral(t *testing.T) {
	ordered := orderedmap.New[string, any]()
	ordered.Set("z", 1)
	ordered.Set("a", 2)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "null", in: nil, want: "null"},
		{name: "string", in: "it's", want: `'it\'s'`},
		{name: "bool", in: true, want: "true"},
		{name: "int", in: 42, want: "42"},
		{name: "float", in: 1.5, want: "1.5"},
		{name: "raw", in: Raw("require('x')"), want: "require('x')"},
		{name: "empty object", in: map[string]any{}, want: "{}"},
		{name: "empty array", in: []string{}, want: "[]"},
		{
			name: "sorted keys and quoting",
			in:   map[string]any{"b-c": 1, "a": "x"},
			want: "{\n\ta: 'x',\n\t'b-c': 1,\n}",
		},
		{
			name: "nested",
			in:   map[string]any{"files": []any{"a.js", map[string]any{"x": false}}},
			want: "{\n\tfiles: [\n\t\t'a.js',\n\t\t{\n\t\t\tx: false,\n\t\t},\n\t],\n}",
		},
		{
			name: "ordered map keeps insertion order",
			in:   ordered,
			want: "{\n\tz: 1,\n\ta: 2,\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Literal(tt.in, "\t"))
		})
	}
}
