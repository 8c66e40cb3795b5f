package generator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeObject_KeepsOrder(t *testing.T) {
	obj, err := decodeObject([]byte(`{"z": 1, "a": {"y": true, "b": [1, "two"]}}`))
	require.NoError(t, err)

	out, err := encodeObject(obj, "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"z\": 1,\n  \"a\": {\n    \"y\": true,\n    \"b\": [\n      1,\n      \"two\"\n    ]\n  }\n}\n", string(out))
}

func TestDecodeObject_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "array", in: `[1]`},
		{name: "trailing data", in: `{} {}`},
		{name: "broken", in: `{"a": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeObject([]byte(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestDecodeObject_Empty(t *testing.T) {
	obj, err := decodeObject([]byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, 0, obj.Len())
}

func TestMergeObjects_ExistingWins(t *testing.T) {
	generated, err := decodeObject([]byte(`{"name": "gen", "scripts": {"build": "grunt"}, "license": "MIT"}`))
	require.NoError(t, err)
	existing, err := decodeObject([]byte(`{"version": "1.0.0", "name": "mine"}`))
	require.NoError(t, err)

	out, err := encodeObject(mergeObjects(generated, existing), "\t")
	require.NoError(t, err)
	assert.Equal(t,
		"{\n\t\"version\": \"1.0.0\",\n\t\"name\": \"mine\",\n\t\"scripts\": {\n\t\t\"build\": \"grunt\"\n\t},\n\t\"license\": \"MIT\"\n}\n",
		string(out))
}

func TestEncodeObject_NoHTMLEscaping(t *testing.T) {
	obj := NewObject()
	obj.Set("php", ">=7.4 <9 & more")
	out, err := encodeObject(obj, "\t")
	require.NoError(t, err)
	assert.Equal(t, "{\n\t\"php\": \">=7.4 <9 & more\"\n}\n", string(out))
}

func TestEncodeObject_KeepsEscapedText(t *testing.T) {
	src := []byte(`{"scripts":{"x":"printf '\\u003c'","y":"a < b"}}`)
	obj, err := decodeObject(src)
	require.NoError(t, err)

	out, err := encodeObject(obj, "\t")
	require.NoError(t, err)
	assert.Contains(t, string(out), `"x": "printf '\\u003c'"`)
	assert.Contains(t, string(out), `"y": "a < b"`)

	var back map[string]map[string]string
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, `printf '\u003c'`, back["scripts"]["x"])
}

func TestToObject_RawMessageKeepsOrder(t *testing.T) {
	obj, err := toObject(json.RawMessage(`{"name":"demo","version":"1.0.0","author":"me"}`))
	require.NoError(t, err)

	var keys []string
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"name", "version", "author"}, keys)
}

func TestToObject(t *testing.T) {
	obj, err := toObject(map[string]any{"b": 1, "a": 2})
	require.NoError(t, err)
	v, ok := obj.Get("a")
	require.True(t, ok)
	assert.EqualValues(t, "2", v)

	_, err = toObject(42)
	assert.Error(t, err)
}
