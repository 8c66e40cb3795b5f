package generator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is a JSON object that remembers key order.
type Object = orderedmap.OrderedMap[string, any]

// NewObject returns an empty Object. Objects print <, > and & as is.
func NewObject() *Object {
	return orderedmap.New[string, any](orderedmap.WithDisableHTMLEscape[string, any]())
}

// decodeObject parses a JSON object keeping key order at every level.
// Empty input is an empty object.
func decodeObject(data []byte) (*Object, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NewObject(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %T", v)
	}
	return obj, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", keyTok)
				}
				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			list := []any{}
			for dec.More() {
				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return list, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	default:
		return tok, nil
	}
}

// toObject converts decoded or hand-built values into an Object.
func toObject(v any) (*Object, error) {
	switch t := v.(type) {
	case nil:
		return NewObject(), nil
	case *Object:
		return t, nil
	case json.RawMessage:
		return decodeObject(t)
	case map[string]any:
		data, err := json.Marshal(t)
		if err != nil {
			return nil, err
		}
		return decodeObject(data)
	default:
		return nil, fmt.Errorf("expected a JSON object, got %T", v)
	}
}

// mergeObjects lays existing over generated at the top level: keys already
// present in the file keep their value and position, and generated keys the
// file lacks are appended in generated order.
func mergeObjects(generated, existing *Object) *Object {
	out := NewObject()
	for pair := existing.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}
	for pair := generated.Oldest(); pair != nil; pair = pair.Next() {
		if _, ok := out.Get(pair.Key); !ok {
			out.Set(pair.Key, pair.Value)
		}
	}
	return out
}

// encodeObject prints obj with one pad per level and a trailing newline.
func encodeObject(obj *Object, pad string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", pad)
	if err := enc.Encode(obj); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
