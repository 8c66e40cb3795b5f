package generator

import "maps"

// Data is the bag handed to every template: all collected answers plus run
// context such as basename.
type Data map[string]any

// Clone returns a shallow copy of d.
func (d Data) Clone() Data {
	out := make(Data, len(d))
	maps.Copy(out, d)
	return out
}

// String returns the value of key formatted as a string, or "".
func (d Data) String(key string) string {
	v, ok := d[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return toString(v)
}

// Bool reports whether key holds true.
func (d Data) Bool(key string) bool {
	b, _ := d[key].(bool)
	return b
}
