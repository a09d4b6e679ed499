package sigfox

import (
	"fmt"
)

// FieldSet offers typed helpers on top of a decoded field map.
type FieldSet struct {
	data map[string]any
}

// FieldSet returns a FieldSet wrapper for the result's fields.
func (r Result) FieldSet() FieldSet {
	return FieldSet{data: r.Fields}
}

// Map exposes the underlying map for callers that still need raw access.
func (fs FieldSet) Map() map[string]any {
	return fs.data
}

// Has reports whether the record carried the key.
func (fs FieldSet) Has(key string) bool {
	_, ok := fs.Raw(key)
	return ok
}

// Raw returns the stored value without conversions.
func (fs FieldSet) Raw(key string) (any, bool) {
	if fs.data == nil {
		return nil, false
	}
	v, ok := fs.data[key]
	return v, ok
}

// Float returns a numeric field as float64. Coordinates and voltages are
// stored as floats, counters as ints.
func (fs FieldSet) Float(key string) (float64, error) {
	v, ok := fs.Raw(key)
	if !ok {
		return 0, fmt.Errorf("field %q missing", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("field %q has unsupported type %T", key, v)
	}
}

// Int returns an integer field. Float fields are rejected rather than
// truncated.
func (fs FieldSet) Int(key string) (int, error) {
	v, ok := fs.Raw(key)
	if !ok {
		return 0, fmt.Errorf("field %q missing", key)
	}
	n, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("field %q is not integer (%T)", key, v)
	}
	return n, nil
}

// String returns the field formatted as a string.
func (fs FieldSet) String(key string) (string, error) {
	v, ok := fs.Raw(key)
	if !ok {
		return "", fmt.Errorf("field %q missing", key)
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

// Bool returns a flag field.
func (fs FieldSet) Bool(key string) (bool, error) {
	v, ok := fs.Raw(key)
	if !ok {
		return false, fmt.Errorf("field %q missing", key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("field %q has unsupported type %T", key, v)
	}
	return b, nil
}

// Bytes returns a byte window field such as DownlinkData.
func (fs FieldSet) Bytes(key string) ([]byte, error) {
	v, ok := fs.Raw(key)
	if !ok {
		return nil, fmt.Errorf("field %q missing", key)
	}
	switch b := v.(type) {
	case [8]byte:
		return b[:], nil
	case []byte:
		return b, nil
	default:
		return nil, fmt.Errorf("field %q has unsupported type %T", key, v)
	}
}
