// Package optional models request fields that can be absent, explicitly
// null, or set, so partial updates can tell "leave unchanged" from "clear".
package optional

import "encoding/json"

// Field is a JSON field with presence tracking. The zero value is absent.
type Field[T any] struct {
	Present bool
	Null    bool
	Value   T
}

// Of returns a present, non-null field holding v.
func Of[T any](v T) Field[T] {
	return Field[T]{Present: true, Value: v}
}

// Null returns a present field holding JSON null.
func Null[T any]() Field[T] {
	return Field[T]{Present: true, Null: true}
}

// IsSet reports whether a non-null value was supplied.
func (f Field[T]) IsSet() bool {
	return f.Present && !f.Null
}

// Ptr returns nil for null or absent fields, otherwise a pointer to a copy of the value.
func (f Field[T]) Ptr() *T {
	if !f.IsSet() {
		return nil
	}
	v := f.Value
	return &v
}

// UnmarshalJSON is only invoked when the key is present in the payload.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Present = true
	if string(data) == "null" {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON writes null for absent or null fields.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.IsSet() {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
