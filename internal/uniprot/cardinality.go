package uniprot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// ErrMalformedCardinality is returned when a repeatable element is neither a
// single structure nor a sequence of structures of the expected shape.
var ErrMalformedCardinality = errors.New("malformed cardinality")

// OneOrMany is the tagged union {Single(T), Many([]T)} for repeatable
// elements. The XML-to-document conversion emits a bare value when an element
// occurs once and a list when it occurs more than once; OneOrMany records
// which form was seen and Normalize always yields the list form.
type OneOrMany[T any] struct {
	items []T
	many  bool
}

// Single wraps one occurrence.
func Single[T any](v T) OneOrMany[T] {
	return OneOrMany[T]{items: []T{v}}
}

// Many wraps an ordered sequence of occurrences.
func Many[T any](vs []T) OneOrMany[T] {
	return OneOrMany[T]{items: vs, many: true}
}

// Normalize returns the occurrences as an ordered slice. A Single value comes
// back as a one-element slice; a Many value comes back with the same elements.
// The slice is a copy; changing it leaves the union untouched. The zero value
// (element absent) yields nil.
func (o OneOrMany[T]) Normalize() []T {
	return slices.Clone(o.items)
}

// IsMany reports whether the source carried the sequence form.
func (o OneOrMany[T]) IsMany() bool { return o.many }

// IsZero reports whether the element was absent.
func (o OneOrMany[T]) IsZero() bool { return len(o.items) == 0 }

// Len is the number of occurrences.
func (o OneOrMany[T]) Len() int { return len(o.items) }

// First returns the first occurrence, if any.
func (o OneOrMany[T]) First() (T, bool) {
	var zero T
	if len(o.items) == 0 {
		return zero, false
	}
	return o.items[0], true
}

func (o *OneOrMany[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*o = OneOrMany[T]{}
		return nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return malformed[T](err)
		}
		if len(items) == 0 {
			return fmt.Errorf("%w: empty sequence of %s", ErrMalformedCardinality, typeName[T]())
		}
		*o = Many(items)
		return nil
	}

	var item T
	if err := json.Unmarshal(trimmed, &item); err != nil {
		return malformed[T](err)
	}
	*o = Single(item)
	return nil
}

func (o OneOrMany[T]) MarshalJSON() ([]byte, error) {
	switch {
	case len(o.items) == 0:
		return []byte("null"), nil
	case o.many:
		return json.Marshal(o.items)
	default:
		return json.Marshal(o.items[0])
	}
}

func malformed[T any](err error) error {
	if errors.Is(err, ErrMalformedCardinality) {
		return err
	}
	return fmt.Errorf("%w: expected %s or a list of it: %v", ErrMalformedCardinality, typeName[T](), err)
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
