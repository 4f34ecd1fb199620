// Package doc defines the document model used to persist override tables.
//
// A document is a tree of three node kinds: scalars, sequences, and
// mappings whose keys keep their insertion order. The model is deliberately
// small. It is what a code table serializes into and what it reads back,
// independent of whether the bytes on disk are YAML, TOML, or JSON.
package doc

import "slices"

// Value is a sealed interface for document nodes.
// Only Scalar, Sequence, and *Mapping implement it. A nil Value is an
// explicit null.
type Value interface {
	docValue()
}

// Scalar is a leaf string value. Numbers and booleans read from a source
// document are kept in their textual form.
type Scalar string

func (Scalar) docValue() {}

// Sequence is an ordered list of values.
type Sequence []Value

func (Sequence) docValue() {}

// Mapping is a string-keyed map that remembers insertion order.
type Mapping struct {
	keys   []string
	values map[string]Value
}

func (*Mapping) docValue() {}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Value)}
}

// Set stores v under key. A key that is already present keeps its position.
func (m *Mapping) Set(key string, v Value) {
	if m.values == nil {
		m.values = make(map[string]Value)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Delete removes key from the mapping.
func (m *Mapping) Delete(key string) {
	if m == nil {
		return
	}
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Text returns the string form of a scalar, and false for any other node.
func Text(v Value) (string, bool) {
	s, ok := v.(Scalar)
	return string(s), ok
}

// Equal reports whether two documents have the same shape and content.
// Mapping key order is not significant.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case Scalar:
		bv, ok := b.(Scalar)
		return ok && av == bv
	case Sequence:
		bv, ok := b.(Sequence)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Mapping:
		bv, ok := b.(*Mapping)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			other, ok := bv.Get(k)
			if !ok || !Equal(av.values[k], other) {
				return false
			}
		}
		return true
	}
	return false
}
