package vcp

// ValueEntry is implemented by *Value and *FallbackValue.
type ValueEntry interface {
	Key() Key
	Name() string
	Names() []string
	Matches(id string) bool
	AddName(name string) error
	RemoveName(name string) error

	// Materialize returns the local value, copying it (and its code) out of
	// the fallback chain first when needed.
	Materialize() (*Value, error)
}

// Value is a named setting of a code, such as an input source.
type Value struct {
	storable
}

func newValue(k Key, owner registrar) *Value {
	return &Value{storable: storable{key: k, owner: owner}}
}

// Materialize returns v itself.
func (v *Value) Materialize() (*Value, error) {
	return v, nil
}

// ValueStorage is the per-code registry of values. A code that belongs to
// a storage with a fallback reads values through to the fallback's code
// with the same key.
type ValueStorage struct {
	t    table[*Value]
	code *Code
}

func (vs *ValueStorage) init(code *Code) {
	vs.code = code
	vs.t.init(
		func(k Key, _ bool) *Value { return newValue(k, &vs.t) },
		func(dst, src *Value) {},
	)
	vs.t.fallback = code.fallbackValues
}

// Keys returns the visible value keys in ascending order.
func (vs *ValueStorage) Keys() []Key {
	return vs.t.keys()
}

// Names returns the visible normalized aliases in sorted order.
func (vs *ValueStorage) Names() []string {
	return vs.t.aliasNames()
}

// Len returns the number of visible values.
func (vs *ValueStorage) Len() int {
	return len(vs.t.keys())
}

// Contains reports whether id resolves to a visible value.
func (vs *ValueStorage) Contains(id string) bool {
	return vs.t.contains(Normalize(id))
}

// ContainsLocal reports whether id resolves without consulting the
// fallback.
func (vs *ValueStorage) ContainsLocal(id string) bool {
	_, _, err := vs.t.get("contains", Normalize(id), false, false)
	return err == nil
}
