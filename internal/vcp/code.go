package vcp

import "fmt"

// ControlType is the MCCS control kind of a code.
type ControlType string

const (
	// Continuous codes take any value up to the reported maximum.
	Continuous ControlType = "C"
	// NonContinuous codes take one of an enumerated set of values.
	NonContinuous ControlType = "NC"
	// Table codes read and write byte sequences.
	Table ControlType = "T"
)

// ParseControlType validates a control type string. The empty string is
// accepted and means "unknown".
func ParseControlType(s string) (ControlType, error) {
	switch ControlType(s) {
	case "", Continuous, NonContinuous, Table:
		return ControlType(s), nil
	}
	return "", invalidArgument("control type", s, "must be one of C, NC, T")
}

// CodeEntry is implemented by *Code and *FallbackCode.
//
// Reads on a FallbackCode go to whatever entry is visible at the time of
// the call. Writes first copy the entry into the storage that handed the
// proxy out.
type CodeEntry interface {
	Key() Key
	Name() string
	Names() []string
	Matches(id string) bool
	Type() ControlType
	Description() string
	Category() string

	Value(id string) (ValueEntry, error)
	HasValue(id string) bool
	ValueKeys() []Key
	ValueNames() []string
	Values() []ValueEntry

	AddName(name string) error
	RemoveName(name string) error
	SetType(t ControlType) error
	SetDescription(s string) error
	SetCategory(s string) error
	AddValue(k Key) (ValueEntry, error)
	SetValue(name string, k Key) (ValueEntry, error)
	RemoveValue(id string) error

	// Materialize returns the local code, copying it out of the fallback
	// chain first when needed.
	Materialize() (*Code, error)
}

// Code is a VCP feature code with its attributes and values.
type Code struct {
	storable
	typ         ControlType
	description string
	category    string
	values      ValueStorage

	// independent codes were re-created after a tombstone and no longer
	// read values through to the fallback.
	independent bool
}

func newCode(k Key, owner registrar, independent bool) *Code {
	c := &Code{
		storable:    storable{key: k, owner: owner},
		independent: independent,
	}
	c.values.init(c)
	return c
}

// NewCode returns a detached code. It can be added to a storage with
// CodeStorage.CopyFrom.
func NewCode(k Key, names ...string) (*Code, error) {
	c := newCode(k, nil, false)
	for _, n := range names {
		if err := c.AddName(n); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Code) fallbackValues() *table[*Value] {
	if c.independent {
		return nil
	}
	owner, ok := c.owner.(*table[*Code])
	if !ok {
		return nil
	}
	fb := owner.fallbackTable()
	if fb == nil {
		return nil
	}
	fc, _, err := fb.get("values", KeyRef(c.key), false, true)
	if err != nil || fc == c {
		return nil
	}
	return &fc.values.t
}

func (c *Code) String() string {
	return fmt.Sprintf("%s (%s)", c.Name(), c.key)
}

// Type returns the control type.
func (c *Code) Type() ControlType { return c.typ }

// Description returns the free-form description.
func (c *Code) Description() string { return c.description }

// Category returns the MCCS category.
func (c *Code) Category() string { return c.category }

// SetType sets the control type.
func (c *Code) SetType(t ControlType) error {
	if _, err := ParseControlType(string(t)); err != nil {
		return err
	}
	c.typ = t
	return nil
}

// SetDescription sets the description.
func (c *Code) SetDescription(s string) error {
	c.description = s
	return nil
}

// SetCategory sets the category.
func (c *Code) SetCategory(s string) error {
	c.category = s
	return nil
}

// ValueStorage exposes the value registry for inspection.
func (c *Code) ValueStorage() *ValueStorage {
	return &c.values
}

// Value resolves id among the code's visible values. Values that are only
// visible through the fallback come back wrapped in a FallbackValue.
func (c *Code) Value(id string) (ValueEntry, error) {
	v, fromFallback, err := c.values.t.get("value", Normalize(id), false, true)
	if err != nil {
		return nil, err
	}
	if fromFallback {
		return &FallbackValue{key: v.key, code: c}, nil
	}
	return v, nil
}

// HasValue reports whether id resolves to a visible value.
func (c *Code) HasValue(id string) bool {
	return c.values.Contains(id)
}

// ValueKeys returns the visible value keys in ascending order.
func (c *Code) ValueKeys() []Key {
	return c.values.Keys()
}

// ValueNames returns the visible normalized value aliases.
func (c *Code) ValueNames() []string {
	return c.values.Names()
}

// Values returns the visible values ordered by key.
func (c *Code) Values() []ValueEntry {
	keys := c.values.t.keys()
	out := make([]ValueEntry, 0, len(keys))
	for _, k := range keys {
		v, err := c.Value(k.String())
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// AddValue returns the value with key k, creating it when needed.
func (c *Code) AddValue(k Key) (ValueEntry, error) {
	return c.values.t.add(k), nil
}

// SetValue maps the alias name to value k, creating the value when needed.
func (c *Code) SetValue(name string, k Key) (ValueEntry, error) {
	v, err := c.values.t.set(name, k)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// RemoveValue removes a value by key, or detaches a single alias.
func (c *Code) RemoveValue(id string) error {
	c.values.t.remove(Normalize(id))
	return nil
}

// Materialize returns c itself.
func (c *Code) Materialize() (*Code, error) {
	return c, nil
}

func copyCodeAttrs(dst, src *Code) {
	dst.typ = src.typ
	dst.description = src.description
	dst.category = src.category
	dst.values.t.copyFrom(&src.values.t)
}
