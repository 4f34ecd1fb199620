package vcp

import (
	"fmt"
	"slices"
)

// FallbackCode stands in for a code that a storage can only see through
// its fallback. It holds just the key; every read resolves the entry again
// so later changes to the fallback show through. Reads on an entry that has
// since disappeared return zero values.
type FallbackCode struct {
	key   Key
	owner *CodeStorage
}

func (p *FallbackCode) resolve() (*Code, bool, error) {
	c, fromFallback, err := p.owner.t.get("resolve", KeyRef(p.key), false, true)
	if err != nil {
		return nil, false, err
	}
	return c, !fromFallback, nil
}

// Key returns the canonical key.
func (p *FallbackCode) Key() Key { return p.key }

// Name returns the primary visible name.
func (p *FallbackCode) Name() string { return primaryName(p.key, p.Names()) }

// Names returns the names visible from the owning storage.
func (p *FallbackCode) Names() []string { return p.owner.t.namesOf(p.key) }

// Matches reports whether id identifies this code.
func (p *FallbackCode) Matches(id string) bool { return matches(p.key, p.Names(), id) }

func (p *FallbackCode) String() string {
	return fmt.Sprintf("%s (%s)", p.Name(), p.key)
}

// Type returns the control type of the visible entry.
func (p *FallbackCode) Type() ControlType {
	c, _, err := p.resolve()
	if err != nil {
		return ""
	}
	return c.typ
}

// Description returns the description of the visible entry.
func (p *FallbackCode) Description() string {
	c, _, err := p.resolve()
	if err != nil {
		return ""
	}
	return c.description
}

// Category returns the category of the visible entry.
func (p *FallbackCode) Category() string {
	c, _, err := p.resolve()
	if err != nil {
		return ""
	}
	return c.category
}

// Value resolves id among the visible values. Unless the code has been
// materialized meanwhile, the result is a FallbackValue tied to p.
func (p *FallbackCode) Value(id string) (ValueEntry, error) {
	c, local, err := p.resolve()
	if err != nil {
		return nil, err
	}
	if local {
		return c.Value(id)
	}
	v, _, err := c.values.t.get("value", Normalize(id), false, true)
	if err != nil {
		return nil, err
	}
	return &FallbackValue{key: v.key, code: p}, nil
}

// HasValue reports whether id resolves to a visible value.
func (p *FallbackCode) HasValue(id string) bool {
	c, _, err := p.resolve()
	return err == nil && c.HasValue(id)
}

// ValueKeys returns the visible value keys.
func (p *FallbackCode) ValueKeys() []Key {
	c, _, err := p.resolve()
	if err != nil {
		return nil
	}
	return c.ValueKeys()
}

// ValueNames returns the visible normalized value aliases.
func (p *FallbackCode) ValueNames() []string {
	c, _, err := p.resolve()
	if err != nil {
		return nil
	}
	return c.ValueNames()
}

// Values returns the visible values ordered by key.
func (p *FallbackCode) Values() []ValueEntry {
	c, local, err := p.resolve()
	if err != nil {
		return nil
	}
	if local {
		return c.Values()
	}
	keys := c.values.t.keys()
	out := make([]ValueEntry, 0, len(keys))
	for _, k := range keys {
		out = append(out, &FallbackValue{key: k, code: p})
	}
	return out
}

// Materialize copies the code into the owning storage.
func (p *FallbackCode) Materialize() (*Code, error) {
	return p.owner.t.materialize("materialize", KeyRef(p.key))
}

func (p *FallbackCode) AddName(name string) error {
	c, err := p.Materialize()
	if err != nil {
		return err
	}
	return c.AddName(name)
}

func (p *FallbackCode) RemoveName(name string) error {
	if !slices.Contains(p.Names(), name) {
		return nil
	}
	c, err := p.Materialize()
	if err != nil {
		return err
	}
	return c.RemoveName(name)
}

func (p *FallbackCode) SetType(t ControlType) error {
	c, err := p.Materialize()
	if err != nil {
		return err
	}
	return c.SetType(t)
}

func (p *FallbackCode) SetDescription(s string) error {
	c, err := p.Materialize()
	if err != nil {
		return err
	}
	return c.SetDescription(s)
}

func (p *FallbackCode) SetCategory(s string) error {
	c, err := p.Materialize()
	if err != nil {
		return err
	}
	return c.SetCategory(s)
}

func (p *FallbackCode) AddValue(k Key) (ValueEntry, error) {
	c, err := p.Materialize()
	if err != nil {
		return nil, err
	}
	return c.AddValue(k)
}

func (p *FallbackCode) SetValue(name string, k Key) (ValueEntry, error) {
	c, err := p.Materialize()
	if err != nil {
		return nil, err
	}
	return c.SetValue(name, k)
}

func (p *FallbackCode) RemoveValue(id string) error {
	c, err := p.Materialize()
	if err != nil {
		return err
	}
	return c.RemoveValue(id)
}

// FallbackValue stands in for a value that is only visible through the
// fallback. Its parent is the *Code or *FallbackCode it was looked up on.
type FallbackValue struct {
	key  Key
	code CodeEntry
}

func (p *FallbackValue) table() (*table[*Value], error) {
	switch c := p.code.(type) {
	case *Code:
		return &c.values.t, nil
	case *FallbackCode:
		rc, _, err := c.resolve()
		if err != nil {
			return nil, err
		}
		return &rc.values.t, nil
	}
	return nil, illegalState("value", fmt.Sprintf("unsupported parent %T", p.code))
}

// Key returns the canonical key.
func (p *FallbackValue) Key() Key { return p.key }

// Name returns the primary visible name.
func (p *FallbackValue) Name() string { return primaryName(p.key, p.Names()) }

// Names returns the names visible from the parent code.
func (p *FallbackValue) Names() []string {
	t, err := p.table()
	if err != nil {
		return nil
	}
	return t.namesOf(p.key)
}

// Matches reports whether id identifies this value.
func (p *FallbackValue) Matches(id string) bool { return matches(p.key, p.Names(), id) }

// Materialize copies the parent code, then the value, into the local tier.
func (p *FallbackValue) Materialize() (*Value, error) {
	c, err := p.code.Materialize()
	if err != nil {
		return nil, err
	}
	return c.values.t.materialize("materialize", KeyRef(p.key))
}

func (p *FallbackValue) AddName(name string) error {
	v, err := p.Materialize()
	if err != nil {
		return err
	}
	return v.AddName(name)
}

func (p *FallbackValue) RemoveName(name string) error {
	if !slices.Contains(p.Names(), name) {
		return nil
	}
	v, err := p.Materialize()
	if err != nil {
		return err
	}
	return v.RemoveName(name)
}
