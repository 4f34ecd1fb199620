package vcp

import (
	"fmt"
	"slices"
	"strings"
)

// registrar is the alias index an entry reports its name changes to.
type registrar interface {
	setAlias(name string, k Key) error
	removeAlias(name string) error
}

// storable holds what every registry entry has: an immutable key and an
// ordered list of display names. The first name is the primary one.
type storable struct {
	key   Key
	names []string
	owner registrar
}

func (s *storable) base() *storable { return s }

// Key returns the canonical key.
func (s *storable) Key() Key {
	return s.key
}

// Name returns the primary name, or the key in hex when there is none.
func (s *storable) Name() string {
	return primaryName(s.key, s.names)
}

// Names returns the display names in order.
func (s *storable) Names() []string {
	return slices.Clone(s.names)
}

// Matches reports whether id identifies this entry, either by key or by
// any of its names after normalization.
func (s *storable) Matches(id string) bool {
	return matches(s.key, s.names, id)
}

// AddName attaches an alias. When the entry belongs to a storage the
// alias is registered there too and detached from any other entry.
func (s *storable) AddName(name string) error {
	if err := checkAlias("add name", name); err != nil {
		return err
	}
	if s.owner != nil {
		if err := s.owner.setAlias(name, s.key); err != nil {
			return err
		}
	}
	s.appendName(name)
	return nil
}

// RemoveName detaches an alias. Removing a name the entry does not carry
// is a no-op.
func (s *storable) RemoveName(name string) error {
	if !slices.Contains(s.names, name) {
		return nil
	}
	if s.owner != nil {
		return s.owner.removeAlias(name)
	}
	s.names = slices.DeleteFunc(s.names, func(n string) bool { return n == name })
	return nil
}

func (s *storable) appendName(name string) {
	if !slices.Contains(s.names, name) {
		s.names = append(s.names, name)
	}
}

// dropFolded removes every name whose normalized form is alias.
func (s *storable) dropFolded(alias string) {
	s.names = slices.DeleteFunc(s.names, func(n string) bool {
		return foldAlias(n) == alias
	})
}

func checkAlias(op, name string) error {
	if strings.TrimSpace(name) == "" {
		return invalidArgument(op, name, "alias must not be empty")
	}
	if IsKeyShaped(name) {
		return invalidArgument(op, name, "alias must not look like a key")
	}
	return nil
}

func primaryName(k Key, names []string) string {
	if len(names) > 0 {
		return names[0]
	}
	return fmt.Sprintf("0x%X", uint32(k))
}

func matches(k Key, names []string, id string) bool {
	r := Normalize(id)
	if r.IsKey() {
		return r.Key == k
	}
	for _, n := range names {
		if foldAlias(n) == r.Alias {
			return true
		}
	}
	return false
}

func splitNames(names []string) (string, []string) {
	if len(names) == 0 {
		return "", nil
	}
	return names[0], names[1:]
}
