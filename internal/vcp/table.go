package vcp

import (
	"maps"
	"slices"
)

// tableEntry is the constraint for entries kept in a table.
type tableEntry interface {
	comparable
	Key() Key
	base() *storable
}

// table is the two-tier registry shared by code and value storages.
//
// Local entries live in entries and index. A table may read through to a
// fallback table; removing something the fallback still shows records a
// tombstone in hiddenKeys or hiddenAliases instead of touching the
// fallback. Entries reached through the fallback are copied into the local
// tier before they are modified.
type table[E tableEntry] struct {
	entries       map[Key]E
	index         map[string]Key
	hiddenKeys    map[Key]struct{}
	hiddenAliases map[string]struct{}

	fallback  func() *table[E]
	newEntry  func(k Key, detached bool) E
	copyAttrs func(dst, src E)
}

func (t *table[E]) init(newEntry func(Key, bool) E, copyAttrs func(dst, src E)) {
	t.entries = make(map[Key]E)
	t.index = make(map[string]Key)
	t.hiddenKeys = make(map[Key]struct{})
	t.hiddenAliases = make(map[string]struct{})
	t.newEntry = newEntry
	t.copyAttrs = copyAttrs
}

func (t *table[E]) setFallback(op string, fn func() *table[E]) error {
	if t.fallback != nil {
		return illegalState(op, "fallback already set")
	}
	if len(t.entries) > 0 || len(t.index) > 0 {
		return illegalState(op, "storage is not empty")
	}
	t.fallback = fn
	return nil
}

func (t *table[E]) fallbackTable() *table[E] {
	if t.fallback == nil {
		return nil
	}
	return t.fallback()
}

func (t *table[E]) lookupLocal(r Ref) (E, bool) {
	if r.IsKey() {
		e, ok := t.entries[r.Key]
		return e, ok
	}
	k, ok := t.index[r.Alias]
	if !ok {
		var zero E
		return zero, false
	}
	e, ok := t.entries[k]
	return e, ok
}

func (t *table[E]) isHidden(r Ref) bool {
	if r.IsKey() {
		_, ok := t.hiddenKeys[r.Key]
		return ok
	}
	_, ok := t.hiddenAliases[r.Alias]
	return ok
}

// get resolves r. The boolean result is true when the entry was found in
// the fallback chain rather than the local tier.
func (t *table[E]) get(op string, r Ref, add, checkFallback bool) (E, bool, error) {
	var zero E
	if e, ok := t.lookupLocal(r); ok {
		return e, false, nil
	}
	if t.isHidden(r) {
		if add && r.IsKey() {
			return t.add(r.Key), false, nil
		}
		return zero, false, notFound(op, r)
	}
	if checkFallback {
		if fb := t.fallbackTable(); fb != nil {
			if fe, _, err := fb.get(op, r, false, true); err == nil {
				k := fe.Key()
				if !r.IsKey() {
					if _, hidden := t.hiddenKeys[k]; hidden {
						return zero, false, notFound(op, r)
					}
					if local, ok := t.entries[k]; ok {
						return local, false, nil
					}
				}
				return fe, true, nil
			}
		}
	}
	if add && r.IsKey() {
		return t.add(r.Key), false, nil
	}
	return zero, false, notFound(op, r)
}

func (t *table[E]) contains(r Ref) bool {
	_, _, err := t.get("contains", r, false, true)
	return err == nil
}

// add returns the local entry for k, creating it when needed. A key still
// visible through the fallback is materialized. A tombstoned key comes back
// as a fresh entry that no longer reads through, and the fallback's aliases
// for it stay hidden.
func (t *table[E]) add(k Key) E {
	if e, ok := t.entries[k]; ok {
		return e
	}
	if _, hidden := t.hiddenKeys[k]; hidden {
		t.hideFallbackAliases(k)
		delete(t.hiddenKeys, k)
		e := t.newEntry(k, true)
		t.entries[k] = e
		return e
	}
	if fb := t.fallbackTable(); fb != nil {
		if fe, _, err := fb.get("add", KeyRef(k), false, true); err == nil {
			return t.copyEntry(fe, t.namesOf(k))
		}
	}
	e := t.newEntry(k, false)
	t.entries[k] = e
	return e
}

// hideFallbackAliases tombstones every alias the fallback resolves to k
// that the local index does not claim.
func (t *table[E]) hideFallbackAliases(k Key) {
	fb := t.fallbackTable()
	if fb == nil {
		return
	}
	for alias, owner := range fb.aliases() {
		if owner != k {
			continue
		}
		if _, local := t.index[alias]; local {
			continue
		}
		t.hiddenAliases[alias] = struct{}{}
	}
}

func (t *table[E]) set(name string, k Key) (E, error) {
	var zero E
	if err := checkAlias("set", name); err != nil {
		return zero, err
	}
	alias := foldAlias(name)
	if prev, ok := t.index[alias]; ok {
		if prev == k {
			return t.entries[k], nil
		}
		t.detachAlias(alias)
	}
	e := t.add(k)
	t.index[alias] = k
	delete(t.hiddenAliases, alias)
	e.base().appendName(name)
	return e, nil
}

func (t *table[E]) setAlias(name string, k Key) error {
	_, err := t.set(name, k)
	return err
}

func (t *table[E]) removeAlias(name string) error {
	t.remove(Normalize(name))
	return nil
}

func (t *table[E]) detachAlias(alias string) {
	k, ok := t.index[alias]
	if !ok {
		return
	}
	delete(t.index, alias)
	if e, ok := t.entries[k]; ok {
		e.base().dropFolded(alias)
	}
}

// remove deletes r from the local tier and tombstones it when the fallback
// would otherwise still show it.
func (t *table[E]) remove(r Ref) {
	inFallback := false
	if fb := t.fallbackTable(); fb != nil {
		inFallback = fb.contains(r)
	}
	if r.IsKey() {
		if e, ok := t.entries[r.Key]; ok {
			for alias, k := range t.index {
				if k == r.Key {
					delete(t.index, alias)
				}
			}
			b := e.base()
			b.names = nil
			b.owner = nil
			delete(t.entries, r.Key)
		}
		if inFallback {
			t.hiddenKeys[r.Key] = struct{}{}
			debugLog().Debug("tombstoned key", "key", r.Key.String())
		}
		return
	}
	t.detachAlias(r.Alias)
	if inFallback {
		t.hiddenAliases[r.Alias] = struct{}{}
		debugLog().Debug("tombstoned alias", "alias", r.Alias)
	}
}

// materialize returns a local entry for r, copying it out of the fallback
// chain when it is only visible there.
func (t *table[E]) materialize(op string, r Ref) (E, error) {
	e, fromFallback, err := t.get(op, r, false, true)
	if err != nil || !fromFallback {
		return e, err
	}
	debugLog().Debug("materializing entry", "op", op, "key", e.Key().String())
	return t.copyEntry(e, t.namesOf(e.Key())), nil
}

// copyEntry merges src and the given names into the local entry with the
// same key.
func (t *table[E]) copyEntry(src E, names []string) E {
	k := src.Key()
	dst, ok := t.entries[k]
	if !ok {
		if _, hidden := t.hiddenKeys[k]; hidden {
			t.hideFallbackAliases(k)
			delete(t.hiddenKeys, k)
		}
		dst = t.newEntry(k, false)
		t.entries[k] = dst
	}
	for _, name := range names {
		_, _ = t.set(name, k)
	}
	if src != dst {
		t.copyAttrs(dst, src)
	}
	return dst
}

func (t *table[E]) copyFrom(other *table[E]) {
	for _, k := range other.keys() {
		src, _, err := other.get("copy", KeyRef(k), false, true)
		if err != nil {
			continue
		}
		t.copyEntry(src, other.namesOf(k))
	}
}

// namesOf returns the names of k as seen from this table: the local
// entry's names, or the fallback's names minus any alias hidden or
// re-pointed here.
func (t *table[E]) namesOf(k Key) []string {
	if e, ok := t.entries[k]; ok {
		return slices.Clone(e.base().names)
	}
	if _, hidden := t.hiddenKeys[k]; hidden {
		return nil
	}
	fb := t.fallbackTable()
	if fb == nil {
		return nil
	}
	names := fb.namesOf(k)
	return slices.DeleteFunc(names, func(n string) bool {
		alias := foldAlias(n)
		if _, hidden := t.hiddenAliases[alias]; hidden {
			return true
		}
		owner, ok := t.index[alias]
		return ok && owner != k
	})
}

// keys returns every visible key in ascending order.
func (t *table[E]) keys() []Key {
	set := make(map[Key]struct{}, len(t.entries))
	for k := range t.entries {
		set[k] = struct{}{}
	}
	if fb := t.fallbackTable(); fb != nil {
		for _, k := range fb.keys() {
			if _, hidden := t.hiddenKeys[k]; !hidden {
				set[k] = struct{}{}
			}
		}
	}
	out := slices.Collect(maps.Keys(set))
	slices.Sort(out)
	return out
}

// aliases returns every visible alias and the key it resolves to.
func (t *table[E]) aliases() map[string]Key {
	out := make(map[string]Key, len(t.index))
	if fb := t.fallbackTable(); fb != nil {
		for alias, k := range fb.aliases() {
			if _, hidden := t.hiddenAliases[alias]; hidden {
				continue
			}
			if _, hidden := t.hiddenKeys[k]; hidden {
				continue
			}
			out[alias] = k
		}
	}
	maps.Copy(out, t.index)
	return out
}

func (t *table[E]) aliasNames() []string {
	out := slices.Collect(maps.Keys(t.aliases()))
	slices.Sort(out)
	return out
}
