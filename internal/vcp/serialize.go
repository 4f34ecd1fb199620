package vcp

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/vcpctl/internal/doc"
)

// defaultField lists, as a comma-separated string, keys whose entries are
// identical to the diff's or carry nothing worth writing out.
const defaultField = "default"

// entryCodec serializes single entries of a table.
type entryCodec[E tableEntry] struct {
	// encode returns nil when e has nothing to say beyond diff.
	encode func(e E, names []string, diff E, diffNames []string, hasDiff bool) doc.Value
	decode func(e E, data doc.Value, diff E, diffNames []string, hasDiff bool) error
}

var valueCodec = entryCodec[*Value]{encode: encodeValue, decode: decodeValue}

var codeCodec = entryCodec[*Code]{encode: encodeCode, decode: decodeCode}

// Serialize renders the storage as a document. With a nil diff every
// visible code is written in full. With a diff, only what differs from it
// is written; codes identical to the diff are collected in the default
// list.
func (s *CodeStorage) Serialize(diff *CodeStorage) doc.Value {
	var dt *table[*Code]
	if diff != nil {
		dt = &diff.t
	}
	out, _ := encodeTable(&s.t, dt, codeCodec)
	return out
}

// Deserialize reads a document produced by Serialize. With a diff, keys in
// the default list and attributes the document leaves out are taken from
// the diff, and fallback codes the document does not mention are
// tombstoned.
func (s *CodeStorage) Deserialize(data doc.Value, diff *CodeStorage) error {
	var dt *table[*Code]
	if diff != nil {
		dt = &diff.t
	}
	return decodeTable(&s.t, data, dt, diff != nil, codeCodec)
}

// encodeTable reports, besides the document, whether t is identical to
// diff.
func encodeTable[E tableEntry](t, diff *table[E], codec entryCodec[E]) (doc.Value, bool) {
	var zero E
	keys := t.keys()
	out := doc.NewMapping()
	if diff == nil {
		for _, k := range keys {
			e, _, err := t.get("serialize", KeyRef(k), false, true)
			if err != nil {
				continue
			}
			out.Set(k.String(), codec.encode(e, t.namesOf(k), zero, nil, false))
		}
		return out, len(keys) == 0
	}

	entries := doc.NewMapping()
	var defaults []string
	for _, k := range keys {
		e, _, err := t.get("serialize", KeyRef(k), false, true)
		if err != nil {
			continue
		}
		var v doc.Value
		if d, _, err := diff.get("serialize", KeyRef(k), false, true); err == nil {
			v = codec.encode(e, t.namesOf(k), d, diff.namesOf(k), true)
		} else {
			v = codec.encode(e, t.namesOf(k), zero, nil, false)
		}
		if v == nil {
			defaults = append(defaults, k.String())
			continue
		}
		entries.Set(k.String(), v)
	}

	identical := entries.Len() == 0 && slices.Equal(keys, diff.keys())
	if entries.Len() == 0 && len(defaults) > 0 {
		return doc.Scalar(strings.Join(defaults, ",")), identical
	}
	if len(defaults) > 0 {
		out.Set(defaultField, doc.Scalar(strings.Join(defaults, ",")))
	}
	for _, k := range entries.Keys() {
		v, _ := entries.Get(k)
		out.Set(k, v)
	}
	return out, identical
}

// decodeTable reads entries into t. When prune is set, visible entries
// the document does not mention are removed afterwards.
func decodeTable[E tableEntry](t *table[E], data doc.Value, diff *table[E], prune bool, codec entryCodec[E]) error {
	var zero E
	var defaults string
	var m *doc.Mapping
	switch v := data.(type) {
	case nil:
	case doc.Scalar:
		defaults = string(v)
	case *doc.Mapping:
		m = v
		if d, ok := m.Get(defaultField); ok {
			s, ok := doc.Text(d)
			if !ok {
				return invalidArgument("deserialize", defaultField, "default list must be a string")
			}
			defaults = s
		}
	default:
		return invalidArgument("deserialize", "", fmt.Sprintf("unexpected %T", data))
	}

	mentioned := make(map[Key]struct{})
	for _, item := range splitDefaults(defaults) {
		k, err := inheritEntry(t, Normalize(item), diff)
		if err != nil {
			return err
		}
		mentioned[k] = struct{}{}
	}

	for _, name := range m.Keys() {
		if name == defaultField {
			continue
		}
		r := Normalize(name)
		if !r.IsKey() {
			return invalidArgument("deserialize", name, "entries must be keyed by canonical key")
		}
		e := t.add(r.Key)
		item, _ := m.Get(name)
		d, hasDiff := zero, false
		var diffNames []string
		if diff != nil {
			if de, _, err := diff.get("deserialize", r, false, true); err == nil {
				d, hasDiff, diffNames = de, true, diff.namesOf(r.Key)
			}
		}
		if err := codec.decode(e, item, d, diffNames, hasDiff); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		mentioned[r.Key] = struct{}{}
	}

	if prune {
		for _, k := range t.keys() {
			if _, ok := mentioned[k]; !ok {
				t.remove(KeyRef(k))
			}
		}
	}
	return nil
}

// inheritEntry makes the entry r names in diff visible in t, copying it
// unless t already shows that very entry. Without a diff entry a bare
// entry is created.
func inheritEntry[E tableEntry](t *table[E], r Ref, diff *table[E]) (Key, error) {
	if diff != nil {
		if de, _, err := diff.get("deserialize", r, false, true); err == nil {
			k := de.Key()
			if cur, _, err := t.get("deserialize", KeyRef(k), false, true); err == nil && cur == de {
				return k, nil
			}
			if _, ok := t.entries[k]; ok {
				t.remove(KeyRef(k))
			}
			t.copyEntry(de, diff.namesOf(k))
			return k, nil
		}
	}
	if !r.IsKey() {
		return 0, notFound("deserialize", r)
	}
	t.add(r.Key)
	return r.Key, nil
}

func splitDefaults(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func encodeNames(m *doc.Mapping, names, diffNames []string, hasDiff bool) {
	primary, aliases := splitNames(names)
	if !hasDiff {
		if primary != "" {
			m.Set("name", doc.Scalar(primary))
		}
		if len(aliases) > 0 {
			m.Set("aliases", stringSequence(aliases))
		}
		return
	}
	diffPrimary, diffAliases := splitNames(diffNames)
	if primary != diffPrimary {
		m.Set("name", doc.Scalar(primary))
	}
	if !slices.Equal(aliases, diffAliases) {
		m.Set("aliases", stringSequence(aliases))
	}
}

func stringSequence(items []string) doc.Sequence {
	seq := make(doc.Sequence, 0, len(items))
	for _, s := range items {
		seq = append(seq, doc.Scalar(s))
	}
	return seq
}

// collapse turns a mapping holding only a name into a bare string, and an
// empty mapping into nil.
func collapse(m *doc.Mapping) doc.Value {
	switch m.Len() {
	case 0:
		return nil
	case 1:
		if name, ok := m.Get("name"); ok {
			return name
		}
	}
	return m
}

func encodeValue(v *Value, names []string, _ *Value, diffNames []string, hasDiff bool) doc.Value {
	m := doc.NewMapping()
	encodeNames(m, names, diffNames, hasDiff)
	return collapse(m)
}

func encodeCode(c *Code, names []string, diff *Code, diffNames []string, hasDiff bool) doc.Value {
	m := doc.NewMapping()
	encodeNames(m, names, diffNames, hasDiff)
	if !hasDiff {
		if c.typ != "" {
			m.Set("type", doc.Scalar(string(c.typ)))
		}
		if c.description != "" {
			m.Set("description", doc.Scalar(c.description))
		}
		if c.category != "" {
			m.Set("category", doc.Scalar(c.category))
		}
		if c.values.Len() > 0 {
			values, _ := encodeTable(&c.values.t, nil, valueCodec)
			m.Set("values", values)
		}
		return collapse(m)
	}
	if c.typ != diff.typ {
		m.Set("type", doc.Scalar(string(c.typ)))
	}
	if c.description != diff.description {
		m.Set("description", doc.Scalar(c.description))
	}
	if c.category != diff.category {
		m.Set("category", doc.Scalar(c.category))
	}
	if values, identical := encodeTable(&c.values.t, &diff.values.t, valueCodec); !identical {
		m.Set("values", values)
	}
	return collapse(m)
}

// entryMapping normalizes entry data: nil is an empty entry and a bare
// string is a name.
func entryMapping(data doc.Value) (*doc.Mapping, error) {
	switch v := data.(type) {
	case nil:
		return doc.NewMapping(), nil
	case doc.Scalar:
		m := doc.NewMapping()
		m.Set("name", v)
		return m, nil
	case *doc.Mapping:
		return v, nil
	}
	return nil, invalidArgument("deserialize", "", fmt.Sprintf("entry must be a string or mapping, got %T", data))
}

func decodeNames(s *storable, m *doc.Mapping, diffNames []string, hasDiff bool) error {
	var primary string
	var aliases []string
	if hasDiff {
		primary, aliases = splitNames(diffNames)
	}
	if v, ok := m.Get("name"); ok {
		text, ok := doc.Text(v)
		if !ok {
			return invalidArgument("deserialize", "name", "must be a string")
		}
		primary = text
	}
	if v, ok := m.Get("aliases"); ok {
		seq, ok := v.(doc.Sequence)
		if !ok {
			return invalidArgument("deserialize", "aliases", "must be a list of strings")
		}
		aliases = make([]string, 0, len(seq))
		for _, item := range seq {
			text, ok := doc.Text(item)
			if !ok {
				return invalidArgument("deserialize", "aliases", "must be a list of strings")
			}
			aliases = append(aliases, text)
		}
	}

	for _, n := range s.Names() {
		if err := s.RemoveName(n); err != nil {
			return err
		}
	}
	if primary != "" {
		if err := s.AddName(primary); err != nil {
			return err
		}
	}
	for _, a := range aliases {
		if err := s.AddName(a); err != nil {
			return err
		}
	}
	return nil
}

func textField(m *doc.Mapping, field, fallback string) (string, error) {
	v, ok := m.Get(field)
	if !ok {
		return fallback, nil
	}
	text, ok := doc.Text(v)
	if !ok {
		return "", invalidArgument("deserialize", field, "must be a string")
	}
	return text, nil
}

func decodeValue(v *Value, data doc.Value, _ *Value, diffNames []string, hasDiff bool) error {
	m, err := entryMapping(data)
	if err != nil {
		return err
	}
	for _, field := range m.Keys() {
		if field != "name" && field != "aliases" {
			return invalidArgument("deserialize", field, "unknown value attribute")
		}
	}
	return decodeNames(&v.storable, m, diffNames, hasDiff)
}

func decodeCode(c *Code, data doc.Value, diff *Code, diffNames []string, hasDiff bool) error {
	m, err := entryMapping(data)
	if err != nil {
		return err
	}
	for _, field := range m.Keys() {
		switch field {
		case "name", "aliases", "type", "description", "category", "values":
		default:
			return invalidArgument("deserialize", field, "unknown code attribute")
		}
	}
	if err := decodeNames(&c.storable, m, diffNames, hasDiff); err != nil {
		return err
	}

	var typ, description, category string
	if hasDiff {
		typ, description, category = string(diff.typ), diff.description, diff.category
	}
	if typ, err = textField(m, "type", typ); err != nil {
		return err
	}
	if err := c.SetType(ControlType(typ)); err != nil {
		return err
	}
	if c.description, err = textField(m, "description", description); err != nil {
		return err
	}
	if c.category, err = textField(m, "category", category); err != nil {
		return err
	}

	var diffValues *table[*Value]
	if hasDiff {
		diffValues = &diff.values.t
	}
	if values, ok := m.Get("values"); ok {
		return decodeTable(&c.values.t, values, diffValues, true, valueCodec)
	}
	// Without a values field the code has the diff's values, or none.
	if diffValues == nil {
		return decodeTable(&c.values.t, nil, nil, true, valueCodec)
	}
	for _, k := range diffValues.keys() {
		if _, err := inheritEntry(&c.values.t, KeyRef(k), diffValues); err != nil {
			return err
		}
	}
	for _, k := range c.values.t.keys() {
		if !diffValues.contains(KeyRef(k)) {
			c.values.t.remove(KeyRef(k))
		}
	}
	return nil
}
