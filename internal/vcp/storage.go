package vcp

// CodeStorage is a registry of codes addressable by key or alias.
//
// A storage created with NewOverlay reads through to another storage.
// Lookups that only succeed in the fallback return *FallbackCode proxies;
// changing a proxy copies the code into the overlay, leaving the fallback
// untouched. CodeStorage is not safe for concurrent use.
type CodeStorage struct {
	t        table[*Code]
	fallback *CodeStorage
}

// NewCodeStorage returns an empty storage without a fallback.
func NewCodeStorage() *CodeStorage {
	s := &CodeStorage{}
	s.t.init(
		func(k Key, detached bool) *Code { return newCode(k, &s.t, detached) },
		copyCodeAttrs,
	)
	return s
}

// NewOverlay returns an empty storage that reads through to fallback. A
// nil fallback gives the same storage as NewCodeStorage.
func NewOverlay(fallback *CodeStorage) *CodeStorage {
	s := NewCodeStorage()
	if fallback == nil {
		return s
	}
	// Cannot fail: s is fresh.
	_ = s.SetFallback(fallback)
	return s
}

// SetFallback installs the storage to read through to. It fails when a
// fallback is already installed or the storage already holds entries.
func (s *CodeStorage) SetFallback(fallback *CodeStorage) error {
	if fallback == nil {
		return invalidArgument("set fallback", "", "fallback must not be nil")
	}
	if err := s.t.setFallback("set fallback", func() *table[*Code] { return &fallback.t }); err != nil {
		return err
	}
	s.fallback = fallback
	return nil
}

// Fallback returns the installed fallback, or nil.
func (s *CodeStorage) Fallback() *CodeStorage {
	return s.fallback
}

// GetOption adjusts a Get call.
type GetOption func(*getOptions)

type getOptions struct {
	add           bool
	checkFallback bool
	wrap          bool
}

// WithAdd creates a missing entry when the identifier is a key.
func WithAdd() GetOption {
	return func(o *getOptions) { o.add = true }
}

// LocalOnly skips the fallback.
func LocalOnly() GetOption {
	return func(o *getOptions) { o.checkFallback = false }
}

// Unwrapped returns the fallback's own entry instead of a proxy. The
// caller must not modify it.
func Unwrapped() GetOption {
	return func(o *getOptions) { o.wrap = false }
}

// Get resolves id to a visible code.
func (s *CodeStorage) Get(id string, opts ...GetOption) (CodeEntry, error) {
	o := getOptions{checkFallback: true, wrap: true}
	for _, opt := range opts {
		opt(&o)
	}
	c, fromFallback, err := s.t.get("get", Normalize(id), o.add, o.checkFallback)
	if err != nil {
		return nil, err
	}
	if fromFallback && o.wrap {
		return &FallbackCode{key: c.key, owner: s}, nil
	}
	return c, nil
}

// Code resolves id to a visible code.
func (s *CodeStorage) Code(id string) (CodeEntry, error) {
	return s.Get(id)
}

// Contains reports whether id resolves to a visible code.
func (s *CodeStorage) Contains(id string) bool {
	return s.t.contains(Normalize(id))
}

// ContainsLocal reports whether id resolves without the fallback.
func (s *CodeStorage) ContainsLocal(id string) bool {
	_, err := s.Get(id, LocalOnly())
	return err == nil
}

// Add returns the local code with key k, creating it when needed. A key
// only visible through the fallback is copied in first.
func (s *CodeStorage) Add(k Key) *Code {
	return s.t.add(k)
}

// Set maps the alias name to code k, creating the code when needed.
func (s *CodeStorage) Set(name string, k Key) (*Code, error) {
	return s.t.set(name, k)
}

// Remove deletes a code by key, or detaches a single alias. Identifiers
// the fallback still shows are tombstoned.
func (s *CodeStorage) Remove(id string) {
	s.t.remove(Normalize(id))
}

// Materialize returns the local code for id, copying it from the fallback
// when needed.
func (s *CodeStorage) Materialize(id string) (*Code, error) {
	return s.t.materialize("materialize", Normalize(id))
}

// CopyFrom merges a code into this storage.
func (s *CodeStorage) CopyFrom(c *Code) *Code {
	return s.t.copyEntry(c, c.Names())
}

// CopyStorage merges every visible code of other into this storage.
func (s *CodeStorage) CopyStorage(other *CodeStorage) {
	s.t.copyFrom(&other.t)
}

// Keys returns the visible keys in ascending order.
func (s *CodeStorage) Keys() []Key {
	return s.t.keys()
}

// Names returns the visible normalized aliases in sorted order.
func (s *CodeStorage) Names() []string {
	return s.t.aliasNames()
}

// Len returns the number of visible codes.
func (s *CodeStorage) Len() int {
	return len(s.t.keys())
}

// Codes returns the visible codes ordered by key.
func (s *CodeStorage) Codes() []CodeEntry {
	keys := s.t.keys()
	out := make([]CodeEntry, 0, len(keys))
	for _, k := range keys {
		c, err := s.Get(k.String())
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}
