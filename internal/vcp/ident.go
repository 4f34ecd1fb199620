package vcp

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Key is the canonical integer identifier of an entry. VCP codes fit in a
// byte and values in 16 bits; Key is wide enough for both.
type Key uint32

// String renders the key in two-digit upper-case hex.
func (k Key) String() string {
	return fmt.Sprintf("0x%02X", uint32(k))
}

// Ref is a normalized identifier: either a canonical key or a folded alias.
type Ref struct {
	Key   Key
	Alias string
	isKey bool
}

// KeyRef returns a reference to a canonical key.
func KeyRef(k Key) Ref {
	return Ref{Key: k, isKey: true}
}

// IsKey reports whether the reference names a canonical key.
func (r Ref) IsKey() bool {
	return r.isKey
}

func (r Ref) String() string {
	if r.isKey {
		return r.Key.String()
	}
	return r.Alias
}

// Normalize maps a user-supplied identifier to its lookup form.
//
// Strings that parse as an unsigned integer (decimal, or hex with a 0x
// prefix) become keys. Everything else becomes an alias: lower-cased,
// compatibility-decomposed, and stripped to [a-z0-9]. When stripping leaves
// nothing the original string is kept.
func Normalize(id string) Ref {
	if k, ok := parseKey(strings.TrimSpace(id)); ok {
		return KeyRef(k)
	}
	return Ref{Alias: foldAlias(id)}
}

// ParseKey parses a canonical key, reporting false for anything else.
func ParseKey(s string) (Key, bool) {
	return parseKey(strings.TrimSpace(s))
}

// IsKeyShaped reports whether name would be read as a canonical key.
// Such strings cannot be used as aliases.
func IsKeyShaped(name string) bool {
	return Normalize(name).IsKey()
}

func parseKey(s string) (Key, bool) {
	if s == "" {
		return 0, false
	}
	base := 10
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
		base = 16
	}
	n, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, false
	}
	return Key(n), true
}

func foldAlias(s string) string {
	lowered := cases.Lower(language.Und).String(norm.NFKD.String(s))
	var b strings.Builder
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return s
	}
	return b.String()
}

// FormatKey renders k the way serialized documents spell keys.
func FormatKey(k Key) string {
	return k.String()
}
