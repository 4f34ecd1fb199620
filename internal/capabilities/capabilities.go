// Package capabilities parses DDC/CI capabilities strings, e.g.
//
//	(prot(monitor)type(lcd)model(X)cmds(01 02)vcp(10 12 60(0F 11))mccs_ver(2.2))
//
// into an ordered set of named lists.
package capabilities

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/vcpctl/internal/vcp"
)

// Node is one element of a capabilities list: an Atom or a List.
type Node interface {
	node()
}

// Atom is a bare word.
type Atom string

// List is a name followed by a parenthesised group of nodes. The outermost
// group of a capabilities string has no name.
type List struct {
	Name  string
	Items []Node
}

func (Atom) node() {}
func (List) node() {}

// Atoms returns the bare words directly inside l.
func (l List) Atoms() []string {
	var out []string
	for _, n := range l.Items {
		if a, ok := n.(Atom); ok {
			out = append(out, string(a))
		}
	}
	return out
}

// ErrNoVCP is returned by VCP when the string carries no vcp() list.
var ErrNoVCP = errors.New("capabilities: no vcp list")

// Capabilities is a parsed capabilities string.
type Capabilities struct {
	Raw    string
	fields []List
}

// Parse reads a capabilities string.
func Parse(s string) (*Capabilities, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return nil, errors.New("capabilities: empty string")
	}

	p := &parser{s: text}
	items, err := p.items(0)
	if err != nil {
		return nil, err
	}
	if len(items) == 1 {
		if outer, ok := items[0].(List); ok && outer.Name == "" {
			items = outer.Items
		}
	}

	c := &Capabilities{Raw: s}
	for _, n := range items {
		l, ok := n.(List)
		if !ok || l.Name == "" {
			return nil, fmt.Errorf("capabilities: expected key(value...) at top level, got %v", n)
		}
		c.fields = append(c.fields, l)
	}
	return c, nil
}

// Keys returns the top-level keys in order of appearance.
func (c *Capabilities) Keys() []string {
	out := make([]string, len(c.fields))
	for i, f := range c.fields {
		out[i] = f.Name
	}
	return out
}

// Get returns the list stored under key. Keys are matched case-insensitively.
func (c *Capabilities) Get(key string) (List, bool) {
	for _, f := range c.fields {
		if strings.EqualFold(f.Name, key) {
			return f, true
		}
	}
	return List{}, false
}

// String returns the words under key joined by spaces, or "" when absent.
func (c *Capabilities) String(key string) string {
	l, ok := c.Get(key)
	if !ok {
		return ""
	}
	return strings.Join(l.Atoms(), " ")
}

// VCP returns the reported VCP codes. A code followed by a value group
// restricts the code to those values; a bare code allows any value.
func (c *Capabilities) VCP() ([]vcp.Capability, error) {
	l, ok := c.Get("vcp")
	if !ok {
		return nil, ErrNoVCP
	}

	out := make([]vcp.Capability, 0, len(l.Items))
	for _, n := range l.Items {
		switch n := n.(type) {
		case Atom:
			k, err := parseHex(string(n), 8)
			if err != nil {
				return nil, err
			}
			out = append(out, vcp.Capability{Code: k})
		case List:
			k, err := parseHex(n.Name, 8)
			if err != nil {
				return nil, err
			}
			values := make([]vcp.Key, 0, len(n.Items))
			for _, v := range n.Atoms() {
				vk, err := parseHex(v, 16)
				if err != nil {
					return nil, fmt.Errorf("code %s: %w", k, err)
				}
				values = append(values, vk)
			}
			out = append(out, vcp.Capability{Code: k, Values: values})
		}
	}
	return out, nil
}

func parseHex(s string, bits int) (vcp.Key, error) {
	n, err := strconv.ParseUint(s, 16, bits)
	if err != nil {
		return 0, fmt.Errorf("capabilities: invalid hex %q", s)
	}
	return vcp.Key(n), nil
}

type parser struct {
	s   string
	pos int
}

func (p *parser) items(depth int) ([]Node, error) {
	var out []Node
	for {
		p.skipSpace()
		if p.pos >= len(p.s) {
			if depth > 0 {
				return nil, errors.New("capabilities: unbalanced parentheses")
			}
			return out, nil
		}

		switch p.s[p.pos] {
		case ')':
			if depth == 0 {
				return nil, fmt.Errorf("capabilities: unexpected ')' at offset %d", p.pos)
			}
			p.pos++
			return out, nil
		case '(':
			p.pos++
			children, err := p.items(depth + 1)
			if err != nil {
				return nil, err
			}
			out = append(out, List{Items: children})
		default:
			word := p.word()
			if p.pos < len(p.s) && p.s[p.pos] == '(' {
				p.pos++
				children, err := p.items(depth + 1)
				if err != nil {
					return nil, err
				}
				out = append(out, List{Name: word, Items: children})
				continue
			}
			out = append(out, Atom(word))
		}
	}
}

func (p *parser) word() string {
	start := p.pos
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case '(', ')', ' ', '\t', '\r', '\n':
			return p.s[start:p.pos]
		}
		p.pos++
	}
	return p.s[start:]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}
