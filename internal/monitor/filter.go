package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/roach88/vcpctl/internal/ddc"
)

// ErrNoMonitor is returned when no connected monitor matches a filter.
var ErrNoMonitor = errors.New("no monitor matches filter")

// Filter selects monitors by their OS-reported info.
type Filter interface {
	Match(info ddc.Info) bool
	String() string
}

// Primary matches the primary monitor.
type Primary struct{}

func (Primary) Match(info ddc.Info) bool { return info.Primary }
func (Primary) String() string           { return "Primary" }

// Regex matches when every pattern matches at least one info field.
// Patterns are case-insensitive. The pattern "primary" also matches the
// primary monitor by the field's name.
type Regex struct {
	patterns []*regexp.Regexp
}

// NewRegex compiles patterns. At least one is required.
func NewRegex(patterns ...string) (*Regex, error) {
	if len(patterns) == 0 {
		return nil, errors.New("regex filter needs at least one pattern")
	}
	r := &Regex{}
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("filter pattern %q: %w", p, err)
		}
		r.patterns = append(r.patterns, re)
	}
	return r, nil
}

func (r *Regex) Match(info ddc.Info) bool {
	fields := info.Fields()
	for _, re := range r.patterns {
		if !matchAny(re, info.Primary, fields) {
			return false
		}
	}
	return true
}

func matchAny(re *regexp.Regexp, primary bool, fields []ddc.Field) bool {
	if primary && re.MatchString("primary") {
		return true
	}
	for _, f := range fields {
		if re.MatchString(f.Value) {
			return true
		}
	}
	return false
}

func (r *Regex) String() string {
	if len(r.patterns) == 1 {
		return stripFlags(r.patterns[0])
	}
	parts := make([]string, len(r.patterns))
	for i, re := range r.patterns {
		parts[i] = "<" + stripFlags(re) + ">"
	}
	return "{" + strings.Join(parts, " && ") + "}"
}

func stripFlags(re *regexp.Regexp) string {
	return strings.TrimPrefix(re.String(), "(?i)")
}

// InfoFilter matches monitors whose non-empty fields are all equal to
// the filter's.
type InfoFilter struct {
	Model          string
	Serial         string
	ManufacturerID string
	ProductID      string
}

func (f InfoFilter) Match(info ddc.Info) bool {
	checks := [][2]string{
		{f.Model, info.Model},
		{f.Serial, info.Serial},
		{f.ManufacturerID, info.ManufacturerID},
		{f.ProductID, info.ProductID},
	}
	for _, c := range checks {
		if c[0] != "" && c[0] != c[1] {
			return false
		}
	}
	return true
}

func (f InfoFilter) String() string {
	return strings.Join([]string{f.Model, f.Serial, f.ManufacturerID, f.ProductID}, "/")
}

// IDFilter matches the monitor with exactly this ID.
type IDFilter string

func (f IDFilter) Match(info ddc.Info) bool { return info.ID == string(f) }
func (f IDFilter) String() string           { return string(f) }

// ParseFilter reads a command-line filter: "primary" selects the primary
// monitor, anything else is a list of regular expressions separated by
// "/", all of which must match.
func ParseFilter(s string) (Filter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty monitor filter")
	}
	if strings.EqualFold(s, "primary") {
		return Primary{}, nil
	}
	var patterns []string
	for _, p := range strings.Split(s, "/") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return NewRegex(patterns...)
}

// Find returns the first monitor matching f. When several match, the
// first is used and the ambiguity is logged.
func Find(ctx context.Context, backend ddc.Backend, f Filter, logger *slog.Logger) (ddc.Info, error) {
	infos, err := backend.Enumerate(ctx)
	if err != nil {
		return ddc.Info{}, fmt.Errorf("enumerate monitors: %w", err)
	}

	var matched []ddc.Info
	for _, info := range infos {
		if f.Match(info) {
			matched = append(matched, info)
		}
	}

	switch len(matched) {
	case 0:
		return ddc.Info{}, fmt.Errorf("%w: %s", ErrNoMonitor, f)
	case 1:
	default:
		names := make([]string, len(matched))
		for i, m := range matched {
			names[i] = m.DisplayName()
		}
		if logger != nil {
			logger.Warn("filter matched more than one monitor, using the first",
				"filter", f.String(), "matches", names)
		}
	}
	return matched[0], nil
}
