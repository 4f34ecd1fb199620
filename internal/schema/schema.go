// Package schema validates override documents against an embedded CUE
// schema before they are applied to a code table.
package schema

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/vcpctl/internal/doc"
)

//go:embed overrides.cue
var overridesSchema string

// Error describes the first schema violation found in a document.
type Error struct {
	Path    string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	loc := e.Path
	if loc == "" {
		loc = "document"
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), loc, e.Message)
	}
	return fmt.Sprintf("%s: %s", loc, e.Message)
}

// Validator checks documents against the #Codes definition.
type Validator struct {
	mu    sync.Mutex
	ctx   *cue.Context
	codes cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(overridesSchema, cue.Filename("overrides.cue"))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	codes := v.LookupPath(cue.ParsePath("#Codes"))
	if !codes.Exists() {
		return nil, &Error{Path: "#Codes", Message: "definition missing from schema"}
	}
	return &Validator{ctx: ctx, codes: codes}, nil
}

// Validate reports the first violation in d. A nil document is valid.
func (v *Validator) Validate(d doc.Value) error {
	if d == nil {
		return nil
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	data := v.ctx.Encode(doc.Interface(d))
	if err := data.Err(); err != nil {
		return formatCUEError(err)
	}
	if err := v.codes.Unify(data).Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return nil
}

var defaultValidator = sync.OnceValues(NewValidator)

// Validate checks d with a shared validator.
func Validate(d doc.Value) error {
	v, err := defaultValidator()
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	return v.Validate(d)
}

// Parse decodes a YAML override document and validates it.
func Parse(data []byte) (doc.Value, error) {
	d, err := doc.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	if err := Validate(d); err != nil {
		return nil, err
	}
	return d, nil
}

// formatCUEError keeps the first error and its position, if any.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &Error{Message: err.Error()}
	}

	first := errs[0]
	format, args := first.Msg()
	out := &Error{
		Path:    strings.Join(first.Path(), "."),
		Message: fmt.Sprintf(format, args...),
	}
	if positions := errors.Positions(first); len(positions) > 0 {
		out.Pos = positions[0]
	}
	return out
}
