package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/vcpctl/internal/monitor"
	"github.com/roach88/vcpctl/internal/vcp"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %s = %d\n", event.Seq, event.Monitor, codeLabel(event), event.Value)
		}
	}

	return buf.String()
}

func codeLabel(e TraceEvent) string {
	if e.Name != "" {
		return e.Name
	}
	return e.Code
}

// AssertionContext gives assertions access to the scenario's monitors
// and code table.
type AssertionContext struct {
	Ctx      context.Context
	Monitors func(filter string) (*monitor.Monitor, error)
	Spec     *vcp.CodeStorage
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertValue:
			err = assertValue(actx, assertion)
		case AssertWriteCount:
			err = assertWriteCount(actx, result.Trace, assertion)
		case AssertWriteOrder:
			err = assertWriteOrder(actx, result.Trace, assertion)
		case AssertCodeAbsent:
			err = assertCodeAbsent(actx, assertion)
		case AssertFailedCount:
			if len(result.Failed) != assertion.Count {
				err = &AssertionError{
					Type:     AssertFailedCount,
					Expected: fmt.Sprintf("%d failed step(s)", assertion.Count),
					Actual:   fmt.Sprintf("%d failed step(s): %v", len(result.Failed), result.Failed),
				}
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

func (a *AssertionContext) monitor(filter string) (*monitor.Monitor, error) {
	if a == nil || a.Monitors == nil {
		return nil, fmt.Errorf("no monitors available for filter %q", filter)
	}
	return a.Monitors(filter)
}

// assertValue reads a code and compares it with the expected value,
// given as a value name or number.
func assertValue(actx *AssertionContext, assertion Assertion) error {
	m, err := actx.monitor(assertion.Monitor)
	if err != nil {
		return fmt.Errorf("value: %w", err)
	}
	r, err := m.Read(actx.Ctx, assertion.Code)
	if err != nil {
		return fmt.Errorf("value: %w", err)
	}
	want, err := monitor.ResolveValue(r.Code, assertion.Expect)
	if err != nil {
		return fmt.Errorf("value: %w", err)
	}
	if r.Raw != want {
		return &AssertionError{
			Type:     AssertValue,
			Expected: fmt.Sprintf("%s on %s to be %s (%d)", r.Code.Name(), assertion.Monitor, assertion.Expect, want),
			Actual:   fmt.Sprintf("%s (%d)", r, r.Raw),
		}
	}
	return nil
}

// filterTrace keeps the writes to the asserted monitor and code, when set.
func filterTrace(actx *AssertionContext, trace []TraceEvent, assertion Assertion) ([]TraceEvent, error) {
	monitorID := ""
	if assertion.Monitor != "" {
		m, err := actx.monitor(assertion.Monitor)
		if err != nil {
			return nil, err
		}
		info, err := m.Info(actx.Ctx)
		if err != nil {
			return nil, err
		}
		monitorID = info.ID
	}

	var out []TraceEvent
	for _, e := range trace {
		if monitorID != "" && e.Monitor != monitorID {
			continue
		}
		out = append(out, e)
	}

	if assertion.Code == "" {
		return out, nil
	}
	key, err := actx.codeKey(assertion.Code)
	if err != nil {
		return nil, err
	}
	var matched []TraceEvent
	for _, e := range out {
		if e.Code == key {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// codeKey resolves a code name, alias or key to the key spelling used in
// the trace.
func (a *AssertionContext) codeKey(id string) (string, error) {
	if k, ok := vcp.ParseKey(id); ok {
		return k.String(), nil
	}
	if a == nil || a.Spec == nil {
		return "", fmt.Errorf("cannot resolve code %q without a code table", id)
	}
	code, err := a.Spec.Code(id)
	if err != nil {
		return "", err
	}
	return code.Key().String(), nil
}

// assertWriteCount checks the number of recorded writes.
func assertWriteCount(actx *AssertionContext, trace []TraceEvent, assertion Assertion) error {
	writes, err := filterTrace(actx, trace, assertion)
	if err != nil {
		return fmt.Errorf("write_count: %w", err)
	}
	if len(writes) != assertion.Count {
		return &AssertionError{
			Type:     AssertWriteCount,
			Expected: fmt.Sprintf("%d write(s)", assertion.Count),
			Actual:   fmt.Sprintf("%d write(s)", len(writes)),
			Trace:    trace,
		}
	}
	return nil
}

// assertWriteOrder checks that codes were first written in the given
// order. Other writes may come in between.
func assertWriteOrder(actx *AssertionContext, trace []TraceEvent, assertion Assertion) error {
	writes, err := filterTrace(actx, trace, Assertion{Monitor: assertion.Monitor})
	if err != nil {
		return fmt.Errorf("write_order: %w", err)
	}

	positions := make([]int, len(assertion.Codes))
	for i, code := range assertion.Codes {
		key, err := actx.codeKey(code)
		if err != nil {
			return fmt.Errorf("write_order: %w", err)
		}
		positions[i] = -1
		for j, e := range writes {
			if e.Code == key {
				positions[i] = j
				break
			}
		}
		if positions[i] < 0 {
			return &AssertionError{
				Type:     AssertWriteOrder,
				Expected: fmt.Sprintf("writes in order %v", assertion.Codes),
				Actual:   fmt.Sprintf("%s was never written", code),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(positions); i++ {
		if positions[i] < positions[i-1] {
			return &AssertionError{
				Type:     AssertWriteOrder,
				Expected: fmt.Sprintf("writes in order %v", assertion.Codes),
				Actual:   fmt.Sprintf("%s was written before %s", assertion.Codes[i], assertion.Codes[i-1]),
				Trace:    trace,
			}
		}
	}
	return nil
}

// assertCodeAbsent checks that a code is missing from a monitor's table.
func assertCodeAbsent(actx *AssertionContext, assertion Assertion) error {
	m, err := actx.monitor(assertion.Monitor)
	if err != nil {
		return fmt.Errorf("code_absent: %w", err)
	}
	code, err := m.Code(actx.Ctx, assertion.Code)
	if vcp.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("code_absent: %w", err)
	}
	return &AssertionError{
		Type:     AssertCodeAbsent,
		Expected: fmt.Sprintf("%s to be absent on %s", assertion.Code, assertion.Monitor),
		Actual:   fmt.Sprintf("found %s (%s)", code.Name(), code.Key()),
	}
}
