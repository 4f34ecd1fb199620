// Package script reads batches of monitor commands from YAML and turns
// them into batch commands.
//
//	ignore_errors: true
//	commands:
//	  - {action: set, monitor: primary, code: input, value: hdmi1}
//	  - {action: get, monitor: primary, code: luminance}
package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/vcpctl/internal/batch"
	"github.com/roach88/vcpctl/internal/monitor"
)

// Actions a step can take.
const (
	ActionGet          = "get"
	ActionSet          = "set"
	ActionToggle       = "toggle"
	ActionCapabilities = "capabilities"
	ActionReset        = "reset"
)

// Script is a batch of monitor commands.
type Script struct {
	// IgnoreErrors overrides the configured policy when set.
	IgnoreErrors *bool  `yaml:"ignore_errors"`
	Commands     []Step `yaml:"commands"`
}

// Step is one command of a script.
type Step struct {
	Action  string `yaml:"action"`
	Monitor string `yaml:"monitor"`
	Code    string `yaml:"code,omitempty"`
	Value   string `yaml:"value,omitempty"`
	// Values are written in order by set, and cycled through by toggle.
	Values   []string `yaml:"values,omitempty"`
	NoVerify bool     `yaml:"no_verify,omitempty"`
}

func (s Step) String() string {
	parts := []string{s.Action, s.Monitor}
	if s.Code != "" {
		parts = append(parts, s.Code)
	}
	if s.Value != "" {
		parts = append(parts, s.Value)
	}
	return strings.Join(append(parts, s.Values...), " ")
}

// Validate checks that the step names a known action with its arguments.
func (s Step) Validate() error {
	if s.Monitor == "" {
		return errors.New("monitor is required")
	}
	switch s.Action {
	case ActionGet:
		if s.Code == "" {
			return errors.New("get needs a code")
		}
	case ActionSet:
		if s.Code == "" || (s.Value == "" && len(s.Values) == 0) {
			return errors.New("set needs a code and a value")
		}
	case ActionToggle:
		if s.Code == "" || len(s.Values) < 2 {
			return errors.New("toggle needs a code and at least two values")
		}
	case ActionCapabilities, ActionReset:
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}
	return nil
}

// Parse decodes a script, rejecting unknown fields, and validates every
// step.
func Parse(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	if len(s.Commands) == 0 {
		return nil, errors.New("script has no commands")
	}
	if err := ValidateSteps(s.Commands); err != nil {
		return nil, err
	}
	return &s, nil
}

// ValidateSteps validates steps, numbering errors from 1.
func ValidateSteps(steps []Step) error {
	for i, step := range steps {
		if err := step.Validate(); err != nil {
			return fmt.Errorf("command %d: %w", i+1, err)
		}
	}
	return nil
}

// Command turns the step into a batch command on m. Lines worth showing
// the user are passed to out.
func (s Step) Command(m *monitor.Monitor, out func(string)) (batch.Command, error) {
	var fn func(ctx context.Context) error
	switch s.Action {
	case ActionGet:
		fn = func(ctx context.Context) error {
			r, err := m.Read(ctx, s.Code)
			if err != nil {
				return err
			}
			out(fmt.Sprintf("%s: %s", r.Code.Name(), r))
			return nil
		}
	case ActionSet:
		values := s.Values
		if s.Value != "" {
			values = append([]string{s.Value}, values...)
		}
		fn = func(ctx context.Context) error {
			for _, v := range values {
				if err := m.Write(ctx, s.Code, v, !s.NoVerify); err != nil {
					return err
				}
			}
			return nil
		}
	case ActionToggle:
		fn = func(ctx context.Context) error {
			v, err := m.Toggle(ctx, s.Code, s.Values, !s.NoVerify)
			if err != nil {
				return err
			}
			out(fmt.Sprintf("%s = %s", s.Code, v))
			return nil
		}
	case ActionCapabilities:
		fn = m.LoadCapabilities
	case ActionReset:
		fn = m.ResetCodes
	default:
		return nil, fmt.Errorf("unknown action %q", s.Action)
	}
	return batch.Func{Name: s.String(), Fn: fn}, nil
}

// MonitorSource returns the monitor a filter string selects.
type MonitorSource func(filter string) (*monitor.Monitor, error)

// Commands builds batch commands for steps. out receives the output lines
// of every step.
func Commands(steps []Step, monitors MonitorSource, out func(string)) ([]batch.Command, error) {
	cmds := make([]batch.Command, 0, len(steps))
	for i, step := range steps {
		m, err := monitors(step.Monitor)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i+1, err)
		}
		c, err := step.Command(m, out)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i+1, err)
		}
		cmds = append(cmds, c)
	}
	return cmds, nil
}
