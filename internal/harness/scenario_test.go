package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vcpctl/internal/script"
)

func TestLoadScenario_ValidFile(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/evening.yaml")
	require.NoError(t, err)

	assert.Equal(t, "evening", scenario.Name)
	assert.Empty(t, scenario.RunID)
	assert.Empty(t, scenario.Monitors)
	require.Len(t, scenario.Steps, 3)
	assert.Equal(t, script.Step{Action: "set", Monitor: "primary", Code: "luminance", Value: "40"}, scenario.Steps[0])
	assert.Equal(t, []string{"dp1", "hdmi1"}, scenario.Steps[1].Values)
	require.Len(t, scenario.Assertions, 5)
	assert.Equal(t, Assertion{Type: AssertWriteOrder, Codes: []string{"luminance", "input"}}, scenario.Assertions[3])
}

func TestLoadScenario_Monitors(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/restricted.yaml")
	require.NoError(t, err)

	assert.Equal(t, "restricted-1", scenario.RunID)
	require.Len(t, scenario.Monitors, 1)
	m := scenario.Monitors[0]
	assert.Equal(t, "Desk Display", m.Name)
	assert.True(t, m.Primary)
	assert.Equal(t, uint16(15), m.Values["0x60"])
	assert.True(t, scenario.Steps[1].NoVerify)
}

func TestLoadScenario_CustomCodes(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: custom
description: "Custom codes"
custom_codes:
  "0xE0":
    name: Picture Mode
    type: NC
steps:
  - {action: get, monitor: primary, code: picture mode}
assertions:
  - {type: failed_count, count: 1}
`))
	require.NoError(t, err)
	assert.False(t, scenario.CustomCodes.IsZero())
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: typo
description: "Misspelled assertions"
steps:
  - {action: reset, monitor: primary}
assertion:
  - {type: write_count, count: 0}
`), 0o644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidateScenario(t *testing.T) {
	valid := func() *Scenario {
		return &Scenario{
			Name:        "valid",
			Description: "valid scenario",
			Steps:       []script.Step{{Action: "reset", Monitor: "primary"}},
			Assertions:  []Assertion{{Type: AssertWriteCount}},
		}
	}
	require.NoError(t, validateScenario(valid()))

	tests := []struct {
		name   string
		mutate func(*Scenario)
		want   string
	}{
		{"no name", func(s *Scenario) { s.Name = "" }, "name is required"},
		{"no description", func(s *Scenario) { s.Description = "" }, "description is required"},
		{"no steps", func(s *Scenario) { s.Steps = nil }, "steps list is required"},
		{"no assertions", func(s *Scenario) { s.Assertions = nil }, "assertions list is required"},
		{"bad step", func(s *Scenario) { s.Steps[0].Action = "dance" }, "steps[0]: unknown action"},
		{"no type", func(s *Scenario) { s.Assertions[0].Type = "" }, "type is required"},
		{"unknown type", func(s *Scenario) { s.Assertions[0].Type = "vibes" }, `unknown assertion type "vibes"`},
		{"value without code", func(s *Scenario) {
			s.Assertions[0] = Assertion{Type: AssertValue, Monitor: "primary", Expect: "1"}
		}, "required for value"},
		{"negative count", func(s *Scenario) { s.Assertions[0].Count = -1 }, "count must be non-negative"},
		{"empty order", func(s *Scenario) { s.Assertions[0] = Assertion{Type: AssertWriteOrder} }, "codes list is required"},
		{"absent without monitor", func(s *Scenario) {
			s.Assertions[0] = Assertion{Type: AssertCodeAbsent, Code: "0x10"}
		}, "required for code_absent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			err := validateScenario(s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
