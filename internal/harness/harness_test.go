package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vcpctl/internal/config"
	"github.com/roach88/vcpctl/internal/script"
)

func load(t *testing.T, name string) *Scenario {
	t.Helper()
	scenario, err := LoadScenario("testdata/scenarios/" + name + ".yaml")
	require.NoError(t, err)
	return scenario
}

func TestRun_Evening(t *testing.T) {
	result, err := Run(context.Background(), load(t, "evening"))
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, DefaultRunID, result.RunID)
	assert.Equal(t, 3, result.Executed)
	assert.Equal(t, []string{"input = hdmi1", "Luminance: 40"}, result.Output)

	require.Len(t, result.Trace, 2)
	assert.Equal(t, TraceEvent{
		Seq: 1, Monitor: "DEL4242/ABC1234", Code: "0x10", Name: "Luminance", Value: 40, Verified: true,
	}, result.Trace[0])
	assert.Equal(t, "0x60", result.Trace[1].Code)
	assert.Equal(t, uint16(0x11), result.Trace[1].Value)
}

func TestRun_IsDeterministic(t *testing.T) {
	first, err := Run(context.Background(), load(t, "evening"))
	require.NoError(t, err)
	second, err := Run(context.Background(), load(t, "evening"))
	require.NoError(t, err)

	assert.Equal(t, first.Trace, second.Trace, "each run starts from a fresh database and clock")
}

func TestRun_FailedAssertions(t *testing.T) {
	scenario := load(t, "evening")
	scenario.Assertions = []Assertion{
		{Type: AssertValue, Monitor: "primary", Code: "luminance", Expect: "41"},
		{Type: AssertWriteCount, Count: 5},
		{Type: AssertWriteOrder, Codes: []string{"input", "luminance"}},
		{Type: AssertCodeAbsent, Monitor: "primary", Code: "luminance"},
		{Type: AssertFailedCount, Count: 1},
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 5)
	assert.Contains(t, result.Errors[0], "Luminance on primary to be 41")
	assert.Contains(t, result.Errors[1], "Expected: 5 write(s)")
	assert.Contains(t, result.Errors[2], "luminance was written before input")
	assert.Contains(t, result.Errors[3], "found Luminance (0x10)")
	assert.Contains(t, result.Errors[4], "Expected: 1 failed step(s)")
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	scenario := &Scenario{
		Name:        "stops",
		Description: "A failing step ends the run",
		Steps: []script.Step{
			{Action: script.ActionSet, Monitor: "primary", Code: "luminance", Value: "500"},
			{Action: script.ActionSet, Monitor: "primary", Code: "luminance", Value: "10"},
		},
		Assertions: []Assertion{
			{Type: AssertFailedCount, Count: 1},
			{Type: AssertWriteCount, Count: 0},
			{Type: AssertValue, Monitor: "primary", Code: "luminance", Expect: "75"},
		},
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, 1, result.Executed)
	assert.Contains(t, result.Failed[0], "out of range")
}

func TestRun_IgnoreErrors(t *testing.T) {
	scenario := &Scenario{
		Name:         "ignore",
		Description:  "Failing steps are skipped over",
		IgnoreErrors: true,
		RunID:        "ignore-1",
		Steps: []script.Step{
			{Action: script.ActionSet, Monitor: "primary", Code: "luminance", Value: "500"},
			{Action: script.ActionGet, Monitor: "primary", Code: "no such code"},
			{Action: script.ActionSet, Monitor: "primary", Code: "luminance", Value: "10"},
		},
		Assertions: []Assertion{
			{Type: AssertFailedCount, Count: 2},
			{Type: AssertWriteCount, Monitor: "primary", Code: "0x10", Count: 1},
			{Type: AssertValue, Monitor: "primary", Code: "luminance", Expect: "10"},
		},
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "ignore-1", result.RunID)
	assert.Equal(t, 3, result.Executed)
}

func TestRun_CustomCodes(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: custom
description: "Custom codes extend the table"
monitors:
  - id: CUS0001/1
    name: Custom Display
    primary: true
    values: {"0xE0": 1}
custom_codes:
  "0xE0":
    name: Picture Mode
    type: NC
    values:
      "0x01": Eco
      "0x02": Movie
steps:
  - {action: set, monitor: primary, code: picture mode, value: movie}
  - {action: get, monitor: primary, code: "0xE0"}
assertions:
  - {type: value, monitor: primary, code: picture mode, expect: Movie}
  - {type: write_count, code: picture mode, count: 1}
`))
	require.NoError(t, err)

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, []string{"Picture Mode: Movie"}, result.Output)
	require.Len(t, result.Trace, 1)
	assert.Equal(t, "Picture Mode", result.Trace[0].Name)
}

func TestRun_SetupErrors(t *testing.T) {
	base := func() *Scenario {
		return &Scenario{
			Name:        "broken",
			Description: "Broken setup",
			Steps:       []script.Step{{Action: script.ActionReset, Monitor: "primary"}},
			Assertions:  []Assertion{{Type: AssertWriteCount}},
		}
	}

	bad := base()
	bad.Monitors = []config.SimulatorMonitor{{ID: "X/1", Values: map[string]uint16{"0x100": 1}}}
	_, err := Run(context.Background(), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build monitors")

	bad = base()
	bad.Steps[0].Monitor = "("
	_, err = Run(context.Background(), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build steps")
}
