package script

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vcpctl/internal/batch"
	"github.com/roach88/vcpctl/internal/monitor"
	"github.com/roach88/vcpctl/internal/testutil"
)

func TestParse(t *testing.T) {
	s, err := Parse([]byte(`
ignore_errors: true
commands:
  - {action: set, monitor: primary, code: input, value: hdmi1}
  - {action: toggle, monitor: boreal, code: input, values: [dp1, hdmi1]}
  - {action: capabilities, monitor: primary}
`))
	require.NoError(t, err)
	require.NotNil(t, s.IgnoreErrors)
	assert.True(t, *s.IgnoreErrors)
	require.Len(t, s.Commands, 3)
	assert.Equal(t, "set primary input hdmi1", s.Commands[0].String())
	assert.Equal(t, "toggle boreal input dp1 hdmi1", s.Commands[1].String())
	assert.Equal(t, "capabilities primary", s.Commands[2].String())
}

func TestParseRejects(t *testing.T) {
	bad := map[string]string{
		"empty":          "commands: []\n",
		"unknown action": "commands:\n  - {action: dance, monitor: primary}\n",
		"no monitor":     "commands:\n  - {action: get, code: input}\n",
		"get no code":    "commands:\n  - {action: get, monitor: primary}\n",
		"set no value":   "commands:\n  - {action: set, monitor: primary, code: input}\n",
		"one toggle":     "commands:\n  - {action: toggle, monitor: primary, code: input, values: [dp1]}\n",
		"unknown field":  "commands:\n  - {action: get, monitor: primary, code: input, colour: red}\n",
	}
	for name, data := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestCommands(t *testing.T) {
	ctx := context.Background()
	sim := testutil.Simulator(2, 0)
	spec := testutil.Spec(t)

	monitors := map[string]*monitor.Monitor{}
	source := func(filter string) (*monitor.Monitor, error) {
		if m, ok := monitors[filter]; ok {
			return m, nil
		}
		f, err := monitor.ParseFilter(filter)
		if err != nil {
			return nil, err
		}
		m := monitor.New(f, sim, spec)
		monitors[filter] = m
		return m, nil
	}

	steps := []Step{
		{Action: ActionSet, Monitor: "primary", Code: "luminance", Values: []string{"20", "30"}},
		{Action: ActionGet, Monitor: "primary", Code: "luminance"},
		{Action: ActionToggle, Monitor: "boreal", Code: "input", Values: []string{"dp1", "hdmi1"}},
		{Action: ActionCapabilities, Monitor: "primary"},
	}
	var out []string
	cmds, err := Commands(steps, source, func(line string) { out = append(out, line) })
	require.NoError(t, err)
	require.Len(t, cmds, 4)
	assert.Equal(t, "set primary luminance 20 30", cmds[0].String())

	runner := &batch.Runner{IDs: batch.NewFixedGenerator("run-1")}
	res, err := runner.Run(ctx, cmds)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Executed)
	assert.Equal(t, []string{"Luminance: 30", "input = hdmi1"}, out)

	v, _ := sim.Value("MCK0001/SN000002", 0x60)
	assert.Equal(t, uint16(0x11), v)

	codes, err := monitors["primary"].Codes(ctx)
	require.NoError(t, err)
	assert.Equal(t, testutil.MockCapabilityCodes, codes.Len())
}

func TestCommandsBadFilter(t *testing.T) {
	source := func(filter string) (*monitor.Monitor, error) {
		_, err := monitor.ParseFilter(filter)
		return nil, err
	}
	_, err := Commands([]Step{{Action: ActionGet, Monitor: "(", Code: "input"}}, source, func(string) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command 1")
}
