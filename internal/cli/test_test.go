package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: dim
description: "Dim the demo monitor"
steps:
  - {action: set, monitor: primary, code: luminance, value: "30"}
assertions:
  - {type: value, monitor: primary, code: luminance, expect: "30"}
  - {type: write_count, count: 1}
`

const failingScenario = `name: wrong
description: "Expects the wrong value"
steps:
  - {action: set, monitor: primary, code: luminance, value: "30"}
assertions:
  - {type: value, monitor: primary, code: luminance, expect: "31"}
`

func scenarioDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestTestCommandPasses(t *testing.T) {
	env := newTestEnv(t)
	dir := scenarioDir(t, map[string]string{"dim.yaml": passingScenario, "notes.txt": "ignored"})

	out := env.mustExec("test", dir)
	assert.Contains(t, out, "✓ dim\n")
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
	assert.Contains(t, out, "All scenarios passed")
	assert.Equal(t, 0, env.sim.Writes(), "scenarios never touch the configured backend")
}

func TestTestCommandFailures(t *testing.T) {
	env := newTestEnv(t)
	dir := scenarioDir(t, map[string]string{
		"dim.yaml":    passingScenario,
		"wrong.yaml":  failingScenario,
		"broken.yaml": "name: broken\n",
	})

	out, err := env.exec("test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong")
	assert.Contains(t, out, "Luminance on primary to be 31")
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "1 passed, 2 failed, 3 total")

	out, err = env.exec("--format", "json", "test", dir)
	require.Error(t, err)
	var resp struct {
		Status string `json:"status"`
		Error  struct {
			Code    string     `json:"code"`
			Details TestResult `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
	assert.Equal(t, 3, resp.Error.Details.Total)
	assert.Equal(t, 2, resp.Error.Details.Failed)
}

func TestTestCommandGolden(t *testing.T) {
	env := newTestEnv(t)
	dir := scenarioDir(t, map[string]string{"dim.yaml": passingScenario})
	golden := filepath.Join(dir, "golden", "dim.golden")

	out := env.mustExec("test", dir, "--update")
	assert.Contains(t, out, "✓ dim (golden updated)")

	data, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario_name": "dim"`)
	assert.Contains(t, string(data), `"value": 30`)

	env.mustExec("test", dir)

	require.NoError(t, os.WriteFile(golden, []byte("{}\n"), 0o644))
	out, err = env.exec("test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "trace does not match golden file")
}

func TestTestCommandFilter(t *testing.T) {
	env := newTestEnv(t)
	dir := scenarioDir(t, map[string]string{"dim.yaml": passingScenario, "wrong.yaml": failingScenario})

	out := env.mustExec("test", dir, "--filter", "d*")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")

	out = env.mustExec("test", dir, "--filter", "nothing*")
	assert.Contains(t, out, "No scenarios found.")

	out = env.mustExec("--format", "json", "test", dir, "--filter", "nothing*")
	var resp struct {
		Data TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 0, resp.Data.Total)
}

func TestTestCommandMissingDir(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.exec("test", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeFileNotFound)
}
