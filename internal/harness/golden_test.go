package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_Evening(t *testing.T) {
	result, err := RunWithGolden(t, load(t, "evening"))
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRunWithGolden_Restricted(t *testing.T) {
	result, err := RunWithGolden(t, load(t, "restricted"))
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestSnapshot_EmptyResult(t *testing.T) {
	data, err := Snapshot("empty", &Result{RunID: "r"})
	require.NoError(t, err)
	assert.Equal(t, `{
  "scenario_name": "empty",
  "run_id": "r",
  "executed": 0,
  "output": [],
  "failed": [],
  "trace": []
}
`, string(data))
}

func TestSnapshot_OmitsEmptyName(t *testing.T) {
	result := NewResult("r")
	result.AddWrite(TraceEvent{Seq: 1, Monitor: "A/1", Code: "0xF0", Value: 1})
	snap := NewSnapshot("unnamed", result)
	require.Len(t, snap.Trace, 1)

	data, err := Snapshot("unnamed", result)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"name"`)
	assert.Contains(t, string(data), `"code": "0xF0"`)
}
