package harness

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TraceSnapshot captures what a scenario run did, for golden comparison.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	RunID        string       `json:"run_id"`
	Executed     int          `json:"executed"`
	Output       []string     `json:"output"`
	Failed       []string     `json:"failed"`
	Trace        []TraceEvent `json:"trace"`
}

// NewSnapshot builds the snapshot of a result.
func NewSnapshot(name string, result *Result) TraceSnapshot {
	s := TraceSnapshot{
		ScenarioName: name,
		RunID:        result.RunID,
		Executed:     result.Executed,
		Output:       result.Output,
		Failed:       result.Failed,
		Trace:        result.Trace,
	}
	if s.Output == nil {
		s.Output = []string{}
	}
	if s.Failed == nil {
		s.Failed = []string{}
	}
	if s.Trace == nil {
		s.Trace = []TraceEvent{}
	}
	return s
}

// Snapshot renders the snapshot of a result as indented JSON with a
// trailing newline.
func Snapshot(name string, result *Result) ([]byte, error) {
	data, err := json.MarshalIndent(NewSnapshot(name, result), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return nil, err
	}
	return result, AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an already computed result against its golden
// file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
