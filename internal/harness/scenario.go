package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/vcpctl/internal/config"
	"github.com/roach88/vcpctl/internal/doc"
	"github.com/roach88/vcpctl/internal/script"
)

// DefaultRunID is the run id of scenarios that do not set one.
const DefaultRunID = "test-run"

// Scenario defines a test scenario: simulated monitors, the steps run
// against them and assertions on the outcome.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Monitors are the simulated monitors. Empty means the demo monitor.
	Monitors []config.SimulatorMonitor `yaml:"monitors,omitempty"`

	// CustomCodes is an override document applied to the MCCS table.
	CustomCodes doc.Document `yaml:"custom_codes,omitempty"`

	// RunID is the fixed run id of the batch. Defaults to DefaultRunID.
	RunID string `yaml:"run_id,omitempty"`

	// IgnoreErrors keeps running steps after one fails.
	IgnoreErrors bool `yaml:"ignore_errors,omitempty"`

	Steps      []script.Step `yaml:"steps"`
	Assertions []Assertion   `yaml:"assertions"`
}

// Assertion validates the outcome of a run.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Monitor is a monitor filter. Required by value and code_absent,
	// optional for the write assertions.
	Monitor string `yaml:"monitor,omitempty"`

	// Code names a code (used by value, code_absent and optionally
	// write_count).
	Code string `yaml:"code,omitempty"`

	// Expect is the expected value name or number (used by value).
	Expect string `yaml:"expect,omitempty"`

	// Count is the expected number (used by write_count, failed_count).
	Count int `yaml:"count,omitempty"`

	// Codes is the expected order of first writes (used by write_order).
	Codes []string `yaml:"codes,omitempty"`
}

// Assertion type constants.
const (
	AssertValue       = "value"
	AssertWriteCount  = "write_count"
	AssertWriteOrder  = "write_order"
	AssertCodeAbsent  = "code_absent"
	AssertFailedCount = "failed_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields, or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates a scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := step.Validate(); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertValue:
		if a.Monitor == "" || a.Code == "" || a.Expect == "" {
			return fmt.Errorf("assertions[%d]: monitor, code and expect are required for value", index)
		}
	case AssertWriteCount, AssertFailedCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertWriteOrder:
		if len(a.Codes) == 0 {
			return fmt.Errorf("assertions[%d]: codes list is required for write_order", index)
		}
	case AssertCodeAbsent:
		if a.Monitor == "" || a.Code == "" {
			return fmt.Errorf("assertions[%d]: monitor and code are required for code_absent", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
