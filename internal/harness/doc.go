// Package harness runs vcpctl scenarios against simulated monitors.
//
// A scenario describes a set of simulated monitors, a batch of script
// steps to run against them, and assertions on the outcome. Each scenario
// runs in a fresh in-memory database with a fixed run id and a logical
// clock starting at zero, so the write trace is identical on every run
// and can be compared against a golden file.
//
// # Scenario Format
//
//	name: evening
//	description: "Dim the primary monitor and switch input"
//	monitors:            # optional, defaults to the demo monitor
//	  - id: DEL4242/ABC1234
//	    name: DELL U2720Q
//	    primary: true
//	    values: {"0x10": 75, "0x60": 0x0F}
//	custom_codes:        # optional override document
//	  "0xE0": {name: Picture Mode, type: NC}
//	run_id: evening-1    # optional, defaults to "test-run"
//	ignore_errors: false
//	steps:
//	  - {action: set, monitor: primary, code: luminance, value: 40}
//	  - {action: toggle, monitor: primary, code: input, values: [dp1, hdmi1]}
//	assertions:
//	  - {type: value, monitor: primary, code: luminance, expect: "40"}
//	  - {type: write_count, count: 2}
//
// # Assertion Types
//
//   - value: reads a code and compares it with a value name or number
//   - write_count: counts recorded writes, optionally for one monitor or code
//   - write_order: checks codes were first written in the given order
//   - code_absent: checks a code is not in a monitor's code table
//   - failed_count: counts failed steps
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/evening.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(ctx, scenario)
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
