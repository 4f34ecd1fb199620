// Package testutil provides fixtures shared by package tests: simulated
// monitors, the bootstrapped MCCS table and a throwaway store.
package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/roach88/vcpctl/internal/ddc"
	"github.com/roach88/vcpctl/internal/mccs"
	"github.com/roach88/vcpctl/internal/store"
	"github.com/roach88/vcpctl/internal/vcp"
)

// MockCapabilities is the capabilities string of every mock monitor.
// Input Select is restricted to four inputs.
const MockCapabilities = "(prot(monitor)type(lcd)model(MOCK)cmds(01 02 03 07 0C F3)" +
	"vcp(02 10 12 14(05 06 08) 16 18 1A 60(01 0F 11 12) 62 8D(01 02) D6(01 04 05) DF)" +
	"mccs_ver(2.2))"

// MockCapabilityCodes is the number of codes MockCapabilities reports.
const MockCapabilityCodes = 12

var modelWords = []string{"Aurora", "Boreal", "Cirrus", "Dune", "Ember", "Fjord", "Glacier", "Harbor"}

// ModelWord returns the word that only the i-th mock monitor's name carries.
func ModelWord(i int) string {
	return modelWords[i%len(modelWords)]
}

// MockMonitors returns n simulated monitors; the one at index primary is
// the primary monitor. A negative primary marks none.
func MockMonitors(n, primary int) []ddc.SimulatedMonitor {
	out := make([]ddc.SimulatedMonitor, n)
	for i := range out {
		out[i] = ddc.SimulatedMonitor{
			Info: ddc.Info{
				ID:             fmt.Sprintf("MCK%04d/SN%06d", i, i+1),
				Adapter:        fmt.Sprintf("Mock Adapter %d", i),
				Name:           fmt.Sprintf("Mock %s Display", ModelWord(i)),
				Model:          fmt.Sprintf("MCK%04d", i),
				Serial:         fmt.Sprintf("SN%06d", i+1),
				ManufacturerID: "MCK",
				ProductID:      fmt.Sprintf("%04d", i),
				Primary:        i == primary,
			},
			Capabilities: MockCapabilities,
			Values: map[uint8]uint16{
				0x02: 0x02, 0x10: 50, 0x12: 50, 0x14: 0x05,
				0x16: 100, 0x18: 100, 0x1A: 100, 0x60: 0x0F,
				0x62: 20, 0x8D: 0x02, 0xD6: 0x01, 0xDF: 0x0202,
			},
			Maximum: map[uint8]uint16{
				0x10: 100, 0x12: 100, 0x16: 100, 0x18: 100, 0x1A: 100, 0x62: 100,
			},
		}
	}
	return out
}

// Simulator returns a backend serving MockMonitors(n, primary).
func Simulator(n, primary int) *ddc.Simulator {
	return ddc.NewSimulator(MockMonitors(n, primary)...)
}

// Spec returns a freshly bootstrapped MCCS table.
func Spec(t testing.TB) *vcp.CodeStorage {
	t.Helper()
	spec, err := mccs.Bootstrap(nil)
	if err != nil {
		t.Fatalf("bootstrap mccs table: %v", err)
	}
	return spec
}

// Store opens a store in a temporary directory, closed when the test ends.
func Store(t testing.TB) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "vcpctl.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
