package ddc

import (
	"context"
	"fmt"
	"maps"
	"sync"
)

// SimulatedMonitor describes one monitor served by a Simulator.
type SimulatedMonitor struct {
	Info         Info
	Capabilities string
	// Values holds the current value of every supported code.
	Values map[uint8]uint16
	// Maximum bounds writes; codes without an entry accept any value.
	Maximum map[uint8]uint16
	// Momentary codes report the Momentary reply type and do not keep
	// written values.
	Momentary map[uint8]bool
}

// Simulator is an in-memory Backend.
type Simulator struct {
	mu       sync.Mutex
	monitors []*SimulatedMonitor
	writes   int
}

// NewSimulator copies the given monitors into a new backend.
func NewSimulator(monitors ...SimulatedMonitor) *Simulator {
	s := &Simulator{}
	for _, m := range monitors {
		m.Values = cloneMap(m.Values)
		m.Maximum = cloneMap(m.Maximum)
		m.Momentary = cloneMap(m.Momentary)
		s.monitors = append(s.monitors, &m)
	}
	return s
}

func cloneMap[V any](m map[uint8]V) map[uint8]V {
	out := make(map[uint8]V, len(m))
	maps.Copy(out, m)
	return out
}

func (s *Simulator) lookup(id string) (*SimulatedMonitor, error) {
	for _, m := range s.monitors {
		if m.Info.ID == id {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMonitor, id)
}

// Enumerate returns the simulated monitors in configuration order.
func (s *Simulator) Enumerate(ctx context.Context) ([]Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Info, len(s.monitors))
	for i, m := range s.monitors {
		out[i] = m.Info
	}
	return out, nil
}

// Capabilities returns the monitor's capabilities string.
func (s *Simulator) Capabilities(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.lookup(id)
	if err != nil {
		return "", err
	}
	return m.Capabilities, nil
}

// Read returns the current value of code.
func (s *Simulator) Read(ctx context.Context, id string, code uint8) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.lookup(id)
	if err != nil {
		return Reply{}, err
	}
	cur, ok := m.Values[code]
	if !ok {
		return Reply{}, &CodeError{Monitor: id, Code: code, Err: ErrUnsupportedCode}
	}

	reply := Reply{Code: code, Current: cur, Maximum: 0xFFFF}
	if limit, ok := m.Maximum[code]; ok {
		reply.Maximum = limit
	}
	if m.Momentary[code] {
		reply.Type = Momentary
	}
	return reply, nil
}

// Write sets code to value.
func (s *Simulator) Write(ctx context.Context, id string, code uint8, value uint16) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.lookup(id)
	if err != nil {
		return err
	}
	if _, ok := m.Values[code]; !ok {
		return &CodeError{Monitor: id, Code: code, Err: ErrUnsupportedCode}
	}
	if limit, ok := m.Maximum[code]; ok && value > limit {
		return &CodeError{Monitor: id, Code: code, Err: fmt.Errorf("%w: %d > %d", ErrOutOfRange, value, limit)}
	}

	s.writes++
	if m.Momentary[code] {
		return nil
	}
	m.Values[code] = value
	return nil
}

// Writes returns the number of accepted writes.
func (s *Simulator) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Value returns the stored value of code without going through Read.
func (s *Simulator) Value(id string, code uint8) (uint16, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.lookup(id)
	if err != nil {
		return 0, false
	}
	v, ok := m.Values[code]
	return v, ok
}

// DemoMonitors is the monitor set served when no simulator monitors are
// configured.
func DemoMonitors() []SimulatedMonitor {
	return []SimulatedMonitor{{
		Info: Info{
			ID:             "DEL4242/ABC1234",
			Adapter:        "Simulated Adapter",
			Name:           "DELL U2720Q",
			Model:          "DEL4242",
			Serial:         "ABC1234",
			ManufacturerID: "DEL",
			ProductID:      "4242",
			Primary:        true,
		},
		Capabilities: "(prot(monitor)type(lcd)model(U2720Q)cmds(01 02 03 07 0C E3 F3)" +
			"vcp(02 04 05 08 10 12 14(01 04 05 06 08 09 0B 0C) 16 18 1A 52 60(0F 11 1B) " +
			"62 AA(01 02 04) D6(01 04 05) DC(00 03 05) DF)mccs_ver(2.1))",
		Values: map[uint8]uint16{
			0x02: 0x02, 0x04: 0, 0x05: 0, 0x08: 0,
			0x10: 75, 0x12: 75, 0x14: 0x05,
			0x16: 100, 0x18: 100, 0x1A: 100,
			0x52: 0, 0x60: 0x0F, 0x62: 30,
			0xAA: 0x01, 0xD6: 0x01, 0xDC: 0x00, 0xDF: 0x0201,
		},
		Maximum: map[uint8]uint16{
			0x10: 100, 0x12: 100, 0x16: 100, 0x18: 100, 0x1A: 100, 0x62: 100,
		},
		Momentary: map[uint8]bool{0x04: true, 0x05: true, 0x08: true},
	}}
}
