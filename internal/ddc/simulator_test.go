package ddc

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMonitor() SimulatedMonitor {
	return SimulatedMonitor{
		Info:         Info{ID: "m1", Model: "TEST", Serial: "S1", Primary: true},
		Capabilities: "(vcp(10 60(0F 11)))",
		Values:       map[uint8]uint16{0x10: 50, 0x60: 0x0F, 0x04: 0},
		Maximum:      map[uint8]uint16{0x10: 100},
		Momentary:    map[uint8]bool{0x04: true},
	}
}

func TestSimulatorReadWrite(t *testing.T) {
	ctx := context.Background()
	sim := NewSimulator(testMonitor())

	reply, err := sim.Read(ctx, "m1", 0x10)
	require.NoError(t, err)
	assert.Equal(t, Reply{Code: 0x10, Type: SetParameter, Current: 50, Maximum: 100}, reply)

	require.NoError(t, sim.Write(ctx, "m1", 0x10, 80))
	reply, err = sim.Read(ctx, "m1", 0x10)
	require.NoError(t, err)
	assert.Equal(t, uint16(80), reply.Current)

	reply, err = sim.Read(ctx, "m1", 0x60)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xFFFF), reply.Maximum)
	assert.Equal(t, 1, sim.Writes())
}

func TestSimulatorErrors(t *testing.T) {
	ctx := context.Background()
	sim := NewSimulator(testMonitor())

	_, err := sim.Read(ctx, "nope", 0x10)
	assert.True(t, errors.Is(err, ErrUnknownMonitor))

	_, err = sim.Read(ctx, "m1", 0x12)
	assert.True(t, errors.Is(err, ErrUnsupportedCode))
	var codeErr *CodeError
	require.True(t, errors.As(err, &codeErr))
	assert.Equal(t, uint8(0x12), codeErr.Code)
	assert.Contains(t, err.Error(), "0x12")

	err = sim.Write(ctx, "m1", 0x10, 101)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	v, _ := sim.Value("m1", 0x10)
	assert.Equal(t, uint16(50), v)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = sim.Enumerate(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulatorMomentaryCodes(t *testing.T) {
	ctx := context.Background()
	sim := NewSimulator(testMonitor())

	require.NoError(t, sim.Write(ctx, "m1", 0x04, 1))
	reply, err := sim.Read(ctx, "m1", 0x04)
	require.NoError(t, err)
	assert.Equal(t, Momentary, reply.Type)
	assert.Equal(t, uint16(0), reply.Current)
}

func TestSimulatorCopiesConfiguration(t *testing.T) {
	cfg := testMonitor()
	sim := NewSimulator(cfg)

	require.NoError(t, sim.Write(context.Background(), "m1", 0x10, 10))
	assert.Equal(t, uint16(50), cfg.Values[0x10])
}

func TestSimulatorConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	sim := NewSimulator(testMonitor())

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(v uint16) {
			defer wg.Done()
			assert.NoError(t, sim.Write(ctx, "m1", 0x10, v))
		}(uint16(i))
	}
	wg.Wait()
	assert.Equal(t, 20, sim.Writes())
}

func TestInfoNaming(t *testing.T) {
	info := Info{ID: "X/1", Adapter: "GPU", Model: "U2720Q"}
	assert.Equal(t, "GPU/U2720Q/X/1", info.DisplayName())

	info.Name = "Dell"
	info.Serial = "S9"
	assert.Equal(t, "GPU/Dell/S9", info.DisplayName())

	assert.Equal(t, []Field{
		{"id", "X/1"}, {"adapter", "GPU"}, {"name", "Dell"}, {"model", "U2720Q"}, {"serial", "S9"},
	}, info.Fields())
}

func TestDemoMonitorsAreConsistent(t *testing.T) {
	for _, m := range DemoMonitors() {
		for code, limit := range m.Maximum {
			assert.LessOrEqual(t, m.Values[code], limit, "code 0x%02X", code)
		}
	}
}
