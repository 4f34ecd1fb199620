package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vcpctl/internal/capabilities"
)

func TestMockMonitors(t *testing.T) {
	monitors := MockMonitors(3, 1)
	require.Len(t, monitors, 3)

	ids := map[string]bool{}
	for i, m := range monitors {
		assert.Equal(t, i == 1, m.Info.Primary)
		assert.Contains(t, m.Info.Name, ModelWord(i))
		ids[m.Info.ID] = true
	}
	assert.Len(t, ids, 3)
}

func TestMockCapabilitiesMatchValues(t *testing.T) {
	caps, err := capabilities.Parse(MockCapabilities)
	require.NoError(t, err)
	codes, err := caps.VCP()
	require.NoError(t, err)
	assert.Len(t, codes, MockCapabilityCodes)

	m := MockMonitors(1, 0)[0]
	for _, c := range codes {
		_, ok := m.Values[uint8(c.Code)]
		assert.True(t, ok, "code %s has no simulated value", c.Code)
	}
}

func TestFixturesBuild(t *testing.T) {
	spec := Spec(t)
	assert.True(t, spec.Contains("input"))

	sim := Simulator(2, 0)
	infos, err := sim.Enumerate(context.Background())
	require.NoError(t, err)
	assert.Len(t, infos, 2)

	s := Store(t)
	_, found, err := s.LoadOverrides(context.Background(), infos[0].ID)
	require.NoError(t, err)
	assert.False(t, found)
}
