package monitor

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vcpctl/internal/testutil"
)

func TestParseFilter(t *testing.T) {
	infos := testutil.MockMonitors(3, 1)

	f, err := ParseFilter(" PRIMARY ")
	require.NoError(t, err)
	assert.Equal(t, Primary{}, f)
	assert.True(t, f.Match(infos[1].Info))
	assert.False(t, f.Match(infos[0].Info))

	f, err = ParseFilter(testutil.ModelWord(2))
	require.NoError(t, err)
	assert.Equal(t, testutil.ModelWord(2), f.String())
	assert.False(t, f.Match(infos[0].Info))
	assert.True(t, f.Match(infos[2].Info))

	f, err = ParseFilter("mck/sn000002")
	require.NoError(t, err)
	assert.Equal(t, "{<mck> && <sn000002>}", f.String())
	assert.False(t, f.Match(infos[0].Info))
	assert.True(t, f.Match(infos[1].Info))

	_, err = ParseFilter("  ")
	assert.Error(t, err)
	_, err = ParseFilter("/")
	assert.Error(t, err)
	_, err = ParseFilter("(")
	assert.Error(t, err)
}

func TestRegexMatchesPrimaryByName(t *testing.T) {
	infos := testutil.MockMonitors(2, 0)

	r, err := NewRegex("prim")
	require.NoError(t, err)
	assert.True(t, r.Match(infos[0].Info))
	assert.False(t, r.Match(infos[1].Info))
}

func TestInfoFilter(t *testing.T) {
	infos := testutil.MockMonitors(3, 0)

	f := InfoFilter{Model: "MCK0002", ManufacturerID: "MCK"}
	assert.False(t, f.Match(infos[0].Info))
	assert.True(t, f.Match(infos[2].Info))
	assert.Equal(t, "MCK0002//MCK/", f.String())

	assert.True(t, InfoFilter{}.Match(infos[1].Info))
}

func TestIDFilter(t *testing.T) {
	infos := testutil.MockMonitors(2, 0)

	f := IDFilter("MCK0001/SN000002")
	assert.False(t, f.Match(infos[0].Info))
	assert.True(t, f.Match(infos[1].Info))
	assert.False(t, IDFilter("MCK0001").Match(infos[1].Info), "IDs match exactly")
	assert.Equal(t, "MCK0001/SN000002", f.String())
}

func TestFind(t *testing.T) {
	ctx := context.Background()
	sim := testutil.Simulator(3, -1)

	_, err := Find(ctx, sim, Primary{}, nil)
	assert.True(t, errors.Is(err, ErrNoMonitor))

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	f, err := ParseFilter("mock")
	require.NoError(t, err)

	info, err := Find(ctx, sim, f, logger)
	require.NoError(t, err)
	assert.Equal(t, "MCK0000/SN000001", info.ID)
	assert.Contains(t, logs.String(), "more than one monitor")
}
