package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vcpctl/internal/doc"
)

func testOverrides(t *testing.T) doc.Value {
	t.Helper()
	d, err := doc.Unmarshal([]byte(`default: 0x10,0x12
"0x60":
  values:
    default: 0x0F,0x11
    "0x63": Apple TV
`))
	require.NoError(t, err)
	return d
}

func TestOverridesRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	_, found, err := s.LoadOverrides(ctx, "mon-1")
	require.NoError(t, err)
	assert.False(t, found)

	want := testOverrides(t)
	require.NoError(t, s.SaveOverrides(ctx, "mon-1", want))

	got, found, err := s.LoadOverrides(ctx, "mon-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, doc.Equal(want, got))
}

func TestSaveOverridesBumpsRevision(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	rev, err := s.OverridesRevision(ctx, "mon-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rev)

	require.NoError(t, s.SaveOverrides(ctx, "mon-1", doc.Scalar("0x10")))
	require.NoError(t, s.SaveOverrides(ctx, "mon-1", doc.Scalar("0x10,0x12")))

	rev, err = s.OverridesRevision(ctx, "mon-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), rev)

	got, _, err := s.LoadOverrides(ctx, "mon-1")
	require.NoError(t, err)
	assert.Equal(t, doc.Scalar("0x10,0x12"), got)
}

func TestDeleteOverrides(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	require.NoError(t, s.SaveOverrides(ctx, "mon-1", testOverrides(t)))
	require.NoError(t, s.SaveOverrides(ctx, "mon-2", testOverrides(t)))

	ids, err := s.ListMonitors(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"mon-1", "mon-2"}, ids)

	require.NoError(t, s.DeleteOverrides(ctx, "mon-1"))
	require.NoError(t, s.DeleteOverrides(ctx, "mon-1"))
	require.NoError(t, s.SaveOverrides(ctx, "mon-2", nil))

	ids, err = s.ListMonitors(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NotNil(t, ids)
}

func TestOverridesSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/vcp.db"

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.SaveOverrides(ctx, "mon-1", testOverrides(t)))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	got, found, err := s2.LoadOverrides(ctx, "mon-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, doc.Equal(testOverrides(t), got))
}
