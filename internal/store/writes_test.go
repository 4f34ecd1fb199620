package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLogOrdering(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	require.NoError(t, s.WriteLog(ctx, createTestWrite("run-b", "mon-1", 0x10, 50, 3)))
	require.NoError(t, s.WriteLog(ctx, createTestWrite("run-a", "mon-1", 0x60, 0x0F, 1)))
	require.NoError(t, s.WriteLog(ctx, createTestWrite("run-c", "mon-2", 0x12, 10, 2)))

	verified := createTestWrite("run-a", "mon-1", 0x12, 70, 2)
	verified.Verified = true
	require.NoError(t, s.WriteLog(ctx, verified))

	writes, err := s.ListWrites(ctx, "mon-1")
	require.NoError(t, err)
	require.Len(t, writes, 3)

	assert.Equal(t, []int64{1, 2, 3}, []int64{writes[0].Seq, writes[1].Seq, writes[2].Seq})
	assert.Equal(t, uint8(0x60), writes[0].Code)
	assert.Equal(t, uint16(0x0F), writes[0].Value)
	assert.True(t, writes[1].Verified)
	assert.False(t, writes[2].Verified)
	assert.Equal(t, "run-b", writes[2].RunID)

	last, err := s.LastSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), last)
}

func TestWriteLogIdempotent(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	rec := createTestWrite("run-a", "mon-1", 0x10, 50, 1)
	require.NoError(t, s.WriteLog(ctx, rec))
	rec.Value = 60
	require.NoError(t, s.WriteLog(ctx, rec))

	writes, err := s.ListWrites(ctx, "mon-1")
	require.NoError(t, err)
	require.Len(t, writes, 1)
	assert.Equal(t, uint16(50), writes[0].Value)
}

func TestListWritesEmpty(t *testing.T) {
	s := createTestStore(t)

	writes, err := s.ListWrites(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, writes)
	assert.Empty(t, writes)

	last, err := s.LastSeq(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), last)
}

func TestListRun(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	require.NoError(t, s.WriteLog(ctx, createTestWrite("run-a", "mon-2", 0x12, 10, 2)))
	require.NoError(t, s.WriteLog(ctx, createTestWrite("run-a", "mon-1", 0x10, 50, 1)))
	require.NoError(t, s.WriteLog(ctx, createTestWrite("run-b", "mon-1", 0x10, 60, 3)))

	writes, err := s.ListRun(ctx, "run-a")
	require.NoError(t, err)
	require.Len(t, writes, 2)
	assert.Equal(t, "mon-1", writes[0].MonitorID)
	assert.Equal(t, "mon-2", writes[1].MonitorID)

	writes, err = s.ListRun(ctx, "run-z")
	require.NoError(t, err)
	assert.NotNil(t, writes)
	assert.Empty(t, writes)
}
