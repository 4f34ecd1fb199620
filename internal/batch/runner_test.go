package batch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func record(name string, seen *[]string, err error) Command {
	return Func{Name: name, Fn: func(ctx context.Context) error {
		*seen = append(*seen, name+"@"+RunID(ctx))
		return err
	}}
}

func TestRunnerStopsOnFirstError(t *testing.T) {
	var seen []string
	r := &Runner{IDs: NewFixedGenerator("run-1")}

	res, err := r.Run(context.Background(), []Command{
		record("a", &seen, nil),
		record("b", &seen, errBoom),
		record("c", &seen, nil),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, `command "b" failed: boom`, err.Error())

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 1, cmdErr.Index)

	assert.Equal(t, []string{"a@run-1", "b@run-1"}, seen)
	assert.Equal(t, "run-1", res.RunID)
	assert.Equal(t, 2, res.Executed)
}

func TestRunnerIgnoreErrors(t *testing.T) {
	var seen []string
	var logs bytes.Buffer
	r := &Runner{
		IgnoreErrors: true,
		IDs:          NewFixedGenerator("run-2"),
		Logger:       slog.New(slog.NewTextHandler(&logs, nil)),
	}

	res, err := r.Run(context.Background(), []Command{
		record("a", &seen, errBoom),
		record("b", &seen, nil),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a@run-2", "b@run-2"}, seen)
	assert.Equal(t, 2, res.Executed)
	assert.False(t, res.OK())
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "a", res.Failed[0].Command)
	assert.Contains(t, logs.String(), "run_id=run-2")
	assert.Contains(t, logs.String(), "command failed, continuing")
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var seen []string
	r := &Runner{IDs: NewFixedGenerator("run-3")}

	_, err := r.Run(ctx, []Command{
		Func{Name: "cancel", Fn: func(context.Context) error { cancel(); return nil }},
		record("never", &seen, nil),
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, seen)
}

func TestRunnerDefaultIDs(t *testing.T) {
	res, err := (&Runner{}).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, res.RunID, 36)
	assert.True(t, res.OK())
}

func TestRunIDMissing(t *testing.T) {
	assert.Equal(t, "", RunID(context.Background()))
}
