// Package batch runs an ordered list of monitor commands as one run.
package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Command is one step of a run.
type Command interface {
	Execute(ctx context.Context) error
	String() string
}

// Func adapts a function to Command.
type Func struct {
	Name string
	Fn   func(ctx context.Context) error
}

func (f Func) Execute(ctx context.Context) error { return f.Fn(ctx) }
func (f Func) String() string                    { return f.Name }

// CommandError reports the command that stopped a run.
type CommandError struct {
	Index   int
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// Result summarizes a run.
type Result struct {
	RunID    string
	Executed int
	// Failed lists the commands skipped over when IgnoreErrors is set.
	Failed []*CommandError
}

// OK reports whether every command succeeded.
func (r Result) OK() bool { return len(r.Failed) == 0 }

// Runner executes commands in order.
type Runner struct {
	Logger *slog.Logger
	// IgnoreErrors logs failing commands and moves on instead of stopping.
	IgnoreErrors bool
	IDs          IDGenerator
}

type runIDKey struct{}

// WithRunID returns a context carrying the run id.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunID returns the id of the run ctx belongs to, or "".
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// Run executes cmds. Without IgnoreErrors the first failure ends the run
// and is returned as a *CommandError.
func (r *Runner) Run(ctx context.Context, cmds []Command) (Result, error) {
	ids := r.IDs
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	res := Result{RunID: ids.Generate()}
	ctx = WithRunID(ctx, res.RunID)
	logger = logger.With("run_id", res.RunID)
	logger.Debug("run started", "commands", len(cmds))

	for i, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		logger.Debug("executing command", "index", i, "command", cmd.String())
		err := cmd.Execute(ctx)
		res.Executed++
		if err == nil {
			continue
		}

		cmdErr := &CommandError{Index: i, Command: cmd.String(), Err: err}
		if !r.IgnoreErrors {
			logger.Error("command failed", "command", cmd.String(), "error", err)
			return res, cmdErr
		}
		logger.Warn("command failed, continuing", "command", cmd.String(), "error", err)
		res.Failed = append(res.Failed, cmdErr)
	}

	logger.Debug("run finished", "executed", res.Executed, "failed", len(res.Failed))
	return res, nil
}
