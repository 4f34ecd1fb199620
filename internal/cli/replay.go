package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/vcpctl/internal/batch"
	"github.com/roach88/vcpctl/internal/store"
	"github.com/roach88/vcpctl/internal/vcp"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	DryRun bool
}

// ReplayResult is the JSON form of a replay.
type ReplayResult struct {
	From     string              `json:"from"`
	RunID    string              `json:"run_id,omitempty"`
	Writes   []store.WriteRecord `json:"writes"`
	Executed int                 `json:"executed"`
	Failed   []string            `json:"failed,omitempty"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <run-id>",
		Short: "Send the writes of a recorded run again",
		Long: `Replay the writes recorded for a run, in their original order, as a new
run. Each write goes to the monitor with the recorded ID and is verified
when the original write was.

Examples:
  vcpctl replay 0192f0a4-...
  vcpctl replay 0192f0a4-... --dry-run`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "list the writes without sending them")

	return cmd
}

func runReplay(opts *ReplayOptions, runID string, cmd *cobra.Command) error {
	env, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	writes, err := env.Store.ListRun(cmd.Context(), runID)
	if err != nil {
		return env.fail("failed to read write log", err)
	}
	f := env.Formatter
	if len(writes) == 0 {
		return report(f, ErrCodeNotFound, ExitFailure, "nothing to replay",
			fmt.Errorf("no writes recorded for run %s", runID))
	}

	if opts.DryRun {
		if f.Format == "json" {
			return f.Success(ReplayResult{From: runID, Writes: writes})
		}
		for _, w := range writes {
			fmt.Fprintf(f.Writer, "%s  %s\n", w.MonitorID, formatWrite(env, w))
		}
		return nil
	}

	cmds := make([]batch.Command, len(writes))
	for i, w := range writes {
		cmds[i] = replayCommand(env, w)
	}
	env.Logger.Info("replaying run", "from", runID, "writes", len(writes))
	res, runErr := env.Run(cmd.Context(), cmds)

	if f.Format == "json" && runErr == nil {
		result := ReplayResult{From: runID, RunID: res.RunID, Writes: writes, Executed: res.Executed}
		for _, cerr := range res.Failed {
			result.Failed = append(result.Failed, cerr.Error())
		}
		if err := f.Success(result); err != nil {
			return err
		}
		if !res.OK() {
			return NewExitError(ExitFailure, fmt.Sprintf("%d of %d command(s) failed", len(res.Failed), res.Executed))
		}
		return nil
	}

	if err := env.finish(res, runErr); err != nil {
		return err
	}
	fmt.Fprintf(f.Writer, "✓ Replayed %d write(s) from %s as %s\n", len(writes), runID, res.RunID)
	return nil
}

// replayCommand sends one recorded write again. The value is passed by
// number so renamed values still replay.
func replayCommand(env *Env, w store.WriteRecord) batch.Command {
	code := vcp.Key(w.Code).String()
	value := strconv.Itoa(int(w.Value))
	return batch.Func{
		Name: fmt.Sprintf("replay %s %s %s", w.MonitorID, code, value),
		Fn: func(ctx context.Context) error {
			return env.MonitorByID(w.MonitorID).Write(ctx, code, value, w.Verified)
		},
	}
}
