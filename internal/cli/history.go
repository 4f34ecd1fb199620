package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/vcpctl/internal/store"
	"github.com/roach88/vcpctl/internal/vcp"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "history <filter>",
		Short:         "Show the writes sent to a monitor",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runHistory(opts *RootOptions, filter string, cmd *cobra.Command) error {
	env, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	m, err := env.Monitor(filter)
	if err != nil {
		return env.fail("invalid monitor filter", err)
	}
	info, err := m.Info(cmd.Context())
	if err != nil {
		return env.fail("monitor lookup failed", err)
	}
	writes, err := env.Store.ListWrites(cmd.Context(), info.ID)
	if err != nil {
		return env.fail("failed to read write log", err)
	}

	f := env.Formatter
	if f.Format == "json" {
		return f.Success(writes)
	}
	if len(writes) == 0 {
		fmt.Fprintf(f.Writer, "No writes recorded for %s\n", info.DisplayName())
		return nil
	}
	for _, w := range writes {
		fmt.Fprintln(f.Writer, formatWrite(env, w))
	}
	return nil
}

// formatWrite renders a write with the code's name when the table has one.
func formatWrite(env *Env, w store.WriteRecord) string {
	name := vcp.Key(w.Code).String()
	if c, err := env.Spec.Code(name); err == nil {
		name = c.Name()
	}
	mark := ""
	if w.Verified {
		mark = " (verified)"
	}
	return fmt.Sprintf("%6d  %s  %s = %d%s", w.Seq, w.RunID, name, w.Value, mark)
}
