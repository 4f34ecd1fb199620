package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/vcpctl/internal/script"
)

// RunResult is the JSON form of a script run.
type RunResult struct {
	RunID    string   `json:"run_id"`
	Executed int      `json:"executed"`
	Output   []string `json:"output,omitempty"`
	Failed   []string `json:"failed,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script.yaml>",
		Short: "Run a script of monitor commands",
		Long: `Run the commands of a YAML script in order as one batch run. Every write
of the run is recorded under the same run id.

Actions: get, set (value or values), toggle (values), capabilities, reset.

Example:
  vcpctl run evening.yaml --ignore-errors`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runScript(opts *RootOptions, path string, cmd *cobra.Command) error {
	env, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		return env.fail("failed to read script", err)
	}
	s, err := script.Parse(data)
	if err != nil {
		return report(env.Formatter, ErrCodeInvalidArgument, ExitCommandError, "invalid script", err)
	}
	if s.IgnoreErrors != nil && !cmd.Flags().Changed("ignore-errors") {
		env.ignoreErrors = *s.IgnoreErrors
	}

	var output []string
	cmds, err := script.Commands(s.Commands, env.Monitor, func(line string) {
		output = append(output, line)
	})
	if err != nil {
		return env.fail("invalid script", err)
	}

	env.Logger.Info("running script", "path", path, "commands", len(cmds))
	res, runErr := env.Run(cmd.Context(), cmds)

	f := env.Formatter
	if f.Format == "json" && runErr == nil {
		result := RunResult{RunID: res.RunID, Executed: res.Executed, Output: output}
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

	if f.Format != "json" {
		for _, line := range output {
			fmt.Fprintln(f.Writer, line)
		}
	}
	if err := env.finish(res, runErr); err != nil {
		return err
	}
	f.VerboseLog("run %s: %d command(s)", res.RunID, res.Executed)
	return nil
}
