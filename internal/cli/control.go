package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/vcpctl/internal/batch"
	"github.com/roach88/vcpctl/internal/monitor"
)

// ReadingResult is the JSON form of a code read.
type ReadingResult struct {
	Monitor string `json:"monitor"`
	Code    string `json:"code"`
	Key     string `json:"key"`
	Value   string `json:"value"`
	Raw     uint16 `json:"raw"`
	Maximum uint16 `json:"maximum"`
	Type    string `json:"type"`
}

// WriteResult is the JSON form of one or more writes to a code.
type WriteResult struct {
	Monitor string   `json:"monitor"`
	Code    string   `json:"code"`
	Values  []string `json:"values"`
}

// GetOptions holds flags for the get command.
type GetOptions struct {
	*RootOptions
	Raw bool
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get <filter> <code>",
		Short: "Read a VCP code",
		Long: `Read a VCP code from the monitor selected by <filter>.

<filter> is "primary" or regular expressions separated by "/" that must
all match the monitor's id, name, model or serial. <code> is a code name,
alias or number.

Example:
  vcpctl get primary "Input Select"
  vcpctl get dell/u27 0x10 --raw`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "print the raw numeric value")

	return cmd
}

func runGet(opts *GetOptions, filter, code string, cmd *cobra.Command) error {
	env, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	m, err := env.Monitor(filter)
	if err != nil {
		return env.fail("invalid monitor filter", err)
	}

	var reading monitor.Reading
	res, err := env.Run(cmd.Context(), []batch.Command{batch.Func{
		Name: "get " + code,
		Fn: func(ctx context.Context) error {
			r, err := m.Read(ctx, code)
			reading = r
			return err
		},
	}})
	if err := env.finish(res, err); err != nil {
		return err
	}

	info, err := m.Info(cmd.Context())
	if err != nil {
		return env.fail("monitor lookup failed", err)
	}

	f := env.Formatter
	if f.Format == "json" {
		return f.Success(ReadingResult{
			Monitor: info.ID,
			Code:    reading.Code.Name(),
			Key:     reading.Code.Key().String(),
			Value:   reading.String(),
			Raw:     reading.Raw,
			Maximum: reading.Maximum,
			Type:    reading.Type.String(),
		})
	}

	if opts.Raw {
		fmt.Fprintln(f.Writer, reading.Raw)
		return nil
	}
	f.VerboseLog("%s %s: raw %d, maximum %d", info.DisplayName(), reading.Code.Key(), reading.Raw, reading.Maximum)
	fmt.Fprintf(f.Writer, "%s: %s\n", reading.Code.Name(), reading)
	return nil
}

// SetOptions holds flags for the set, multi-set and toggle commands.
type SetOptions struct {
	*RootOptions
	NoVerify bool
}

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set <filter> <code> <value>",
		Short: "Write a VCP code",
		Long: `Write a value to a VCP code. <value> is a value name, alias or number.
The value is read back and compared unless --no-verify is given.

Example:
  vcpctl set primary "Input Select" "HDMI 1"
  vcpctl set primary luminance 40`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(opts, args[0], args[1], args[2:], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.NoVerify, "no-verify", false, "skip reading the value back")

	return cmd
}

// NewMultiSetCommand creates the multi-set command.
func NewMultiSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "multi-set <filter> <code> <value>...",
		Short: "Write several values to a VCP code in sequence",
		Long: `Write each value to a VCP code in order, as one run. A failing write
stops the run unless --ignore-errors is given.

Example:
  vcpctl multi-set primary "Input Select" dp1 hdmi1`,
		Args:          cobra.MinimumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(opts, args[0], args[1], args[2:], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.NoVerify, "no-verify", false, "skip reading values back")

	return cmd
}

func runSet(opts *SetOptions, filter, code string, values []string, cmd *cobra.Command) error {
	env, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	m, err := env.Monitor(filter)
	if err != nil {
		return env.fail("invalid monitor filter", err)
	}

	cmds := make([]batch.Command, 0, len(values))
	for _, value := range values {
		cmds = append(cmds, setCommand(m, code, value, !opts.NoVerify))
	}
	if err := env.finish(env.Run(cmd.Context(), cmds)); err != nil {
		return err
	}
	return outputWrite(env, m, code, values, cmd)
}

func setCommand(m *monitor.Monitor, code, value string, verify bool) batch.Command {
	return batch.Func{
		Name: fmt.Sprintf("set %s %s %s", m.Filter(), code, value),
		Fn: func(ctx context.Context) error {
			return m.Write(ctx, code, value, verify)
		},
	}
}

// NewToggleCommand creates the toggle command.
func NewToggleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "toggle <filter> <code> <value> <value>...",
		Short: "Cycle a VCP code through a list of values",
		Long: `Read the code and write the value that follows the current one in the
list. When the current value is not in the list, the first value is written.
The value is read back and compared unless --no-verify is given.

Example:
  vcpctl toggle primary "Input Select" dp1 hdmi1`,
		Args:          cobra.MinimumNArgs(4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(opts, args[0], args[1], args[2:], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.NoVerify, "no-verify", false, "skip reading the value back")

	return cmd
}

func runToggle(opts *SetOptions, filter, code string, values []string, cmd *cobra.Command) error {
	env, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	m, err := env.Monitor(filter)
	if err != nil {
		return env.fail("invalid monitor filter", err)
	}

	var written string
	res, err := env.Run(cmd.Context(), []batch.Command{batch.Func{
		Name: fmt.Sprintf("toggle %s %s %s", m.Filter(), code, strings.Join(values, " ")),
		Fn: func(ctx context.Context) error {
			v, err := m.Toggle(ctx, code, values, !opts.NoVerify)
			written = v
			return err
		},
	}})
	if err := env.finish(res, err); err != nil {
		return err
	}
	return outputWrite(env, m, code, []string{written}, cmd)
}

func outputWrite(env *Env, m *monitor.Monitor, codeID string, values []string, cmd *cobra.Command) error {
	info, err := m.Info(cmd.Context())
	if err != nil {
		return env.fail("monitor lookup failed", err)
	}
	code, err := m.Code(cmd.Context(), codeID)
	if err != nil {
		return env.fail("code lookup failed", err)
	}

	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v
		if val, err := code.Value(v); err == nil {
			names[i] = val.Name()
		}
	}

	f := env.Formatter
	if f.Format == "json" {
		return f.Success(WriteResult{Monitor: info.ID, Code: code.Name(), Values: names})
	}
	for _, n := range names {
		fmt.Fprintf(f.Writer, "✓ %s = %s\n", code.Name(), n)
	}
	return nil
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List connected monitors",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	env, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	infos, err := env.Backend.Enumerate(cmd.Context())
	if err != nil {
		return env.fail("failed to enumerate monitors", err)
	}

	f := env.Formatter
	if f.Format == "json" {
		return f.Success(infos)
	}

	if len(infos) == 0 {
		fmt.Fprintln(f.Writer, "No monitors found")
		return nil
	}
	for _, info := range infos {
		mark := " "
		if info.Primary {
			mark = "*"
		}
		fmt.Fprintf(f.Writer, "%s %s\n", mark, info.DisplayName())
		if f.Verbose {
			for _, field := range info.Fields() {
				fmt.Fprintf(f.Writer, "    %-16s %s\n", field.Name+":", field.Value)
			}
		}
	}
	return nil
}
