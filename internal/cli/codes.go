package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/vcpctl/internal/doc"
	"github.com/roach88/vcpctl/internal/schema"
)

// CodesOptions holds flags for the codes command.
type CodesOptions struct {
	*RootOptions
	All bool
}

// NewCodesCommand creates the codes command.
func NewCodesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CodesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "codes <filter>",
		Short: "Print a monitor's code table",
		Long: `Print the monitor's code overrides as a YAML document: only what differs
from the MCCS table is listed. With --all the full table is printed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCodes(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "print every visible code")

	return cmd
}

func runCodes(opts *CodesOptions, filter string, cmd *cobra.Command) error {
	env, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	m, err := env.Monitor(filter)
	if err != nil {
		return env.fail("invalid monitor filter", err)
	}

	var d doc.Value
	if opts.All {
		codes, err := m.Codes(cmd.Context())
		if err != nil {
			return env.fail("failed to load codes", err)
		}
		d = codes.Serialize(nil)
	} else {
		d, err = m.ExportCodes(cmd.Context())
		if err != nil {
			return env.fail("failed to export codes", err)
		}
	}
	return outputDocument(env.Formatter, d)
}

func outputDocument(f *OutputFormatter, d doc.Value) error {
	if f.Format == "json" {
		return f.Success(doc.Interface(d))
	}
	data, err := doc.Marshal(d)
	if err != nil {
		return err
	}
	_, err = f.Writer.Write(data)
	return err
}

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <filter>",
		Short: "Export a monitor's code overrides",
		Long: `Write the monitor's code overrides as YAML to stdout or to a file.
The document can be edited and loaded back with import.

Example:
  vcpctl export primary -o dell.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func runExport(opts *ExportOptions, filter string, cmd *cobra.Command) error {
	env, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	m, err := env.Monitor(filter)
	if err != nil {
		return env.fail("invalid monitor filter", err)
	}
	d, err := m.ExportCodes(cmd.Context())
	if err != nil {
		return env.fail("failed to export codes", err)
	}

	if opts.Output == "" {
		return outputDocument(env.Formatter, d)
	}

	data, err := doc.Marshal(d)
	if err != nil {
		return env.fail("failed to encode codes", err)
	}
	if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
		return env.fail("failed to write file", err)
	}

	f := env.Formatter
	if f.Format == "json" {
		return f.Success(map[string]string{"output": opts.Output})
	}
	fmt.Fprintf(f.Writer, "✓ Exported codes to %s\n", opts.Output)
	return nil
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <filter> <file>",
		Short: "Replace a monitor's code overrides",
		Long: `Load a YAML override document, validate it and make it the monitor's
code table. The document is a diff against the MCCS table, as written by
export.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runImport(opts *RootOptions, filter, path string, cmd *cobra.Command) error {
	env, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		return env.fail("failed to read file", err)
	}
	d, err := schema.Parse(data)
	if err != nil {
		return env.fail("invalid override document", err)
	}

	m, err := env.Monitor(filter)
	if err != nil {
		return env.fail("invalid monitor filter", err)
	}
	if err := m.ImportCodes(cmd.Context(), d); err != nil {
		return env.fail("failed to import codes", err)
	}

	f := env.Formatter
	if f.Format == "json" {
		return f.Success(map[string]string{"imported": path})
	}
	fmt.Fprintf(f.Writer, "✓ Imported codes from %s\n", path)
	return nil
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reset <filter>",
		Short:         "Drop a monitor's code overrides",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runReset(opts *RootOptions, filter string, cmd *cobra.Command) error {
	env, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	m, err := env.Monitor(filter)
	if err != nil {
		return env.fail("invalid monitor filter", err)
	}
	if err := m.ResetCodes(cmd.Context()); err != nil {
		return env.fail("failed to reset codes", err)
	}

	f := env.Formatter
	if f.Format == "json" {
		return f.Success(map[string]bool{"reset": true})
	}
	fmt.Fprintln(f.Writer, "✓ Code overrides removed")
	return nil
}

// CapabilitiesResult is the JSON form of a capabilities load.
type CapabilitiesResult struct {
	Monitor string `json:"monitor"`
	Codes   int    `json:"codes"`
}

// NewCapabilitiesCommand creates the capabilities command.
func NewCapabilitiesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capabilities <filter>",
		Short: "Restrict a monitor's code table to its capabilities",
		Long: `Read the monitor's capabilities string and restrict its code table to the
codes and values it reports. Reported codes missing from the table are added
as unknown codes. The result is saved with the monitor's overrides.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCapabilities(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCapabilities(opts *RootOptions, filter string, cmd *cobra.Command) error {
	env, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	m, err := env.Monitor(filter)
	if err != nil {
		return env.fail("invalid monitor filter", err)
	}
	if err := m.LoadCapabilities(cmd.Context()); err != nil {
		return env.fail("failed to load capabilities", err)
	}
	info, err := m.Info(cmd.Context())
	if err != nil {
		return env.fail("monitor lookup failed", err)
	}
	codes, err := m.Codes(cmd.Context())
	if err != nil {
		return env.fail("failed to load codes", err)
	}

	f := env.Formatter
	if f.Format == "json" {
		return f.Success(CapabilitiesResult{Monitor: info.ID, Codes: codes.Len()})
	}
	fmt.Fprintf(f.Writer, "✓ %s supports %d code(s)\n", info.DisplayName(), codes.Len())
	return nil
}
