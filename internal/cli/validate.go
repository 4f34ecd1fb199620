package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/vcpctl/internal/schema"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	File  string `json:"file"`
	Path  string `json:"path,omitempty"`
	Line  int    `json:"line,omitempty"`
	Error string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate an override document",
		Long: `Check a YAML override document, as written by export, against the
override schema without touching any monitor.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	data, err := os.ReadFile(path)
	if err != nil {
		return report(formatter, ErrCodeFileNotFound, ExitCommandError, "failed to read file", err)
	}
	formatter.VerboseLog("Validating %s (%d bytes)", path, len(data))

	if _, err := schema.Parse(data); err != nil {
		return outputValidationError(formatter, path, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, File: path})
	}
	fmt.Fprintf(formatter.Writer, "✓ %s is valid\n", path)
	return nil
}

func outputValidationError(formatter *OutputFormatter, path string, err error) error {
	result := ValidationResult{File: path, Error: err.Error()}
	var serr *schema.Error
	if errors.As(err, &serr) {
		result.Path = serr.Path
		result.Error = serr.Message
		if serr.Pos.IsValid() {
			result.Line = serr.Pos.Line()
		}
	}

	if formatter.Format == "json" {
		_ = formatter.Error(ErrCodeValidation, result.Error, result)
	} else {
		fmt.Fprintln(formatter.Writer, "✗ Validation failed")
		fmt.Fprintln(formatter.Writer)
		if result.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", result.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", ErrCodeValidation, err)
	}

	// Validation failures = exit code 1 (test/validation failure)
	return WrapExitError(ExitFailure, "validation failed", err)
}
