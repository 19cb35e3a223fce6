package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/remapd/remapd/internal/compiler"
)

// CheckData is the JSON success payload for the check command.
type CheckData struct {
	Path     string   `json:"path"`
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <config-file>",
		Short: "Check a config file without emitting output",
		Long: `Check compiles a config file and reports every diagnostic.

Exit code 0 means every binding compiled; 1 means the config loaded but
some bindings were skipped; 2 means the file could not be compiled at
all.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	c := newCompiler(opts, formatter)

	res, err := c.Compile(path)
	if err != nil {
		return outputFatal(formatter, err)
	}

	var warnings, errs []string
	for _, d := range res.Diagnostics {
		if d.Severity == compiler.SeverityError {
			errs = append(errs, d.String())
		} else {
			warnings = append(warnings, d.String())
		}
	}

	data := CheckData{Path: path, Valid: len(errs) == 0, Warnings: warnings, Errors: errs}

	if formatter.Format == "json" {
		if err := formatter.Success(data); err != nil {
			return err
		}
	} else if data.Valid {
		fmt.Fprintf(formatter.Writer, "✓ %s\n", path)
		printDiagnostics(formatter, res.Diagnostics)
	} else {
		fmt.Fprintf(formatter.Writer, "✗ %s: %d binding(s) skipped\n", path, len(errs))
		printDiagnostics(formatter, res.Diagnostics)
	}

	if !data.Valid {
		return NewExitError(ExitCheckFailure, fmt.Sprintf("%d binding(s) skipped", len(errs)))
	}
	return nil
}
