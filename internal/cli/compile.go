package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/remapd/remapd/internal/compiler"
	"github.com/remapd/remapd/internal/ir"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
}

// CompileStats summarizes one compiled config.
type CompileStats struct {
	Layers      int `json:"layers"`
	Macros      int `json:"macros"`
	Commands    int `json:"commands"`
	Descriptors int `json:"descriptors"`
	Warnings    int `json:"warnings"`
	Errors      int `json:"errors"`
}

// CompileData is the JSON success payload for the compile command.
type CompileData struct {
	Config      *ir.Config   `json:"config"`
	Stats       CompileStats `json:"stats"`
	Diagnostics []string     `json:"diagnostics,omitempty"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <config-file>",
		Short: "Compile a config file to its action table",
		Long: `Compile a remapping config file into its full action table.

Includes are expanded, every section is assembled, and the compiled
config is printed (or written with --output) as JSON. Bindings that
fail to compile are reported and skipped.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

// newFormatter builds the OutputFormatter every command starts from.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// newCompiler builds a compiler whose log output follows the verbose
// flag: structured logs to stderr when verbose, discarded otherwise.
func newCompiler(opts *RootOptions, formatter *OutputFormatter) *compiler.Compiler {
	c := compiler.New()
	if opts.Verbose {
		c.Log = slog.New(slog.NewTextHandler(formatter.ErrWriter, nil))
	} else {
		c.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.ShareDir != "" {
		c.ShareDir = opts.ShareDir
	}
	return c
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	c := newCompiler(opts.RootOptions, formatter)
	formatter.VerboseLog("Compiling %s", path)

	res, err := c.Compile(path)
	if err != nil {
		return outputFatal(formatter, err)
	}

	stats := calculateStats(res)

	if opts.Output != "" {
		if err := writeConfigFile(res.Config, opts.Output); err != nil {
			_ = formatter.Error("WRITE_FAILED", err.Error(), nil)
			return NewExitError(ExitCommandError, err.Error())
		}
	}

	return outputCompileSuccess(formatter, res, stats, opts.Output)
}

func calculateStats(res *compiler.Result) CompileStats {
	stats := CompileStats{
		Layers:      len(res.Config.Layers),
		Macros:      len(res.Config.Macros),
		Commands:    len(res.Config.Commands),
		Descriptors: len(res.Config.Descriptors),
	}
	for _, d := range res.Diagnostics {
		if d.Severity == compiler.SeverityError {
			stats.Errors++
		} else {
			stats.Warnings++
		}
	}
	return stats
}

func outputCompileSuccess(formatter *OutputFormatter, res *compiler.Result, stats CompileStats, outputFile string) error {
	if formatter.Format == "json" {
		data := CompileData{Config: res.Config, Stats: stats, Diagnostics: diagnosticStrings(res.Diagnostics)}
		if err := formatter.Success(data); err != nil {
			return err
		}
		return exitForStats(stats)
	}

	fmt.Fprintf(formatter.Writer, "✓ Compiled %d layer(s), %d macro(s), %d command(s)\n",
		stats.Layers, stats.Macros, stats.Commands)

	printDiagnostics(formatter, res.Diagnostics)

	if outputFile != "" {
		fmt.Fprintf(formatter.Writer, "Wrote compiled config to %s\n", outputFile)
	}

	return exitForStats(stats)
}

// exitForStats maps skipped bindings to a check-failure exit code while
// leaving the compiled output on stdout.
func exitForStats(stats CompileStats) error {
	if stats.Errors > 0 {
		return NewExitError(ExitCheckFailure, fmt.Sprintf("%d binding(s) skipped", stats.Errors))
	}
	return nil
}

func diagnosticStrings(diags []compiler.Diagnostic) []string {
	if len(diags) == 0 {
		return nil
	}
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.String()
	}
	return out
}

// printDiagnostics renders accumulated diagnostics in text format.
func printDiagnostics(formatter *OutputFormatter, diags []compiler.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	fmt.Fprintln(formatter.Writer)
	for _, d := range diags {
		fmt.Fprintf(formatter.Writer, "  %s\n", d)
	}
}

// outputFatal reports a fatal compile error and maps it to a
// command-level exit code.
func outputFatal(formatter *OutputFormatter, err error) error {
	code := "COMPILE_FAILED"
	var cerr *compiler.Error
	if errors.As(err, &cerr) {
		code = string(cerr.Code)
	}
	_ = formatter.Error(code, err.Error(), nil)
	return NewExitError(ExitCommandError, err.Error())
}

// writeConfigFile writes the compiled config as indented JSON.
func writeConfigFile(cfg *ir.Config, filename string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
