package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/cellflow/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// repeatable collects every occurrence of a flag.
type repeatable []string

func (r *repeatable) String() string { return strings.Join(*r, ",") }

func (r *repeatable) Set(v string) error {
	*r = append(*r, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("cellflow", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
cellflow - A dependency-ordered cell evaluation engine.

Usage:
  cellflow [options] [OP_PATH]

Arguments:
  OP_PATH
    Path to a single .hcl operation manifest or a directory containing them.

Options:
`)
		flagSet.PrintDefaults()
	}

	opFlag := flagSet.String("op", "", "Path to the operation manifest file or directory.")
	bagFlag := flagSet.String("bag", "", "Path to an HCL attribute file seeding the value bag.")
	operationFlag := flagSet.String("operation", "", "Operation name to evaluate when the manifest declares several.")
	var overrides repeatable
	flagSet.Var(&overrides, "override", "Per-instance implementation override, cell=handler. Repeatable.")
	explainFlag := flagSet.Bool("explain", false, "Print the resolved evaluation order and dependency graph, then exit without evaluating.")
	outputFlag := flagSet.String("output", "text", "Result output format. Options: 'text' or 'json'.")
	callsFlag := flagSet.Int("calls", 1, "Number of evaluation passes to run on the same bag.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := *opFlag
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Operation path determined.", "path", path)

	if path == "" {
		slog.Debug("No operation path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	overrideMap := make(map[string]string, len(overrides))
	for _, pair := range overrides {
		cell, handler, found := strings.Cut(pair, "=")
		if !found || cell == "" || handler == "" {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid override %q: expected cell=handler", pair)}
		}
		overrideMap[cell] = handler
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		OpPath:    path,
		BagPath:   *bagFlag,
		Operation: *operationFlag,
		Overrides: overrideMap,
		Explain:   *explainFlag,
		Output:    strings.ToLower(*outputFlag),
		Calls:     *callsFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
