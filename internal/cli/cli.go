package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/vk/causalfaker/internal/app"
	"github.com/vk/causalfaker/internal/catalog"
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("causalfaker", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
causalfaker - synthetic data from linear causal graphs.

Every node of the graph is a variable. Parentless nodes are drawn from
N(0, 1); every other node is the weighted sum of its parents.

Usage:
  causalfaker [options] [MODEL_PATH]

Arguments:
  MODEL_PATH
    Path to a .hcl or .yaml model file, or a directory of them.

Options:
`)
		flagSet.PrintDefaults()
	}

	modelFlag := flagSet.String("model", "", "Path to the model file or directory.")
	mFlag := flagSet.String("m", "", "Path to the model file or directory (shorthand).")
	exampleFlag := flagSet.String("example", "", "Use a built-in example model instead of a file. See -list-examples.")
	listFlag := flagSet.Bool("list-examples", false, "List the built-in example models and exit.")
	samplesFlag := flagSet.Int("n", 1000, "Number of samples per batch.")
	batchesFlag := flagSet.Int("batches", 1, "Number of batches. 0 streams until interrupted and requires -interval.")
	intervalFlag := flagSet.Duration("interval", 0, "Pause between batches, e.g. '500ms'.")
	seedFlag := flagSet.Uint64("seed", 0, "Random seed. 0 picks a random seed.")
	workersFlag := flagSet.Int("workers", runtime.NumCPU(), "Number of concurrent sampling workers.")
	formatFlag := flagSet.String("format", "csv", "Output format. Options: 'csv' or 'jsonl'.")
	outFlag := flagSet.String("out", "", "Write samples to this file instead of stdout.")
	equationsFlag := flagSet.Bool("print-equations", false, "Print the structural equations to stderr.")
	levelsFlag := flagSet.Bool("print-levels", false, "Print the topological levels to stderr.")
	matrixFlag := flagSet.Bool("print-matrix", false, "Print the weighted adjacency matrix to stderr.")
	dotFlag := flagSet.String("dot", "", "Write a Graphviz rendering of the graph to this file.")
	emitURLFlag := flagSet.String("emit-url", "", "socket.io collector URL to stream batches to.")
	emitNamespaceFlag := flagSet.String("emit-namespace", "", "socket.io namespace. Defaults to '/'.")
	emitEventFlag := flagSet.String("emit-event", "", "socket.io event name. Defaults to 'batch'.")
	emitInsecureFlag := flagSet.Bool("emit-insecure", false, "Skip TLS certificate verification for the socket.io collector.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check and metrics server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if *listFlag {
		for _, name := range catalog.Names() {
			fmt.Fprintf(output, "%-12s %s\n", name, catalog.Describe(name))
		}
		return nil, true, nil
	}

	path := ""
	if *modelFlag != "" {
		path = *modelFlag
	} else if *mFlag != "" {
		path = *mFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Model path determined.", "path", path, "example", *exampleFlag)

	if path == "" && *exampleFlag == "" {
		slog.Debug("No model provided, printing usage and exiting.")
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
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ModelPath:       path,
		Example:         *exampleFlag,
		Samples:         *samplesFlag,
		Batches:         *batchesFlag,
		Interval:        *intervalFlag,
		Seed:            *seedFlag,
		Workers:         *workersFlag,
		Format:          strings.ToLower(*formatFlag),
		OutPath:         *outFlag,
		PrintEquations:  *equationsFlag,
		PrintLevels:     *levelsFlag,
		PrintMatrix:     *matrixFlag,
		DOTPath:         *dotFlag,
		EmitURL:         *emitURLFlag,
		EmitNamespace:   *emitNamespaceFlag,
		EmitEvent:       *emitEventFlag,
		EmitInsecure:    *emitInsecureFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
