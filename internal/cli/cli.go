package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/foldgraph/internal/app"
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

// listFlag collects a repeatable, comma separated flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

// inputFlag collects repeatable name=value pairs.
type inputFlag map[string]string

func (m inputFlag) String() string {
	pairs := make([]string, 0, len(m))
	for k, v := range m {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, ",")
}

func (m inputFlag) Set(s string) error {
	name, val, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return fmt.Errorf("input %q must have the form name=value", s)
	}
	m[strings.TrimSpace(name)] = val
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("foldgraph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
foldgraph - A demand-driven dataflow graph evaluator.

Usage:
  foldgraph [options] [PATCH_PATH]

Arguments:
  PATCH_PATH
    Path to an .hcl patch file.

Options:
`)
		flagSet.PrintDefaults()
	}

	var outputs listFlag
	inputs := inputFlag{}

	patchFlag := flagSet.String("patch", "", "Path to the patch file.")
	pFlag := flagSet.String("p", "", "Path to the patch file (shorthand).")
	flagSet.Var(&outputs, "output", "Graph output to evaluate. Repeatable or comma separated. Default: all outputs.")
	flagSet.Var(inputs, "input", "External graph input as name=value. Repeatable.")
	ticksFlag := flagSet.Int("ticks", 1, "Number of ticks to evaluate.")
	startTickFlag := flagSet.Uint64("start-tick", 0, "Tick of the first evaluation.")
	qualityFlag := flagSet.String("quality", "balanced", "Evaluation quality. Options: 'highest', 'balanced', 'performance', 'lowest'.")
	kindsFlag := flagSet.Bool("kinds", false, "List the available node kinds and exit.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	publishURLFlag := flagSet.String("publish-url", "", "socket.io endpoint to publish every tick to. Empty disables publishing.")
	publishNSFlag := flagSet.String("publish-namespace", "", "socket.io namespace to publish on.")
	publishEventFlag := flagSet.String("publish-event", "", "Event name frames are emitted under.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *patchFlag != "" {
		path = *patchFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Patch path determined.", "path", path)

	if path == "" && !*kindsFlag {
		slog.Debug("No patch path provided, printing usage and exiting.")
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
		PatchPath:        path,
		Outputs:          outputs,
		Ticks:            *ticksFlag,
		StartTick:        *startTickFlag,
		Quality:          strings.ToLower(*qualityFlag),
		Inputs:           inputs,
		LogFormat:        logFormat,
		LogLevel:         logLevel,
		HealthcheckPort:  *healthPortFlag,
		PublishURL:       *publishURLFlag,
		PublishNamespace: *publishNSFlag,
		PublishEvent:     *publishEventFlag,
		ListKinds:        *kindsFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
