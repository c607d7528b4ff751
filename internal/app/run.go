package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/specialistvlad/foldgraph/internal/ctxlog"
	"github.com/specialistvlad/foldgraph/internal/engine"
	"github.com/specialistvlad/foldgraph/internal/patchfile"
	"github.com/specialistvlad/foldgraph/internal/publish"
)

// Run loads the configured patch and evaluates it for the configured number
// of ticks, printing one line per tick. A failing tick does not stop the run;
// every failure is returned at the end.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.healthCheckServer()
	defer a.closeHealthCheckServer()

	patch, err := patchfile.NewLoader(a.registry).LoadPath(ctx, a.config.PatchPath)
	if err != nil {
		return fmt.Errorf("failed to load patch: %w", err)
	}
	a.logger.Info("Patch loaded.", "path", a.config.PatchPath, "nodes", patch.Graph.Len(), "edges", len(patch.Graph.Edges()))

	e := engine.New(patch.Graph, engine.WithMetadata(a.config.Metadata()))
	a.engine.Store(e)

	outputs := a.config.Outputs
	if len(outputs) == 0 {
		outputs = patch.Graph.OutputNames()
	}

	var pub *publish.Publisher
	if a.config.PublishURL != "" {
		pub, err = publish.Dial(ctx, publish.Config{
			URL:       a.config.PublishURL,
			Namespace: a.config.PublishNamespace,
			Event:     a.config.PublishEvent,
		})
		if err != nil {
			return fmt.Errorf("failed to connect publisher: %w", err)
		}
		defer pub.Close()
	}

	inputs := ParseInputs(a.config.Inputs)
	var result *multierror.Error
	for range a.config.Ticks {
		if err := ctx.Err(); err != nil {
			result = multierror.Append(result, err)
			break
		}

		frame, err := e.EvaluateOutputs(ctx, inputs, outputs...)
		e.Advance()

		printFrame(a.outW, frame, outputs)
		if pub != nil {
			pub.Publish(ctx, frame, err)
		}
		if err != nil {
			a.logger.Error("Tick failed.", "tick", frame.Metadata.Tick, "error", err)
			result = multierror.Append(result, fmt.Errorf("tick %d: %w", frame.Metadata.Tick, err))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	a.logger.Debug("App.Run method finished.", "ticks", a.config.Ticks)
	return nil
}

// printFrame writes "tick=N name=value ..." with outputs in the requested
// order. Outputs missing from the frame print as "<error>".
func printFrame(w io.Writer, frame engine.Frame, outputs []string) {
	var b strings.Builder
	fmt.Fprintf(&b, "tick=%d", frame.Metadata.Tick)
	for _, name := range outputs {
		v, ok := frame.Values[name]
		if !ok {
			fmt.Fprintf(&b, " %s=<error>", name)
			continue
		}
		fmt.Fprintf(&b, " %s=%s", name, v.String())
	}
	fmt.Fprintln(w, b.String())
}

// Kinds writes one line per registered node kind.
func (a *App) Kinds(w io.Writer) {
	kinds := a.registry.Kinds()
	width := 0
	for _, k := range kinds {
		width = max(width, len(k.Name))
	}
	for _, k := range kinds {
		fmt.Fprintf(w, "%-*s  %s\n", width, k.Name, k.Description)
	}
}
