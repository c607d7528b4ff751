package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/specialistvlad/foldgraph/internal/ctxlog"
	"github.com/specialistvlad/foldgraph/internal/graph"
	"github.com/specialistvlad/foldgraph/internal/meta"
	"github.com/specialistvlad/foldgraph/internal/nodeid"
	"github.com/specialistvlad/foldgraph/internal/value"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name of the engine's tracer.
const TracerName = "github.com/specialistvlad/foldgraph/internal/engine"

// Engine evaluates a graph frame by frame.
type Engine struct {
	graph  *graph.Graph
	tracer trace.Tracer

	mu sync.Mutex
	md meta.Metadata
}

// Option configures an Engine.
type Option func(e *Engine)

// WithTracerProvider sets the provider used for evaluation spans. The global
// provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *Engine) {
		if tp != nil {
			e.tracer = tp.Tracer(TracerName)
		}
	}
}

// WithMetadata sets the initial tick and quality.
func WithMetadata(md meta.Metadata) Option {
	return func(e *Engine) { e.md = md }
}

// New creates an engine over g. A nil g gets a fresh, empty graph.
func New(g *graph.Graph, opts ...Option) *Engine {
	if g == nil {
		g = graph.New()
	}
	e := &Engine{
		graph:  g,
		tracer: otel.Tracer(TracerName),
		md:     meta.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Graph returns the engine's graph.
func (e *Engine) Graph() *graph.Graph {
	return e.graph
}

// Metadata returns the metadata the next evaluation will use.
func (e *Engine) Metadata() meta.Metadata {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.md
}

// SetQuality changes the quality of later evaluations.
func (e *Engine) SetQuality(q meta.Quality) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.md = e.md.WithQuality(q)
}

// Advance moves to the next tick and returns the new metadata.
func (e *Engine) Advance() meta.Metadata {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.md = e.md.Next()
	return e.md
}

// Evaluate folds one named graph output at the current tick. inputs may be
// nil if the graph reads no external input.
func (e *Engine) Evaluate(ctx context.Context, output string, inputs graph.Source) (value.Value, error) {
	return e.evaluate(ctx, output, inputs, e.Metadata())
}

func (e *Engine) evaluate(ctx context.Context, output string, inputs graph.Source, md meta.Metadata) (value.Value, error) {
	logger := ctxlog.FromContext(ctx)

	ctx, span := e.tracer.Start(ctx, "foldgraph.evaluate",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("foldgraph.output", output),
			tickAttr(md),
			attribute.String("foldgraph.quality", md.Quality.String()),
		),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		recordError(span, err)
		return value.Value{}, fmt.Errorf("evaluate %q: %w", output, err)
	}

	ev := graph.NewEvaluator(nodeid.GraphOutput, e.graph).
		WithSource(inputs).
		WithLogger(logger)
	v, err := e.graph.EvaluateWith(ev, output, md)
	if err != nil {
		recordError(span, err)
		logger.Debug("Evaluation failed.", "output", output, "tick", md.Tick, "error", err)
		return value.Value{}, err
	}

	span.SetAttributes(
		attribute.String("foldgraph.result.type", v.Type().FriendlyName()),
		attribute.String("foldgraph.result", v.String()),
	)
	logger.Debug("Evaluated output.", "output", output, "tick", md.Tick, "value", v.String())
	return v, nil
}

// Frame holds every graph output evaluated at one tick.
type Frame struct {
	Metadata meta.Metadata
	// Values holds the outputs that evaluated successfully.
	Values map[string]value.Value
}

// EvaluateAll folds every declared graph output at the current tick. Outputs
// that fail are left out of the frame; their errors are aggregated.
func (e *Engine) EvaluateAll(ctx context.Context, inputs graph.Source) (Frame, error) {
	return e.EvaluateOutputs(ctx, inputs, e.graph.OutputNames()...)
}

// EvaluateOutputs is EvaluateAll restricted to the named outputs. Outputs
// that are not requested are never folded.
func (e *Engine) EvaluateOutputs(ctx context.Context, inputs graph.Source, outputs ...string) (Frame, error) {
	md := e.Metadata()
	ctx, span := e.tracer.Start(ctx, "foldgraph.frame",
		trace.WithAttributes(tickAttr(md)),
	)
	defer span.End()

	frame := Frame{Metadata: md, Values: make(map[string]value.Value)}
	var result *multierror.Error
	for _, name := range outputs {
		v, err := e.evaluate(ctx, name, inputs, md)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		frame.Values[name] = v
	}

	err := result.ErrorOrNil()
	if err != nil {
		recordError(span, err)
	}
	return frame, err
}

// Step evaluates a frame and then advances the tick, whether or not the
// frame had errors.
func (e *Engine) Step(ctx context.Context, inputs graph.Source) (Frame, error) {
	frame, err := e.EvaluateAll(ctx, inputs)
	e.Advance()
	return frame, err
}

func tickAttr(md meta.Metadata) attribute.KeyValue {
	return attribute.Int64("foldgraph.tick", int64(min(md.Tick, meta.MaxTick)))
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
