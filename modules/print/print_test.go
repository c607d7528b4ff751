package print_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/specialistvlad/foldgraph/internal/ctxlog"
	"github.com/specialistvlad/foldgraph/internal/graph"
	"github.com/specialistvlad/foldgraph/internal/meta"
	"github.com/specialistvlad/foldgraph/internal/nodeid"
	"github.com/specialistvlad/foldgraph/internal/registry"
	"github.com/specialistvlad/foldgraph/internal/testutil"
	"github.com/specialistvlad/foldgraph/internal/value"
	"github.com/specialistvlad/foldgraph/modules/print"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func printGraph(t *testing.T, label string) *graph.Graph {
	t.Helper()
	g := graph.New()
	src := g.Insert(testutil.Const("five", value.Number(5)))
	p := g.Insert(print.New(label))

	in, ok := p.In(print.Value)
	require.True(t, ok)
	out, ok := p.Out(print.Passthrough)
	require.True(t, ok)
	require.NoError(t, g.Connect(testutil.Out(src, "out"), in))
	require.NoError(t, g.Connect(out, testutil.In(g.OutputHandle(), "numeric")))
	return g
}

func TestPrint_PassesThroughAndLogs(t *testing.T) {
	g := printGraph(t, "meter")
	buf := &testutil.SafeBuffer{}
	ev := graph.NewEvaluator(nodeid.GraphOutput, g).
		WithLogger(slog.New(slog.NewTextHandler(buf, nil)))

	v, err := g.EvaluateWith(ev, "numeric", meta.Metadata{Tick: 3})
	require.NoError(t, err)
	assert.Equal(t, value.Number(5), v)

	logs := buf.String()
	assert.Contains(t, logs, "Printing value.")
	assert.Contains(t, logs, "label=meter")
	assert.Contains(t, logs, "tick=3")
	assert.Equal(t, 1, strings.Count(logs, "Printing value."))
}

func TestPrint_NotDemandedNotLogged(t *testing.T) {
	g := printGraph(t, "meter")
	buf := &testutil.SafeBuffer{}
	ev := graph.NewEvaluator(nodeid.GraphOutput, g).
		WithLogger(slog.New(slog.NewTextHandler(buf, nil)))

	_, err := g.EvaluateWith(ev, "text", meta.Default())
	require.ErrorIs(t, err, graph.ErrNoInboundEdge)
	assert.NotContains(t, buf.String(), "Printing value.")
}

func TestPrint_UnconnectedInput(t *testing.T) {
	g := graph.New()
	p := g.Insert(print.New(""))
	out, _ := p.Out(print.Passthrough)
	require.NoError(t, g.Connect(out, testutil.In(g.OutputHandle(), "text")))

	_, err := g.Evaluate("text", meta.Default(), nil)
	require.ErrorIs(t, err, graph.ErrNoInboundEdge)
}

func TestPrint_Vocabulary(t *testing.T) {
	p := print.New("")
	id := nodeid.NewRandom()

	_, ok := p.ResolveIn(print.Value, id)
	assert.True(t, ok)
	_, ok = p.ResolveIn(print.In(5), id)
	assert.False(t, ok)
	_, ok = p.ResolveOut(print.Passthrough, id)
	assert.True(t, ok)
	_, ok = p.ResolveOut(print.Out(3), id)
	assert.False(t, ok)
}

func TestModule_Register(t *testing.T) {
	reg := registry.New(&print.Module{})
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))

	n, err := reg.Build(ctx, "print", registry.Attributes{"label": cty.StringVal("x")})
	require.NoError(t, err)
	assert.Equal(t, "Print", n.Title())

	_, err = reg.Build(ctx, "print", nil)
	require.NoError(t, err)
}
