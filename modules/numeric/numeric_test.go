package numeric_test

import (
	"context"
	"log/slog"
	"math"
	"testing"

	"github.com/specialistvlad/foldgraph/internal/ctxlog"
	"github.com/specialistvlad/foldgraph/internal/graph"
	"github.com/specialistvlad/foldgraph/internal/meta"
	"github.com/specialistvlad/foldgraph/internal/registry"
	"github.com/specialistvlad/foldgraph/internal/value"
	"github.com/specialistvlad/foldgraph/modules/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// evalBinary wires a op b into GraphOutput's numeric input and folds it.
func evalBinary(t *testing.T, op numeric.Operation, a, b float64) (float64, error) {
	t.Helper()
	g := graph.New()
	ha := g.Insert(numeric.NewConstant(a))
	hb := g.Insert(numeric.NewConstant(b))
	hop := g.Insert(numeric.NewArithmetic(op))

	connect(t, g, ha, numeric.ConstantValue, hop, numeric.Term1)
	connect(t, g, hb, numeric.ConstantValue, hop, numeric.Term2)
	out, ok := hop.Out(numeric.Result)
	require.True(t, ok)
	sink, ok := g.OutputHandle().InputNamed("numeric")
	require.True(t, ok)
	require.NoError(t, g.Connect(out, sink))

	v, err := g.Evaluate("numeric", meta.Default(), nil)
	if err != nil {
		return 0, err
	}
	return v.AsNumber()
}

func connect(t *testing.T, g *graph.Graph, from graph.NodeHandle, out numeric.ConstantOut, to graph.NodeHandle, in numeric.ArithmeticIn) {
	t.Helper()
	src, ok := from.Out(out)
	require.True(t, ok)
	dst, ok := to.In(in)
	require.True(t, ok)
	require.NoError(t, g.Connect(src, dst))
}

func TestArithmetic(t *testing.T) {
	testCases := []struct {
		op   numeric.Operation
		a, b float64
		want float64
	}{
		{numeric.Add, 2, 3, 5},
		{numeric.Subtract, 2, 3, -1},
		{numeric.Multiply, 2, 3, 6},
		{numeric.Divide, 3, 2, 1.5},
	}

	for _, tc := range testCases {
		t.Run(tc.op.String(), func(t *testing.T) {
			got, err := evalBinary(t, tc.op, tc.a, tc.b)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// scenarioGraph wires (two * three) + addend into GraphOutput's numeric input
// and returns the multiply node so callers can re-patch it.
func scenarioGraph(t *testing.T) (*graph.Graph, graph.NodeHandle) {
	t.Helper()
	g := graph.New()
	two := g.Insert(numeric.NewConstant(2))
	three := g.Insert(numeric.NewConstant(3))
	addend := g.Insert(numeric.NewConstant(2))
	mul := g.Insert(numeric.NewArithmetic(numeric.Multiply))
	add := g.Insert(numeric.NewArithmetic(numeric.Add))

	connect(t, g, two, numeric.ConstantValue, mul, numeric.Term1)
	connect(t, g, three, numeric.ConstantValue, mul, numeric.Term2)
	connect(t, g, addend, numeric.ConstantValue, add, numeric.Term2)

	product, ok := mul.Out(numeric.Result)
	require.True(t, ok)
	term1, ok := add.In(numeric.Term1)
	require.True(t, ok)
	require.NoError(t, g.Connect(product, term1))

	sum, ok := add.Out(numeric.Result)
	require.True(t, ok)
	sink, ok := g.OutputHandle().InputNamed("numeric")
	require.True(t, ok)
	require.NoError(t, g.Connect(sum, sink))
	return g, mul
}

func evalNumeric(t *testing.T, g *graph.Graph) float64 {
	t.Helper()
	v, err := g.Evaluate("numeric", meta.Default(), nil)
	require.NoError(t, err)
	n, err := v.AsNumber()
	require.NoError(t, err)
	return n
}

func TestArithmetic_MultiplyThenAdd(t *testing.T) {
	g, _ := scenarioGraph(t)
	assert.Equal(t, 8.0, evalNumeric(t, g))
}

func TestArithmetic_RepatchReplacesTerm(t *testing.T) {
	g, mul := scenarioGraph(t)
	five := g.Insert(numeric.NewConstant(5))
	connect(t, g, five, numeric.ConstantValue, mul, numeric.Term2)

	assert.Equal(t, 12.0, evalNumeric(t, g))

	term2, ok := mul.In(numeric.Term2)
	require.True(t, ok)
	src, ok := g.Source(term2)
	require.True(t, ok)
	assert.Equal(t, five.ID(), src.Node)
}

func TestConstant_NaNIsAnError(t *testing.T) {
	g := graph.New()
	c := g.Insert(numeric.NewConstant(math.NaN()))
	out, ok := c.Out(numeric.ConstantValue)
	require.True(t, ok)
	sink, ok := g.OutputHandle().InputNamed("numeric")
	require.True(t, ok)
	require.NoError(t, g.Connect(out, sink))

	var err error
	require.NotPanics(t, func() {
		_, err = g.Evaluate("numeric", meta.Default(), nil)
	})
	require.ErrorIs(t, err, value.ErrUnsupported)

	var located *graph.Error
	require.ErrorAs(t, err, &located)
	assert.Equal(t, c.ID(), located.Node)
}

func TestArithmetic_DivisionByZero(t *testing.T) {
	_, err := evalBinary(t, numeric.Divide, 1, 0)
	require.ErrorIs(t, err, numeric.ErrDivisionByZero)
}

func TestArithmetic_MissingTerm(t *testing.T) {
	g := graph.New()
	hop := g.Insert(numeric.NewArithmetic(numeric.Multiply))
	out, _ := hop.Out(numeric.Result)
	sink, _ := g.OutputHandle().InputNamed("numeric")
	require.NoError(t, g.Connect(out, sink))

	_, err := g.Evaluate("numeric", meta.Default(), nil)
	require.ErrorIs(t, err, graph.ErrNoInboundEdge)
	assert.Contains(t, err.Error(), ">term1")
}

func TestArithmetic_Vocabulary(t *testing.T) {
	g := graph.New()
	h := g.Insert(numeric.NewArithmetic(numeric.Add))

	in, ok := h.InputNamed("term2")
	require.True(t, ok)
	assert.Equal(t, numeric.Term2, in.Port)

	_, ok = h.In(numeric.ArithmeticIn(7))
	assert.False(t, ok)
	_, ok = h.Out(numeric.ConstantValue)
	assert.False(t, ok, "a constant's output type is not an arithmetic output")

	c := g.Insert(numeric.NewConstant(1))
	_, ok = c.In(numeric.Term1)
	assert.False(t, ok)
	assert.Empty(t, c.Node().Inputs())

	_, ok = c.Out(numeric.ConstantOut(7))
	assert.False(t, ok, "an undeclared output value must not resolve")
	_, ok = h.Out(numeric.ArithmeticOut(1))
	assert.False(t, ok)
}

func TestParseOperation(t *testing.T) {
	op, err := numeric.ParseOperation("Multiply")
	require.NoError(t, err)
	assert.Equal(t, numeric.Multiply, op)

	_, err = numeric.ParseOperation("modulo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add, subtract, multiply, divide")
}

func TestModule_Register(t *testing.T) {
	r := registry.New(&numeric.Module{})
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
	require.NoError(t, r.Validate(ctx))

	n, err := r.Build(ctx, "number", registry.Attributes{"value": cty.NumberIntVal(4)})
	require.NoError(t, err)
	v, err := n.Fold(numeric.ConstantValue, graph.Evaluator{}, meta.Default())
	require.NoError(t, err)
	assert.Equal(t, value.Number(4).String(), v.String())

	n, err = r.Build(ctx, "arithmetic", nil)
	require.NoError(t, err)
	assert.Equal(t, numeric.Add, n.(*numeric.Arithmetic).Operation())

	n, err = r.Build(ctx, "arithmetic", registry.Attributes{"operation": cty.StringVal("divide")})
	require.NoError(t, err)
	assert.Equal(t, numeric.Divide, n.(*numeric.Arithmetic).Operation())

	_, err = r.Build(ctx, "arithmetic", registry.Attributes{"operation": cty.StringVal("pow")})
	require.Error(t, err)
}
