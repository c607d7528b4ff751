package env_vars_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/specialistvlad/foldgraph/internal/ctxlog"
	"github.com/specialistvlad/foldgraph/internal/graph"
	"github.com/specialistvlad/foldgraph/internal/meta"
	"github.com/specialistvlad/foldgraph/internal/registry"
	"github.com/specialistvlad/foldgraph/internal/testutil"
	"github.com/specialistvlad/foldgraph/modules/env_vars"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func evalVariable(t *testing.T, n graph.Node) (string, error) {
	t.Helper()
	g := graph.New()
	h := g.Insert(n)
	out, ok := h.Out(env_vars.VariableValue)
	require.True(t, ok)
	require.NoError(t, g.Connect(out, testutil.In(g.OutputHandle(), "text")))

	v, err := g.Evaluate("text", meta.Default(), nil)
	if err != nil {
		return "", err
	}
	return v.AsText()
}

func TestVariable(t *testing.T) {
	t.Setenv("FOLDGRAPH_TEST_VAR", "hello")

	n, err := env_vars.NewVariable("FOLDGRAPH_TEST_VAR", nil)
	require.NoError(t, err)
	got, err := evalVariable(t, n)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Equal(t, "Env FOLDGRAPH_TEST_VAR", n.Title())
}

func TestVariable_ReadOnEveryFold(t *testing.T) {
	t.Setenv("FOLDGRAPH_TEST_VAR", "first")
	n, err := env_vars.NewVariable("FOLDGRAPH_TEST_VAR", nil)
	require.NoError(t, err)

	got, err := evalVariable(t, n)
	require.NoError(t, err)
	assert.Equal(t, "first", got)

	t.Setenv("FOLDGRAPH_TEST_VAR", "second")
	got, err = evalVariable(t, n)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestVariable_Unset(t *testing.T) {
	fallback := "dflt"
	withDefault, err := env_vars.NewVariable("FOLDGRAPH_SURELY_UNSET_VAR", &fallback)
	require.NoError(t, err)
	got, err := evalVariable(t, withDefault)
	require.NoError(t, err)
	assert.Equal(t, "dflt", got)

	noDefault, err := env_vars.NewVariable("FOLDGRAPH_SURELY_UNSET_VAR", nil)
	require.NoError(t, err)
	_, err = evalVariable(t, noDefault)
	require.ErrorIs(t, err, env_vars.ErrUnset)
	assert.Contains(t, err.Error(), "FOLDGRAPH_SURELY_UNSET_VAR")
}

func TestModule_Register(t *testing.T) {
	reg := registry.New(&env_vars.Module{})
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))

	n, err := reg.Build(ctx, "env", registry.Attributes{"name": cty.StringVal("HOME")})
	require.NoError(t, err)
	assert.Equal(t, "Env HOME", n.Title())

	_, err = reg.Build(ctx, "env", registry.Attributes{"name": cty.StringVal("")})
	require.Error(t, err)

	_, err = reg.Build(ctx, "env", nil)
	require.Error(t, err)
}
