package registry_test

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/specialistvlad/foldgraph/internal/ctxlog"
	"github.com/specialistvlad/foldgraph/internal/graph"
	"github.com/specialistvlad/foldgraph/internal/registry"
	"github.com/specialistvlad/foldgraph/internal/testutil"
	"github.com/specialistvlad/foldgraph/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type constConfig struct {
	Value float64 `cty:"value"`
	Label *string `cty:"label"`
}

type constModule struct{}

func (constModule) Register(r *registry.Registry) {
	r.Register(&registry.Kind{
		Name:        "const",
		Description: "A constant number.",
		NewConfig:   func() any { return new(constConfig) },
		New: func(cfg any) (graph.Node, error) {
			c := cfg.(*constConfig)
			title := "const"
			if c.Label != nil {
				title = *c.Label
			}
			return testutil.Const(title, value.Number(c.Value)), nil
		},
	})
	r.Register(&registry.Kind{
		Name: "sum",
		New:  func(any) (graph.Node, error) { return testutil.Sum("sum"), nil },
	})
}

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := registry.New(constModule{})

	k, ok := r.Lookup("const")
	require.True(t, ok)
	assert.Equal(t, "A constant number.", k.Description)

	_, ok = r.Lookup("nope")
	assert.False(t, ok)

	var names []string
	for _, k := range r.Kinds() {
		names = append(names, k.Name)
	}
	assert.Equal(t, []string{"const", "sum"}, names)
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := registry.New(constModule{})
	assert.PanicsWithValue(t, "node kind with name 'const' already registered", func() {
		constModule{}.Register(r)
	})
	assert.Panics(t, func() { r.Register(&registry.Kind{Name: "broken"}) })
}

func TestRegistry_Build(t *testing.T) {
	r := registry.New(constModule{})
	ctx := testContext()

	testCases := []struct {
		name      string
		kind      string
		attrs     registry.Attributes
		wantTitle string
		wantErr   []string
	}{
		{
			name:      "required only",
			kind:      "const",
			attrs:     registry.Attributes{"value": cty.NumberIntVal(2)},
			wantTitle: "const",
		},
		{
			name:      "optional attribute and conversion",
			kind:      "const",
			attrs:     registry.Attributes{"value": cty.StringVal("2.5"), "label": cty.StringVal("two and a half")},
			wantTitle: "two and a half",
		},
		{
			name:      "no config",
			kind:      "sum",
			wantTitle: "sum",
		},
		{
			name:    "unknown kind",
			kind:    "nope",
			wantErr: []string{"unknown node kind", `"nope"`},
		},
		{
			name:    "missing required and unsupported reported together",
			kind:    "const",
			attrs:   registry.Attributes{"colour": cty.StringVal("red")},
			wantErr: []string{`unsupported attribute "colour"`, `missing required attribute "value"`},
		},
		{
			name:    "unconvertible value",
			kind:    "const",
			attrs:   registry.Attributes{"value": cty.StringVal("two")},
			wantErr: []string{`attribute "value"`},
		},
		{
			name:    "attributes on a kind without config",
			kind:    "sum",
			attrs:   registry.Attributes{"value": cty.NumberIntVal(1)},
			wantErr: []string{`kind "sum"`, `unsupported attribute "value"`},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			node, err := r.Build(ctx, tc.kind, tc.attrs)
			if len(tc.wantErr) > 0 {
				require.Error(t, err)
				for _, want := range tc.wantErr {
					assert.Contains(t, err.Error(), want)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantTitle, node.Title())
		})
	}
}

func TestRegistry_BuildUnknownKindIsSentinel(t *testing.T) {
	r := registry.New()
	_, err := r.Build(testContext(), "x", nil)
	require.ErrorIs(t, err, registry.ErrUnknownKind)
}

func TestRegistry_Validate(t *testing.T) {
	r := registry.New(constModule{})
	require.NoError(t, r.Validate(testContext()))

	r.Register(&registry.Kind{
		Name:      "bad",
		NewConfig: func() any { return constConfig{} },
		New:       func(any) (graph.Node, error) { return nil, nil },
	})
	err := r.Validate(testContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kind 'bad'")
}

func TestRegistry_ValidateConcurrentWithRegister(t *testing.T) {
	r := registry.New(constModule{})
	ctx := testContext()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Register(&registry.Kind{
				Name: fmt.Sprintf("sum%d", i),
				New:  func(any) (graph.Node, error) { return testutil.Sum("sum"), nil },
			})
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, r.Validate(ctx))
		}()
	}
	wg.Wait()

	assert.Len(t, r.Kinds(), 10)
}
