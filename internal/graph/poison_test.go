package graph

import (
	"testing"

	"github.com/specialistvlad/foldgraph/internal/meta"
	"github.com/specialistvlad/foldgraph/internal/nodeid"
	"github.com/specialistvlad/foldgraph/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocked_PanicPoisonsGraph(t *testing.T) {
	g := New()

	require.PanicsWithValue(t, "boom", func() {
		_ = g.locked(func() error { panic("boom") })
	})

	require.ErrorIs(t, g.Remove(nodeid.NewRandom()), ErrGraphCorrupted)
	require.ErrorIs(t, g.Connect(port.NodeOut{}, port.NodeIn{}), ErrGraphCorrupted)
	require.ErrorIs(t, g.Disconnect(port.NodeOut{}, port.NodeIn{}), ErrGraphCorrupted)

	_, err := g.InsertWithID(&graphInput{}, nodeid.NewRandom())
	require.ErrorIs(t, err, ErrGraphCorrupted)

	_, err = g.Evaluate("numeric", meta.Default(), nil)
	require.ErrorIs(t, err, ErrGraphCorrupted)

	_, ok := g.Handle(nodeid.GraphOutput)
	assert.False(t, ok)
	assert.Panics(t, func() { g.OutputHandle() })
	assert.Panics(t, func() { g.Insert(&graphInput{}) })
}

func TestLocked_MutexReleasedAfterPanic(t *testing.T) {
	g := New()
	func() {
		defer func() { _ = recover() }()
		_ = g.locked(func() error { panic("boom") })
	}()

	// Remove blocks forever if the mutex is still held.
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = g.Remove(nodeid.NewRandom())
	}()
	<-done
	assert.True(t, g.poisoned)
}
