package port

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/foldgraph/internal/nodeid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type termIn int

const (
	term1 termIn = iota
	term2
)

func (termIn) InputPort() {}
func (p termIn) String() string {
	if p == term1 {
		return "term1"
	}
	return "term2"
}

type otherIn string

func (otherIn) InputPort()       {}
func (p otherIn) String() string { return string(p) }

type sumOut struct{}

func (sumOut) OutputPort()    {}
func (sumOut) String() string { return "out" }

type listOut []string

func (listOut) OutputPort()    {}
func (listOut) String() string { return "list" }

func TestResolveIn(t *testing.T) {
	id := nodeid.NewFromName("adder")

	ref, ok := ResolveIn[termIn](term2, id)
	require.True(t, ok)
	assert.Equal(t, NodeIn{Node: id, Port: term2}, ref)

	_, ok = ResolveIn[termIn](otherIn("term2"), id)
	assert.False(t, ok, "a same-named port of another kind must not resolve")
}

func TestResolveIn_DeclaredVocabulary(t *testing.T) {
	id := nodeid.NewFromName("adder")

	ref, ok := ResolveIn(term2, id, term1, term2)
	require.True(t, ok)
	assert.Equal(t, term2, ref.Port)

	_, ok = ResolveIn(termIn(5), id, term1, term2)
	assert.False(t, ok, "a value of the right type outside the declared set must not resolve")

	_, ok = ResolveOut(sumOut{}, id, sumOut{})
	assert.True(t, ok)
}

func TestResolveOut(t *testing.T) {
	id := nodeid.NewFromName("adder")

	ref, ok := ResolveOut[sumOut](sumOut{}, id)
	require.True(t, ok)
	assert.Equal(t, "out", ref.Port.String())
	assert.Equal(t, id.String()+">out", ref.String())
}

func TestPorts_StructuralKeys(t *testing.T) {
	m := map[In]int{}
	m[term1] = 1
	m[termIn(0)] = 2
	m[otherIn("term1")] = 3

	assert.Len(t, m, 2, "equal values of one type share a key, other types do not")
	assert.Equal(t, 2, m[term1])
}

func TestFind(t *testing.T) {
	ins := []In{term1, term2}

	in, ok := FindIn(ins, "term2")
	require.True(t, ok)
	assert.Equal(t, In(term2), in)

	_, ok = FindIn(ins, "term3")
	assert.False(t, ok)

	out, ok := FindOut([]Out{sumOut{}}, "out")
	require.True(t, ok)
	assert.Empty(t, cmp.Diff(Out(sumOut{}), out))
}

func TestComparable(t *testing.T) {
	assert.True(t, Comparable(term1))
	assert.True(t, Comparable(sumOut{}))
	assert.False(t, Comparable(listOut{"a"}))
	assert.False(t, Comparable(nil))
}
