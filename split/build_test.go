package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cem-okulmus/hyperstring/graph"
)

func TestBuildPartitionWholeVertexIsNoOp(t *testing.T) {
	s := graph.NewStore()
	a := s.InsertAtom("a")
	b := s.InsertAtom("b")
	ab := s.InsertPattern([]graph.VertexIndex{a, b})

	got := buildPartition(s, ab, 0, 2)
	assert.Equal(t, ab, got)
}

func TestBuildPartitionSingleAtomReturnsAtomDirectly(t *testing.T) {
	s := graph.NewStore()
	a := s.InsertAtom("a")
	b := s.InsertAtom("b")
	c := s.InsertAtom("c")
	abc := s.InsertPattern([]graph.VertexIndex{a, b, c})

	got := buildPartition(s, abc, 1, 2)
	assert.Equal(t, b, got)
}

func TestBuildPartitionReusesExistingVertex(t *testing.T) {
	s := graph.NewStore()
	a := s.InsertAtom("a")
	b := s.InsertAtom("b")
	c := s.InsertAtom("c")
	ab := s.InsertPattern([]graph.VertexIndex{a, b})
	abc := s.InsertPattern([]graph.VertexIndex{a, b, c})

	before := s.Len()
	got := buildPartition(s, abc, 0, 2)

	assert.Equal(t, ab, got, "the existing ab vertex must be reused by content address")
	assert.Equal(t, before, s.Len(), "reuse must not allocate a new vertex")
}

func TestBuildPartitionRecursesThroughStraddlingChild(t *testing.T) {
	s := graph.NewStore()
	a := s.InsertAtom("a")
	b := s.InsertAtom("b")
	c := s.InsertAtom("c")
	d := s.InsertAtom("d")
	ab := s.InsertPattern([]graph.VertexIndex{a, b})
	abcd := s.InsertPattern([]graph.VertexIndex{ab, c, d})

	// [1,3) straddles ab (atoms b) and c: neither child lies wholly inside,
	// so buildPartition must recurse into ab for just its second atom.
	got := buildPartition(s, abcd, 1, 3)
	require.False(t, s.Vertex(got).IsAtom())
	assert.Equal(t, []graph.VertexIndex{b, c}, s.AtomSequence(got))
}
