package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cem-okulmus/hyperstring/graph"
)

func TestLoadBareAtomReturnsItsOwnVertex(t *testing.T) {
	s := graph.NewStore()
	v, err := Load(s, "a")
	require.NoError(t, err)
	assert.True(t, s.Vertex(v).IsAtom())
}

func TestLoadNestedGroupBuildsChildrenFirst(t *testing.T) {
	s := graph.NewStore()
	v, err := Load(s, "(a b) c")
	require.NoError(t, err)

	require.False(t, s.Vertex(v).IsAtom())
	children := s.PatternChildren(v, 0)
	require.Len(t, children, 2)
	ab := children[0]
	require.False(t, s.Vertex(ab).IsAtom(), "(a b) must already be a composite before the outer pattern is installed")
	assert.Equal(t, []graph.VertexIndex{s.InsertAtom("a"), s.InsertAtom("b")}, s.PatternChildren(ab, 0))
}

func TestLoadIsIdempotentForSameLiteral(t *testing.T) {
	s := graph.NewStore()
	v1, err := Load(s, "(a b) c")
	require.NoError(t, err)
	v2, err := Load(s, "a b c")
	require.NoError(t, err)

	assert.Equal(t, v1, v2, "a different decomposition of the same atom sequence must reuse the existing vertex")
}
