package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAtomIdempotent(t *testing.T) {
	s := NewStore()
	a1 := s.InsertAtom("a")
	a2 := s.InsertAtom("a")
	b := s.InsertAtom("b")

	assert.Equal(t, a1, a2)
	assert.NotEqual(t, a1, b)
	assert.Equal(t, 1, s.Vertex(a1).Width)
	assert.True(t, s.Vertex(a1).IsAtom())
}

func TestInsertPatternCreatesComposite(t *testing.T) {
	s := NewStore()
	a := s.InsertAtom("a")
	b := s.InsertAtom("b")

	ab := s.InsertPattern([]VertexIndex{a, b})
	v := s.Vertex(ab)

	require.False(t, v.IsAtom())
	assert.Equal(t, 2, v.Width)
	assert.Equal(t, []VertexIndex{a, b}, v.Patterns[0].Children)
}

func TestInsertPatternDedupesByAtomSequence(t *testing.T) {
	s := NewStore()
	a := s.InsertAtom("a")
	b := s.InsertAtom("b")
	c := s.InsertAtom("c")

	ab := s.InsertPattern([]VertexIndex{a, b})
	abc1 := s.InsertPattern([]VertexIndex{ab, c})
	abc2 := s.InsertPattern([]VertexIndex{a, b, c}) // same atom sequence, different pattern shape

	assert.Equal(t, abc1, abc2, "a pre-existing atom sequence must be returned, not duplicated")
	assert.Len(t, s.Vertex(abc1).Patterns, 2, "the new decomposition is added alongside the original")
}

func TestInsertPatternsLengthOneShortCircuits(t *testing.T) {
	s := NewStore()
	a := s.InsertAtom("a")

	v := s.InsertPatterns([][]VertexIndex{{a}})
	assert.Equal(t, a, v)
}

func TestInsertPatternsInstallsAllDecompositions(t *testing.T) {
	s := NewStore()
	a := s.InsertAtom("a")
	b := s.InsertAtom("b")
	ab := s.InsertPattern([]VertexIndex{a, b})

	abab := s.InsertPatterns([][]VertexIndex{
		{ab, ab},
		{a, b, ab},
	})

	assert.Len(t, s.Vertex(abab).Patterns, 2)
	assert.Equal(t, 4, s.Vertex(abab).Width)
}

func TestReplaceInPatternPreservesWidthAndBackEdges(t *testing.T) {
	s := NewStore()
	a := s.InsertAtom("a")
	b := s.InsertAtom("b")
	c := s.InsertAtom("c")
	abc := s.InsertPattern([]VertexIndex{a, b, c})
	ab := s.InsertPattern([]VertexIndex{a, b})

	s.ReplaceInPattern(Range{Vertex: abc, Pattern: 0, Start: 0, End: 2}, []VertexIndex{ab})

	children := s.PatternChildren(abc, 0)
	assert.Equal(t, []VertexIndex{ab, c}, children)

	found := false
	for _, pe := range s.Vertex(ab).Parents() {
		if pe.Parent == abc && pe.Position == 0 {
			found = true
		}
	}
	assert.True(t, found, "ab must have a back-edge to abc after the splice")

	for _, pe := range s.Vertex(a).Parents() {
		assert.NotEqual(t, abc, pe.Parent, "a's old direct back-edge into abc must be removed")
	}
}

func TestReplaceInPatternPanicsOnWidthMismatch(t *testing.T) {
	s := NewStore()
	a := s.InsertAtom("a")
	b := s.InsertAtom("b")
	c := s.InsertAtom("c")
	abc := s.InsertPattern([]VertexIndex{a, b, c})

	assert.Panics(t, func() {
		s.ReplaceInPattern(Range{Vertex: abc, Pattern: 0, Start: 0, End: 2}, []VertexIndex{a})
	})
}

func TestExpectChildAtPanicsOnMissingLocation(t *testing.T) {
	s := NewStore()
	a := s.InsertAtom("a")
	b := s.InsertAtom("b")
	ab := s.InsertPattern([]VertexIndex{a, b})

	assert.Panics(t, func() {
		s.ExpectChildAt(Location{Vertex: ab, Pattern: 0, Position: 5})
	})
}

func TestInsertPatternRejectsSingleChild(t *testing.T) {
	s := NewStore()
	a := s.InsertAtom("a")

	assert.Panics(t, func() {
		s.InsertPattern([]VertexIndex{a})
	})
}

func TestAtomSequenceExpansion(t *testing.T) {
	s := NewStore()
	a := s.InsertAtom("a")
	b := s.InsertAtom("b")
	c := s.InsertAtom("c")
	ab := s.InsertPattern([]VertexIndex{a, b})
	abc := s.InsertPattern([]VertexIndex{ab, c})

	assert.Equal(t, []VertexIndex{a, b, c}, s.AtomSequence(abc))
}

func TestAddPatternDoesNotCreateNewVertex(t *testing.T) {
	s := NewStore()
	a := s.InsertAtom("a")
	b := s.InsertAtom("b")
	c := s.InsertAtom("c")
	abc := s.InsertPattern([]VertexIndex{a, b, c})
	ab := s.InsertPattern([]VertexIndex{a, b})

	before := s.Len()
	s.AddPattern(abc, []VertexIndex{ab, c})
	assert.Equal(t, before, s.Len(), "AddPattern must never allocate a new vertex")
	assert.Len(t, s.Vertex(abc).Patterns, 2)
}
