package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cem-okulmus/hyperstring/graph"
	"github.com/cem-okulmus/hyperstring/search"
)

// scenario 3 (spec.md §8): graph holds abc = [a,b,c]; inserting [a,b] splits
// abc, creating ab = [a,b] and adding [ab, c] as a new pattern of abc
// alongside the original, and returns ab.
func TestInsertScenario3Split(t *testing.T) {
	s := graph.NewStore()
	a := s.InsertAtom("a")
	b := s.InsertAtom("b")
	c := s.InsertAtom("c")
	abc := s.InsertPattern([]graph.VertexIndex{a, b, c})

	query := []graph.VertexIndex{a, b}
	result, _ := search.Search(s, query)
	target := Insert(s, result, query)

	require.False(t, s.Vertex(target).IsAtom())
	assert.Equal(t, []graph.VertexIndex{a, b}, s.AtomSequence(target))

	patterns := s.Vertex(abc).Patterns
	require.Len(t, patterns, 2, "abc must keep its original pattern and gain a new one")
	assert.Equal(t, []graph.VertexIndex{a, b, c}, patterns[0].Children)
	assert.Equal(t, []graph.VertexIndex{target, c}, patterns[1].Children)
}

// scenario 2 (spec.md §8): graph holds ab = [a,b] only; inserting [a,b,c]
// must intern (already-interned here) atom c and create a new root abc with
// pattern [ab, c].
func TestInsertScenario2ExtendsBeyondRoot(t *testing.T) {
	s := graph.NewStore()
	a := s.InsertAtom("a")
	b := s.InsertAtom("b")
	c := s.InsertAtom("c")
	ab := s.InsertPattern([]graph.VertexIndex{a, b})

	query := []graph.VertexIndex{a, b, c}
	result, _ := search.Search(s, query)
	abc := Insert(s, result, query)

	assert.NotEqual(t, ab, abc)
	assert.Equal(t, []graph.VertexIndex{ab, c}, s.PatternChildren(abc, 0))
	assert.Equal(t, []graph.VertexIndex{a, b, c}, s.AtomSequence(abc))
}

// scenario 1 (spec.md §8): an exact EntireRoot Complete match is a no-op;
// Insert must return the existing vertex unchanged.
func TestInsertScenario1NoOpOnExactMatch(t *testing.T) {
	s := graph.NewStore()
	a := s.InsertAtom("a")
	b := s.InsertAtom("b")
	c := s.InsertAtom("c")
	abc := s.InsertPattern([]graph.VertexIndex{a, b, c})

	before := s.Len()
	query := []graph.VertexIndex{a, b, c}
	result, _ := search.Search(s, query)
	got := Insert(s, result, query)

	assert.Equal(t, abc, got)
	assert.Equal(t, before, s.Len(), "an exact match must not allocate anything")
	assert.Len(t, s.Vertex(abc).Patterns, 1)
}

// spec.md §8 scenario 5 (simplified to a single-pattern root): a Prefix
// target ending mid-root creates the prefix vertex and wires it back into
// the root as a new pattern.
func TestInsertPrefixTarget(t *testing.T) {
	s := graph.NewStore()
	vals := []string{"a", "b", "c", "d", "e", "f"}
	atoms := make([]graph.VertexIndex, len(vals))
	for i, v := range vals {
		atoms[i] = s.InsertAtom(v)
	}
	root := s.InsertPattern(atoms)

	query := atoms[:4] // "abcd" as a prefix of "abcdef"
	result, _ := search.Search(s, query)
	target := Insert(s, result, query)

	assert.Equal(t, atoms[:4], s.AtomSequence(target))
	found := false
	for _, p := range s.Vertex(root).Patterns {
		if len(p.Children) == 3 && p.Children[0] == target {
			found = true
		}
	}
	assert.True(t, found, "root must gain a pattern [target, e, f]")
}

// scenario 4 (spec.md §8): graph holds abab = [ab,ab] where ab = [a,b];
// inserting ababab must carry both overlap decompositions [ab, abab] and
// [abab, ab], not only the one the search confirms.
func TestInsertScenario4OverlapDecompositions(t *testing.T) {
	s := graph.NewStore()
	a := s.InsertAtom("a")
	b := s.InsertAtom("b")
	ab := s.InsertPattern([]graph.VertexIndex{a, b})
	abab := s.InsertPattern([]graph.VertexIndex{ab, ab})

	query := []graph.VertexIndex{a, b, a, b, a, b}
	result, _ := search.Search(s, query)
	ababab := Insert(s, result, query)

	assert.Equal(t, query, s.AtomSequence(ababab))

	var patterns [][]graph.VertexIndex
	for i := 0; i < s.PatternCount(ababab); i++ {
		patterns = append(patterns, s.PatternChildren(ababab, graph.PatternID(i)))
	}
	assert.Contains(t, patterns, []graph.VertexIndex{abab, ab}, "must keep the decomposition the search confirmed")
	assert.Contains(t, patterns, []graph.VertexIndex{ab, abab}, "must also carry the other overlap decomposition")
}

func TestWrapperRangeExactBoundary(t *testing.T) {
	boundaries := []int{0, 1, 3, 6}
	wStart, wEnd := WrapperRange(boundaries, 1, 3)
	assert.Equal(t, 1, wStart)
	assert.Equal(t, 3, wEnd)
}

func TestWrapperRangeExpandsToNearestBoundary(t *testing.T) {
	boundaries := []int{0, 4, 8, 12}
	wStart, wEnd := WrapperRange(boundaries, 2, 6)
	assert.Equal(t, 0, wStart)
	assert.Equal(t, 8, wEnd)
}

// spec.md §8 scenario 5's pattern [abcd,ef,ghi,jkl] with a Prefix target
// ending at offset 8 (imperfect in this pattern: boundaries are
// 0,4,6,9,12). buildWrapperDecomp must split the straddling child ghi
// into the part the target covers and the part (atom i) it doesn't,
// rather than swallowing atom i's width into target.
func TestBuildWrapperDecompSplitsStraddlingChild(t *testing.T) {
	s := graph.NewStore()
	vals := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	atoms := make([]graph.VertexIndex, len(vals))
	for i, v := range vals {
		atoms[i] = s.InsertAtom(v)
	}
	abcd := s.InsertPattern(atoms[0:4])
	ef := s.InsertPattern(atoms[4:6])
	ghi := s.InsertPattern(atoms[6:9])
	jkl := s.InsertPattern(atoms[9:12])
	root := s.InsertPattern([]graph.VertexIndex{abcd, ef, ghi, jkl})

	target := buildPartition(s, root, 0, 8)
	decomp := buildWrapperDecomp(s, root, 0, 0, 9, 0, 8, target)

	require.Len(t, decomp, 2)
	assert.Equal(t, target, decomp[0])
	assert.Equal(t, []graph.VertexIndex{atoms[8]}, s.AtomSequence(decomp[1]), "the leftover atom i must survive as its own split token")

	total := 0
	for _, c := range decomp {
		total += s.Vertex(c).Width
	}
	assert.Equal(t, 9, total, "wrapper decomposition must preserve width (9 = wEnd - wStart)")
}

// end-to-end version of the same scenario through Insert: every pattern the
// root ends up with (the original, untouched, plus the new wrapper pattern)
// must keep its children's widths summing to the root's width, across the
// whole root, not just within the touched child range.
func TestInsertPrefixTargetPreservesInvariantsAcrossPatterns(t *testing.T) {
	s := graph.NewStore()
	vals := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	atoms := make([]graph.VertexIndex, len(vals))
	for i, v := range vals {
		atoms[i] = s.InsertAtom(v)
	}
	abcd := s.InsertPattern(atoms[0:4])
	ef := s.InsertPattern(atoms[4:6])
	ghi := s.InsertPattern(atoms[6:9])
	jkl := s.InsertPattern(atoms[9:12])
	root := s.InsertPattern([]graph.VertexIndex{abcd, ef, ghi, jkl})

	query := atoms[0:8]
	result, _ := search.Search(s, query)
	target := Insert(s, result, query)

	assert.Equal(t, atoms[0:8], s.AtomSequence(target))

	rootWidth := s.Vertex(root).Width
	for pid := 0; pid < s.PatternCount(root); pid++ {
		total := 0
		for _, c := range s.PatternChildren(root, graph.PatternID(pid)) {
			total += s.Vertex(c).Width
		}
		assert.Equal(t, rootWidth, total, "pattern %d children must sum to root's width", pid)
	}
}
