package graph

import (
	"encoding/binary"
	"log"
	"sync"

	"github.com/google/go-cmp/cmp"
)

// Store is the hypergraph: the flat vertex arena, the atom interner, and the
// content-address cache that lets insert_pattern detect pre-existing
// sequences without scanning the whole graph (§4.1). A Store is the only
// shared mutable resource in the system (§5); all mutation goes through the
// exported methods below, which hold mu for the duration of the mutation.
//
// Readers (lookups) take the read lock; the single writer discipline required
// by §5 is enforced by callers serialising their own insertions, Store does
// not itself sequence concurrent writers beyond the exclusivity the mutex
// provides.
type Store struct {
	mu       sync.RWMutex
	interner *Interner
	vertices []*Vertex

	// contentIndex maps the byte encoding of an atom sequence to the vertex
	// whose expansion is that sequence. It is a cache, not a source of
	// truth: a hit is confirmed by comparing the candidate's full expansion
	// with cmp.Equal before it is trusted.
	contentIndex map[string][]VertexIndex
}

// NewStore returns an empty hypergraph with a private atom interner.
func NewStore() *Store {
	return &Store{
		interner:     NewInterner(),
		contentIndex: make(map[string][]VertexIndex),
	}
}

// Location names a single child slot: the pattern_id within a vertex and the
// child position inside that pattern.
type Location struct {
	Vertex   VertexIndex
	Pattern  PatternID
	Position int
}

// Range names a contiguous child-index span [Start, End) within one pattern
// of a vertex.
type Range struct {
	Vertex  VertexIndex
	Pattern PatternID
	Start   int
	End     int
}

func (s *Store) mustVertex(idx VertexIndex) *Vertex {
	if int(idx) < 0 || int(idx) >= len(s.vertices) {
		log.Panicf("hyperstring/graph: vertex %d does not exist", idx)
	}
	return s.vertices[idx]
}

// Vertex returns the vertex at idx. Panics if idx is out of range, a
// missing vertex is a contract violation (§7), not a runtime condition.
func (s *Store) Vertex(idx VertexIndex) *Vertex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mustVertex(idx)
}

// Len reports the number of vertices (atoms and composites) in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vertices)
}

// Interner exposes the store's atom interner for callers that need to
// resolve external atom values (e.g. the parse and dump packages).
func (s *Store) Interner() *Interner { return s.interner }

// InsertAtom interns the external value a and ensures a width-1 vertex
// exists for it, returning its index. Idempotent.
func (s *Store) InsertAtom(a any) VertexIndex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertAtomLocked(a)
}

func (s *Store) insertAtomLocked(a any) VertexIndex {
	idx := s.interner.Intern(a)
	if int(idx) < len(s.vertices) {
		return idx
	}
	// atoms are interned and allocated in lock-step: the interner's dense
	// index space and the vertex arena stay aligned for atoms.
	for int(idx) >= len(s.vertices) {
		v := newVertex(VertexIndex(len(s.vertices)), 1)
		s.vertices = append(s.vertices, v)
	}
	return idx
}

// allocateComposite appends a fresh, pattern-less vertex of the given width
// and returns its index. Callers install at least one pattern before
// releasing the write lock.
func (s *Store) allocateComposite(width int) VertexIndex {
	idx := VertexIndex(len(s.vertices))
	s.vertices = append(s.vertices, newVertex(idx, width))
	// reserve the same slot in the interner (holding no atom value) so the
	// next interned atom's index is still the next free vertex index.
	s.interner.mu.Lock()
	s.interner.values = append(s.interner.values, nil)
	s.interner.mu.Unlock()
	return idx
}

func atomSequenceKey(seq []VertexIndex) string {
	buf := make([]byte, len(seq)*8)
	for i, v := range seq {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(v))
	}
	return string(buf)
}

// findByAtomSequence returns the existing vertex expanding to seq, if any.
// It is a cache lookup keyed by the sequence's byte encoding; each
// candidate's full expansion is compared against seq before it is returned.
func (s *Store) findByAtomSequence(seq []VertexIndex) (VertexIndex, bool) {
	key := atomSequenceKey(seq)
	for _, cand := range s.contentIndex[key] {
		if cmp.Equal(s.mustVertex(cand).atomSequence(s), seq) {
			return cand, true
		}
	}
	return 0, false
}

func (s *Store) recordAtomSequence(v VertexIndex, seq []VertexIndex) {
	key := atomSequenceKey(seq)
	s.contentIndex[key] = append(s.contentIndex[key], v)
}

func childWidths(s *Store, children []VertexIndex) int {
	total := 0
	for _, c := range children {
		total += s.mustVertex(c).Width
	}
	return total
}

// InsertPattern requires len(children) >= 2; a single-child "pattern" is a
// caller error (callers should return the child directly, per §4.1). If a
// composite vertex already expands to the same atom sequence as children,
// that vertex is returned, with children added as one more of its patterns
// unless an identical pattern is already present. Otherwise a fresh vertex is allocated,
// the pattern registered, and parent back-edges installed.
func (s *Store) InsertPattern(children []VertexIndex) VertexIndex {
	if len(children) < 2 {
		log.Panicf("hyperstring/graph: InsertPattern requires >= 2 children, got %d", len(children))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertPatternLocked(children)
}

func (s *Store) insertPatternLocked(children []VertexIndex) VertexIndex {
	seq := s.expandChildren(children)
	if existing, ok := s.findByAtomSequence(seq); ok {
		s.addPatternIfAbsentLocked(existing, children)
		return existing
	}

	width := childWidths(s, children)
	idx := s.allocateComposite(width)
	s.installPatternLocked(idx, children)
	s.recordAtomSequence(idx, seq)
	return idx
}

func (s *Store) expandChildren(children []VertexIndex) []VertexIndex {
	var out []VertexIndex
	for _, c := range children {
		out = append(out, s.mustVertex(c).atomSequence(s)...)
	}
	return out
}

// installPatternLocked appends children as a new pattern of vertex idx and
// wires the corresponding parent back-edges. Caller holds the write lock.
// Width-checked the same way ReplaceInPattern checks its replacement: a
// pattern whose children don't sum to idx's width is a contract violation
// (§3 invariant 4), never a silently-installed corrupt decomposition.
func (s *Store) installPatternLocked(idx VertexIndex, children []VertexIndex) PatternID {
	v := s.mustVertex(idx)
	if width := childWidths(s, children); width != v.Width {
		log.Panicf("hyperstring/graph: pattern children sum to width %d, vertex %d has width %d", width, idx, v.Width)
	}
	pid := PatternID(len(v.Patterns))
	v.Patterns = append(v.Patterns, Pattern{Children: append([]VertexIndex(nil), children...)})
	for pos, c := range children {
		s.mustVertex(c).addParent(idx, ChildEdge{Pattern: pid, Position: pos})
	}
	return pid
}

// addPatternIfAbsentLocked adds children as an additional decomposition of
// an already-existing vertex, unless an identical pattern (same children in
// the same order) is already present.
func (s *Store) addPatternIfAbsentLocked(idx VertexIndex, children []VertexIndex) {
	v := s.mustVertex(idx)
	for _, p := range v.Patterns {
		if cmp.Equal(p.Children, children) {
			return
		}
	}
	s.installPatternLocked(idx, children)
}

// InsertPatterns adds every supplied decomposition to a single vertex
// (creating the vertex if none exists yet). A decomposition of length 1 is
// returned as-is (its sole child) without creating a new vertex; the caller
// is expected to not mix length-1 and length>=2 sequences meaningfully, but
// if it does, the first length-1 sequence short-circuits the call (mirrors
// §4.1: "if any supplied sequence is of length 1, the single child is
// returned without creating a new vertex").
func (s *Store) InsertPatterns(childrenSets [][]VertexIndex) VertexIndex {
	s.mu.Lock()
	defer s.mu.Unlock()

	deduped := dedupeSequences(childrenSets)
	for _, seq := range deduped {
		if len(seq) == 1 {
			return seq[0]
		}
	}
	if len(deduped) == 0 {
		log.Panicf("hyperstring/graph: InsertPatterns requires at least one decomposition")
	}

	first := s.insertPatternLocked(deduped[0])
	for _, seq := range deduped[1:] {
		s.addPatternIfAbsentLocked(first, seq)
	}
	return first
}

func dedupeSequences(sets [][]VertexIndex) [][]VertexIndex {
	var out [][]VertexIndex
	for _, s := range sets {
		dup := false
		for _, o := range out {
			if cmp.Equal(s, o) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, s)
		}
	}
	return out
}

// ExpectChildAt looks up the vertex at loc, panicking if loc does not name an
// existing child slot. A missing location is a contract violation (§4.1,
// §7), never a recoverable condition.
func (s *Store) ExpectChildAt(loc Location) VertexIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := s.mustVertex(loc.Vertex)
	if int(loc.Pattern) < 0 || int(loc.Pattern) >= len(v.Patterns) {
		log.Panicf("hyperstring/graph: vertex %d has no pattern %d", loc.Vertex, loc.Pattern)
	}
	p := v.Patterns[loc.Pattern]
	if loc.Position < 0 || loc.Position >= len(p.Children) {
		log.Panicf("hyperstring/graph: pattern %d of vertex %d has no position %d", loc.Pattern, loc.Vertex, loc.Position)
	}
	return p.Children[loc.Position]
}

// ExpectPatternRange returns the children of rng.Vertex's rng.Pattern
// spanning [rng.Start, rng.End), panicking if the range is out of bounds.
func (s *Store) ExpectPatternRange(rng Range) []VertexIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := s.mustVertex(rng.Vertex)
	if int(rng.Pattern) < 0 || int(rng.Pattern) >= len(v.Patterns) {
		log.Panicf("hyperstring/graph: vertex %d has no pattern %d", rng.Vertex, rng.Pattern)
	}
	p := v.Patterns[rng.Pattern]
	if rng.Start < 0 || rng.End > len(p.Children) || rng.Start > rng.End {
		log.Panicf("hyperstring/graph: pattern %d of vertex %d has no range [%d,%d)", rng.Pattern, rng.Vertex, rng.Start, rng.End)
	}
	out := make([]VertexIndex, rng.End-rng.Start)
	copy(out, p.Children[rng.Start:rng.End])
	return out
}

// ReplaceInPattern atomically substitutes children[pattern_id][start:end]
// with replacement, updating parent back-edges for the removed and added
// positions and shifting back-edges for any children after the replaced
// range. Width is preserved by construction: callers must ensure
// replacement's total width equals the width of the range it replaces (§4.1
//, a violation is a contract error and panics).
//
// Per §5, the replacement children must already exist in full before this
// call; ReplaceInPattern performs the swap atomically with respect to
// readers by holding the write lock for its whole body, and it is the last
// step of any mutation that touches this pattern so that a mid-operation
// panic upstream never leaves the graph with a partially-built replacement
// wired in.
func (s *Store) ReplaceInPattern(rng Range, replacement []VertexIndex) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.mustVertex(rng.Vertex)
	if int(rng.Pattern) < 0 || int(rng.Pattern) >= len(v.Patterns) {
		log.Panicf("hyperstring/graph: vertex %d has no pattern %d", rng.Vertex, rng.Pattern)
	}
	p := &v.Patterns[rng.Pattern]
	if rng.Start < 0 || rng.End > len(p.Children) || rng.Start > rng.End {
		log.Panicf("hyperstring/graph: pattern %d of vertex %d has no range [%d,%d)", rng.Pattern, rng.Vertex, rng.Start, rng.End)
	}

	oldWidth := 0
	for _, c := range p.Children[rng.Start:rng.End] {
		oldWidth += s.mustVertex(c).Width
	}
	newWidth := childWidths(s, replacement)
	if oldWidth != newWidth {
		log.Panicf("hyperstring/graph: replacement width %d does not match replaced width %d", newWidth, oldWidth)
	}

	// remove back-edges for the replaced range and for everything after it
	// (positions shift), then rebuild from rng.Start onward.
	for pos := rng.Start; pos < len(p.Children); pos++ {
		s.mustVertex(p.Children[pos]).removeParent(rng.Vertex, ChildEdge{Pattern: rng.Pattern, Position: pos})
	}

	newChildren := make([]VertexIndex, 0, len(p.Children)-(rng.End-rng.Start)+len(replacement))
	newChildren = append(newChildren, p.Children[:rng.Start]...)
	newChildren = append(newChildren, replacement...)
	newChildren = append(newChildren, p.Children[rng.End:]...)
	p.Children = newChildren

	for pos := rng.Start; pos < len(p.Children); pos++ {
		s.mustVertex(p.Children[pos]).addParent(rng.Vertex, ChildEdge{Pattern: rng.Pattern, Position: pos})
	}
}

// PatternBoundaries returns the cumulative atom offsets of the pattern's
// child boundaries (spec.md §3 "child boundary"): offsets[0] == 0,
// offsets[len] == the vertex's width, and len(offsets) == childCount+1.
func (s *Store) PatternBoundaries(v VertexIndex, p PatternID) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vert := s.mustVertex(v)
	if int(p) < 0 || int(p) >= len(vert.Patterns) {
		log.Panicf("hyperstring/graph: vertex %d has no pattern %d", v, p)
	}
	return vert.Patterns[p].boundaries(s)
}

// PatternChildren returns a copy of the children of the given pattern.
func (s *Store) PatternChildren(v VertexIndex, p PatternID) []VertexIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vert := s.mustVertex(v)
	if int(p) < 0 || int(p) >= len(vert.Patterns) {
		log.Panicf("hyperstring/graph: vertex %d has no pattern %d", v, p)
	}
	out := make([]VertexIndex, len(vert.Patterns[p].Children))
	copy(out, vert.Patterns[p].Children)
	return out
}

// PatternCount reports how many patterns v has.
func (s *Store) PatternCount(v VertexIndex) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mustVertex(v).Patterns)
}

// AllVertices returns a snapshot slice of every vertex, ordered by index,
// for iteration by serialisation/visualisation collaborators (§6).
func (s *Store) AllVertices() []*Vertex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Vertex, len(s.vertices))
	copy(out, s.vertices)
	return out
}

// AtomSequence returns the full leaf-atom expansion of v.
func (s *Store) AtomSequence(v VertexIndex) []VertexIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mustVertex(v).atomSequence(s)
}

// LookupByAtomSequence returns the existing vertex whose full expansion is
// exactly seq, if the graph already holds one (§4.1's content-addressing:
// "if a composite vertex already has this exact atom sequence, reuse it").
// This is the exported counterpart of findByAtomSequence used by the split
// package, which must check for reuse before allocating a new partition
// vertex.
func (s *Store) LookupByAtomSequence(seq []VertexIndex) (VertexIndex, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findByAtomSequence(seq)
}

// AddPattern installs children as an additional decomposition of the
// already-existing vertex v, unless an identical pattern is already present.
// Unlike InsertPatterns, it never allocates a new vertex, it is for the
// §4.3.4 case where a wrapper partition spans the entire root: the root
// gains a new pattern rather than a new vertex being created to wrap it.
func (s *Store) AddPattern(v VertexIndex, children []VertexIndex) {
	if len(children) < 2 {
		log.Panicf("hyperstring/graph: AddPattern requires >= 2 children, got %d", len(children))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addPatternIfAbsentLocked(v, children)
}
