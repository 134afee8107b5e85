package split

import (
	"github.com/cem-okulmus/hyperstring/graph"
	"github.com/cem-okulmus/hyperstring/match"
)

// Insert realises spec.md §4.3: given a partial match result and the full
// query it was matched against, it builds the target vertex spanning
// [Start, End) of the matched root (splicing it into every pattern of that
// root, directly or through a wrapper, per spliceTarget below), and, if the
// match did not consume the query, i.e. the matched root's content runs out
// before the query does (spec.md §8 scenario 2: graph holds only `ab`,
// query is `a b c`), joins that target with a freshly built vertex for the
// unmatched remainder (query[r.Query.Confirmed:]) into a brand new top-level
// vertex, via the same content-addressed graph.Store.InsertPattern every
// other join in this package uses, so an existing vertex already expanding
// to the full query is reused rather than duplicated. It returns the vertex
// whose expansion now equals query in full.
func Insert(s *graph.Store, r match.Result, query []graph.VertexIndex) graph.VertexIndex {
	target := spliceTarget(s, r)
	if r.Complete() {
		return target
	}

	remainder := query[r.Query.Confirmed:]
	var remainderVertex graph.VertexIndex
	if len(remainder) == 1 {
		remainderVertex = remainder[0]
	} else {
		remainderVertex = s.InsertPattern(append([]graph.VertexIndex(nil), remainder...))
	}

	decomps := [][]graph.VertexIndex{{target, remainderVertex}}
	decomps = append(decomps, overlapDecompositions(s, query, target, remainderVertex)...)
	return s.InsertPatterns(decomps)
}

// overlapDecompositions finds every additional 2-way split of the full query
// into two already-existing vertices, beyond the base [target, remainder]
// split at the matched boundary (spec.md §8 scenario 4: graph holds
// abab = [ab,ab]; inserting ababab must produce both [ab, abab] and
// [abab, ab] on the resulting vertex, the overlap-sharing central to the
// hypergraph model, not only the one split the search happened to confirm).
//
// Candidate split points come from target's and remainder's own interior
// pattern boundaries, translated into query offsets: any such boundary
// names an alternative place the query could be cut in two. Each side of a
// candidate split is looked up, never built (lookupSpan), so this only
// wires in content that already exists; it never fabricates a vertex
// purely to manufacture a decorative alternate pattern.
func overlapDecompositions(s *graph.Store, query []graph.VertexIndex, target, remainder graph.VertexIndex) [][]graph.VertexIndex {
	targetWidth := s.Vertex(target).Width
	total := len(query)

	var splits []int
	splits = append(splits, interiorBoundaries(s, target)...)
	for _, b := range interiorBoundaries(s, remainder) {
		splits = append(splits, targetWidth+b)
	}

	var out [][]graph.VertexIndex
	for _, b := range splits {
		if b <= 0 || b >= total || b == targetWidth {
			continue
		}
		left, ok := lookupSpan(s, query[:b])
		if !ok {
			continue
		}
		right, ok := lookupSpan(s, query[b:])
		if !ok {
			continue
		}
		out = append(out, []graph.VertexIndex{left, right})
	}
	return out
}

// interiorBoundaries returns the distinct interior child-boundary offsets
// across every pattern of v (empty for an atom, which has none).
func interiorBoundaries(s *graph.Store, v graph.VertexIndex) []int {
	var out []int
	seen := make(map[int]bool)
	for i := 0; i < s.PatternCount(v); i++ {
		boundaries := s.PatternBoundaries(v, graph.PatternID(i))
		for _, b := range boundaries[1 : len(boundaries)-1] {
			if !seen[b] {
				seen[b] = true
				out = append(out, b)
			}
		}
	}
	return out
}

// lookupSpan resolves seq to an existing vertex without creating one: a
// single atom is itself, a longer sequence must already be content-addressed
// in the store.
func lookupSpan(s *graph.Store, seq []graph.VertexIndex) (graph.VertexIndex, bool) {
	if len(seq) == 1 {
		return seq[0], true
	}
	return s.LookupByAtomSequence(seq)
}

// spliceTarget builds the target vertex spanning [Start, End) of the
// matched root, then for every existing pattern of that root installs a new
// sibling pattern with the matched child range spliced out in favour of the
// target, directly where the match's boundaries already land on a perfect
// child boundary, or through a freshly built (or reused) wrapper vertex
// where they don't. Every pattern root already carried is left untouched;
// the spliced view is always added alongside it (never replacing it in
// place), since an existing pattern may be the only decomposition some
// other vertex's invariants still rely on. It returns the target vertex,
// which now represents the matched span as a first-class vertex of the
// graph.
//
// spliceTarget is a no-op for Start == 0 and End == root's width (coverage
// EntireRoot): the whole root already is the target, and it is returned
// unchanged.
func spliceTarget(s *graph.Store, r match.Result) graph.VertexIndex {
	root := r.Root
	start, end := r.Start.AtomPosition, r.End.AtomPosition
	width := s.Vertex(root).Width

	if start == 0 && end == width {
		return root
	}

	target := buildPartition(s, root, start, end)

	for i := 0; i < s.PatternCount(root); i++ {
		pid := graph.PatternID(i)
		boundaries := s.PatternBoundaries(root, pid)
		children := s.PatternChildren(root, pid)
		wStart, wEnd := WrapperRange(boundaries, start, end)

		if wStart == start && wEnd == end {
			idxStart := boundaryIndex(boundaries, start)
			idxEnd := boundaryIndex(boundaries, end)
			s.AddPattern(root, spliceChildren(children, idxStart, idxEnd, target))
			continue
		}

		decomp := buildWrapperDecomp(s, root, pid, wStart, wEnd, start, end, target)

		if wStart == 0 && wEnd == width {
			// §4.3.4: a wrapper spanning the entire root needs no vertex of
			// its own; its decomposition becomes a new pattern of root
			// directly.
			s.AddPattern(root, decomp)
			continue
		}

		wrapper := s.InsertPatterns([][]graph.VertexIndex{decomp})
		idxWStart := boundaryIndex(boundaries, wStart)
		idxWEnd := boundaryIndex(boundaries, wEnd)
		s.AddPattern(root, spliceChildren(children, idxWStart, idxWEnd, wrapper))
	}

	return target
}

// spliceChildren replaces children[start:end] with a single token, copying
// so the caller's slice (read from the store) is never mutated in place.
func spliceChildren(children []graph.VertexIndex, start, end int, token graph.VertexIndex) []graph.VertexIndex {
	out := make([]graph.VertexIndex, 0, len(children)-(end-start)+1)
	out = append(out, children[:start]...)
	out = append(out, token)
	out = append(out, children[end:]...)
	return out
}

// buildWrapperDecomp walks pattern pid's children across [wStart, wEnd),
// keeping every child wholly outside [targetStart, targetEnd) unchanged,
// collapsing every child wholly inside it into a single occurrence of
// target, and, for a child straddling one of target's boundaries, splitting
// off the atoms that fall outside the target (via buildPartition, spec.md
// §4.3.3 step 2's "split tokens at imperfect offsets") instead of dropping
// them, so the wrapper's total width always equals wEnd - wStart.
func buildWrapperDecomp(s *graph.Store, root graph.VertexIndex, pid graph.PatternID, wStart, wEnd, targetStart, targetEnd int, target graph.VertexIndex) []graph.VertexIndex {
	boundaries := s.PatternBoundaries(root, pid)
	children := s.PatternChildren(root, pid)

	idx := boundaryIndex(boundaries, wStart)
	var out []graph.VertexIndex
	inserted := false
	pos := wStart
	for pos < wEnd {
		cs, ce := boundaries[idx], boundaries[idx+1]
		switch {
		case ce <= targetStart || cs >= targetEnd:
			// wholly outside the target: unchanged.
			out = append(out, children[idx])
		case cs >= targetStart && ce <= targetEnd:
			// wholly inside the target: collapses into the single shared
			// target occurrence, already appended or appended below.
			if !inserted {
				out = append(out, target)
				inserted = true
			}
		default:
			// straddles a target boundary: keep the part(s) of this child
			// that fall outside the target as their own split token(s),
			// the part inside it is covered by the (single) target.
			if cs < targetStart {
				out = append(out, buildPartition(s, children[idx], 0, targetStart-cs))
			}
			if !inserted {
				out = append(out, target)
				inserted = true
			}
			if ce > targetEnd {
				out = append(out, buildPartition(s, children[idx], targetEnd-cs, ce-cs))
			}
		}
		pos = ce
		idx++
	}
	return out
}
