package split

import "github.com/cem-okulmus/hyperstring/graph"

// buildPartition returns a vertex whose atom expansion equals vertexRoot's
// atoms[start:end], reusing an existing vertex via content-addressing where
// one already expands to that exact sequence (spec.md §4.1), and otherwise
// building it bottom-up: each pattern of vertexRoot is walked for children
// fully inside [start, end) (reused as-is) and recurses into any child that
// straddles an edge of the range. A straddling piece is always strictly
// narrower than [start, end), so the recursion always bottoms out at a
// single atom, this is §4.3.3's "smallest-to-largest merge", realised as
// plain recursion plus the store's existing content-address cache rather
// than an explicit worklist.
func buildPartition(s *graph.Store, vertexRoot graph.VertexIndex, start, end int) graph.VertexIndex {
	width := s.Vertex(vertexRoot).Width
	if start == 0 && end == width {
		return vertexRoot
	}

	seq := s.AtomSequence(vertexRoot)[start:end]
	if len(seq) == 1 {
		return seq[0]
	}
	if v, ok := s.LookupByAtomSequence(seq); ok {
		return v
	}

	var decomps [][]graph.VertexIndex
	for i := 0; i < s.PatternCount(vertexRoot); i++ {
		if decomp, ok := decomposeViaPattern(s, vertexRoot, graph.PatternID(i), start, end); ok {
			decomps = append(decomps, decomp)
		}
	}
	if len(decomps) == 0 {
		// vertexRoot has no pattern that spans [start, end) directly (can
		// happen for atoms reached only through a straddling recursive
		// call's own atom run); fall back to the flat atom sequence.
		decomps = [][]graph.VertexIndex{append([]graph.VertexIndex(nil), seq...)}
	}
	return s.InsertPatterns(decomps)
}

// decomposeViaPattern expresses [start, end) in terms of pattern pid's
// children: a child wholly inside the range is reused unchanged, and a
// child straddling either edge is replaced by a recursive buildPartition
// call for just the overlapping slice. ok is false only if pid's children
// don't reach as far as end (shouldn't happen for a well-formed vertex,
// since every pattern of vertexRoot spans its whole width).
func decomposeViaPattern(s *graph.Store, vertexRoot graph.VertexIndex, pid graph.PatternID, start, end int) ([]graph.VertexIndex, bool) {
	boundaries := s.PatternBoundaries(vertexRoot, pid)
	children := s.PatternChildren(vertexRoot, pid)

	idx := 0
	for idx < len(children) && boundaries[idx+1] <= start {
		idx++
	}
	if idx >= len(children) {
		return nil, false
	}

	var out []graph.VertexIndex
	pos := start
	for pos < end {
		if idx >= len(children) {
			return nil, false
		}
		cs, ce := boundaries[idx], boundaries[idx+1]
		localStart := max(pos, cs) - cs
		localEnd := min(end, ce) - cs
		if localStart == 0 && localEnd == ce-cs {
			out = append(out, children[idx])
		} else {
			out = append(out, buildPartition(s, children[idx], localStart, localEnd))
		}
		pos = ce
		idx++
	}
	return out, true
}
