package search

import (
	"log"

	"github.com/cem-okulmus/hyperstring/graph"
	"github.com/cem-okulmus/hyperstring/match"
	"github.com/cem-okulmus/hyperstring/path"
	"github.com/cem-okulmus/hyperstring/trace"
)

func classify(start, end, width int) match.Coverage {
	switch {
	case start == 0 && end == width:
		return match.EntireRoot
	case start == 0:
		return match.Prefix
	case end == width:
		return match.Postfix
	default:
		return match.RangeCoverage
	}
}

// preferResult implements DESIGN.md decision 4's best_match replacement
// semantics for the ancestor chain this engine walks (spec.md §4.2.4): a
// Complete match only ever replaces another Complete match, and only when
// its root is strictly narrower (ties keep the first-found result,
// DESIGN.md decision 2's FIFO spirit applied here too). Among non-Complete
// (partial) candidates, the one making more progress into the query always
// wins, this is what lets the engine keep climbing a chain of parents and
// have the final, furthest-reaching partial win over an earlier, shallower
// one (e.g. spec.md §8 scenario 2: the match against the lone atom "a"
// must not survive once the match against "ab" is found), with ties
// broken by the narrower root, and a Complete match always beating every
// partial regardless of query progress.
func preferResult(candidate *match.Result, current *match.Result, s *graph.Store) bool {
	if current == nil {
		return true
	}
	if candidate.Complete() != current.Complete() {
		return candidate.Complete()
	}
	if !candidate.Complete() {
		if candidate.Query.Confirmed != current.Query.Confirmed {
			return candidate.Query.Confirmed > current.Query.Confirmed
		}
	}
	return candidate.RootWidth(s) < current.RootWidth(s)
}

func cursorAt(s *graph.Store, root graph.VertexIndex, offset int, role path.Role) path.Cursor {
	return path.Cursor{
		Path:         path.Path{Root: root, Hops: path.Descend(s, root, offset)},
		AtomPosition: offset,
		Role:         role,
		State:        path.Matched,
	}
}

func buildResult(s *graph.Store, root graph.VertexIndex, startOffset, endOffset, queryPos, queryLen int) match.Result {
	width := s.Vertex(root).Width
	return match.Result{
		Coverage: classify(startOffset, endOffset, width),
		Root:     root,
		Start:    cursorAt(s, root, startOffset, path.Start),
		End:      cursorAt(s, root, endOffset, path.End),
		Query:    match.NewQueryCheckpoint(queryPos),
		QueryLen: queryLen,
	}
}

// traceResult records the final best match's start and end offsets, on top
// of the per-position TD entries and parent BU entries Search records while
// it walks each root. For every pattern of the chosen root it notes whether
// the match's start and end offsets land on a perfect boundary or strictly
// inside a child.
func traceResult(cache *trace.Cache, s *graph.Store, r match.Result) {
	traceOffset(cache, s, r.Root, r.Start.AtomPosition)
	traceOffset(cache, s, r.Root, r.End.AtomPosition)
}

// traceOffset records a TD entry for offset in every pattern of root that
// has a boundary there (perfect or imperfect). This is the accurate
// per-pattern counterpart to reading h.Pattern off a path.Cursor's hops:
// path.Descend always descends through pattern 0 (its documented
// convention), so a hop-derived pattern id would mislabel any position
// whose relevant decomposition lives in a different pattern of root.
func traceOffset(cache *trace.Cache, s *graph.Store, root graph.VertexIndex, offset int) {
	count := s.PatternCount(root)
	for i := 0; i < count; i++ {
		pid := graph.PatternID(i)
		boundaries := s.PatternBoundaries(root, pid)
		recordOffset(cache, root, pid, boundaries, offset)
	}
}

func recordOffset(cache *trace.Cache, root graph.VertexIndex, pid graph.PatternID, boundaries []int, offset int) {
	for i := 0; i < len(boundaries)-1; i++ {
		start, end := boundaries[i], boundaries[i+1]
		if offset == start {
			cache.RecordTD(root, pid, i, nil)
			return
		}
		if offset > start && offset < end {
			inner := offset - start
			cache.RecordTD(root, pid, i, &inner)
			return
		}
	}
	if offset == boundaries[len(boundaries)-1] {
		cache.RecordTD(root, pid, len(boundaries)-1, nil)
	}
}

// Search is the §6 search entry: given a query of already-interned atom
// indices (length >= 2) it returns the typed match result for the smallest
// root containing the longest matching prefix, plus the trace cache of
// visited parents/children (§4.2.5).
//
// The search space explored is the set of ancestor chains reachable from
// the vertex for query[0]: the initial node is that atom itself, and every
// subsequent node is a parent of a root already confirmed to contain a
// (partial) match. An atom or composite with more than one parent fans out
// into sibling chains explored interleaved by root width (smallest first);
// each time a root is exhausted and has parents, Queue.ClearCandidateParents
// drops every not-yet-tried CandidateParent node still queued before that
// root's parents are pushed, enforcing the substring-graph invariant
// (spec.md §4.2.4: once a match is confirmed, every future match occurs in
// an ancestor of that root) whenever sibling branches exist. See DESIGN.md decision 4 for how best is kept across
// these interleaved chains.
func Search(s *graph.Store, query []graph.VertexIndex) (match.Result, *trace.Cache) {
	if len(query) < 2 {
		log.Panicf("hyperstring/search: query must have length >= 2, got %d", len(query))
	}

	cache := trace.New()
	queue := NewQueue()

	q0 := query[0]
	queue.Push(Node{
		Kind:      RootCursor,
		Root:      q0,
		RootWidth: s.Vertex(q0).Width,
		RootPos:   1,
		QueryPos:  1,
	})

	var best *match.Result

	for {
		node, ok := queue.Pop()
		if !ok {
			break
		}

		root, rootWidth := node.Root, node.RootWidth
		startOffset := node.StartOffset

		cs := CompareState{
			Query: match.NewQueryCheckpoint(node.QueryPos),
			Child: path.NewCheckpoint(cursorAt(s, root, node.RootPos, path.End)),
			Root:  root,
		}

		mismatched := false
		for cs.Query.Confirmed < len(query) && cs.Child.Checkpoint().AtomPosition < rootWidth {
			verdict, next := CompareAtom(s, cs, query)
			if verdict == Mismatch {
				mismatched = true
				break
			}
			cs = next
			traceOffset(cache, s, root, cs.Child.Checkpoint().AtomPosition)
		}
		rootPos := cs.Child.Checkpoint().AtomPosition
		queryPos := cs.Query.Confirmed
		if mismatched {
			// A content mismatch strictly inside root is a dead end: the
			// same boundary content would be found again in any ancestor,
			// so no parents are pushed. It still yields a valid Prefix or
			// Range partial result, kept only if it beats the current best
			// (preferResult above).
			candidate := buildResult(s, root, startOffset, rootPos, queryPos, len(query))
			if preferResult(&candidate, best, s) {
				best = &candidate
			}
			continue
		}

		if queryPos == len(query) {
			result := buildResult(s, root, startOffset, rootPos, queryPos, len(query))
			traceResult(cache, s, result)
			return result, cache
		}

		// Root exhausted but the query isn't: this is the §4.2.3
		// "parent-exploration" case, keep it as the new best if it makes
		// more progress into the query than whatever is currently held
		// (preferResult above), then grow into this root's parents.
		candidate := buildResult(s, root, startOffset, rootPos, queryPos, len(query))
		if preferResult(&candidate, best, s) {
			best = &candidate
		}

		parents := s.Vertex(root).Parents()
		if len(parents) == 0 {
			continue
		}
		queue.ClearCandidateParents()
		for _, pe := range parents {
			cache.RecordBU(root, pe)
			boundaries := s.PatternBoundaries(pe.Parent, pe.Pattern)
			childStart := boundaries[pe.Position]
			queue.Push(Node{
				Kind:        CandidateParent,
				Root:        pe.Parent,
				RootWidth:   s.Vertex(pe.Parent).Width,
				StartOffset: childStart + startOffset,
				RootPos:     childStart + rootPos,
				QueryPos:    queryPos,
			})
		}
	}

	// best is always seeded: the initial node (the atom for query[0]) always
	// hits the exhaustion branch at least once, since its width is 1 and the
	// query has length >= 2.
	traceResult(cache, s, *best)
	return *best, cache
}
