package search

import (
	"github.com/cem-okulmus/hyperstring/graph"
	"github.com/cem-okulmus/hyperstring/match"
	"github.com/cem-okulmus/hyperstring/path"
)

// Verdict is the outcome of one atom comparison (spec.md §4.2.2). Mode is
// restricted here to the two cases a purely-atomic query exercises:
// FoundMatch and Mismatch. Prefixes and SubToken are kept as named verdicts
// for API completeness with the spec's vocabulary, a query that is itself
// composite (rather than a flat atom sequence) would produce them when its
// next element is a composite vertex, but the external Search entry point
// (spec.md §6) only ever receives a flat atom sequence, so this engine's
// query side never yields them. The child side's composite structure is
// instead already resolved down to the atom level by path.Descend before a
// comparison is attempted, which is this implementation's realisation of
// "descend into it" (SubToken), see DESIGN.md.
type Verdict int

const (
	FoundMatch Verdict = iota
	Mismatch
	Prefixes
	SubToken
)

// CompareState pairs a checkpointed query cursor with a checkpointed child
// (root) cursor, per spec.md §4.2.2.
type CompareState struct {
	Query match.QueryCheckpoint
	Child path.Checkpoint
	Root  graph.VertexIndex
}

// CompareAtom attempts to advance both cursors by one atom. It mirrors
// path.Cursor's Candidate → Matched/Mismatched transitions exactly: the
// child cursor is first moved into Candidate state (as_candidate), the
// comparison is made, and the result drives mark_match or mark_mismatch.
func CompareAtom(s *graph.Store, cs CompareState, query []graph.VertexIndex) (Verdict, CompareState) {
	candidate := cs.Child.Checkpoint().AsCandidate()
	cs.Child = cs.Child.Advance(candidate)

	childAtom := candidate.Vertex(s)
	queryAtom := query[cs.Query.Confirmed]

	if childAtom == queryAtom {
		matched := candidate.MarkMatch(s, candidate.AtomPosition+1)
		return FoundMatch, CompareState{
			Query: cs.Query.Advance().Commit(),
			Child: cs.Child.Commit(matched),
			Root:  cs.Root,
		}
	}

	_ = candidate.MarkMismatch()
	return Mismatch, CompareState{
		Query: cs.Query,
		Child: cs.Child.Abandon(),
		Root:  cs.Root,
	}
}
