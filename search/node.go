// Package search implements the priority-ordered best-first substring
// search of spec.md §4.2: a min-heap of search nodes ordered by root width,
// a compare-state walking query atoms against a chosen root, and the
// substring-graph invariant that once a match is confirmed, all further
// exploration stays within that root's ancestors.
package search

import "github.com/cem-okulmus/hyperstring/graph"

// Kind distinguishes the two search-node variants of spec.md §4.2.1. Both
// are represented by the same Node shape here: a CandidateParent is simply a
// Node whose first atom comparison has not yet been attempted, while a
// RootCursor is one that has already matched at least one atom inside Root.
// The distinction is kept as a tag for trace/debugging fidelity even though
// both kinds are processed by the same extension loop in engine.go.
type Kind int

const (
	CandidateParent Kind = iota
	RootCursor
)

// Node is one entry in the search priority queue: a root being explored, the
// span of it matched so far, and how far into the query that match reaches.
type Node struct {
	Kind Kind

	Root      graph.VertexIndex
	RootWidth int // cached at push time; this is the heap's ordering key

	// StartOffset is the atom offset in Root where the (possible) match
	// begins; RootPos is the atom offset up to which Root has been matched
	// so far (the position of the next atom to compare, if any remain).
	StartOffset int
	RootPos     int

	// QueryPos is how many atoms of the query have been confirmed matched
	// overall.
	QueryPos int

	// seq is the insertion-order tie-breaker for the priority queue
	// (DESIGN.md decision 2: equal root widths are FIFO).
	seq uint64
}
