// Package match defines the typed match result produced by the search
// engine (spec.md §3 "Match result", §6 "Match result format").
package match

import (
	"github.com/cem-okulmus/hyperstring/graph"
	"github.com/cem-okulmus/hyperstring/path"
)

// Coverage tags how the matched span relates to its root's boundaries.
type Coverage int

const (
	// EntireRoot: the query was exhausted exactly at the root's end, with
	// the match starting at the root's start too.
	EntireRoot Coverage = iota
	// RangeCoverage: the match is an interior span of the root.
	RangeCoverage
	// Prefix: the match runs from the root's start to an interior offset.
	Prefix
	// Postfix: the match runs from an interior offset to the root's end.
	Postfix
)

func (c Coverage) String() string {
	switch c {
	case EntireRoot:
		return "EntireRoot"
	case RangeCoverage:
		return "Range"
	case Prefix:
		return "Prefix"
	case Postfix:
		return "Postfix"
	default:
		return "?"
	}
}

// QueryCheckpoint tracks progress through the query pattern with the same
// checkpoint/candidate shape as path.Checkpoint (spec.md §3), specialised to
// a flat position counter since the query pattern is not itself a graph
// vertex until it is inserted.
type QueryCheckpoint struct {
	Confirmed int
	candidate *int
}

// NewQueryCheckpoint starts a query checkpoint with nothing yet confirmed
// beyond the given position (0 for a fresh search).
func NewQueryCheckpoint(confirmed int) QueryCheckpoint {
	return QueryCheckpoint{Confirmed: confirmed}
}

// Advance records a candidate attempt to confirm the atom at Confirmed.
func (q QueryCheckpoint) Advance() QueryCheckpoint {
	pos := q.Confirmed
	return QueryCheckpoint{Confirmed: q.Confirmed, candidate: &pos}
}

// Commit confirms the candidate atom, advancing Confirmed by one and
// clearing the in-flight candidate.
func (q QueryCheckpoint) Commit() QueryCheckpoint {
	return QueryCheckpoint{Confirmed: q.Confirmed + 1}
}

// Abandon clears an in-flight candidate without moving Confirmed, used when
// the attempted atom mismatched.
func (q QueryCheckpoint) Abandon() QueryCheckpoint {
	return QueryCheckpoint{Confirmed: q.Confirmed}
}

// Result is the typed match result of spec.md §3/§6: a path coverage tagged
// union over the chosen root, plus a checkpointed query cursor describing
// how much of the query was confirmed.
type Result struct {
	Coverage Coverage
	Root     graph.VertexIndex
	Start    path.Cursor // Role Start, State Matched: where the match begins in Root
	End      path.Cursor // Role End, State Matched: where the match ends in Root
	Query    QueryCheckpoint
	QueryLen int
}

// Complete reports whether the query was fully consumed (spec.md §3:
// "Complete match ⇔ query cursor at the end of the query pattern").
func (r Result) Complete() bool {
	return r.Query.Confirmed == r.QueryLen
}

// RootWidth is the matched root's width, used for DESIGN.md decision 4's
// "strictly narrower" comparison. The priority queue orders by the width
// cached in search.Node, not by this method.
func (r Result) RootWidth(s *graph.Store) int {
	return s.Vertex(r.Root).Width
}
