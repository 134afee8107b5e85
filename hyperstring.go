// Package hyperstring is the hierarchical-hypergraph substring engine of
// spec.md: it stores every atom sequence ever shown to it deduplicated as a
// DAG of composite tokens (package graph), finds the smallest existing
// token containing a query as a substring (package search), and when a
// query isn't fully contained, augments the graph with the minimal new
// structure needed to represent it (package split). This file is the §6
// "external interfaces" surface: Graph, Search, InsertOrGet.
package hyperstring

import (
	"github.com/cem-okulmus/hyperstring/graph"
	"github.com/cem-okulmus/hyperstring/match"
	"github.com/cem-okulmus/hyperstring/search"
	"github.com/cem-okulmus/hyperstring/split"
	"github.com/cem-okulmus/hyperstring/trace"
)

// Graph is the opaque handle collaborators (CLI, reader, visualiser) hold
// (§6): a hypergraph store plus the operations of §4.1, exposed through
// graph.Store's exported methods and the entry points below.
type Graph struct {
	Store *graph.Store
}

// New returns an empty hypergraph with a private atom interner (§9 open
// question 1: one interner per Graph, never shared).
func New() *Graph {
	return &Graph{Store: graph.NewStore()}
}

// InternAtoms interns each of vs, in order, returning their vertex indices.
// It is the usual first step before calling Search or InsertOrGet with a
// query expressed in the caller's own atom representation.
func (g *Graph) InternAtoms(vs []any) []graph.VertexIndex {
	out := make([]graph.VertexIndex, len(vs))
	for i, v := range vs {
		out[i] = g.Store.InsertAtom(v)
	}
	return out
}

// Search is the §6 search entry point: given a query of already-interned
// atom indices (length >= 2), return the typed match result for the
// smallest root containing the longest matching prefix, plus the trace
// cache recording which parents and children were visited.
func Search(g *Graph, query []graph.VertexIndex) (match.Result, *trace.Cache) {
	return search.Search(g.Store, query)
}

// InsertOrGet is the §6 insertion entry point: it runs Search, then always
// passes the result through split.Insert, which is a no-op whenever the
// match is Complete and already covers its root's entire width (coverage
// EntireRoot, the query is already exactly some existing vertex's
// expansion) and otherwise augments the graph so the query sequence becomes
// a first-class vertex, whether the query was fully (Complete) or only
// partially matched. It returns the smallest existing or newly created
// vertex whose expansion equals query.
func InsertOrGet(g *Graph, query []graph.VertexIndex) graph.VertexIndex {
	result, _ := search.Search(g.Store, query)
	return split.Insert(g.Store, result, query)
}

// InsertOrGetAtoms interns vs and calls InsertOrGet on the resulting
// sequence, the common case where the caller has raw atom values rather
// than already-interned indices.
func (g *Graph) InsertOrGetAtoms(vs []any) graph.VertexIndex {
	return InsertOrGet(g, g.InternAtoms(vs))
}
