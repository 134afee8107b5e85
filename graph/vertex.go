package graph

import "sort"

// Vertex is a node in the hypergraph: an atom (Width 1, no Patterns) or a
// composite token (one or more Patterns, each an ordered decomposition into
// children whose widths sum to Width). See spec.md §3 for the field
// invariants; Store is the sole mutator and is responsible for upholding
// them.
type Vertex struct {
	Index    VertexIndex
	Width    int
	Patterns []Pattern

	// parents maps a parent vertex index to the set of (pattern, position)
	// edges through which that parent reaches this vertex. A parent may
	// reach the same child from more than one (pattern, position), hence a
	// set rather than a single edge.
	parents map[VertexIndex]map[ChildEdge]struct{}
}

func newVertex(idx VertexIndex, width int) *Vertex {
	return &Vertex{
		Index:   idx,
		Width:   width,
		parents: make(map[VertexIndex]map[ChildEdge]struct{}),
	}
}

// IsAtom reports whether v is a leaf (width 1, no decompositions).
func (v *Vertex) IsAtom() bool {
	return len(v.Patterns) == 0
}

// Parents returns a snapshot of v's parent back-edges, flattened to the
// §6 BU-entry shape: {parent_vertex, pattern_id, child_position}, sorted by
// (Parent, Pattern, Position) so that callers iterating them (the search
// engine's parent push, in particular) see a stable order across runs ,
// the underlying map has no iteration order of its own, and §5/§8 require
// the same insert/query sequence to produce byte-identical results run to
// run.
func (v *Vertex) Parents() []ParentEdge {
	out := make([]ParentEdge, 0, len(v.parents))
	for pv, edges := range v.parents {
		for e := range edges {
			out = append(out, ParentEdge{Parent: pv, Pattern: e.Pattern, Position: e.Position})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Parent != out[j].Parent {
			return out[i].Parent < out[j].Parent
		}
		if out[i].Pattern != out[j].Pattern {
			return out[i].Pattern < out[j].Pattern
		}
		return out[i].Position < out[j].Position
	})
	return out
}

func (v *Vertex) addParent(parent VertexIndex, e ChildEdge) {
	edges, ok := v.parents[parent]
	if !ok {
		edges = make(map[ChildEdge]struct{})
		v.parents[parent] = edges
	}
	edges[e] = struct{}{}
}

func (v *Vertex) removeParent(parent VertexIndex, e ChildEdge) {
	edges, ok := v.parents[parent]
	if !ok {
		return
	}
	delete(edges, e)
	if len(edges) == 0 {
		delete(v.parents, parent)
	}
}

// atomSequence expands v fully into its leaf atom sequence, descending the
// first pattern at every composite (all patterns of a vertex expand to the
// same atom sequence by invariant 1, so any one of them suffices).
func (v *Vertex) atomSequence(s *Store) []VertexIndex {
	if v.IsAtom() {
		return []VertexIndex{v.Index}
	}
	var out []VertexIndex
	for _, c := range v.Patterns[0].Children {
		out = append(out, s.mustVertex(c).atomSequence(s)...)
	}
	return out
}
