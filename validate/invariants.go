// Package validate checks the universal hypergraph invariants of spec.md
// §8 against a live graph.Store, for use in property tests over random
// insertion sequences.
package validate

import (
	"fmt"
	"strings"

	"github.com/spakin/disjoint"

	"github.com/cem-okulmus/hyperstring/graph"
)

// Violation describes one failed invariant, numbered to match spec.md §8's
// enumeration of the four universal invariants.
type Violation struct {
	Invariant int
	Detail    string
}

func (v Violation) Error() string {
	return fmt.Sprintf("invariant %d violated: %s", v.Invariant, v.Detail)
}

// CheckInvariants walks every vertex of s and checks all four universal
// invariants, returning every violation found (nil if the graph is
// consistent).
func CheckInvariants(s *graph.Store) []error {
	vertices := s.AllVertices()

	var out []error
	out = append(out, checkWidths(s, vertices)...)
	out = append(out, checkBoundaryDisjointness(s, vertices)...)
	out = append(out, checkBackEdgeSymmetry(s, vertices)...)
	out = append(out, checkAtomSequenceUniqueness(s, vertices)...)
	return out
}

// checkWidths is invariant 1: every pattern's children widths sum to the
// vertex's own width.
func checkWidths(s *graph.Store, vertices []*graph.Vertex) []error {
	var out []error
	for _, v := range vertices {
		for pid, p := range v.Patterns {
			total := 0
			for _, c := range p.Children {
				total += s.Vertex(c).Width
			}
			if total != v.Width {
				out = append(out, Violation{1, fmt.Sprintf(
					"vertex %d pattern %d children sum to width %d, vertex width is %d",
					v.Index, pid, total, v.Width)})
			}
		}
	}
	return out
}

// checkBoundaryDisjointness is invariant 2: distinct patterns of the same
// vertex never share an interior child-boundary offset.
func checkBoundaryDisjointness(s *graph.Store, vertices []*graph.Vertex) []error {
	var out []error
	for _, v := range vertices {
		if len(v.Patterns) < 2 {
			continue
		}
		seenAt := make(map[int]int)
		for pid := range v.Patterns {
			boundaries := s.PatternBoundaries(v.Index, graph.PatternID(pid))
			for _, b := range boundaries[1 : len(boundaries)-1] {
				if first, ok := seenAt[b]; ok {
					out = append(out, Violation{2, fmt.Sprintf(
						"vertex %d: interior offset %d is a boundary in both pattern %d and pattern %d",
						v.Index, b, first, pid)})
					continue
				}
				seenAt[b] = pid
			}
		}
	}
	return out
}

// checkBackEdgeSymmetry is invariant 3: every forward child edge has a
// matching parent back-edge.
func checkBackEdgeSymmetry(s *graph.Store, vertices []*graph.Vertex) []error {
	var out []error
	for _, v := range vertices {
		for pid, p := range v.Patterns {
			for pos, c := range p.Children {
				found := false
				for _, pe := range s.Vertex(c).Parents() {
					if pe.Parent == v.Index && int(pe.Pattern) == pid && pe.Position == pos {
						found = true
						break
					}
				}
				if !found {
					out = append(out, Violation{3, fmt.Sprintf(
						"vertex %d pattern %d position %d -> child %d has no matching parent back-edge",
						v.Index, pid, pos, c)})
				}
			}
		}
	}
	return out
}

// checkAtomSequenceUniqueness is invariant 4: no two composite vertices
// share the same atom-sequence expansion. Vertices are grouped by their
// expansion and unioned with disjoint.Element; any representative whose
// set ends up with more than one distinct vertex index is a violation ,
// union-find makes the grouping itself the proof, rather than a second
// pairwise comparison pass.
func checkAtomSequenceUniqueness(s *graph.Store, vertices []*graph.Vertex) []error {
	elems := make(map[graph.VertexIndex]*disjoint.Element)
	byKey := make(map[string][]graph.VertexIndex)

	for _, v := range vertices {
		if v.IsAtom() {
			continue
		}
		elems[v.Index] = disjoint.NewElement()
		key := sequenceKey(s.AtomSequence(v.Index))
		byKey[key] = append(byKey[key], v.Index)
	}

	for _, group := range byKey {
		for i := 1; i < len(group); i++ {
			disjoint.Union(elems[group[0]], elems[group[i]])
		}
	}

	reps := make(map[*disjoint.Element][]graph.VertexIndex)
	for idx, e := range elems {
		rep := e.Find()
		reps[rep] = append(reps[rep], idx)
	}

	var out []error
	for _, members := range reps {
		if len(members) > 1 {
			out = append(out, Violation{4, fmt.Sprintf(
				"composite vertices %v all expand to the same atom sequence", members)})
		}
	}
	return out
}

func sequenceKey(seq []graph.VertexIndex) string {
	var b strings.Builder
	for _, v := range seq {
		fmt.Fprintf(&b, "%d,", v)
	}
	return b.String()
}
