// Package path implements the rooted-path and cursor primitives of spec.md
// §3: a root vertex plus a descent of (pattern, position) hops, and the
// type-state cursors built on top of it.
package path

import "github.com/cem-okulmus/hyperstring/graph"

// Hop is one descent step: from the vertex reached so far, move into the
// child at Position within pattern Pattern.
type Hop struct {
	Pattern  graph.PatternID
	Position int
}

// Path is a root vertex plus a sequence of hops locating a descendant
// position within it.
type Path struct {
	Root graph.VertexIndex
	Hops []Hop
}

// Vertex resolves the vertex reached by walking Hops from Root.
func (p Path) Vertex(s *graph.Store) graph.VertexIndex {
	cur := p.Root
	for _, h := range p.Hops {
		cur = s.ExpectChildAt(graph.Location{Vertex: cur, Pattern: h.Pattern, Position: h.Position})
	}
	return cur
}

// Descend builds the hop chain from root down to the atom at the given
// atom-offset within root's expansion, always picking each vertex's first
// pattern (pattern 0) to descend through. This is sufficient to name any
// atom position in the graph: by invariant 3 every offset is a perfect
// boundary in at most one pattern, but any pattern can be walked atom-by-atom
// regardless of where its boundaries fall.
func Descend(s *graph.Store, root graph.VertexIndex, atomOffset int) []Hop {
	// atomOffset == root's width names the boundary just past the last
	// atom (an End cursor at EntireRoot/Postfix coverage): there is no
	// child slot "after" the last one, so resolve to the last atom
	// actually covered instead. AtomPosition remains the source of truth
	// for where the cursor really is; this only affects what Path.Vertex
	// resolves to.
	if width := s.Vertex(root).Width; atomOffset == width {
		return Descend(s, root, atomOffset-1)
	}

	var hops []Hop
	cur := root
	remaining := atomOffset
	for {
		v := s.Vertex(cur)
		if v.IsAtom() {
			if remaining != 0 {
				panic("hyperstring/path: atom offset out of range during descend")
			}
			return hops
		}
		pat := v.Patterns[0]
		childPos := 0
		childStart := 0
		for i, c := range pat.Children {
			w := s.Vertex(c).Width
			if remaining < childStart+w {
				childPos = i
				break
			}
			childStart += w
		}
		hops = append(hops, Hop{Pattern: 0, Position: childPos})
		cur = pat.Children[childPos]
		remaining -= childStart
	}
}

// Append returns a new Path with hop appended, leaving p unmodified.
func (p Path) Append(h Hop) Path {
	hops := make([]Hop, len(p.Hops)+1)
	copy(hops, p.Hops)
	hops[len(p.Hops)] = h
	return Path{Root: p.Root, Hops: hops}
}
