package graph

// PatternID identifies one decomposition among the possibly-many patterns of
// a single vertex. It is stable for the life of the pattern (indices of a
// vertex's pattern slice are never renumbered; patterns are only appended).
type PatternID int

// Pattern is one ordered decomposition of a composite vertex into children.
// len(Children) is always >= 2 (single-child "patterns" are rejected at
// insertion time, per §4.1).
type Pattern struct {
	Children []VertexIndex
}

// Width sums the widths of a pattern's children, resolving each child's
// width through the owning Store.
func (p Pattern) width(s *Store) int {
	total := 0
	for _, c := range p.Children {
		total += s.mustVertex(c).Width
	}
	return total
}

// boundaries returns the cumulative atom offsets of p's child boundaries,
// starting at 0 and ending at the pattern's total width. len(result) ==
// len(p.Children)+1.
func (p Pattern) boundaries(s *Store) []int {
	offsets := make([]int, 0, len(p.Children)+1)
	cur := 0
	offsets = append(offsets, cur)
	for _, c := range p.Children {
		cur += s.mustVertex(c).Width
		offsets = append(offsets, cur)
	}
	return offsets
}

// ChildEdge names one parent-to-child relationship: the pattern within the
// parent, and the child's position within that pattern.
type ChildEdge struct {
	Pattern  PatternID
	Position int
}

// ParentEdge names one child-to-parent relationship: which parent, and via
// which (pattern, position) the child is reached from it.
type ParentEdge struct {
	Parent   VertexIndex
	Pattern  PatternID
	Position int
}
