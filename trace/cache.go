// Package trace implements the per-search side table of spec.md §4.2.5 and
// §6: for each vertex visited during a search, which parent back-edges (BU)
// and which child-pattern positions (TD) were explored, plus any split
// points (imperfect offsets) discovered along the way. The search engine
// (package search) produces this cache and returns it to callers; the
// split/join engine (package split) does not read it.
package trace

import "github.com/cem-okulmus/hyperstring/graph"

// TDEntry names one child-pattern position explored at a vertex, optionally
// noting that the position of interest fell strictly inside that child
// (InnerOffset != nil) rather than on a perfect boundary.
type TDEntry struct {
	Pattern     graph.PatternID
	Position    int
	InnerOffset *int // nil for a perfect boundary, Some(k) for an imperfect split at atom-offset k inside the child
}

// VertexTrace is the set of BU and TD entries recorded for one vertex.
type VertexTrace struct {
	BU map[graph.ParentEdge]struct{}
	TD map[TDEntry]struct{}
}

func newVertexTrace() *VertexTrace {
	return &VertexTrace{
		BU: make(map[graph.ParentEdge]struct{}),
		TD: make(map[TDEntry]struct{}),
	}
}

// Cache is the trace side-table for a single search invocation.
type Cache struct {
	byVertex map[graph.VertexIndex]*VertexTrace
}

// New returns an empty trace cache.
func New() *Cache {
	return &Cache{byVertex: make(map[graph.VertexIndex]*VertexTrace)}
}

func (c *Cache) entry(v graph.VertexIndex) *VertexTrace {
	vt, ok := c.byVertex[v]
	if !ok {
		vt = newVertexTrace()
		c.byVertex[v] = vt
	}
	return vt
}

// RecordBU records that, while exploring v, the parent edge e was followed.
func (c *Cache) RecordBU(v graph.VertexIndex, e graph.ParentEdge) {
	c.entry(v).BU[e] = struct{}{}
}

// RecordTD records that, while exploring v, the given child-pattern position
// was visited, optionally at an imperfect inner offset.
func (c *Cache) RecordTD(v graph.VertexIndex, pattern graph.PatternID, position int, innerOffset *int) {
	c.entry(v).TD[TDEntry{Pattern: pattern, Position: position, InnerOffset: innerOffset}] = struct{}{}
}

// Trace returns the recorded trace for v, or nil if v was never visited.
func (c *Cache) Trace(v graph.VertexIndex) *VertexTrace {
	return c.byVertex[v]
}

// Visited returns the set of vertices this cache has any record for.
func (c *Cache) Visited() []graph.VertexIndex {
	out := make([]graph.VertexIndex, 0, len(c.byVertex))
	for v := range c.byVertex {
		out = append(out, v)
	}
	return out
}

// SplitOffsets collects the atom offsets, per pattern of root, at which an
// imperfect split was recorded.
func (c *Cache) SplitOffsets(root graph.VertexIndex) map[graph.PatternID][]int {
	out := make(map[graph.PatternID][]int)
	vt := c.byVertex[root]
	if vt == nil {
		return out
	}
	for td := range vt.TD {
		if td.InnerOffset != nil {
			out[td.Pattern] = append(out[td.Pattern], *td.InnerOffset)
		}
	}
	return out
}
