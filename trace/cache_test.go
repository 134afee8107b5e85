package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cem-okulmus/hyperstring/graph"
)

func TestRecordBUAndTD(t *testing.T) {
	c := New()
	v := graph.VertexIndex(3)

	c.RecordBU(v, graph.ParentEdge{Parent: 9, Pattern: 0, Position: 1})
	inner := 2
	c.RecordTD(v, 0, 1, &inner)
	c.RecordTD(v, 0, 2, nil)

	tr := c.Trace(v)
	assert.Len(t, tr.BU, 1)
	assert.Len(t, tr.TD, 2)
	assert.ElementsMatch(t, []graph.VertexIndex{v}, c.Visited())
}

func TestTraceNilForUnvisited(t *testing.T) {
	c := New()
	assert.Nil(t, c.Trace(graph.VertexIndex(42)))
}

func TestSplitOffsetsOnlyCollectsImperfect(t *testing.T) {
	c := New()
	root := graph.VertexIndex(1)

	c.RecordTD(root, 0, 0, nil) // perfect boundary
	inner := 3
	c.RecordTD(root, 0, 1, &inner)
	c.RecordTD(root, 1, 0, nil)

	offsets := c.SplitOffsets(root)
	assert.Equal(t, []int{3}, offsets[graph.PatternID(0)])
	assert.Nil(t, offsets[graph.PatternID(1)])
}
