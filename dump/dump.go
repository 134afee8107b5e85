// Package dump serialises a graph.Store to JSON for visualisation and
// debugging tooling external to the core (spec.md §6: collaborators define
// their own wire format; this is that collaborator-facing surface, not part
// of the core itself).
package dump

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/cem-okulmus/hyperstring/graph"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Pattern is one decomposition of a vertex: the indices of its children, in
// order.
type Pattern struct {
	Children []int `json:"children"`
}

// Vertex is one dumped vertex: its width, whether it's a leaf atom (and if
// so, its interned value), and its decompositions if it's a composite.
type Vertex struct {
	Index    int       `json:"index"`
	Width    int       `json:"width"`
	Atom     any       `json:"atom,omitempty"`
	Patterns []Pattern `json:"patterns,omitempty"`
}

// Graph is the full dumped snapshot: every vertex, ordered by index.
type Graph struct {
	Vertices []Vertex `json:"vertices"`
}

// Snapshot builds a JSON-ready Graph from s.
func Snapshot(s *graph.Store) Graph {
	vertices := s.AllVertices()
	out := Graph{Vertices: make([]Vertex, len(vertices))}
	for i, v := range vertices {
		dv := Vertex{Index: int(v.Index), Width: v.Width}
		if v.IsAtom() {
			dv.Atom = s.Interner().Value(v.Index)
		} else {
			dv.Patterns = make([]Pattern, len(v.Patterns))
			for pid, p := range v.Patterns {
				children := make([]int, len(p.Children))
				for j, c := range p.Children {
					children[j] = int(c)
				}
				dv.Patterns[pid] = Pattern{Children: children}
			}
		}
		out.Vertices[i] = dv
	}
	return out
}

// Marshal dumps s to JSON.
func Marshal(s *graph.Store) ([]byte, error) {
	return json.Marshal(Snapshot(s))
}

// MarshalIndent dumps s to pretty-printed JSON, for human inspection.
func MarshalIndent(s *graph.Store) ([]byte, error) {
	return json.MarshalIndent(Snapshot(s), "", "  ")
}
