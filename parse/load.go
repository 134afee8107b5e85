package parse

import "github.com/cem-okulmus/hyperstring/graph"

// Load parses literal and inserts it into s, recursively inserting every
// parenthesised nested group as its own composite first so that by the time
// a pattern is installed, all of its children already exist (§4.1's
// insert_pattern discipline). A bare single atom with no siblings and no
// grouping returns that atom's own vertex rather than allocating a
// width-1 composite around it.
func Load(s *graph.Store, literal string) (graph.VertexIndex, error) {
	nodes, err := Parse(literal)
	if err != nil {
		return 0, err
	}
	return loadNodes(s, nodes), nil
}

func loadNodes(s *graph.Store, nodes []Node) graph.VertexIndex {
	children := make([]graph.VertexIndex, len(nodes))
	for i, n := range nodes {
		children[i] = loadNode(s, n)
	}
	if len(children) == 1 {
		return children[0]
	}
	return s.InsertPattern(children)
}

func loadNode(s *graph.Store, n Node) graph.VertexIndex {
	if n.IsLeaf() {
		return s.InsertAtom(n.Atom)
	}
	return loadNodes(s, n.Children)
}
