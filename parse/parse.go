// Package parse implements a small pattern-literal DSL using participle:
// flat atom sequences ("a b c") and parenthesised nested decompositions
// ("(a b) c"), for building test fixtures and feeding cmd/hyperstring
// without requiring callers to construct graph.Store calls by hand.
package parse

import "github.com/alecthomas/participle"

type token struct {
	Atom  *string `  @(Ident|Int)`
	Group *group  `| "(" @@ ")"`
}

type group struct {
	Tokens []*token `@@+`
}

var grammar = participle.MustBuild(&group{}, participle.UseLookahead(1))

// Node is the parsed literal AST: either a bare atom leaf (Children == nil)
// or a parenthesised group of child nodes.
type Node struct {
	Atom     string
	Children []Node
}

// IsLeaf reports whether n is a bare atom rather than a parenthesised
// group.
func (n Node) IsLeaf() bool { return n.Children == nil }

// Parse parses a pattern literal into its top-level sequence of nodes.
func Parse(literal string) ([]Node, error) {
	var g group
	if err := grammar.ParseString(literal, &g); err != nil {
		return nil, err
	}
	return convertGroup(&g).Children, nil
}

func convertGroup(g *group) Node {
	children := make([]Node, len(g.Tokens))
	for i, t := range g.Tokens {
		children[i] = convertToken(t)
	}
	return Node{Children: children}
}

func convertToken(t *token) Node {
	if t.Atom != nil {
		return Node{Atom: *t.Atom}
	}
	return convertGroup(t.Group)
}

// Flatten parses literal and returns its full leaf-atom sequence, in
// left-to-right order, discarding any grouping structure. This is the form
// search.Search needs: its query is always a flat already-interned atom
// sequence, never a nested pattern.
func Flatten(literal string) ([]string, error) {
	nodes, err := Parse(literal)
	if err != nil {
		return nil, err
	}
	var out []string
	flattenInto(nodes, &out)
	return out, nil
}

func flattenInto(nodes []Node, out *[]string) {
	for _, n := range nodes {
		if n.IsLeaf() {
			*out = append(*out, n.Atom)
			continue
		}
		flattenInto(n.Children, out)
	}
}
