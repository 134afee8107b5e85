package path

import "github.com/cem-okulmus/hyperstring/graph"

// Role tags whether a cursor locates the Start or the End of a rooted range.
// This is the "phantom role" of spec.md §3, represented here as an ordinary
// enum tag rather than a compile-time phantom type (§9: "an implementation
// without phantom types should represent the state as an enum tag on the
// cursor value and assert the tag at every transition").
type Role int

const (
	Start Role = iota
	End
)

func (r Role) String() string {
	if r == Start {
		return "Start"
	}
	return "End"
}

// State tags a cursor's exploration status.
type State int

const (
	Candidate State = iota
	Matched
	Mismatched
)

func (s State) String() string {
	switch s {
	case Candidate:
		return "Candidate"
	case Matched:
		return "Matched"
	case Mismatched:
		return "Mismatched"
	default:
		return "?"
	}
}

// Cursor is a rooted path plus an atom position, tagged by Role and State.
// Cursors are immutable values: every transition below returns a new Cursor
// rather than mutating the receiver.
type Cursor struct {
	Path         Path
	AtomPosition int
	Role         Role
	State        State
}

// NewCandidate builds a Candidate cursor at the given root and atom offset,
// descending to locate it.
func NewCandidate(s *graph.Store, root graph.VertexIndex, atomPosition int, role Role) Cursor {
	return Cursor{
		Path:         Path{Root: root, Hops: Descend(s, root, atomPosition)},
		AtomPosition: atomPosition,
		Role:         role,
		State:        Candidate,
	}
}

func (c Cursor) assertState(want State) {
	if c.State != want {
		panic("hyperstring/path: cursor in state " + c.State.String() + ", expected " + want.String())
	}
}

// MarkMatch transitions a Candidate cursor to Matched at the given advanced
// atom position, recomputing its path.
func (c Cursor) MarkMatch(s *graph.Store, newAtomPosition int) Cursor {
	c.assertState(Candidate)
	return Cursor{
		Path:         Path{Root: c.Path.Root, Hops: Descend(s, c.Path.Root, newAtomPosition)},
		AtomPosition: newAtomPosition,
		Role:         c.Role,
		State:        Matched,
	}
}

// MarkMismatch transitions a Candidate cursor to Mismatched. The position is
// preserved exactly, a mismatch never discards the checkpointed progress
// that produced this cursor (spec.md §4.2.2: "checkpoints preserved").
func (c Cursor) MarkMismatch() Cursor {
	c.assertState(Candidate)
	c.State = Mismatched
	return c
}

// AsCandidate transitions a Matched cursor back into exploration mode,
// beginning an advance attempt from the same position.
func (c Cursor) AsCandidate() Cursor {
	c.assertState(Matched)
	c.State = Candidate
	return c
}

// Vertex resolves the vertex this cursor's path currently names (the leaf
// atom or, mid-descent, a composite).
func (c Cursor) Vertex(s *graph.Store) graph.VertexIndex {
	return c.Path.Vertex(s)
}
