package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueuePopsSmallestWidthFirst(t *testing.T) {
	q := NewQueue()
	q.Push(Node{Root: 1, RootWidth: 5})
	q.Push(Node{Root: 2, RootWidth: 1})
	q.Push(Node{Root: 3, RootWidth: 3})

	var order []int
	for {
		n, ok := q.Pop()
		if !ok {
			break
		}
		order = append(order, int(n.Root))
	}
	assert.Equal(t, []int{2, 3, 1}, order)
}

func TestQueueTiesBrokenByInsertionOrder(t *testing.T) {
	q := NewQueue()
	q.Push(Node{Root: 10, RootWidth: 2})
	q.Push(Node{Root: 20, RootWidth: 2})
	q.Push(Node{Root: 30, RootWidth: 2})

	var order []int
	for {
		n, ok := q.Pop()
		if !ok {
			break
		}
		order = append(order, int(n.Root))
	}
	assert.Equal(t, []int{10, 20, 30}, order, "equal-width nodes must drain in FIFO order")
}

func TestClearCandidateParentsKeepsRootCursors(t *testing.T) {
	q := NewQueue()
	q.Push(Node{Kind: RootCursor, Root: 1, RootWidth: 1})
	q.Push(Node{Kind: CandidateParent, Root: 2, RootWidth: 2})
	q.Push(Node{Kind: CandidateParent, Root: 3, RootWidth: 3})

	q.ClearCandidateParents()
	assert.Equal(t, 1, q.Len())
	n, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, RootCursor, n.Kind)
}
