package search

import "container/heap"

// Queue is the min-heap of search nodes of spec.md §4.2.1, ordered by root
// width with FIFO tie-breaking (DESIGN.md decision 2). It wraps
// container/heap, no priority-queue library appears anywhere in the
// example pack to prefer over the standard one (see DESIGN.md).
type Queue struct {
	items  nodeHeap
	nextID uint64
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	q := &Queue{}
	heap.Init(&q.items)
	return q
}

// Push enqueues n, stamping it with the next insertion sequence number.
func (q *Queue) Push(n Node) {
	n.seq = q.nextID
	q.nextID++
	heap.Push(&q.items, n)
}

// Pop removes and returns the smallest-width (FIFO-tied) node. ok is false
// if the queue is empty.
func (q *Queue) Pop() (Node, bool) {
	if q.items.Len() == 0 {
		return Node{}, false
	}
	return heap.Pop(&q.items).(Node), true
}

// Len reports the number of queued nodes.
func (q *Queue) Len() int { return q.items.Len() }

// ClearCandidateParents drops every queued node of Kind CandidateParent,
// implementing spec.md §4.2.4's "the queue is cleared of candidate parents"
// step. Search calls it each time a root is exhausted and has parents, just
// before pushing them. Root cursors already in progress (Kind RootCursor)
// are kept.
func (q *Queue) ClearCandidateParents() {
	kept := q.items[:0]
	for _, n := range q.items {
		if n.Kind != CandidateParent {
			kept = append(kept, n)
		}
	}
	q.items = kept
	heap.Init(&q.items)
}

// nodeHeap is the container/heap backing slice.
type nodeHeap []Node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].RootWidth != h[j].RootWidth {
		return h[i].RootWidth < h[j].RootWidth
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) {
	*h = append(*h, x.(Node))
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
