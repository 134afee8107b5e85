package graph

import "sync"

// VertexIndex is the dense, stable identifier of a vertex (atomic or
// composite) within a Store. Indices are never reused and never renumbered.
type VertexIndex int

// Interner maps external atom representations onto the vertex index space
// of the Store that owns it, init-once and append-only: an atom's index is
// its vertex index, and slots belonging to composite vertices hold no value.
// A Store owns exactly one Interner; instances are not shared across Stores
// (see DESIGN.md, decision 1).
type Interner struct {
	mu      sync.RWMutex
	byValue map[any]VertexIndex
	values  []any
}

// NewInterner returns an empty interner.
func NewInterner() *Interner {
	return &Interner{byValue: make(map[any]VertexIndex)}
}

// Intern returns the dense index for v, registering it if this is the first
// time v has been seen. Idempotent: repeated atoms return the same index.
func (in *Interner) Intern(v any) VertexIndex {
	in.mu.RLock()
	if idx, ok := in.byValue[v]; ok {
		in.mu.RUnlock()
		return idx
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if idx, ok := in.byValue[v]; ok {
		return idx
	}
	idx := VertexIndex(len(in.values))
	in.values = append(in.values, v)
	in.byValue[v] = idx
	return idx
}

// Value returns the external representation interned at idx.
func (in *Interner) Value(idx VertexIndex) any {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.values[idx]
}

// Len reports how many distinct atoms have been interned.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.byValue)
}
