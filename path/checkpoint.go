package path

// Checkpoint is a Matched cursor (the last confirmed position) plus an
// optional Candidate cursor advanced past it. Construction enforces
// spec.md §3's invariant directly: "optional absent ⇔ current position =
// checkpoint", there is no exported way to build a Checkpoint that
// violates it (DESIGN.md decision 3).
type Checkpoint struct {
	checkpoint Cursor
	candidate  *Cursor
}

// NewCheckpoint starts a checkpoint at a freshly confirmed Matched cursor,
// with no candidate advance in progress.
func NewCheckpoint(matched Cursor) Checkpoint {
	matched.assertState(Matched)
	return Checkpoint{checkpoint: matched}
}

// Checkpoint returns the last confirmed Matched cursor.
func (cp Checkpoint) Checkpoint() Cursor { return cp.checkpoint }

// Current returns the cursor the checkpoint currently represents: the
// candidate if one is in flight, else the checkpoint itself.
func (cp Checkpoint) Current() Cursor {
	if cp.candidate != nil {
		return *cp.candidate
	}
	return cp.checkpoint
}

// HasCandidate reports whether an advance attempt is in progress.
func (cp Checkpoint) HasCandidate() bool { return cp.candidate != nil }

// Advance records a Candidate cursor advanced past the checkpoint. Panics if
// c is not in Candidate state.
func (cp Checkpoint) Advance(c Cursor) Checkpoint {
	c.assertState(Candidate)
	return Checkpoint{checkpoint: cp.checkpoint, candidate: &c}
}

// Commit promotes the in-flight candidate to a new checkpoint (via
// Cursor.MarkMatch having already been applied by the caller) and clears the
// candidate slot, restoring candidate == nil ⇔ current == checkpoint.
func (cp Checkpoint) Commit(matched Cursor) Checkpoint {
	matched.assertState(Matched)
	return Checkpoint{checkpoint: matched}
}

// Abandon clears an in-flight candidate without moving the checkpoint,
// used when an advance attempt ends in Mismatch.
func (cp Checkpoint) Abandon() Checkpoint {
	return Checkpoint{checkpoint: cp.checkpoint}
}
