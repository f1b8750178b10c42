package network

// MaxHistory caps both the past and future stacks. The oldest snapshots are
// dropped first, so memory stays bounded regardless of session length.
const MaxHistory = 50

// saveToHistory pushes the current undoable state onto the past stack and
// clears the future stack. Every tracked mutation calls this before
// modifying anything.
func (s *Store) saveToHistory() {
	s.past = pushSnapshot(s.past, s.Snapshot())
	s.future = nil
}

// Undo restores the most recent past snapshot, moving the pre-undo state to
// the future stack. Returns false (no-op) if the past stack is empty.
func (s *Store) Undo() bool {
	if len(s.past) == 0 {
		return false
	}
	current := s.Snapshot()
	s.apply(s.past[0])
	s.past = s.past[1:]
	s.future = pushSnapshot(s.future, current)
	return true
}

// Redo is the mirror of Undo over the future stack. Returns false (no-op)
// if the future stack is empty.
func (s *Store) Redo() bool {
	if len(s.future) == 0 {
		return false
	}
	current := s.Snapshot()
	s.apply(s.future[0])
	s.future = s.future[1:]
	s.past = pushSnapshot(s.past, current)
	return true
}

// UndoDepth returns the number of snapshots on the past stack.
func (s *Store) UndoDepth() int { return len(s.past) }

// RedoDepth returns the number of snapshots on the future stack.
func (s *Store) RedoDepth() int { return len(s.future) }

// apply replaces the undoable state with the snapshot. Selection, lock,
// project name and the id counter are left untouched: they are outside the
// history contract.
func (s *Store) apply(snap Snapshot) {
	snap = snap.Clone()
	s.nodes = snap.Nodes
	s.edges = snap.Edges
	s.params = snap.Params
	s.requests = snap.Requests
}

// pushSnapshot prepends snap and truncates the stack to MaxHistory entries.
func pushSnapshot(stack []Snapshot, snap Snapshot) []Snapshot {
	out := make([]Snapshot, 0, min(len(stack)+1, MaxHistory))
	out = append(out, snap)
	for _, old := range stack {
		if len(out) == MaxHistory {
			break
		}
		out = append(out, old)
	}
	return out
}
