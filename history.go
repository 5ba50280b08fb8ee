package wick

import "slices"

// History is the undo/redo stack over serialized project records plus named
// snapshots used for scoped save and restore. The bottom of the undo stack is
// the state the project was created or loaded with and is never popped.
type History struct {
	project   *Project
	undo      [][]byte
	redo      [][]byte
	snapshots map[string][]byte

	// Limit caps the undo stack depth, counting the bottom state. Zero means
	// unlimited; values below 2 behave as 2 so the latest edit can be undone.
	Limit int
}

func newHistory(p *Project) *History {
	return &History{project: p, snapshots: make(map[string][]byte)}
}

// PushState records the current project state and discards the redo stack.
func (h *History) PushState() error {
	data, err := h.project.Serialize()
	if err != nil {
		return err
	}
	h.undo = append(h.undo, data)
	h.redo = h.redo[:0]
	if h.Limit > 0 {
		limit := max(h.Limit, 2)
		if len(h.undo) > limit {
			// Keep the bottom state; drop the oldest edit above it.
			h.undo = slices.Delete(h.undo, 1, len(h.undo)-limit+1)
		}
	}
	return nil
}

// PopState moves the top undo state to the redo stack and applies the state
// below it. Returns false, leaving the project unchanged, when only the
// initial state remains or the state cannot be applied.
func (h *History) PopState() bool {
	if len(h.undo) <= 1 {
		return false
	}
	top := h.undo[len(h.undo)-1]
	if err := h.project.Load(h.undo[len(h.undo)-2]); err != nil {
		logger.Error("undo failed", "err", err)
		return false
	}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, top)
	return true
}

// RecoverState re-applies the most recently undone state. Returns false when
// the redo stack is empty or the state cannot be applied.
func (h *History) RecoverState() bool {
	if len(h.redo) == 0 {
		return false
	}
	top := h.redo[len(h.redo)-1]
	if err := h.project.Load(top); err != nil {
		logger.Error("redo failed", "err", err)
		return false
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, top)
	return true
}

// SaveSnapshot stores the current project state under label, independent of
// the undo and redo stacks.
func (h *History) SaveSnapshot(label string) error {
	data, err := h.project.Serialize()
	if err != nil {
		return err
	}
	h.snapshots[label] = data
	return nil
}

// LoadSnapshot applies the state saved under label. Returns false when no
// such snapshot exists or it cannot be applied.
func (h *History) LoadSnapshot(label string) bool {
	data, ok := h.snapshots[label]
	if !ok {
		return false
	}
	if err := h.project.Load(data); err != nil {
		logger.Error("load snapshot failed", "label", label, "err", err)
		return false
	}
	return true
}

// Snapshot returns the raw record saved under label.
func (h *History) Snapshot(label string) ([]byte, bool) {
	data, ok := h.snapshots[label]
	return data, ok
}

// CanUndo reports whether PopState would succeed.
func (h *History) CanUndo() bool { return len(h.undo) > 1 }

// CanRedo reports whether RecoverState would succeed.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Reset drops every state and snapshot and records the current state as the
// new bottom of the undo stack.
func (h *History) Reset() error {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
	clear(h.snapshots)
	return h.PushState()
}
