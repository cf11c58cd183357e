package main

import "reflect"

const defaultHistoryLimit = 200

// History is the host-side undo/redo stack fed by the engine's two
// channels. Intermediate boards only replace the live value; a commit
// pushes the previous checkpoint, so a whole drag is one undo step.
type History struct {
	current    Board
	checkpoint Board
	undoStack  []Board
	redoStack  []Board
	limit      int
	savedAt    Board
}

func NewHistory(b Board) *History {
	return &History{current: b, checkpoint: b, savedAt: b, limit: defaultHistoryLimit}
}

func (h *History) Current() Board { return h.current }

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

func (h *History) ApplyIntermediate(b Board) {
	h.current = b
}

// Commit records b. Commits that leave every entity collection untouched
// (viewport changes, clicks that did not move anything) update the
// checkpoint in place instead of adding an undo step.
func (h *History) Commit(b Board) {
	h.current = b
	if sameContent(h.checkpoint, b) {
		h.checkpoint = b
		return
	}
	h.undoStack = append(h.undoStack, h.checkpoint)
	if len(h.undoStack) > h.limit {
		h.undoStack = h.undoStack[len(h.undoStack)-h.limit:]
	}
	h.redoStack = h.redoStack[:0]
	h.checkpoint = b
}

// Undo restores the previous checkpoint, keeping the live viewport.
func (h *History) Undo() (Board, bool) {
	if len(h.undoStack) == 0 {
		return h.current, false
	}
	last := len(h.undoStack) - 1
	prev := h.undoStack[last]
	h.undoStack = h.undoStack[:last]
	h.redoStack = append(h.redoStack, h.checkpoint)
	prev.Viewport = h.current.Viewport
	h.checkpoint = prev
	h.current = prev
	return prev, true
}

func (h *History) Redo() (Board, bool) {
	if len(h.redoStack) == 0 {
		return h.current, false
	}
	last := len(h.redoStack) - 1
	next := h.redoStack[last]
	h.redoStack = h.redoStack[:last]
	h.undoStack = append(h.undoStack, h.checkpoint)
	next.Viewport = h.current.Viewport
	h.checkpoint = next
	h.current = next
	return next, true
}

// MarkSaved remembers the current content as persisted.
func (h *History) MarkSaved() {
	h.savedAt = h.current
}

// Dirty reports unsaved entity changes.
func (h *History) Dirty() bool {
	return !sameContent(h.savedAt, h.current)
}

func sameContent(a, b Board) bool {
	return reflect.DeepEqual(a.Flows, b.Flows) &&
		reflect.DeepEqual(a.Contexts, b.Contexts) &&
		reflect.DeepEqual(a.Domains, b.Domains) &&
		reflect.DeepEqual(a.Connections, b.Connections) &&
		reflect.DeepEqual(a.Hotspots, b.Hotspots)
}
