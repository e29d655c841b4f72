package memdoc

import "time"

// history keeps whole-document snapshots. Consecutive typing within delay
// collapses into one undo step.
type history struct {
	depth int
	delay time.Duration
	undo  []state
	redo  []state

	typingAt time.Time
	grouping bool
}

func (h history) clone() history {
	h.undo = append([]state(nil), h.undo...)
	h.redo = append([]state(nil), h.redo...)
	return h
}

func (h *history) record(prev state, typing bool, at time.Time) {
	h.redo = nil
	if typing && h.grouping && at.Sub(h.typingAt) < h.delay {
		h.typingAt = at
		return
	}
	h.undo = append(h.undo, prev)
	if len(h.undo) > h.depth {
		h.undo = h.undo[len(h.undo)-h.depth:]
	}
	h.grouping = typing
	h.typingAt = at
}

func (h *history) stepBack(cur state) (state, bool) {
	if len(h.undo) == 0 {
		return state{}, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cur)
	h.grouping = false
	return prev, true
}

func (h *history) stepForward(cur state) (state, bool) {
	if len(h.redo) == 0 {
		return state{}, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cur)
	h.grouping = false
	return next, true
}

func (h *history) reset() {
	h.undo, h.redo = nil, nil
	h.grouping = false
}

// CanUndo reports whether an undo step exists.
func (d *Doc) CanUndo() bool { return len(d.hist.undo) > 0 }

// CanRedo reports whether a redo step exists.
func (d *Doc) CanRedo() bool { return len(d.hist.redo) > 0 }
