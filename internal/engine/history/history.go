package history

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/modal/internal/clock"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultGroupTimeout is the idle time after which an open group closes.
const DefaultGroupTimeout = 500 * time.Millisecond

// DefaultMaxGroups bounds the undo stack.
const DefaultMaxGroups = 1000

// History holds the undo and redo stacks plus the group being built.
type History struct {
	clock   clock.Clock
	timeout time.Duration
	max     int

	undo    []*ChangeGroup
	redo    []*ChangeGroup
	current *ChangeGroup
}

// New creates a history. A nil clock uses the system clock; non-positive
// timeout and max fall back to the defaults.
func New(c clock.Clock, timeout time.Duration, max int) *History {
	if c == nil {
		c = clock.System{}
	}
	if timeout <= 0 {
		timeout = DefaultGroupTimeout
	}
	if max <= 0 {
		max = DefaultMaxGroups
	}
	return &History{clock: c, timeout: timeout, max: max}
}

// SetTimeout changes the grouping window.
func (h *History) SetTimeout(d time.Duration) {
	if d > 0 {
		h.timeout = d
	}
}

// Record adds a change to the open group, first closing the group if it
// has been idle longer than the timeout. Any redo history is discarded.
func (h *History) Record(c Change) {
	now := h.clock.Now()
	if h.current != nil && now.Sub(h.current.Updated) > h.timeout {
		h.Commit()
	}
	if h.current == nil {
		h.current = &ChangeGroup{ID: uuid.New(), Started: now}
	}
	h.current.Changes = append(h.current.Changes, c)
	h.current.Updated = now
	h.redo = nil
}

// Commit closes the open group, if any, and pushes it onto the undo stack.
func (h *History) Commit() {
	if h.current == nil {
		return
	}
	if len(h.current.Changes) > 0 {
		h.undo = append(h.undo, h.current)
		if len(h.undo) > h.max {
			h.undo = h.undo[len(h.undo)-h.max:]
		}
	}
	h.current = nil
}

// Undo commits the open group and pops the newest group. The caller
// applies the returned group's Inverse.
func (h *History) Undo() (*ChangeGroup, error) {
	h.Commit()
	if len(h.undo) == 0 {
		return nil, ErrNothingToUndo
	}
	g := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, g)
	return g, nil
}

// Redo pops the most recently undone group. The caller applies it forward.
func (h *History) Redo() (*ChangeGroup, error) {
	if len(h.redo) == 0 {
		return nil, ErrNothingToRedo
	}
	g := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, g)
	return g, nil
}

// CanUndo reports whether there is anything to undo, including the open group.
func (h *History) CanUndo() bool {
	return len(h.undo) > 0 || (h.current != nil && len(h.current.Changes) > 0)
}

// CanRedo reports whether there is anything to redo.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoCount returns the number of committed groups.
func (h *History) UndoCount() int { return len(h.undo) }

// RedoCount returns the number of undone groups available for redo.
func (h *History) RedoCount() int { return len(h.redo) }

// Pending returns the number of changes in the open group.
func (h *History) Pending() int {
	if h.current == nil {
		return 0
	}
	return len(h.current.Changes)
}

// Clear drops all history.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
	h.current = nil
}
