package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ChangeType identifies the kind of edit a Change represents.
type ChangeType uint8

const (
	// Insert adds text at a position.
	Insert ChangeType = iota
	// Delete removes text starting at a position.
	Delete
	// Replace swaps a run of text for another.
	Replace
)

// String returns the change type name.
func (t ChangeType) String() string {
	switch t {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	default:
		return fmt.Sprintf("ChangeType(%d)", t)
	}
}

// Inverse returns the change type that undoes t.
func (t ChangeType) Inverse() ChangeType {
	switch t {
	case Insert:
		return Delete
	case Delete:
		return Insert
	default:
		return Replace
	}
}

// Change is a single edit at a character offset.
// Old is the text that was at Pos before the edit and New the text after.
type Change struct {
	Type ChangeType
	Pos  int
	Old  string
	New  string
}

// NewInsert creates an insert of text at pos.
func NewInsert(pos int, text string) Change {
	return Change{Type: Insert, Pos: pos, New: text}
}

// NewDelete creates a deletion of text found at pos.
func NewDelete(pos int, text string) Change {
	return Change{Type: Delete, Pos: pos, Old: text}
}

// NewReplace creates a replacement of old by text at pos.
func NewReplace(pos int, old, text string) Change {
	return Change{Type: Replace, Pos: pos, Old: old, New: text}
}

// Inverse returns the change that reverts c.
func (c Change) Inverse() Change {
	return Change{
		Type: c.Type.Inverse(),
		Pos:  c.Pos,
		Old:  c.New,
		New:  c.Old,
	}
}

// OldLen is the number of characters the change removes.
func (c Change) OldLen() int { return runeLen(c.Old) }

// NewLen is the number of characters the change inserts.
func (c Change) NewLen() int { return runeLen(c.New) }

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// ChangeGroup is an ordered batch of changes undone and redone as a unit.
type ChangeGroup struct {
	ID      uuid.UUID
	Changes []Change
	Started time.Time
	Updated time.Time
}

// Len returns the number of changes in the group.
func (g *ChangeGroup) Len() int { return len(g.Changes) }

// Inverse returns a group that reverts g: every change inverted, in
// reverse order.
func (g *ChangeGroup) Inverse() *ChangeGroup {
	inv := &ChangeGroup{
		ID:      g.ID,
		Changes: make([]Change, len(g.Changes)),
		Started: g.Started,
		Updated: g.Updated,
	}
	for i, c := range g.Changes {
		inv.Changes[len(g.Changes)-1-i] = c.Inverse()
	}
	return inv
}

// Start returns the smallest position touched by the group, or -1 for an
// empty group.
func (g *ChangeGroup) Start() int {
	if len(g.Changes) == 0 {
		return -1
	}
	start := g.Changes[0].Pos
	for _, c := range g.Changes[1:] {
		start = min(start, c.Pos)
	}
	return start
}
