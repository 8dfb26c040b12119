package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/modal/internal/clock"
)

func newTestHistory() (*History, *clock.Manual) {
	c := clock.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return New(c, DefaultGroupTimeout, 0), c
}

func TestChangeInverse(t *testing.T) {
	tests := []struct {
		name   string
		change Change
		want   Change
	}{
		{"insert", NewInsert(3, "abc"), Change{Type: Delete, Pos: 3, Old: "abc"}},
		{"delete", NewDelete(1, "xy"), Change{Type: Insert, Pos: 1, New: "xy"}},
		{"replace", NewReplace(0, "old", "new"), Change{Type: Replace, Pos: 0, Old: "new", New: "old"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.change.Inverse())
			assert.Equal(t, tt.change, tt.change.Inverse().Inverse())
		})
	}
}

func TestChangeTypeInverse(t *testing.T) {
	assert.Equal(t, Delete, Insert.Inverse())
	assert.Equal(t, Insert, Delete.Inverse())
	assert.Equal(t, Replace, Replace.Inverse())
}

func TestGroupInverseReversesOrder(t *testing.T) {
	g := &ChangeGroup{Changes: []Change{NewInsert(0, "a"), NewInsert(1, "b")}}
	inv := g.Inverse()
	require.Len(t, inv.Changes, 2)
	assert.Equal(t, NewDelete(1, "b"), inv.Changes[0])
	assert.Equal(t, NewDelete(0, "a"), inv.Changes[1])
	assert.Equal(t, 0, g.Start())
}

func TestRecordGroupsWithinTimeout(t *testing.T) {
	h, c := newTestHistory()

	h.Record(NewInsert(0, "a"))
	c.Advance(200 * time.Millisecond)
	h.Record(NewInsert(1, "b"))
	c.Advance(499 * time.Millisecond)
	h.Record(NewInsert(2, "c"))

	assert.Equal(t, 0, h.UndoCount())
	assert.Equal(t, 3, h.Pending())

	g, err := h.Undo()
	require.NoError(t, err)
	assert.Len(t, g.Changes, 3)
}

func TestRecordSplitsAfterTimeout(t *testing.T) {
	h, c := newTestHistory()

	h.Record(NewInsert(0, "a"))
	c.Advance(501 * time.Millisecond)
	h.Record(NewInsert(1, "b"))

	assert.Equal(t, 1, h.UndoCount())

	g, err := h.Undo()
	require.NoError(t, err)
	assert.Equal(t, []Change{NewInsert(1, "b")}, g.Changes)

	g, err = h.Undo()
	require.NoError(t, err)
	assert.Equal(t, []Change{NewInsert(0, "a")}, g.Changes)

	_, err = h.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestCommitClosesGroup(t *testing.T) {
	h, _ := newTestHistory()
	h.Record(NewInsert(0, "a"))
	h.Commit()
	h.Record(NewInsert(1, "b"))
	h.Commit()
	assert.Equal(t, 2, h.UndoCount())

	// Committing with nothing open is harmless.
	h.Commit()
	assert.Equal(t, 2, h.UndoCount())
}

func TestRecordClearsRedo(t *testing.T) {
	h, _ := newTestHistory()
	h.Record(NewInsert(0, "a"))
	_, err := h.Undo()
	require.NoError(t, err)
	assert.True(t, h.CanRedo())

	h.Record(NewInsert(0, "z"))
	assert.False(t, h.CanRedo())

	_, err = h.Redo()
	assert.ErrorIs(t, err, ErrNothingToRedo)
}

func TestUndoRedoMovesGroups(t *testing.T) {
	h, _ := newTestHistory()
	h.Record(NewInsert(0, "a"))
	h.Commit()

	g, err := h.Undo()
	require.NoError(t, err)
	assert.Equal(t, 0, h.UndoCount())
	assert.Equal(t, 1, h.RedoCount())

	r, err := h.Redo()
	require.NoError(t, err)
	assert.Equal(t, g.ID, r.ID)
	assert.Equal(t, 1, h.UndoCount())
	assert.Equal(t, 0, h.RedoCount())
}

func TestMaxGroups(t *testing.T) {
	c := clock.NewManual(time.Now())
	h := New(c, time.Second, 2)
	for i := 0; i < 5; i++ {
		h.Record(NewInsert(i, "x"))
		h.Commit()
	}
	assert.Equal(t, 2, h.UndoCount())
	g, err := h.Undo()
	require.NoError(t, err)
	assert.Equal(t, 4, g.Changes[0].Pos)
}

func TestClear(t *testing.T) {
	h, _ := newTestHistory()
	h.Record(NewInsert(0, "a"))
	h.Clear()
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}
