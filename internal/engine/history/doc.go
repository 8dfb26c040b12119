// Package history records buffer edits as invertible changes and groups
// them into undo units.
//
// # Changes
//
// A Change is one of three kinds, each with a computable inverse:
//
//	Insert  -> Delete
//	Delete  -> Insert
//	Replace -> Replace (old and new text swapped)
//
// Every change is expressed as "replace Old with New starting at Pos",
// so applying a change and applying its inverse always round-trips.
//
// # Groups
//
// Consecutive changes recorded within the grouping timeout merge into one
// ChangeGroup. A pause longer than the timeout, or an explicit Commit,
// closes the group. Undo returns the most recent group so the caller can
// apply its Inverse; Redo returns the group to apply forward again.
//
//	h := history.New(clock.System{}, 500*time.Millisecond, 1000)
//	h.Record(history.NewInsert(0, "hello"))
//	g, err := h.Undo()
//
// Recording a new change clears the redo stack.
package history
