// Package text provides the character-indexed text store the modal
// editor operates on.
//
// A Store is an ordered sequence of characters (runes) with line
// addressing. Lines are separated by '\n'; the separator belongs to the
// line it ends. An empty store has one empty line.
//
//	s := text.New("hello\nworld")
//	s.Insert(5, ",")            // "hello,\nworld"
//	s.Delete(0, 1)              // "ello,\nworld"
//	line, col, _ := s.CharIdxToPosition(6)
//
// Every mutation is recorded in the store's change history so that Undo
// and Redo can revert and replay it. Mutations on a read-only store fail
// with ErrReadOnly; indices outside the text fail with ErrInvalidPosition.
package text
