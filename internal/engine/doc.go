// Package engine groups the text model of the editor. It has no code of
// its own; the work happens in the sub-packages:
//
//   - text: the buffer, a rune slice with a line index, and its undo log
//   - history: undo/redo of grouped changes
//   - cursor: positions, motions and selections
//   - textobject: word, sentence, paragraph, quote, bracket and tag objects
//   - mark: named positions
//
// Positions are zero based lines and columns counted in code points.
package engine
