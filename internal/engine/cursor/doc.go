// Package cursor computes cursor movement and tracks selections.
//
// Positions are line/column pairs counted in characters. Move is a pure
// function of a motion, the buffer content and the current position; it
// never mutates the buffer and never fails. Motions that cannot move
// (an edge of the buffer, a character that is not found) return the
// position unchanged or clamped.
//
// Vertical motions remember the column the user wanted in
// Position.Preferred so that passing through a short line does not lose
// horizontal intent. Horizontal motions clear it.
//
// Selections use an anchor/head model: the anchor is fixed where the
// selection began and the head follows the cursor. NormalizedStart and
// NormalizedEnd order the two ends regardless of direction; block
// selections order rows and columns independently.
package cursor
