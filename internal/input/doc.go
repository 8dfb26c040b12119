// Package input supplies key events to the editor.
//
// Keys come from a KeySource. The live source is the terminal (or a fixed
// script in headless mode); the other is the macro player. Select picks the
// player while it has keys left, so replayed keys enter the editor through
// the same path as typed ones.
//
// Subpackages:
//
//   - key: key events, notation and sequences
//   - keymap: per-mode bindings and the multi-key resolver
//   - mode: the editing modes
//   - vim: operators, targets, counts and pending command state
//   - macro: recording and playback
package input
