// Package register implements the register store used by yank, delete,
// paste and macro commands.
//
// Registers are addressed by a single character:
//
//	"        unnamed, updated by every yank, delete and change
//	a-z      named; A-Z appends to the lowercase register
//	0        last yank
//	1-9      delete history, shifted on every line-wise or multi-line delete
//	-        small delete (within one line)
//	_        black hole, discards writes
//	+ *      system clipboard when a ClipboardProvider is configured
//	/ : .    last search, last ex command, last inserted text (read-only)
//
// Each Content remembers the style it was written with, which decides how
// it is pasted back.
package register
