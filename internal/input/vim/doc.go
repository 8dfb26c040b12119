// Package vim holds the grammar of normal mode commands: operators, the
// targets they act on, counts, and the pending state of a partly typed
// command.
//
// The grammar is:
//
//	[count]["x][count]operator[count](motion | text-object)
//	[count]["x]operator operator         (line-wise: dd, yy, cc)
//	[count]motion
//	[count]["x]command
//
// Examples:
//   - "5j": count=5, motion=j (move down 5 lines)
//   - "d3w": operator=d, count=3, motion=w (delete 3 words)
//   - "2d3w": counts multiply (delete 6 words)
//   - "diw": operator=d, text-object=iw (delete inner word)
//   - `"ayw`: register=a, operator=y, motion=w (yank word to register a)
//   - "5dd": count=5, operator=d, line-wise (delete 5 lines)
//
// Key bindings decide which keys produce which operator or motion; this
// package only models the values and the state between keys.
package vim
