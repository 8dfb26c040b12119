// Package key defines key events and the Vim-style notation used to
// write them.
//
//   - Key identifies a special key, or KeyRune for characters
//   - Modifier is the Ctrl/Alt/Shift/Meta set
//   - Event is one key press
//   - Sequence is an ordered run of events, as typed for a mapping or
//     stored in a macro register
//
// # Notation
//
// Characters stand for themselves, including space. Special keys and
// modified keys use angle brackets:
//
//	<Esc> <CR> <BS> <Tab> <Del> <Up> <Space> <lt> <C-r> <C-\> <A-x> <S-Tab>
//
// Parse reads one key, ParseSequence a whole run such as "d2w" or
// "<C-\><C-n>". Event.String and Sequence.String produce the same
// notation, so a formatted sequence always parses back to itself.
//
// Shift is folded into the character for rune events: "A" is the rune
// 'A' with no modifiers.
package key
