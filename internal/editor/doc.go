// Package editor is the modal state machine. It owns the cursor, the
// current mode and the pending command, and applies completed commands to
// a text.Store.
//
// Keys enter through HandleKey (typed) or Replay (from the macro player).
// Each key is first checked for Escape, then for a pending single
// character argument (f{c}, r{c}, "{r}, ...), then for a count digit, and
// finally resolved through the keymap into a command name such as
// "motion.wordNext" or "operator.delete". Commands are dispatched by
// namespace:
//
//	motion      cursor motions; targets when an operator is pending
//	operator    d c y > < = gq zf zd gU gu g~ !
//	mode        insert, visual and command line entry
//	edit        x X D C Y s S J r ~
//	paste       p P
//	history     u <C-r>
//	register    "{r}
//	macro       q{r} @{r}
//	mark        m{c} `{c} '{c}
//	search      / ? n N * #
//	visual      selection commands
//	textobject  i{o} a{o}
//	insert      insert and replace mode editing keys
//	cmdline     command line editing
//
// Motion and text object failures leave the buffer and cursor untouched.
// Buffer errors such as text.ErrReadOnly are returned from HandleKey.
package editor
