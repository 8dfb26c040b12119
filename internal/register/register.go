package register

import (
	"unicode"

	"github.com/samber/mo"
)

// Kind categorizes registers by behavior.
type Kind uint8

const (
	// Unnamed is the default register (").
	Unnamed Kind = iota
	// Named is a letter register (a-z).
	Named
	// Numbered is a digit register (0-9).
	Numbered
	// SmallDelete is the small delete register (-).
	SmallDelete
	// BlackHole is the black hole register (_).
	BlackHole
	// Clipboard is the system clipboard register (+).
	Clipboard
	// Selection is the primary selection register (*).
	Selection
	// Search is the last search pattern register (/).
	Search
	// Command is the last ex command register (:).
	Command
	// LastInserted is the last inserted text register (.).
	LastInserted
)

var kindNames = [...]string{
	Unnamed:      "unnamed",
	Named:        "named",
	Numbered:     "numbered",
	SmallDelete:  "small-delete",
	BlackHole:    "black-hole",
	Clipboard:    "clipboard",
	Selection:    "selection",
	Search:       "search",
	Command:      "command",
	LastInserted: "last-inserted",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ReadOnly reports whether users may not write this kind directly.
func (k Kind) ReadOnly() bool {
	return k == Search || k == Command || k == LastInserted
}

// Register identifies one register. Name is only meaningful for Named and
// Numbered registers and is always stored lowercase; Append records that
// the register was selected with an uppercase letter.
type Register struct {
	Kind   Kind
	Name   rune
	Append bool
}

// Common registers.
var (
	UnnamedRegister  = Register{Kind: Unnamed}
	BlackHoleReg     = Register{Kind: BlackHole}
	SmallDeleteReg   = Register{Kind: SmallDelete}
	SearchRegister   = Register{Kind: Search}
	CommandRegister  = Register{Kind: Command}
	InsertedRegister = Register{Kind: LastInserted}
	YankRegister     = Register{Kind: Numbered, Name: '0'}
)

// FromChar maps a register character to its Register. Unknown characters
// yield None.
func FromChar(r rune) mo.Option[Register] {
	switch {
	case r == '"':
		return mo.Some(UnnamedRegister)
	case r >= 'a' && r <= 'z':
		return mo.Some(Register{Kind: Named, Name: r})
	case r >= 'A' && r <= 'Z':
		return mo.Some(Register{Kind: Named, Name: unicode.ToLower(r), Append: true})
	case r >= '0' && r <= '9':
		return mo.Some(Register{Kind: Numbered, Name: r})
	case r == '-':
		return mo.Some(SmallDeleteReg)
	case r == '_':
		return mo.Some(BlackHoleReg)
	case r == '+':
		return mo.Some(Register{Kind: Clipboard})
	case r == '*':
		return mo.Some(Register{Kind: Selection})
	case r == '/':
		return mo.Some(SearchRegister)
	case r == ':':
		return mo.Some(CommandRegister)
	case r == '.':
		return mo.Some(InsertedRegister)
	}
	return mo.None[Register]()
}

// IsValid reports whether r names a register.
func IsValid(r rune) bool {
	return FromChar(r).IsPresent()
}

// Char is the inverse of FromChar.
func (r Register) Char() rune {
	switch r.Kind {
	case Named:
		if r.Append {
			return unicode.ToUpper(r.Name)
		}
		return r.Name
	case Numbered:
		return r.Name
	case SmallDelete:
		return '-'
	case BlackHole:
		return '_'
	case Clipboard:
		return '+'
	case Selection:
		return '*'
	case Search:
		return '/'
	case Command:
		return ':'
	case LastInserted:
		return '.'
	}
	return '"'
}

// storageKey is the slot a register's content lives in. Appending and plain
// writes to a letter share a slot.
func (r Register) storageKey() rune {
	if r.Kind == Named {
		return r.Name
	}
	return r.Char()
}

func (r Register) String() string {
	return string(r.Char())
}
