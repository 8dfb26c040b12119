package key

import (
	"fmt"
	"unicode"
)

// Event is a single key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// NewRuneEvent creates a character event. Shift is dropped because it is
// already expressed by the character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods.Without(ModShift)}
}

// NewSpecialEvent creates an event for a non-character key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// Rune is shorthand for an unmodified character event.
func Rune(r rune) Event { return NewRuneEvent(r, ModNone) }

// Ctrl is shorthand for a Ctrl+character event.
func Ctrl(r rune) Event { return NewRuneEvent(unicode.ToLower(r), ModCtrl) }

// Special is shorthand for an unmodified special key event.
func Special(k Key) Event { return NewSpecialEvent(k, ModNone) }

// IsRune reports whether e is a character event.
func (e Event) IsRune() bool { return e.Key == KeyRune && e.Rune != 0 }

// IsModified reports whether Ctrl, Alt or Meta is held.
func (e Event) IsModified() bool {
	return e.Modifiers.Has(ModCtrl) || e.Modifiers.Has(ModAlt) || e.Modifiers.Has(ModMeta) ||
		(!e.IsRune() && e.Modifiers.Has(ModShift))
}

// IsPrintable reports whether e types a printable character.
func (e Event) IsPrintable() bool {
	return e.IsRune() && !e.IsModified() && unicode.IsPrint(e.Rune)
}

// IsDigit reports whether e is an unmodified decimal digit.
func (e Event) IsDigit() bool {
	return e.IsRune() && !e.IsModified() && e.Rune >= '0' && e.Rune <= '9'
}

// Is reports whether e is the unmodified character r.
func (e Event) Is(r rune) bool {
	return e.IsRune() && !e.IsModified() && e.Rune == r
}

// IsKey reports whether e is the unmodified special key k.
func (e Event) IsKey(k Key) bool {
	return e.Key == k && e.Modifiers == ModNone
}

// IsEscape reports whether e is an unmodified Escape.
func (e Event) IsEscape() bool { return e.IsKey(KeyEscape) }

// Equals reports whether two events are the same key press.
func (e Event) Equals(o Event) bool { return e == o }

// String returns the event in key notation.
func (e Event) String() string {
	if e.IsRune() && e.Modifiers == ModNone {
		switch e.Rune {
		case '<':
			return "<lt>"
		case '\\':
			return `\`
		}
		return string(e.Rune)
	}
	name := e.Key.String()
	if e.IsRune() {
		name = string(e.Rune)
		switch e.Rune {
		case ' ':
			name = "Space"
		case '<':
			name = "lt"
		case '>':
			name = "gt"
		}
	}
	return "<" + e.Modifiers.prefix() + name + ">"
}

// GoString implements fmt.GoStringer for test output.
func (e Event) GoString() string {
	return fmt.Sprintf("key.Event{%s}", e.String())
}
