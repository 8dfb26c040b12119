package register

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/mo"
)

// ErrReadOnlyRegister is returned when a user write targets one of the
// registers the editor maintains itself.
var ErrReadOnlyRegister = errors.New("register is read-only")

// listOrder is the order registers are reported in by Names.
const listOrder = "\"0123456789abcdefghijklmnopqrstuvwxyz-+*/:."

// Store holds register contents. It is not safe for concurrent use; the
// editor owns it on its single goroutine.
type Store struct {
	regs      map[rune]Content
	clipboard ClipboardProvider
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{regs: make(map[rune]Content)}
}

// SetClipboard routes + and * through p. A nil provider keeps them in
// memory.
func (s *Store) SetClipboard(p ClipboardProvider) {
	s.clipboard = p
}

// Set writes c to r and also to the unnamed register. Uppercase letters
// append. Writes to the black hole are discarded.
func (s *Store) Set(r Register, c Content) error {
	if r.Kind.ReadOnly() {
		return fmt.Errorf("register %s: %w", r, ErrReadOnlyRegister)
	}
	if r.Kind == BlackHole {
		return nil
	}
	stored, err := s.write(r, c)
	if r.Kind != Unnamed {
		s.regs['"'] = stored
	}
	return err
}

// Remember records c in one of the read-only registers (/ : .). Those
// registers live in memory only, so the write cannot fail. Other kinds
// are ignored.
func (s *Store) Remember(r Register, c Content) {
	if !r.Kind.ReadOnly() {
		return
	}
	s.regs[r.storageKey()] = c
}

// Put writes c to r without touching the unnamed register. Macro
// recording uses it so a recorded macro does not replace the last yank.
func (s *Store) Put(r Register, c Content) error {
	if r.Kind == BlackHole {
		return nil
	}
	_, err := s.write(r, c)
	return err
}

func (s *Store) write(r Register, c Content) (Content, error) {
	if r.Append {
		if old, ok := s.regs[r.storageKey()]; ok {
			c = appendContent(old, c)
		}
	}
	if (r.Kind == Clipboard || r.Kind == Selection) && s.clipboard != nil {
		if err := s.clipboard.Set(c.String()); err != nil {
			return c, fmt.Errorf("write clipboard: %w", err)
		}
	}
	s.regs[r.storageKey()] = c
	return c, nil
}

// Get returns the content of r. Registers never written return None.
func (s *Store) Get(r Register) mo.Option[Content] {
	if r.Kind == BlackHole {
		return mo.None[Content]()
	}
	if (r.Kind == Clipboard || r.Kind == Selection) && s.clipboard != nil {
		text, err := s.clipboard.Get()
		if err == nil && text != "" {
			if strings.HasSuffix(text, "\n") {
				return mo.Some(Lines(text))
			}
			return mo.Some(Chars(text))
		}
	}
	c, ok := s.regs[r.storageKey()]
	if !ok {
		return mo.None[Content]()
	}
	return mo.Some(c)
}

// SetChar writes to the register named ch. Unknown names write the
// unnamed register.
func (s *Store) SetChar(ch rune, c Content) error {
	return s.Set(FromChar(ch).OrElse(UnnamedRegister), c)
}

// GetChar reads the register named ch.
func (s *Store) GetChar(ch rune) mo.Option[Content] {
	r, ok := FromChar(ch).Get()
	if !ok {
		return mo.None[Content]()
	}
	return s.Get(r)
}

// RecordYank stores yanked text. Without an explicit register the text
// goes to 0 and the unnamed register.
func (s *Store) RecordYank(sel mo.Option[Register], c Content) error {
	if r, ok := sel.Get(); ok && r.Kind != Unnamed {
		return s.Set(r, c)
	}
	s.regs['0'] = c
	s.regs['"'] = c
	return nil
}

// RecordDelete stores deleted text. Line-wise or multi-line deletes shift
// the numbered registers 1-9; smaller ones go to the small delete register
// when no register was selected.
func (s *Store) RecordDelete(sel mo.Option[Register], c Content) error {
	r, explicit := sel.Get()
	if explicit && r.Kind == BlackHole {
		return nil
	}
	if c.Style != CharacterWise || len(c.Lines) > 1 {
		s.shiftNumbered(c)
	} else if !explicit || r.Kind == Unnamed {
		s.regs['-'] = c
	}
	if explicit && r.Kind != Unnamed {
		return s.Set(r, c)
	}
	s.regs['"'] = c
	return nil
}

func (s *Store) shiftNumbered(c Content) {
	for n := '9'; n > '1'; n-- {
		if prev, ok := s.regs[n-1]; ok {
			s.regs[n] = prev
		}
	}
	s.regs['1'] = c
}

// Names lists the registers holding content in display order.
func (s *Store) Names() []rune {
	var names []rune
	for _, ch := range listOrder {
		if _, ok := s.regs[ch]; ok {
			names = append(names, ch)
		}
	}
	return names
}

// Clear empties every register.
func (s *Store) Clear() {
	s.regs = make(map[rune]Content)
}
