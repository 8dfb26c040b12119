package editor

import (
	"fmt"
	"strings"

	"github.com/dshills/modal/internal/engine/cursor"
	"github.com/dshills/modal/internal/engine/text"
	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/input/mode"
	"github.com/dshills/modal/internal/register"
)

// insertSession tracks one stay in Insert or Replace mode.
type insertSession struct {
	typed []rune
	// count repeats the typed text on Escape; prefix goes before each
	// repetition.
	count  int
	prefix string
	// moved is set once the cursor is moved by a motion key, which stops
	// the repetition.
	moved bool
	// replaced holds the characters Replace mode overwrote, with 0 for
	// positions where it appended.
	replaced []rune
}

type insertEntry uint8

const (
	insertAtCursor insertEntry = iota
	insertAfterCursor
	insertLineStart
	insertLineEnd
	insertBelow
	insertAbove
)

// beginInsert implements i a I A o O.
func (e *Editor) beginInsert(how insertEntry) error {
	if e.modes.Current().IsInsert() {
		e.modes.Switch(mode.Insert)
		return nil
	}
	if e.buf.ReadOnly() {
		return fmt.Errorf("insert: %w", text.ErrReadOnly)
	}
	n := e.pending.TakeCount().OrElse(1)
	line := e.cur.Line
	prefix := ""
	switch how {
	case insertAfterCursor:
		if e.lineLen(line) > 0 {
			e.cur = cursor.At(line, e.cur.Column+1)
		}
	case insertLineStart:
		e.cur = e.firstNonBlank(line)
	case insertLineEnd:
		e.cur = cursor.At(line, e.lineLen(line))
	case insertBelow:
		if err := e.buf.Insert(e.lineEnd(line), "\n"); err != nil {
			return fmt.Errorf("open line: %w", err)
		}
		e.cur = cursor.At(line+1, 0)
		prefix = "\n"
	case insertAbove:
		if err := e.buf.Insert(e.lineStart(line), "\n"); err != nil {
			return fmt.Errorf("open line: %w", err)
		}
		e.cur = cursor.At(line, 0)
		prefix = "\n"
	}
	return e.startInsert(mode.Insert, n, prefix)
}

// beginReplace implements R, and <Insert> in Insert mode.
func (e *Editor) beginReplace(key.Sequence) error {
	if e.modes.Current().IsInsert() {
		e.modes.Switch(mode.Replace)
		return nil
	}
	if e.buf.ReadOnly() {
		return fmt.Errorf("replace: %w", text.ErrReadOnly)
	}
	return e.startInsert(mode.Replace, e.pending.TakeCount().OrElse(1), "")
}

func (e *Editor) startInsert(m mode.Mode, count int, prefix string) error {
	e.insert = insertSession{count: count, prefix: prefix}
	e.modes.Switch(m)
	e.cur = e.clamp(e.cur)
	return nil
}

// finishInsert leaves Insert or Replace mode. The typed text is repeated
// for a count, saved in the . register, and closes one undo group. The
// cursor stays where it is, clamped onto the line.
func (e *Editor) finishInsert() error {
	s := e.insert
	e.insert = insertSession{}
	typed := string(s.typed)
	if s.count > 1 && !s.moved && typed != "" {
		rep := strings.Repeat(s.prefix+typed, s.count-1)
		at := e.idx(e.cur)
		if err := e.buf.Insert(at, rep); err != nil {
			return fmt.Errorf("repeat insert: %w", err)
		}
		e.cur = e.pos(at + runeCount(rep))
	}
	if typed != "" {
		e.regs.Remember(register.InsertedRegister, register.Chars(typed))
	}
	e.modes.Switch(mode.Normal)
	e.buf.Commit()
	e.cur = e.clamp(e.cur)
	return nil
}

// typeRune inserts r at the cursor, or overwrites the character under it
// in Replace mode.
func (e *Editor) typeRune(r rune) error {
	at := e.idx(e.cur)
	if e.modes.Is(mode.Replace) && r != '\n' && at < e.lineEnd(e.cur.Line) {
		old, _ := e.buf.RuneAt(at)
		if _, err := e.buf.Replace(at, at+1, string(r)); err != nil {
			return fmt.Errorf("replace: %w", err)
		}
		e.insert.replaced = append(e.insert.replaced, old)
	} else {
		if err := e.buf.Insert(at, string(r)); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
		if e.modes.Is(mode.Replace) {
			e.insert.replaced = append(e.insert.replaced, 0)
		}
	}
	e.insert.typed = append(e.insert.typed, r)
	e.cur = e.pos(at + 1)
	return nil
}

func (e *Editor) newline(key.Sequence) error {
	return e.typeRune('\n')
}

// backspace deletes the character before the cursor. In Replace mode it
// restores what was overwritten, and only moves left over characters
// that were there before.
func (e *Editor) backspace(key.Sequence) error {
	at := e.idx(e.cur)
	if at == 0 {
		return nil
	}
	if n := len(e.insert.typed); n > 0 {
		e.insert.typed = e.insert.typed[:n-1]
	}
	if e.modes.Is(mode.Replace) {
		n := len(e.insert.replaced)
		if n == 0 {
			if e.cur.Column > 0 {
				e.cur = cursor.At(e.cur.Line, e.cur.Column-1)
			}
			return nil
		}
		old := e.insert.replaced[n-1]
		e.insert.replaced = e.insert.replaced[:n-1]
		var err error
		if old == 0 {
			_, err = e.buf.Delete(at-1, at)
		} else {
			_, err = e.buf.Replace(at-1, at, string(old))
		}
		if err != nil {
			return fmt.Errorf("backspace: %w", err)
		}
		e.cur = e.pos(at - 1)
		return nil
	}
	if _, err := e.buf.Delete(at-1, at); err != nil {
		return fmt.Errorf("backspace: %w", err)
	}
	e.cur = e.pos(at - 1)
	return nil
}

func (e *Editor) deleteForward(key.Sequence) error {
	at := e.idx(e.cur)
	if at >= e.buf.Len() {
		return nil
	}
	if _, err := e.buf.Delete(at, at+1); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// deleteWordBackward implements <C-w>: delete the whitespace and then
// the word before the cursor. At the start of a line it joins with the
// line above.
func (e *Editor) deleteWordBackward(key.Sequence) error {
	at := e.idx(e.cur)
	if e.cur.Column == 0 {
		return e.backspace(nil)
	}
	line := e.buf.LineRunes(e.cur.Line)
	col := min(e.cur.Column, len(line))
	for col > 0 && charClass(line[col-1], false) == 0 {
		col--
	}
	if col > 0 {
		c := charClass(line[col-1], false)
		for col > 0 && charClass(line[col-1], false) == c {
			col--
		}
	}
	return e.deleteBack(at - (min(e.cur.Column, len(line)) - col))
}

// deleteLineBackward implements <C-u>: delete back to the start of the
// line.
func (e *Editor) deleteLineBackward(key.Sequence) error {
	if e.cur.Column == 0 {
		return e.backspace(nil)
	}
	return e.deleteBack(e.lineStart(e.cur.Line))
}

func (e *Editor) deleteBack(start int) error {
	at := e.idx(e.cur)
	if start >= at {
		return nil
	}
	if _, err := e.buf.Delete(start, at); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if n := len(e.insert.typed) - (at - start); n >= 0 {
		e.insert.typed = e.insert.typed[:n]
	} else {
		e.insert.typed = nil
	}
	e.cur = e.pos(start)
	return nil
}
