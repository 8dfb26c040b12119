package editor

import (
	"github.com/samber/mo"

	"github.com/dshills/modal/internal/engine/cursor"
	"github.com/dshills/modal/internal/engine/mark"
	"github.com/dshills/modal/internal/input/vim"
)

func (e *Editor) motion(k cursor.Kind) error {
	m := cursor.Motion{Kind: k}
	if m.NeedsChar() {
		e.pending.Find = k
		e.pending.Expect(vim.AwaitFindChar)
		e.keep()
		return nil
	}
	return e.applyMotion(m)
}

// applyMotion moves the cursor, or hands the motion to the pending
// operator as its target.
func (e *Editor) applyMotion(m cursor.Motion) error {
	if op, ok := e.pending.Operator.Get(); ok {
		return e.operateMotion(op, m, e.pending.TargetCount())
	}
	count := e.pending.TakeCount()
	to := e.moveBy(m, count, e.cur)
	if isJump(m.Kind) && !to.SamePlace(e.cur) {
		e.lastJump = mo.Some(e.cur.Bare())
	}
	if e.modes.Current().IsInsert() {
		e.insert.moved = true
	}
	e.SetCursor(to)
	return nil
}

// moveBy applies m count times from p. gg and G with a count go to that
// line.
func (e *Editor) moveBy(m cursor.Motion, count mo.Option[int], p cursor.Position) cursor.Position {
	switch m.Kind {
	case cursor.BufferStart, cursor.BufferEnd, cursor.GotoLine:
		if n, ok := count.Get(); ok {
			m = cursor.Motion{Kind: cursor.GotoLine, Line: n - 1}
		}
		return cursor.Move(m, e.buf, p)
	}
	for i, c := 0, count.OrElse(1); i < c; i++ {
		next := cursor.Move(m, e.buf, p)
		if next.SamePlace(p) {
			break
		}
		p = next
	}
	return p
}

func isJump(k cursor.Kind) bool {
	switch k {
	case cursor.BufferStart, cursor.BufferEnd, cursor.GotoLine,
		cursor.ParagraphNext, cursor.ParagraphPrev, cursor.MatchingBracket:
		return true
	}
	return false
}

// jumpTo moves to p as a jump, remembered for `` and ''. With an operator
// pending the text between the cursor and p is the target instead.
func (e *Editor) jumpTo(p cursor.Position, lines bool) error {
	p = cursor.Clamp(e.buf, p, true)
	if op, ok := e.pending.Operator.Get(); ok {
		e.pending.TargetCount()
		if lines {
			return e.applyOperator(op.Operator, e.lineRegion(e.cur.Line, p.Line), 1)
		}
		if p.SamePlace(e.cur) {
			return nil
		}
		return e.applyOperator(op.Operator, charRegion(e.idx(e.cur), e.idx(p)), 1)
	}
	e.lastJump = mo.Some(e.cur.Bare())
	e.SetCursor(p)
	return nil
}

func (e *Editor) repeatFind(reverse bool) error {
	m, ok := e.lastFind.Get()
	if !ok {
		return nil
	}
	if reverse {
		m = m.Reverse()
	}
	return e.applyMotion(m)
}

func (e *Editor) setMark(r rune) error {
	if !mark.IsValidName(r) {
		return nil
	}
	e.marks.Set(r, mark.Mark{Line: e.cur.Line, Column: e.cur.Column})
	return nil
}

// markPosition looks up the mark named r. ` and ' name the position before
// the last jump; < and > the bounds of the last visual selection.
func (e *Editor) markPosition(r rune) mo.Option[cursor.Position] {
	switch r {
	case '`', '\'':
		return e.lastJump
	case '<', '>':
		s, ok := e.lastVisual.Get()
		if !ok {
			return mo.None[cursor.Position]()
		}
		if r == '<' {
			return mo.Some(s.NormalizedStart())
		}
		end := s.NormalizedEnd()
		end.Column = min(end.Column, e.lineLen(end.Line))
		return mo.Some(end)
	}
	mk, ok := e.marks.Get(r).Get()
	if !ok {
		return mo.None[cursor.Position]()
	}
	return mo.Some(cursor.At(mk.Line, mk.Column))
}

func (e *Editor) jumpToMark(r rune, lines bool) error {
	p, ok := e.markPosition(r).Get()
	if !ok {
		return errMarkNotSet
	}
	if p.Line > e.lastLine() {
		return errMarkInvalid
	}
	if lines {
		p = e.firstNonBlank(p.Line)
	}
	return e.jumpTo(p, lines)
}
