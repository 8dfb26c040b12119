package editor

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dshills/modal/internal/engine/cursor"
	"github.com/dshills/modal/internal/engine/history"
	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/input/vim"
)

// deleteChars implements x, or X when before is set. It never crosses
// the line.
func (e *Editor) deleteChars(before bool) error {
	n := e.pending.TakeCount().OrElse(1)
	at := e.idx(e.cur)
	if before {
		ls := e.lineStart(e.cur.Line)
		if at == ls {
			return nil
		}
		return e.applyOperator(vim.Delete, charRegion(max(ls, at-n), at), 1)
	}
	end := e.lineEnd(e.cur.Line)
	if at >= end {
		return nil
	}
	return e.applyOperator(vim.Delete, charRegion(at, min(end, at+n)), 1)
}

// toLineEnd implements D and C: from the cursor to the end of the line,
// or of the line count-1 below.
func (e *Editor) toLineEnd(op vim.Operator) error {
	n := e.pending.TakeCount().OrElse(1)
	last := min(e.cur.Line+n-1, e.lastLine())
	at, end := e.idx(e.cur), e.lineEnd(last)
	if end <= at && op != vim.Change {
		return nil
	}
	return e.applyOperator(op, charRegion(at, max(at, end)), 1)
}

// wholeLines implements Y and S over count lines.
func (e *Editor) wholeLines(op vim.Operator) error {
	n := e.pending.TakeCount().OrElse(1)
	return e.applyOperator(op, e.lineRegion(e.cur.Line, e.cur.Line+n-1), 1)
}

// substitute implements s: change count characters.
func (e *Editor) substitute(key.Sequence) error {
	n := e.pending.TakeCount().OrElse(1)
	at := e.idx(e.cur)
	return e.applyOperator(vim.Change, charRegion(at, min(e.lineEnd(e.cur.Line), at+n)), 1)
}

func (e *Editor) joinCommand(key.Sequence) error {
	if s, ok := e.sel.Get(); ok {
		first, last := s.Lines()
		e.pending.TakeCount()
		e.endVisual()
		return e.join(first, max(last, first+1))
	}
	n := max(2, e.pending.TakeCount().OrElse(2))
	return e.join(e.cur.Line, e.cur.Line+n-1)
}

// join joins lines first through last. Leading whitespace of each joined
// line is removed and a single space separates the parts, except after
// an empty line or trailing whitespace and before an empty line or ')'.
func (e *Editor) join(first, last int) error {
	last = min(last, e.lastLine())
	if last <= first {
		return nil
	}
	col := 0
	for i := 0; i < last-first; i++ {
		cur := e.buf.LineRunes(first)
		next := e.buf.LineRunes(first + 1)
		k := 0
		for k < len(next) && (next[k] == ' ' || next[k] == '\t') {
			k++
		}
		sep := " "
		if len(cur) == 0 || unicode.IsSpace(cur[len(cur)-1]) || k == len(next) || next[k] == ')' {
			sep = ""
		}
		end := e.lineEnd(first)
		if _, err := e.buf.Replace(end, end+1+k, sep); err != nil {
			return fmt.Errorf("join: %w", err)
		}
		col = len(cur)
	}
	e.cur = e.clamp(cursor.At(first, col))
	return nil
}

// replaceChars implements r{c} over count characters. Replacing with a
// newline splits the line once.
func (e *Editor) replaceChars(r rune) error {
	n := e.pending.TakeCount().OrElse(1)
	if e.cur.Column+n > e.lineLen(e.cur.Line) {
		return nil
	}
	at := e.idx(e.cur)
	if r == '\n' {
		if _, err := e.buf.Replace(at, at+n, "\n"); err != nil {
			return fmt.Errorf("replace: %w", err)
		}
		e.cur = cursor.At(e.cur.Line+1, 0)
		return nil
	}
	if _, err := e.buf.Replace(at, at+n, strings.Repeat(string(r), n)); err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	e.cur = cursor.At(e.cur.Line, e.cur.Column+n-1)
	return nil
}

// swapCaseChars implements ~: toggle case of count characters and move
// past them.
func (e *Editor) swapCaseChars(key.Sequence) error {
	n := e.pending.TakeCount().OrElse(1)
	at, end := e.idx(e.cur), e.lineEnd(e.cur.Line)
	if at >= end {
		return nil
	}
	end = min(end, at+n)
	text, err := e.buf.Slice(at, end)
	if err != nil {
		return err
	}
	if _, err := e.buf.Replace(at, end, swapCase(text)); err != nil {
		return fmt.Errorf("swap case: %w", err)
	}
	e.cur = e.clamp(cursor.At(e.cur.Line, e.cur.Column+end-at))
	return nil
}

func (e *Editor) undo(n int) error {
	e.buf.Commit()
	for i := 0; i < n; i++ {
		at, err := e.buf.Undo()
		if errors.Is(err, history.ErrNothingToUndo) {
			if i == 0 {
				e.message = "Already at oldest change"
			}
			break
		}
		if err != nil {
			return fmt.Errorf("undo: %w", err)
		}
		e.cur = e.pos(at)
	}
	e.cur = e.clamp(e.cur)
	return nil
}

func (e *Editor) redo(n int) error {
	e.buf.Commit()
	for i := 0; i < n; i++ {
		at, err := e.buf.Redo()
		if errors.Is(err, history.ErrNothingToRedo) {
			if i == 0 {
				e.message = "Already at newest change"
			}
			break
		}
		if err != nil {
			return fmt.Errorf("redo: %w", err)
		}
		e.cur = e.pos(at)
	}
	e.cur = e.clamp(e.cur)
	return nil
}
