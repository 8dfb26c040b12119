package editor

import (
	"fmt"
	"strings"

	"github.com/dshills/modal/internal/engine/cursor"
	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/input/vim"
	"github.com/dshills/modal/internal/register"
)

// registerContent reads the selected register, the unnamed one by
// default.
func (e *Editor) registerContent() (register.Content, error) {
	reg := e.pending.TakeRegister().OrElse(register.UnnamedRegister)
	c, ok := e.regs.Get(reg).Get()
	if !ok || c.IsEmpty() {
		return c, notice(fmt.Sprintf("E353: Nothing in register %s", reg))
	}
	return c, nil
}

// paste implements p, or P when before is set.
func (e *Editor) paste(before bool) error {
	c, err := e.registerContent()
	if err != nil {
		return err
	}
	n := e.pending.TakeCount().OrElse(1)
	return e.put(c, n, e.cur, before)
}

// put inserts c count times relative to p. Character text goes after
// the character at p, or before it; lines go below or above p's line;
// blocks go in a column starting after or at p's column.
func (e *Editor) put(c register.Content, count int, p cursor.Position, before bool) error {
	switch c.Style {
	case register.LineWise:
		text := strings.Repeat(c.String(), count)
		line := p.Line
		if !before {
			line++
		}
		var err error
		if line > e.lastLine() {
			err = e.buf.Insert(e.buf.Len(), "\n"+strings.TrimSuffix(text, "\n"))
		} else {
			err = e.buf.Insert(e.lineStart(line), text)
		}
		if err != nil {
			return fmt.Errorf("put: %w", err)
		}
		e.cur = e.firstNonBlank(line)
	case register.BlockWise:
		col := p.Column
		if !before && e.lineLen(p.Line) > 0 {
			col++
		}
		if err := e.putBlock(c.Lines, count, p.Line, col); err != nil {
			return fmt.Errorf("put: %w", err)
		}
		e.cur = cursor.At(p.Line, col)
	default:
		text := strings.Repeat(c.String(), count)
		at := e.idx(p)
		if !before && at < e.lineEnd(p.Line) {
			at++
		}
		if err := e.buf.Insert(at, text); err != nil {
			return fmt.Errorf("put: %w", err)
		}
		if strings.Contains(text, "\n") {
			e.cur = e.pos(at)
		} else {
			e.cur = e.pos(at + runeCount(text) - 1)
		}
	}
	e.cur = e.clamp(e.cur)
	return nil
}

// putBlock inserts rows at column col of consecutive lines from line,
// adding lines at the end of the buffer and padding short lines with
// spaces as needed.
func (e *Editor) putBlock(rows []string, count, line, col int) error {
	width := 0
	for _, row := range rows {
		width = max(width, runeCount(row))
	}
	for i, row := range rows {
		n := line + i
		if n > e.lastLine() {
			if err := e.buf.Insert(e.buf.Len(), "\n"); err != nil {
				return err
			}
		}
		ll := e.lineLen(n)
		text := strings.Repeat(row+strings.Repeat(" ", width-runeCount(row)), count)
		if ll < col {
			text = strings.Repeat(" ", col-ll) + text
		} else if ll == col {
			text = strings.TrimRight(text, " ")
		}
		if err := e.buf.Insert(e.lineStart(n)+min(col, ll), text); err != nil {
			return err
		}
	}
	return nil
}

// visualPaste replaces the selection with the register content. The
// replaced text goes to the registers as a delete does.
func (e *Editor) visualPaste(key.Sequence) error {
	s, ok := e.sel.Get()
	if !ok {
		return nil
	}
	c, err := e.registerContent()
	if err != nil {
		e.endVisual()
		return err
	}
	n := e.pending.TakeCount().OrElse(1)
	r := e.selectionRegion(s)
	e.endVisual()
	if err := e.cutOrCopy(vim.Delete, r, e.pending.TakeRegister()); err != nil {
		return err
	}

	switch r.kind {
	case linewise:
		if c.Style != register.LineWise {
			c = register.Lines(c.String())
		}
		switch {
		case e.buf.Len() == 0:
			text := strings.TrimSuffix(strings.Repeat(c.String(), n), "\n")
			if err := e.buf.Insert(0, text); err != nil {
				return fmt.Errorf("put: %w", err)
			}
			e.cur = e.firstNonBlank(0)
			return nil
		case r.first > e.lastLine():
			return e.put(c, n, cursor.At(e.lastLine(), 0), false)
		}
		return e.put(c, n, cursor.At(r.first, 0), true)
	case blockwise:
		return e.put(c, n, cursor.At(r.first, r.left), true)
	}
	return e.put(c, n, e.pos(r.start), true)
}
