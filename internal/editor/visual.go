package editor

import (
	"github.com/samber/mo"

	"github.com/dshills/modal/internal/engine/cursor"
	"github.com/dshills/modal/internal/engine/textobject"
	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/input/mode"
	"github.com/dshills/modal/internal/input/vim"
)

func visualMode(k cursor.SelectionKind) mode.Mode {
	switch k {
	case cursor.Line:
		return mode.VisualLine
	case cursor.Block:
		return mode.VisualBlock
	}
	return mode.Visual
}

// visual implements v, V and <C-v>. In a visual mode of the same kind it
// ends the selection; of another kind it changes the selection's shape.
// With an operator pending, the operator is dropped.
func (e *Editor) visual(kind cursor.SelectionKind) error {
	e.pending.TakeCount()
	target := visualMode(kind)
	switch cur := e.modes.Current(); {
	case cur == target:
		e.endVisual()
		return nil
	case cur.IsVisual():
		if s, ok := e.sel.Get(); ok {
			s.Kind = kind
			e.sel = mo.Some(s)
		}
		e.modes.Switch(target)
		return nil
	case cur == mode.OperatorPending:
		e.pending.Reset()
	}
	e.sel = mo.Some(cursor.NewSelection(kind, e.cur))
	e.modes.Switch(target)
	return nil
}

// endVisual drops the selection, remembering it for '< and '>, and
// returns to Normal mode.
func (e *Editor) endVisual() {
	if s, ok := e.sel.Get(); ok {
		e.lastVisual = mo.Some(s)
	}
	e.sel = mo.None[cursor.Selection]()
	if e.modes.Current().IsVisual() {
		e.modes.Switch(mode.Normal)
	}
	e.cur = e.clamp(e.cur)
}

func (e *Editor) swapEnds(key.Sequence) error {
	s, ok := e.sel.Get()
	if !ok {
		return nil
	}
	s.SwapEnds()
	e.sel = mo.Some(s)
	e.cur = e.clamp(s.Head)
	return nil
}

// visualOperator applies op to the selection. A count repeats shifts.
func (e *Editor) visualOperator(op vim.Operator) error {
	s, ok := e.sel.Get()
	if !ok {
		return nil
	}
	times := e.pending.TakeCount().OrElse(1)
	r := e.selectionRegion(s)
	e.endVisual()
	return e.applyOperator(op, r, times)
}

// selectionRegion converts s to an operator region. Character selections
// cover [start, end) and at least one character; block selections cover
// at least one column.
func (e *Editor) selectionRegion(s cursor.Selection) region {
	switch s.Kind {
	case cursor.Line:
		first, last := s.Lines()
		return e.lineRegion(first, last)
	case cursor.Block:
		first, last := s.Lines()
		left := min(s.Anchor.Column, s.Head.Column)
		right := max(s.Anchor.Column, s.Head.Column)
		if right == left {
			right++
		}
		return region{kind: blockwise, first: first, last: last, left: left, right: right}
	}
	start, end := e.idx(s.NormalizedStart()), e.idx(s.NormalizedEnd())
	if end == start {
		end = min(start+1, e.buf.Len())
	}
	return charRegion(start, end)
}

// selectObject extends the selection to the text object around the
// cursor. Paragraphs switch to a line selection.
func (e *Editor) selectObject(kind textobject.Kind, include bool) error {
	e.pending.TakeCount()
	rng, ok := textobject.Find(e.buf, e.idx(e.cur), kind, include).Get()
	if !ok {
		return nil
	}
	s := e.sel.OrElse(cursor.NewSelection(cursor.Character, e.cur))
	if kind.Linewise() {
		s.Kind = cursor.Line
		s.Anchor = e.pos(rng.Start)
		s.Head = e.pos(max(rng.Start, rng.End-1))
		e.modes.Switch(mode.VisualLine)
	} else {
		s.Kind = cursor.Character
		s.Anchor = e.pos(rng.Start)
		s.Head = e.pos(rng.End)
		e.modes.Switch(mode.Visual)
	}
	e.sel = mo.Some(s)
	e.cur = e.clamp(s.Head)
	return nil
}
