package editor

import (
	"strings"
	"unicode"

	"github.com/dshills/modal/internal/engine/cursor"
)

// idx converts a position to a character index, clamping it into the
// buffer first.
func (e *Editor) idx(p cursor.Position) int {
	line := max(0, min(p.Line, e.buf.LineCount()-1))
	start, _ := e.buf.LineStart(line)
	return start + max(0, min(p.Column, e.lineLen(line)))
}

// pos converts a character index to a position.
func (e *Editor) pos(i int) cursor.Position {
	i = max(0, min(i, e.buf.Len()))
	line, col, _ := e.buf.CharIdxToPosition(i)
	return cursor.At(line, col)
}

func (e *Editor) lineLen(n int) int { return len(e.buf.LineRunes(n)) }

// lineStart returns the index line n starts at, or the buffer length for
// lines past the end.
func (e *Editor) lineStart(n int) int {
	if n >= e.buf.LineCount() {
		return e.buf.Len()
	}
	s, _ := e.buf.LineStart(max(0, n))
	return s
}

// lineEnd returns the index just past the last character of line n,
// before its newline.
func (e *Editor) lineEnd(n int) int {
	return e.lineStart(n) + e.lineLen(n)
}

func (e *Editor) lastLine() int { return e.buf.LineCount() - 1 }

// lines returns the text of lines first through last.
func (e *Editor) lines(first, last int) []string {
	out := make([]string, 0, last-first+1)
	for n := first; n <= last; n++ {
		out = append(out, string(e.buf.LineRunes(n)))
	}
	return out
}

// clamp keeps p inside the buffer for the current mode. Insert and visual
// modes may sit one past the last character of a line.
func (e *Editor) clamp(p cursor.Position) cursor.Position {
	m := e.modes.Current()
	return cursor.Clamp(e.buf, p, m.IsInsert() || m.IsVisual())
}

func (e *Editor) firstNonBlank(line int) cursor.Position {
	return cursor.At(line, cursor.FirstNonBlank(e.buf, line))
}

type regionKind uint8

const (
	charwise regionKind = iota
	linewise
	blockwise
)

// region is the text an operator acts on. Charwise regions are the
// half-open offsets [start, end). Linewise regions cover lines first
// through last. Blockwise regions cover the columns [left, right) of
// lines first through last.
type region struct {
	kind        regionKind
	start, end  int
	first, last int
	left, right int
}

func charRegion(start, end int) region {
	if end < start {
		start, end = end, start
	}
	return region{kind: charwise, start: start, end: end}
}

func (e *Editor) lineRegion(a, b int) region {
	if b < a {
		a, b = b, a
	}
	last := e.lastLine()
	return region{kind: linewise, first: max(0, min(a, last)), last: max(0, min(b, last))}
}

// toLines widens r to the whole lines it touches.
func (e *Editor) toLines(r region) region {
	if r.kind != charwise {
		return e.lineRegion(r.first, r.last)
	}
	end := r.end
	if end > r.start {
		end--
	}
	return e.lineRegion(e.pos(r.start).Line, e.pos(end).Line)
}

// span returns the character range a linewise region's text occupies,
// without the newline after the last line.
func (e *Editor) span(r region) (int, int) {
	return e.lineStart(r.first), e.lineEnd(r.last)
}

// blockRows returns the text of each row of a blockwise region. Rows of
// short lines are cut at the line end.
func (e *Editor) blockRows(r region) []string {
	rows := make([]string, 0, r.last-r.first+1)
	for n := r.first; n <= r.last; n++ {
		line := e.buf.LineRunes(n)
		lo, hi := min(r.left, len(line)), min(r.right, len(line))
		rows = append(rows, string(line[lo:hi]))
	}
	return rows
}

func runeCount(s string) int { return len([]rune(s)) }

func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsUpper(r) {
			return unicode.ToLower(r)
		}
		return unicode.ToUpper(r)
	}, s)
}
