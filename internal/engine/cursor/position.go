package cursor

import (
	"fmt"

	"github.com/samber/mo"
)

// Buffer is the read-only view of text that motions need.
type Buffer interface {
	LineCount() int
	LineRunes(n int) []rune
}

// Position is a cursor location. Preferred holds the column vertical
// motions aim for.
type Position struct {
	Line      int
	Column    int
	Preferred mo.Option[int]
}

// At creates a position without a preferred column.
func At(line, col int) Position {
	return Position{Line: line, Column: col}
}

// String returns "line:col", both zero based.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Compare orders positions by line then column.
func (p Position) Compare(o Position) int {
	switch {
	case p.Line < o.Line:
		return -1
	case p.Line > o.Line:
		return 1
	case p.Column < o.Column:
		return -1
	case p.Column > o.Column:
		return 1
	}
	return 0
}

// Before reports whether p comes strictly before o.
func (p Position) Before(o Position) bool { return p.Compare(o) < 0 }

// SamePlace reports whether p and o address the same line and column,
// ignoring the preferred column.
func (p Position) SamePlace(o Position) bool { return p.Compare(o) == 0 }

// Bare returns p without a preferred column.
func (p Position) Bare() Position { return At(p.Line, p.Column) }

// Clamp keeps p inside buf. With pastEnd the column may sit one past the
// last character, as in Insert mode; otherwise it stops on the last
// character.
func Clamp(buf Buffer, p Position, pastEnd bool) Position {
	last := buf.LineCount() - 1
	p.Line = max(0, min(p.Line, last))
	n := len(buf.LineRunes(p.Line))
	limit := n
	if !pastEnd && n > 0 {
		limit = n - 1
	}
	p.Column = max(0, min(p.Column, limit))
	return p
}

// FirstNonBlank returns the column of the first non-whitespace character
// on line n, or the line length if there is none.
func FirstNonBlank(buf Buffer, n int) int {
	line := buf.LineRunes(n)
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return i
		}
	}
	return len(line)
}

// IsBlank reports whether line n is empty or whitespace only.
func IsBlank(buf Buffer, n int) bool {
	return FirstNonBlank(buf, n) == len(buf.LineRunes(n))
}
