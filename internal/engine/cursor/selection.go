package cursor

import "math"

// SelectionKind is the shape of a visual selection.
type SelectionKind uint8

const (
	// Character selects a run of characters.
	Character SelectionKind = iota
	// Line selects whole lines.
	Line
	// Block selects a rectangle.
	Block
)

// String returns the kind name.
func (k SelectionKind) String() string {
	switch k {
	case Character:
		return "character"
	case Line:
		return "line"
	case Block:
		return "block"
	default:
		return "unknown"
	}
}

// MaxColumn is the column NormalizedEnd reports for line selections.
const MaxColumn = math.MaxInt

// Selection is an anchored range. Anchor stays where the selection
// started; Head follows the cursor.
type Selection struct {
	Kind   SelectionKind
	Anchor Position
	Head   Position
}

// NewSelection starts a selection of kind at p.
func NewSelection(kind SelectionKind, p Position) Selection {
	return Selection{Kind: kind, Anchor: p.Bare(), Head: p.Bare()}
}

// UpdateHead moves the live end of the selection.
func (s *Selection) UpdateHead(p Position) {
	s.Head = p.Bare()
}

// SwapEnds exchanges anchor and head.
func (s *Selection) SwapEnds() {
	s.Anchor, s.Head = s.Head, s.Anchor
}

// NormalizedStart returns the top-left end of the selection.
func (s Selection) NormalizedStart() Position {
	switch s.Kind {
	case Line:
		return At(min(s.Anchor.Line, s.Head.Line), 0)
	case Block:
		return At(min(s.Anchor.Line, s.Head.Line), min(s.Anchor.Column, s.Head.Column))
	default:
		if s.Head.Before(s.Anchor) {
			return s.Head.Bare()
		}
		return s.Anchor.Bare()
	}
}

// NormalizedEnd returns the bottom-right end of the selection. For line
// selections the column is MaxColumn.
func (s Selection) NormalizedEnd() Position {
	switch s.Kind {
	case Line:
		return At(max(s.Anchor.Line, s.Head.Line), MaxColumn)
	case Block:
		return At(max(s.Anchor.Line, s.Head.Line), max(s.Anchor.Column, s.Head.Column))
	default:
		if s.Head.Before(s.Anchor) {
			return s.Anchor.Bare()
		}
		return s.Head.Bare()
	}
}

// Lines returns the first and last line the selection covers.
func (s Selection) Lines() (first, last int) {
	return min(s.Anchor.Line, s.Head.Line), max(s.Anchor.Line, s.Head.Line)
}

// Contains reports whether the character at p is selected. Character
// selections cover [start, end) and block selections [left, right), each
// at least one character wide, the same text an operator acts on.
func (s Selection) Contains(p Position) bool {
	start, end := s.NormalizedStart(), s.NormalizedEnd()
	if p.Line < start.Line || p.Line > end.Line {
		return false
	}
	switch s.Kind {
	case Line:
		return true
	case Block:
		right := max(end.Column, start.Column+1)
		return p.Column >= start.Column && p.Column < right
	default:
		if start.SamePlace(end) {
			return p.SamePlace(start)
		}
		if p.Line == start.Line && p.Column < start.Column {
			return false
		}
		return p.Line != end.Line || p.Column < end.Column
	}
}
