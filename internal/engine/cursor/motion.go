package cursor

import (
	"fmt"

	"github.com/samber/mo"
)

// Kind identifies a motion.
type Kind uint8

const (
	Left Kind = iota
	Right
	Up
	Down
	LineStart
	LineEnd
	FirstNonBlankChar
	WordNext
	WordPrev
	WordEnd
	BigWordNext
	BigWordPrev
	BigWordEnd
	FindForward
	FindBackward
	TillForward
	TillBackward
	MatchingBracket
	ParagraphNext
	ParagraphPrev
	BufferStart
	BufferEnd
	GotoLine
	ScrollHalfPageDown
	ScrollHalfPageUp
	ScrollFullPageDown
	ScrollFullPageUp
)

// Scroll distances in lines.
const (
	HalfPage = 10
	FullPage = 20
)

var kindNames = [...]string{
	Left:               "left",
	Right:              "right",
	Up:                 "up",
	Down:               "down",
	LineStart:          "lineStart",
	LineEnd:            "lineEnd",
	FirstNonBlankChar:  "firstNonBlank",
	WordNext:           "wordNext",
	WordPrev:           "wordPrev",
	WordEnd:            "wordEnd",
	BigWordNext:        "bigWordNext",
	BigWordPrev:        "bigWordPrev",
	BigWordEnd:         "bigWordEnd",
	FindForward:        "findForward",
	FindBackward:       "findBackward",
	TillForward:        "tillForward",
	TillBackward:       "tillBackward",
	MatchingBracket:    "matchingBracket",
	ParagraphNext:      "paragraphNext",
	ParagraphPrev:      "paragraphPrev",
	BufferStart:        "bufferStart",
	BufferEnd:          "bufferEnd",
	GotoLine:           "gotoLine",
	ScrollHalfPageDown: "scrollHalfPageDown",
	ScrollHalfPageUp:   "scrollHalfPageUp",
	ScrollFullPageDown: "scrollFullPageDown",
	ScrollFullPageUp:   "scrollFullPageUp",
}

// String returns the motion name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// KindByName looks a motion kind up by its String name.
func KindByName(name string) mo.Option[Kind] {
	for k, n := range kindNames {
		if n == name {
			return mo.Some(Kind(k))
		}
	}
	return mo.None[Kind]()
}

// Motion is a motion kind with its argument. Char is the target of the
// find and till motions; Line is the zero based target of GotoLine.
type Motion struct {
	Kind Kind
	Char rune
	Line int
}

// Linewise reports whether an operator over this motion acts on whole lines.
func (m Motion) Linewise() bool {
	switch m.Kind {
	case Up, Down, BufferStart, BufferEnd, GotoLine,
		ScrollHalfPageDown, ScrollHalfPageUp, ScrollFullPageDown, ScrollFullPageUp:
		return true
	}
	return false
}

// Inclusive reports whether an operator over this motion includes the
// character the motion lands on.
func (m Motion) Inclusive() bool {
	switch m.Kind {
	case WordEnd, BigWordEnd, FindForward, TillForward, MatchingBracket:
		return true
	}
	return false
}

// NeedsChar reports whether the motion takes a character argument.
func (m Motion) NeedsChar() bool {
	switch m.Kind {
	case FindForward, FindBackward, TillForward, TillBackward:
		return true
	}
	return false
}

// Reverse returns the find or till motion that searches the other way.
func (m Motion) Reverse() Motion {
	switch m.Kind {
	case FindForward:
		m.Kind = FindBackward
	case FindBackward:
		m.Kind = FindForward
	case TillForward:
		m.Kind = TillBackward
	case TillBackward:
		m.Kind = TillForward
	}
	return m
}

// Move applies m to p over buf and returns the new position.
func Move(m Motion, buf Buffer, p Position) Position {
	p = Clamp(buf, p, true)
	switch m.Kind {
	case Up:
		return vertical(buf, p, -1)
	case Down:
		return vertical(buf, p, 1)
	case ScrollHalfPageDown:
		return repeatVertical(buf, p, 1, HalfPage)
	case ScrollHalfPageUp:
		return repeatVertical(buf, p, -1, HalfPage)
	case ScrollFullPageDown:
		return repeatVertical(buf, p, 1, FullPage)
	case ScrollFullPageUp:
		return repeatVertical(buf, p, -1, FullPage)
	}

	// Everything below is horizontal or absolute and forgets the
	// preferred column.
	p = p.Bare()
	line := buf.LineRunes(p.Line)
	switch m.Kind {
	case Left:
		if p.Column > 0 {
			p.Column--
		}
	case Right:
		if p.Column < len(line) {
			p.Column++
		}
	case LineStart:
		p.Column = 0
	case LineEnd:
		p.Column = len(line)
	case FirstNonBlankChar:
		p.Column = FirstNonBlank(buf, p.Line)
	case WordNext:
		p = wordNext(buf, p, wordClass)
	case WordPrev:
		p = wordPrev(buf, p, wordClass)
	case WordEnd:
		p = wordEnd(buf, p, wordClass)
	case BigWordNext:
		p = wordNext(buf, p, bigWordClass)
	case BigWordPrev:
		p = wordPrev(buf, p, bigWordClass)
	case BigWordEnd:
		p = wordEnd(buf, p, bigWordClass)
	case FindForward, TillForward:
		for i := p.Column + 1; i < len(line); i++ {
			if line[i] == m.Char {
				if m.Kind == TillForward {
					i--
				}
				p.Column = i
				break
			}
		}
	case FindBackward, TillBackward:
		for i := min(p.Column, len(line)) - 1; i >= 0; i-- {
			if line[i] == m.Char {
				if m.Kind == TillBackward {
					i++
				}
				p.Column = i
				break
			}
		}
	case MatchingBracket:
		p = matchBracket(buf, p)
	case ParagraphNext:
		p = paragraphNext(buf, p)
	case ParagraphPrev:
		p = paragraphPrev(buf, p)
	case BufferStart:
		p = At(0, FirstNonBlank(buf, 0))
	case BufferEnd:
		last := buf.LineCount() - 1
		p = At(last, FirstNonBlank(buf, last))
	case GotoLine:
		n := max(0, min(m.Line, buf.LineCount()-1))
		p = At(n, FirstNonBlank(buf, n))
	}
	return p
}

func vertical(buf Buffer, p Position, delta int) Position {
	want := p.Preferred.OrElse(p.Column)
	target := p.Line + delta
	if target < 0 || target >= buf.LineCount() {
		return p
	}
	return Position{
		Line:      target,
		Column:    min(want, len(buf.LineRunes(target))),
		Preferred: mo.Some(want),
	}
}

func repeatVertical(buf Buffer, p Position, delta, n int) Position {
	for i := 0; i < n; i++ {
		next := vertical(buf, p, delta)
		if next.Line == p.Line {
			break
		}
		p = next
	}
	return p
}

var bracketPairs = map[rune]struct {
	match   rune
	forward bool
}{
	'(': {')', true}, ')': {'(', false},
	'[': {']', true}, ']': {'[', false},
	'{': {'}', true}, '}': {'{', false},
	'<': {'>', true}, '>': {'<', false},
}

func matchBracket(buf Buffer, p Position) Position {
	line := buf.LineRunes(p.Line)
	if p.Column >= len(line) {
		return p
	}
	open := line[p.Column]
	pair, ok := bracketPairs[open]
	if !ok {
		return p
	}
	s := newScanner(buf, p)
	depth := 0
	for {
		var moved bool
		if pair.forward {
			moved = s.next()
		} else {
			moved = s.prev()
		}
		if !moved {
			return p
		}
		switch s.char() {
		case open:
			depth++
		case pair.match:
			if depth == 0 {
				return s.pos()
			}
			depth--
		}
	}
}

func paragraphNext(buf Buffer, p Position) Position {
	n := buf.LineCount()
	l := p.Line
	for l < n && IsBlank(buf, l) {
		l++
	}
	for l < n && !IsBlank(buf, l) {
		l++
	}
	if l >= n {
		return At(n-1, len(buf.LineRunes(n-1)))
	}
	return At(l, 0)
}

func paragraphPrev(buf Buffer, p Position) Position {
	l := p.Line
	for l > 0 && IsBlank(buf, l) {
		l--
	}
	for l > 0 && !IsBlank(buf, l) {
		l--
	}
	return At(l, 0)
}
