package cursor

import "unicode"

type charClass uint8

const (
	classSpace charClass = iota
	classWord
	classPunct
)

// IsWordChar reports whether r belongs to a word: a letter, digit or '_'.
func IsWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func wordClass(r rune) charClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case IsWordChar(r):
		return classWord
	default:
		return classPunct
	}
}

func bigWordClass(r rune) charClass {
	if unicode.IsSpace(r) {
		return classSpace
	}
	return classWord
}

// scanner walks a buffer one character at a time. The slot one past the
// end of each line reads as '\n' so line breaks behave as whitespace.
type scanner struct {
	buf  Buffer
	line int
	col  int
}

func newScanner(buf Buffer, p Position) *scanner {
	return &scanner{buf: buf, line: p.Line, col: p.Column}
}

func (s *scanner) pos() Position { return At(s.line, s.col) }

func (s *scanner) char() rune {
	line := s.buf.LineRunes(s.line)
	if s.col >= len(line) {
		return '\n'
	}
	return line[s.col]
}

func (s *scanner) next() bool {
	if s.col < len(s.buf.LineRunes(s.line)) {
		s.col++
		return true
	}
	if s.line+1 < s.buf.LineCount() {
		s.line++
		s.col = 0
		return true
	}
	return false
}

func (s *scanner) prev() bool {
	if s.col > 0 {
		s.col--
		return true
	}
	if s.line > 0 {
		s.line--
		s.col = len(s.buf.LineRunes(s.line))
		return true
	}
	return false
}

func wordNext(buf Buffer, p Position, class func(rune) charClass) Position {
	s := newScanner(buf, p)
	c := class(s.char())
	if c != classSpace {
		for s.next() && class(s.char()) == c {
		}
	}
	for class(s.char()) == classSpace && s.next() {
	}
	return s.pos()
}

func wordEnd(buf Buffer, p Position, class func(rune) charClass) Position {
	s := newScanner(buf, p)
	if !s.next() {
		return p
	}
	for class(s.char()) == classSpace {
		if !s.next() {
			return s.pos()
		}
	}
	c := class(s.char())
	for {
		line := buf.LineRunes(s.line)
		if s.col+1 >= len(line) || class(line[s.col+1]) != c {
			return s.pos()
		}
		s.col++
	}
}

func wordPrev(buf Buffer, p Position, class func(rune) charClass) Position {
	s := newScanner(buf, p)
	if !s.prev() {
		return p
	}
	for class(s.char()) == classSpace {
		if !s.prev() {
			return s.pos()
		}
	}
	c := class(s.char())
	line := buf.LineRunes(s.line)
	for s.col > 0 && class(line[s.col-1]) == c {
		s.col--
	}
	return s.pos()
}
