package textobject

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/samber/mo"
)

// Kind identifies a text object.
type Kind uint8

const (
	Word Kind = iota
	BigWord
	Sentence
	Paragraph
	Paren
	Brace
	Bracket
	Angle
	Quote
	DoubleQuote
	BackQuote
	Tag
)

var kindNames = [...]string{
	Word:        "word",
	BigWord:     "WORD",
	Sentence:    "sentence",
	Paragraph:   "paragraph",
	Paren:       "paren",
	Brace:       "brace",
	Bracket:     "bracket",
	Angle:       "angle",
	Quote:       "quote",
	DoubleQuote: "doubleQuote",
	BackQuote:   "backQuote",
	Tag:         "tag",
}

// String returns the object name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Linewise reports whether operators treat the object as whole lines.
func (k Kind) Linewise() bool { return k == Paragraph }

// KindForKey maps the key typed after i or a to an object kind.
func KindForKey(r rune) mo.Option[Kind] {
	switch r {
	case 'w':
		return mo.Some(Word)
	case 'W':
		return mo.Some(BigWord)
	case 's':
		return mo.Some(Sentence)
	case 'p':
		return mo.Some(Paragraph)
	case '(', ')', 'b':
		return mo.Some(Paren)
	case '{', '}', 'B':
		return mo.Some(Brace)
	case '[', ']':
		return mo.Some(Bracket)
	case '<', '>':
		return mo.Some(Angle)
	case '\'':
		return mo.Some(Quote)
	case '"':
		return mo.Some(DoubleQuote)
	case '`':
		return mo.Some(BackQuote)
	case 't':
		return mo.Some(Tag)
	}
	return mo.None[Kind]()
}

var delimiters = map[Kind][2]rune{
	Paren:       {'(', ')'},
	Brace:       {'{', '}'},
	Bracket:     {'[', ']'},
	Angle:       {'<', '>'},
	Quote:       {'\'', '\''},
	DoubleQuote: {'"', '"'},
	BackQuote:   {'`', '`'},
}

// Buffer is the read-only text access the resolver needs.
type Buffer interface {
	Len() int
	RuneAt(idx int) (rune, bool)
	LineCount() int
	LineRunes(n int) []rune
	LineStart(n int) (int, error)
	CharIdxToPosition(idx int) (line, col int, err error)
}

// Range is a resolved text object; End is exclusive.
type Range struct {
	Kind    Kind
	Start   int
	End     int
	Include bool
}

// Len returns the number of characters covered.
func (r Range) Len() int { return r.End - r.Start }

// Find resolves the object of kind around idx.
func Find(buf Buffer, idx int, kind Kind, include bool) mo.Option[Range] {
	if idx < 0 || idx > buf.Len() {
		return mo.None[Range]()
	}
	var (
		start, end int
		ok         bool
	)
	switch kind {
	case Word:
		start, end, ok = findWord(buf, idx, include, isWordRune)
	case BigWord:
		start, end, ok = findWord(buf, idx, include, isNonSpace)
	case Sentence:
		start, end, ok = findSentence(buf, idx, include)
	case Paragraph:
		start, end, ok = findParagraph(buf, idx, include)
	case Paren, Brace, Bracket, Angle:
		d := delimiters[kind]
		start, end, ok = findBlock(buf, idx, d[0], d[1], include)
	case Quote, DoubleQuote, BackQuote:
		start, end, ok = findQuote(buf, idx, delimiters[kind][0], include)
	case Tag:
		start, end, ok = findTag(buf, idx, include)
	}
	if !ok || end < start {
		return mo.None[Range]()
	}
	return mo.Some(Range{Kind: kind, Start: start, End: end, Include: include})
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isNonSpace(r rune) bool { return !unicode.IsSpace(r) }

func isBlank(r rune) bool { return r == ' ' || r == '\t' }

func at(buf Buffer, i int) rune {
	r, _ := buf.RuneAt(i)
	return r
}

func findWord(buf Buffer, idx int, include bool, in func(rune) bool) (int, int, bool) {
	r, ok := buf.RuneAt(idx)
	if !ok || r == '\n' || !in(r) {
		return 0, 0, false
	}
	start, end := idx, idx+1
	for start > 0 && at(buf, start-1) != '\n' && in(at(buf, start-1)) {
		start--
	}
	for end < buf.Len() && at(buf, end) != '\n' && in(at(buf, end)) {
		end++
	}
	if include {
		trail := end
		for trail < buf.Len() && isBlank(at(buf, trail)) {
			trail++
		}
		if trail > end {
			end = trail
		} else {
			for start > 0 && isBlank(at(buf, start-1)) {
				start--
			}
		}
	}
	return start, end, true
}

func isTerminator(r rune) bool { return r == '.' || r == '!' || r == '?' }

func findSentence(buf Buffer, idx int, include bool) (int, int, bool) {
	n := buf.Len()
	if n == 0 {
		return 0, 0, false
	}
	idx = min(idx, n-1)

	start := 0
	for i := idx - 1; i >= 0; i-- {
		if isTerminator(at(buf, i)) {
			start = i + 1
			break
		}
	}
	for start < idx && unicode.IsSpace(at(buf, start)) {
		start++
	}

	end := n
	for i := idx; i < n; i++ {
		if isTerminator(at(buf, i)) {
			end = i + 1
			break
		}
	}
	if include {
		for end < n && isBlank(at(buf, end)) {
			end++
		}
	}
	return start, end, true
}

func blankLine(buf Buffer, n int) bool {
	for _, r := range buf.LineRunes(n) {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func lineStartOrEnd(buf Buffer, n int) int {
	if n >= buf.LineCount() {
		return buf.Len()
	}
	s, err := buf.LineStart(n)
	if err != nil {
		return buf.Len()
	}
	return s
}

func findParagraph(buf Buffer, idx int, include bool) (int, int, bool) {
	line, _, err := buf.CharIdxToPosition(idx)
	if err != nil || blankLine(buf, line) {
		return 0, 0, false
	}
	first, last := line, line
	for first > 0 && !blankLine(buf, first-1) {
		first--
	}
	for last+1 < buf.LineCount() && !blankLine(buf, last+1) {
		last++
	}
	if include {
		for last+1 < buf.LineCount() && blankLine(buf, last+1) {
			last++
		}
	}
	return lineStartOrEnd(buf, first), lineStartOrEnd(buf, last+1), true
}

func findBlock(buf Buffer, idx int, open, close rune, include bool) (int, int, bool) {
	openIdx := -1
	depth := 0
	for i := min(idx, buf.Len()-1); i >= 0; i-- {
		switch r := at(buf, i); {
		case r == close && i != idx:
			depth++
		case r == open:
			if depth == 0 {
				openIdx = i
			} else {
				depth--
			}
		}
		if openIdx >= 0 {
			break
		}
	}
	if openIdx < 0 {
		return 0, 0, false
	}

	closeIdx := -1
	depth = 0
	for i := openIdx + 1; i < buf.Len() && closeIdx < 0; i++ {
		switch at(buf, i) {
		case open:
			depth++
		case close:
			if depth == 0 {
				closeIdx = i
			} else {
				depth--
			}
		}
	}
	if closeIdx < 0 {
		return 0, 0, false
	}
	if include {
		return openIdx, closeIdx + 1, true
	}
	return openIdx + 1, closeIdx, true
}

func findQuote(buf Buffer, idx int, q rune, include bool) (int, int, bool) {
	lineNo, col, err := buf.CharIdxToPosition(idx)
	if err != nil {
		return 0, 0, false
	}
	line := buf.LineRunes(lineNo)
	base, _ := buf.LineStart(lineNo)

	var quotes []int
	for i, r := range line {
		if r == q && (i == 0 || line[i-1] != '\\') {
			quotes = append(quotes, i)
		}
	}

	left, right := -1, -1
	for i, qi := range quotes {
		if qi == col {
			// On a quote: parity decides whether it opens or closes.
			if i%2 == 0 && i+1 < len(quotes) {
				left, right = qi, quotes[i+1]
			} else if i%2 == 1 {
				left, right = quotes[i-1], qi
			}
			break
		}
		if qi < col {
			left = qi
		} else if right < 0 {
			right = qi
		}
	}
	if left < 0 || right < 0 {
		return 0, 0, false
	}
	if include {
		return base + left, base + right + 1, true
	}
	return base + left + 1, base + right, true
}

func findTag(buf Buffer, idx int, include bool) (int, int, bool) {
	text := []rune(sliceAll(buf))
	for i := min(idx, len(text)-1); i >= 0; i-- {
		if text[i] != '<' || (i+1 < len(text) && text[i+1] == '/') {
			continue
		}
		nameEnd := i + 1
		for nameEnd < len(text) && !unicode.IsSpace(text[nameEnd]) && text[nameEnd] != '>' && text[nameEnd] != '/' {
			nameEnd++
		}
		name := string(text[i+1 : nameEnd])
		if name == "" {
			continue
		}
		openEnd := nameEnd
		for openEnd < len(text) && text[openEnd] != '>' {
			openEnd++
		}
		if openEnd >= len(text) {
			continue
		}
		closing := []rune("</" + name + ">")
		closeStart := indexRunes(text, closing, openEnd+1)
		if closeStart < 0 {
			continue
		}
		closeEnd := closeStart + len(closing)
		if closeEnd <= idx {
			continue
		}
		if include {
			return i, closeEnd, true
		}
		return openEnd + 1, closeStart, true
	}
	return 0, 0, false
}

func sliceAll(buf Buffer) string {
	var b strings.Builder
	for i := 0; i < buf.LineCount(); i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(buf.LineRunes(i)))
	}
	return b.String()
}

func indexRunes(text, sub []rune, from int) int {
	for i := from; i+len(sub) <= len(text); i++ {
		match := true
		for j, r := range sub {
			if text[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
