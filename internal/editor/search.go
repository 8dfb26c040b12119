package editor

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dshills/modal/internal/engine/cursor"
	"github.com/dshills/modal/internal/input/mode"
	"github.com/dshills/modal/internal/register"
)

type searchState struct {
	// pattern is the last pattern as typed.
	pattern string
	re      *regexp.Regexp
	forward bool
	// highlight is cleared by :nohlsearch until the next search.
	highlight bool
}

// openSearch starts a / or ? command line. A pending operator survives
// until the search runs and takes the match as its target.
func (e *Editor) openSearch(forward bool) error {
	prompt := '/'
	if !forward {
		prompt = '?'
	}
	ret := mode.Normal
	if m := e.modes.Current(); m.IsVisual() {
		ret = m
	}
	e.openCmdline(prompt, "", ret)
	e.keep()
	return nil
}

// CompilePattern translates the word boundaries \< and \> and compiles
// the result.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	p := strings.NewReplacer(`\<`, `\b`, `\>`, `\b`).Replace(pattern)
	return regexp.Compile(p)
}

// runSearch searches for pattern, or the last pattern when it is empty.
func (e *Editor) runSearch(pattern string, forward bool) error {
	if pattern == "" {
		if e.search.re == nil {
			return errNoPrevPattern
		}
		pattern = e.search.pattern
	}
	re, err := CompilePattern(pattern)
	if err != nil {
		e.logger.Debug("bad search pattern", "pattern", pattern, "error", err)
		return notice(fmt.Sprintf("E383: Invalid search string: %s", pattern))
	}
	e.search = searchState{pattern: pattern, re: re, forward: forward, highlight: true}
	e.regs.Remember(register.SearchRegister, register.Chars(pattern))
	return e.searchNext(forward)
}

// searchAgain implements n, or N when reverse is set.
func (e *Editor) searchAgain(reverse bool) error {
	if e.search.re == nil {
		return errNoPrevPattern
	}
	e.search.highlight = true
	return e.searchNext(e.search.forward != reverse)
}

// searchWord implements * and #: search for the keyword under or after
// the cursor as a whole word.
func (e *Editor) searchWord(forward bool) error {
	line := e.buf.LineRunes(e.cur.Line)
	start := min(e.cur.Column, len(line))
	for start < len(line) && !cursor.IsWordChar(line[start]) {
		start++
	}
	if start == len(line) {
		return errNoStringUnder
	}
	for start > 0 && cursor.IsWordChar(line[start-1]) {
		start--
	}
	end := start
	for end < len(line) && cursor.IsWordChar(line[end]) {
		end++
	}
	e.cur = cursor.At(e.cur.Line, start)
	return e.runSearch(`\<`+regexp.QuoteMeta(string(line[start:end]))+`\>`, forward)
}

// searchNext moves to the count'th match in the given direction,
// wrapping around the buffer.
func (e *Editor) searchNext(forward bool) error {
	n := e.count().OrElse(1)
	starts := matchStarts(e.search.re, e.buf.String())
	if len(starts) == 0 {
		return notice(fmt.Sprintf("E486: Pattern not found: %s", e.search.pattern))
	}
	at := e.idx(e.cur)
	wrapped := false
	for i := 0; i < n; i++ {
		var w bool
		at, w = nextMatch(starts, at, forward)
		wrapped = wrapped || w
	}
	switch {
	case wrapped && forward:
		e.message = "search hit BOTTOM, continuing at TOP"
	case wrapped:
		e.message = "search hit TOP, continuing at BOTTOM"
	case forward:
		e.message = "/" + e.search.pattern
	default:
		e.message = "?" + e.search.pattern
	}
	return e.jumpTo(e.pos(at), false)
}

// matchStarts returns the character index of every match of re in s.
func matchStarts(re *regexp.Regexp, s string) []int {
	locs := re.FindAllStringIndex(s, -1)
	starts := make([]int, 0, len(locs))
	chars, prev := 0, 0
	for _, loc := range locs {
		chars += utf8.RuneCountInString(s[prev:loc[0]])
		prev = loc[0]
		starts = append(starts, chars)
	}
	return starts
}

// nextMatch picks the first start after at, or the last before it when
// searching backward, and reports whether the search wrapped.
func nextMatch(starts []int, at int, forward bool) (int, bool) {
	if forward {
		for _, s := range starts {
			if s > at {
				return s, false
			}
		}
		return starts[0], true
	}
	for i := len(starts) - 1; i >= 0; i-- {
		if starts[i] < at {
			return starts[i], false
		}
	}
	return starts[len(starts)-1], true
}
