package terminal

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/samber/mo"

	"github.com/dshills/modal/internal/editor"
	"github.com/dshills/modal/internal/engine/cursor"
	"github.com/dshills/modal/internal/input/mode"
)

// TabWidth is the display width of a tab stop.
const TabWidth = 8

var (
	styleText      = tcell.StyleDefault
	styleSelection = tcell.StyleDefault.Reverse(true)
	styleMatch     = tcell.StyleDefault.Underline(true)
	styleFiller    = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleStatus    = tcell.StyleDefault.Bold(true)
)

// Screen draws editor views on a tcell screen. It keeps the cursor line in
// view by scrolling.
type Screen struct {
	screen tcell.Screen
	top    int

	// the compiled highlight pattern, cached by its source
	pattern string
	re      *regexp.Regexp
}

// NewScreen creates a renderer over an initialized screen.
func NewScreen(screen tcell.Screen) *Screen {
	return &Screen{screen: screen}
}

// Render implements editor.Renderer.
func (s *Screen) Render(v editor.View) {
	s.screen.Clear()
	width, height := s.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}

	status := statusLines(v)
	rows := max(height-len(status), 1)
	s.scroll(v.Cursor.Line, rows)
	re := s.highlight(v.Highlight)

	cx, cy := 0, 0
	for y := 0; y < rows; y++ {
		n := s.top + y
		if n >= v.Buffer.LineCount() {
			s.screen.SetContent(0, y, '~', nil, styleFiller)
			continue
		}
		line := v.Buffer.LineRunes(n)
		s.drawLine(y, n, line, v.Selection, matchedColumns(re, line), width)
		if n == v.Cursor.Line {
			cx, cy = min(displayColumn(line, v.Cursor.Column), width-1), y
		}
	}

	for i, text := range status {
		y := height - len(status) + i
		if y < 0 {
			continue
		}
		drawString(s.screen, 0, y, text, width, styleStatus)
	}
	if v.Mode == mode.Command {
		cy = height - 1
		cx = min(runewidth.StringWidth(v.CommandLine), width-1)
	}
	s.screen.ShowCursor(cx, cy)
	s.screen.Show()
}

// scroll moves the first visible line so that line is in view.
func (s *Screen) scroll(line, rows int) {
	if line < s.top {
		s.top = line
	}
	if line >= s.top+rows {
		s.top = line - rows + 1
	}
}

func (s *Screen) highlight(pattern string) *regexp.Regexp {
	if pattern == "" {
		return nil
	}
	if pattern != s.pattern {
		s.pattern = pattern
		s.re, _ = editor.CompilePattern(pattern)
	}
	return s.re
}

// drawLine draws buffer line n on row y, cut at the screen width.
func (s *Screen) drawLine(y, n int, line []rune, sel mo.Option[cursor.Selection], matches map[int]bool, width int) {
	x := 0
	for col, r := range line {
		style := styleText
		if matches[col] {
			style = styleMatch
		}
		if sv, ok := sel.Get(); ok && sv.Contains(cursor.At(n, col)) {
			style = styleSelection
		}
		w := runeWidth(r, x)
		if x+w > width {
			break
		}
		if r == '\t' {
			for i := 0; i < w; i++ {
				s.screen.SetContent(x+i, y, ' ', nil, style)
			}
		} else {
			s.screen.SetContent(x, y, r, nil, style)
		}
		x += w
	}
}

// runeWidth returns the columns r takes when drawn at column x.
func runeWidth(r rune, x int) int {
	if r == '\t' {
		return TabWidth - x%TabWidth
	}
	return max(runewidth.RuneWidth(r), 1)
}

// displayColumn converts a character column to a screen column.
func displayColumn(line []rune, col int) int {
	x := 0
	for i := 0; i < col && i < len(line); i++ {
		x += runeWidth(line[i], x)
	}
	return x
}

// matchedColumns returns the character columns covered by matches of re.
func matchedColumns(re *regexp.Regexp, line []rune) map[int]bool {
	if re == nil {
		return nil
	}
	text := string(line)
	var cols map[int]bool
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if cols == nil {
			cols = make(map[int]bool)
		}
		start := len([]rune(text[:loc[0]]))
		end := start + len([]rune(text[loc[0]:loc[1]]))
		for c := start; c < end; c++ {
			cols[c] = true
		}
	}
	return cols
}

// statusLines returns the bottom lines: the command line, a message
// (possibly several lines) or the mode line.
func statusLines(v editor.View) []string {
	if v.Mode == mode.Command {
		return []string{v.CommandLine}
	}
	if v.Message != "" {
		return strings.Split(v.Message, "\n")
	}
	left := v.Mode.DisplayName()
	if r, ok := v.Recording.Get(); ok {
		left = strings.TrimSpace(left + " recording @" + string(r))
	}
	if v.ReadOnly {
		left = strings.TrimSpace(left + " [readonly]")
	}
	right := fmt.Sprintf("%d,%d", v.Cursor.Line+1, v.Cursor.Column+1)
	if v.PendingKeys != "" {
		right = v.PendingKeys + "  " + right
	}
	return []string{left + "\t" + right}
}

// drawString draws text from column x, truncated to width. A tab splits
// the text into a left part and a right-aligned part.
func drawString(screen tcell.Screen, x, y int, text string, width int, style tcell.Style) {
	left, right, split := strings.Cut(text, "\t")
	left = runewidth.Truncate(left, width-x, "…")
	put := func(x int, s string) {
		for _, r := range s {
			screen.SetContent(x, y, r, nil, style)
			x += max(runewidth.RuneWidth(r), 1)
		}
	}
	put(x, left)
	if !split {
		return
	}
	rw := runewidth.StringWidth(right)
	if lw := runewidth.StringWidth(left); x+lw+1+rw <= width {
		put(width-rw, right)
	}
}
