package text

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/dshills/modal/internal/clock"
	"github.com/dshills/modal/internal/engine/history"
)

// Store is a mutable character sequence with line addressing and an
// undo/redo change log.
type Store struct {
	runes      []rune
	lineStarts []int

	readOnly    bool
	clock       clock.Clock
	undoTimeout time.Duration
	maxUndo     int
	history     *history.History
}

// New creates a store holding s. CRLF and lone CR line endings are
// normalized to LF.
func New(s string, opts ...Option) *Store {
	st := &Store{
		clock:       clock.System{},
		undoTimeout: history.DefaultGroupTimeout,
		maxUndo:     history.DefaultMaxGroups,
	}
	for _, opt := range opts {
		opt(st)
	}
	st.history = history.New(st.clock, st.undoTimeout, st.maxUndo)
	st.runes = []rune(normalizeLineEndings(s))
	st.reindex()
	return st
}

func normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func (s *Store) reindex() {
	s.lineStarts = s.lineStarts[:0]
	s.lineStarts = append(s.lineStarts, 0)
	for i, r := range s.runes {
		if r == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
}

// String returns the full text.
func (s *Store) String() string { return string(s.runes) }

// Len returns the number of characters.
func (s *Store) Len() int { return len(s.runes) }

// LineCount returns the number of lines; never less than one.
func (s *Store) LineCount() int { return len(s.lineStarts) }

// ReadOnly reports whether mutations are refused.
func (s *Store) ReadOnly() bool { return s.readOnly }

// SetReadOnly toggles read-only mode.
func (s *Store) SetReadOnly(ro bool) { s.readOnly = ro }

// History exposes the change log.
func (s *Store) History() *history.History { return s.history }

// LineStart returns the character index where line n begins.
func (s *Store) LineStart(n int) (int, error) {
	if n < 0 || n >= len(s.lineStarts) {
		return 0, fmt.Errorf("line %d: %w", n, ErrInvalidPosition)
	}
	return s.lineStarts[n], nil
}

// LineRunes returns the characters of line n without the trailing
// newline. It returns nil for a line outside the store. The returned
// slice must not be modified.
func (s *Store) LineRunes(n int) []rune {
	if n < 0 || n >= len(s.lineStarts) {
		return nil
	}
	start := s.lineStarts[n]
	end := len(s.runes)
	if n+1 < len(s.lineStarts) {
		end = s.lineStarts[n+1] - 1
	}
	return s.runes[start:end]
}

// Line returns the text of line n without the trailing newline.
func (s *Store) Line(n int) (string, error) {
	if n < 0 || n >= len(s.lineStarts) {
		return "", fmt.Errorf("line %d: %w", n, ErrInvalidPosition)
	}
	return string(s.LineRunes(n)), nil
}

// LineLength returns the number of characters on line n, excluding the
// newline.
func (s *Store) LineLength(n int) (int, error) {
	if n < 0 || n >= len(s.lineStarts) {
		return 0, fmt.Errorf("line %d: %w", n, ErrInvalidPosition)
	}
	return len(s.LineRunes(n)), nil
}

// IsBlankLine reports whether line n holds only whitespace.
func (s *Store) IsBlankLine(n int) bool {
	for _, r := range s.LineRunes(n) {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// PositionToCharIdx converts a line and column to a character index.
// Column may equal the line length, addressing the end of the line.
func (s *Store) PositionToCharIdx(line, col int) (int, error) {
	n, err := s.LineLength(line)
	if err != nil {
		return 0, err
	}
	if col < 0 || col > n {
		return 0, fmt.Errorf("column %d on line %d: %w", col, line, ErrInvalidPosition)
	}
	return s.lineStarts[line] + col, nil
}

// CharIdxToPosition converts a character index in [0, Len] to a line
// and column.
func (s *Store) CharIdxToPosition(idx int) (line, col int, err error) {
	if idx < 0 || idx > len(s.runes) {
		return 0, 0, fmt.Errorf("index %d: %w", idx, ErrInvalidPosition)
	}
	line = sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > idx
	}) - 1
	return line, idx - s.lineStarts[line], nil
}

// RuneAt returns the character at idx.
func (s *Store) RuneAt(idx int) (rune, bool) {
	if idx < 0 || idx >= len(s.runes) {
		return 0, false
	}
	return s.runes[idx], true
}

// Slice returns the text in [start, end).
func (s *Store) Slice(start, end int) (string, error) {
	if err := s.checkRange(start, end); err != nil {
		return "", err
	}
	return string(s.runes[start:end]), nil
}

func (s *Store) checkRange(start, end int) error {
	if start < 0 || end > len(s.runes) || start > end {
		return fmt.Errorf("range [%d, %d): %w", start, end, ErrInvalidPosition)
	}
	return nil
}

// Insert inserts text at idx.
func (s *Store) Insert(idx int, text string) error {
	if s.readOnly {
		return ErrReadOnly
	}
	if idx < 0 || idx > len(s.runes) {
		return fmt.Errorf("insert at %d: %w", idx, ErrInvalidPosition)
	}
	if text == "" {
		return nil
	}
	s.apply(history.NewInsert(idx, text))
	return nil
}

// Delete removes [start, end) and returns the removed text.
func (s *Store) Delete(start, end int) (string, error) {
	if s.readOnly {
		return "", ErrReadOnly
	}
	if err := s.checkRange(start, end); err != nil {
		return "", err
	}
	if start == end {
		return "", nil
	}
	old := string(s.runes[start:end])
	s.apply(history.NewDelete(start, old))
	return old, nil
}

// Replace swaps [start, end) for text and returns the replaced text.
func (s *Store) Replace(start, end int, text string) (string, error) {
	if s.readOnly {
		return "", ErrReadOnly
	}
	if err := s.checkRange(start, end); err != nil {
		return "", err
	}
	old := string(s.runes[start:end])
	if old == text {
		return old, nil
	}
	switch {
	case start == end:
		s.apply(history.NewInsert(start, text))
	case text == "":
		s.apply(history.NewDelete(start, old))
	default:
		s.apply(history.NewReplace(start, old, text))
	}
	return old, nil
}

func (s *Store) apply(c history.Change) {
	s.splice(c)
	s.history.Record(c)
}

// splice rewrites the rune slice for c without touching history.
func (s *Store) splice(c history.Change) {
	end := c.Pos + c.OldLen()
	repl := []rune(c.New)
	out := make([]rune, 0, len(s.runes)-c.OldLen()+len(repl))
	out = append(out, s.runes[:c.Pos]...)
	out = append(out, repl...)
	out = append(out, s.runes[end:]...)
	s.runes = out
	s.reindex()
}

// Commit closes the open undo group.
func (s *Store) Commit() { s.history.Commit() }

// Undo reverts the most recent change group and returns the character
// index the cursor should return to.
func (s *Store) Undo() (int, error) {
	if s.readOnly {
		return 0, ErrReadOnly
	}
	g, err := s.history.Undo()
	if err != nil {
		return 0, err
	}
	for _, c := range g.Inverse().Changes {
		s.splice(c)
	}
	return min(g.Start(), len(s.runes)), nil
}

// Redo reapplies the most recently undone group and returns the
// character index the cursor should move to.
func (s *Store) Redo() (int, error) {
	if s.readOnly {
		return 0, ErrReadOnly
	}
	g, err := s.history.Redo()
	if err != nil {
		return 0, err
	}
	for _, c := range g.Changes {
		s.splice(c)
	}
	return min(g.Start(), len(s.runes)), nil
}
