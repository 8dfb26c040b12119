package mode

import (
	"fmt"
	"strings"

	"github.com/samber/mo"
)

// Mode is an editing mode.
type Mode uint8

const (
	Normal Mode = iota
	Insert
	Visual
	VisualLine
	VisualBlock
	Command
	Replace
	Terminal
	OperatorPending
)

var names = [...]string{
	Normal:          "normal",
	Insert:          "insert",
	Visual:          "visual",
	VisualLine:      "visual-line",
	VisualBlock:     "visual-block",
	Command:         "command",
	Replace:         "replace",
	Terminal:        "terminal",
	OperatorPending: "operator-pending",
}

// All lists every mode.
var All = []Mode{Normal, Insert, Visual, VisualLine, VisualBlock, Command, Replace, Terminal, OperatorPending}

// String returns the mode name used in configuration.
func (m Mode) String() string {
	if int(m) < len(names) {
		return names[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// DisplayName returns the status-line label.
func (m Mode) DisplayName() string {
	switch m {
	case Normal:
		return ""
	case OperatorPending:
		return ""
	default:
		return "-- " + strings.ToUpper(strings.ReplaceAll(m.String(), "-", " ")) + " --"
	}
}

// IsVisual reports whether m tracks a selection.
func (m Mode) IsVisual() bool {
	return m == Visual || m == VisualLine || m == VisualBlock
}

// IsInsert reports whether typed characters go into the buffer.
func (m Mode) IsInsert() bool {
	return m == Insert || m == Replace
}

// CursorStyle is the cursor shape a mode asks the display for.
type CursorStyle uint8

const (
	CursorBlock CursorStyle = iota
	CursorBar
	CursorUnderline
)

// CursorStyle returns the cursor shape for m.
func (m Mode) CursorStyle() CursorStyle {
	switch m {
	case Insert, Command, Terminal:
		return CursorBar
	case Replace, OperatorPending:
		return CursorUnderline
	default:
		return CursorBlock
	}
}

// Parse looks a mode up by name. The single-letter Vim map prefixes
// n, i, v, x, c, o and t are accepted too.
func Parse(name string) mo.Option[Mode] {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "n":
		return mo.Some(Normal)
	case "i":
		return mo.Some(Insert)
	case "v", "x":
		return mo.Some(Visual)
	case "c":
		return mo.Some(Command)
	case "o":
		return mo.Some(OperatorPending)
	case "t":
		return mo.Some(Terminal)
	}
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return mo.Some(Mode(i))
		}
	}
	return mo.None[Mode]()
}
