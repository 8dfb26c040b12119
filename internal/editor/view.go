package editor

import (
	"github.com/samber/mo"

	"github.com/dshills/modal/internal/engine/cursor"
	"github.com/dshills/modal/internal/input/mode"
)

// View is the state a renderer draws after each key.
type View struct {
	Mode   mode.Mode
	Cursor cursor.Position

	// Buffer is read-only to renderers.
	Buffer cursor.Buffer

	// CommandLine is the prompt and text being typed in command mode.
	CommandLine string
	// Message is the last status message.
	Message string

	Selection mo.Option[cursor.Selection]

	// PendingKeys echoes a partly typed command.
	PendingKeys string

	// Recording is the register a macro is being recorded into.
	Recording mo.Option[rune]

	// Highlight is the search pattern to highlight, empty when off.
	Highlight string

	ReadOnly bool
}

// Renderer is told to redraw after every processed key.
type Renderer interface {
	Render(View)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(View)

// Render calls f.
func (f RendererFunc) Render(v View) { f(v) }

// TerminalSink receives the keys typed in terminal mode.
type TerminalSink interface {
	Write(text string) error
}

// ExCommand is a parsed command line.
type ExCommand struct {
	// Line is the command line as typed, without the leading ':'.
	Line string
	Name string
	Bang bool
	Args string
	// Range is the inclusive zero based line range, when one was given.
	Range mo.Option[LineSpan]
}

// LineSpan is an inclusive range of lines.
type LineSpan struct {
	First int
	Last  int
}

// CommandExecutor runs ex commands the editor does not implement itself,
// such as :w. It returns ErrUnknownCommand for names it does not know.
type CommandExecutor interface {
	Execute(e *Editor, cmd ExCommand) error
}

// ExecutorFunc adapts a function to CommandExecutor.
type ExecutorFunc func(e *Editor, cmd ExCommand) error

// Execute calls f.
func (f ExecutorFunc) Execute(e *Editor, cmd ExCommand) error { return f(e, cmd) }
