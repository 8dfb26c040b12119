package editor

import (
	"log/slog"
	"time"

	"github.com/dshills/modal/internal/clock"
	"github.com/dshills/modal/internal/input/keymap"
	"github.com/dshills/modal/internal/register"
)

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock sets the clock used for key sequence timeouts.
func WithClock(c clock.Clock) Option {
	return func(e *Editor) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithKeyTimeout sets how long a partial key sequence waits.
func WithKeyTimeout(d time.Duration) Option {
	return func(e *Editor) {
		if d > 0 {
			e.keyTimeout = d
		}
	}
}

// WithRenderer sets the renderer told to redraw after each key.
func WithRenderer(r Renderer) Option {
	return func(e *Editor) { e.renderer = r }
}

// WithClipboard routes the + and * registers through p.
func WithClipboard(p register.ClipboardProvider) Option {
	return func(e *Editor) { e.clipboard = p }
}

// WithExecutor handles ex commands the editor does not know.
func WithExecutor(x CommandExecutor) Option {
	return func(e *Editor) { e.executor = x }
}

// WithTerminal sets the sink for terminal mode keys.
func WithTerminal(t TerminalSink) Option {
	return func(e *Editor) { e.terminal = t }
}

// WithMappings loads user key mappings on top of the defaults.
func WithMappings(source string, mappings []keymap.Mapping) Option {
	return func(e *Editor) {
		e.mappingSource = source
		e.mappings = append(e.mappings, mappings...)
	}
}

// WithShiftWidth sets the indent width of > and <.
func WithShiftWidth(n int) Option {
	return func(e *Editor) {
		if n > 0 {
			e.shiftWidth = n
		}
	}
}

// WithTextWidth sets the line width gq wraps to.
func WithTextWidth(n int) Option {
	return func(e *Editor) {
		if n > 0 {
			e.textWidth = n
		}
	}
}

// WithRegisters shares a register store between editors.
func WithRegisters(s *register.Store) Option {
	return func(e *Editor) {
		if s != nil {
			e.regs = s
		}
	}
}
