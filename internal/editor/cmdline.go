package editor

import (
	"fmt"
	"strings"

	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/input/mode"
	"github.com/dshills/modal/internal/register"
)

// cmdline is the line being typed after :, / or ?.
type cmdline struct {
	prompt rune
	text   []rune
	// ret is the mode to go back to when the line is done.
	ret mode.Mode
}

func (e *Editor) openCmdline(prompt rune, text string, ret mode.Mode) {
	e.cmd = cmdline{prompt: prompt, text: []rune(text), ret: ret}
	e.modes.Switch(mode.Command)
}

// openCommand implements :. From visual mode the line starts with the
// selected range; with a count, with count lines from the cursor.
func (e *Editor) openCommand(key.Sequence) error {
	text := ""
	switch n, ok := e.pending.TakeCount().Get(); {
	case e.modes.Current().IsVisual():
		e.endVisual()
		text = "'<,'>"
	case ok && n > 1:
		text = fmt.Sprintf(".,.+%d", n-1)
	case ok:
		text = "."
	}
	e.openCmdline(':', text, mode.Normal)
	return nil
}

func (e *Editor) cancelCmdline() {
	ret := e.cmd.ret
	e.cmd = cmdline{}
	e.modes.Switch(ret)
	e.cur = e.clamp(e.cur)
}

// cmdlineBackspace deletes the last character; on an empty line it
// leaves command mode.
func (e *Editor) cmdlineBackspace(key.Sequence) error {
	if len(e.cmd.text) == 0 {
		e.cancelCmdline()
		return nil
	}
	e.cmd.text = e.cmd.text[:len(e.cmd.text)-1]
	e.keep()
	return nil
}

func (e *Editor) cmdlineClear(key.Sequence) error {
	e.cmd.text = e.cmd.text[:0]
	e.keep()
	return nil
}

// cmdlineExecute runs the line as a search or an ex command.
func (e *Editor) cmdlineExecute(key.Sequence) error {
	c := e.cmd
	e.cmd = cmdline{}
	e.modes.Switch(c.ret)
	line := string(c.text)
	switch c.prompt {
	case '/', '?':
		return e.runSearch(line, c.prompt == '/')
	}
	if strings.TrimSpace(line) == "" {
		e.cur = e.clamp(e.cur)
		return nil
	}
	if !strings.HasPrefix(strings.TrimLeft(line, ": \t"), "@") {
		e.regs.Remember(register.CommandRegister, register.Chars(line))
	}
	return e.executeEx(line)
}

// forwardToTerminal sends a key typed in terminal mode to the sink as the
// bytes a terminal would receive.
func (e *Editor) forwardToTerminal(ev key.Event) error {
	if e.terminal == nil {
		return nil
	}
	var s string
	switch {
	case ev.IsPrintable():
		s = string(ev.Rune)
	case ev.IsRune() && ev.Modifiers.Has(key.ModCtrl) && ev.Rune >= 'a' && ev.Rune <= 'z':
		s = string(ev.Rune & 0x1f)
	case ev.IsKey(key.KeyEnter):
		s = "\r"
	case ev.IsKey(key.KeyBackspace):
		s = "\x7f"
	case ev.IsKey(key.KeyTab):
		s = "\t"
	case ev.IsKey(key.KeyEscape):
		s = "\x1b"
	default:
		return nil
	}
	if err := e.terminal.Write(s); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	return nil
}
