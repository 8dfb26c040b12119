package editor

import (
	"fmt"

	"github.com/samber/mo"

	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/input/macro"
	"github.com/dshills/modal/internal/input/vim"
	"github.com/dshills/modal/internal/register"
)

// selectRegister records the register for the next command. Unknown
// names cancel the command.
func (e *Editor) selectRegister(r rune) error {
	reg, ok := register.FromChar(r).Get()
	if !ok {
		return nil
	}
	e.pending.Register = mo.Some(reg)
	e.keep()
	return nil
}

// macroRecord implements q. While recording it stops, storing the keys
// typed since the recording started, without the q itself.
func (e *Editor) macroRecord(keys key.Sequence) error {
	if e.recorder.IsRecording() {
		e.recorder.Truncate(len(keys))
		reg, seq, err := e.recorder.Stop()
		if err != nil {
			return err
		}
		target := register.FromChar(reg).OrElse(register.UnnamedRegister)
		if err := e.regs.Put(target, register.Macro(seq)); err != nil {
			return fmt.Errorf("store macro: %w", err)
		}
		e.logger.Debug("macro recorded", "register", string(reg), "keys", seq.String())
		return nil
	}
	if e.player.IsPlaying() {
		return nil
	}
	e.pending.Expect(vim.AwaitMacroRecord)
	e.keep()
	return nil
}

func (e *Editor) startRecording(r rune) error {
	if !macro.CanRecordTo(r) {
		return nil
	}
	if err := e.recorder.Start(r); err != nil {
		return err
	}
	e.logger.Debug("macro recording", "register", string(r))
	return nil
}

// playMacro implements @r. @@ plays the last register again and @: repeats
// the last command line.
func (e *Editor) playMacro(r rune) error {
	n := e.pending.TakeCount().OrElse(1)
	if r == '@' {
		last, ok := e.player.Last().Get()
		if !ok {
			return errNoPrevRegister
		}
		r = last
	}
	if r == ':' {
		e.player.SetLast(r)
		return e.repeatEx(n)
	}
	c, ok := e.regs.GetChar(r).Get()
	if !ok || c.IsEmpty() {
		return fmt.Errorf("register %c: %w", r, macro.ErrEmptyRegister)
	}
	if err := e.player.Start(r, c.Sequence(), n); err != nil {
		return err
	}
	e.logger.Debug("macro play", "register", string(r), "count", n, "depth", e.player.Depth())
	return nil
}
