package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/samber/mo"

	"github.com/dshills/modal/internal/clock"
	"github.com/dshills/modal/internal/engine/cursor"
	"github.com/dshills/modal/internal/engine/mark"
	"github.com/dshills/modal/internal/engine/text"
	"github.com/dshills/modal/internal/input"
	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/input/keymap"
	"github.com/dshills/modal/internal/input/macro"
	"github.com/dshills/modal/internal/input/mode"
	"github.com/dshills/modal/internal/input/vim"
	"github.com/dshills/modal/internal/register"
)

// Defaults for the options.
const (
	DefaultShiftWidth = 4
	DefaultTextWidth  = 79
)

// Editor is the modal state machine over one buffer. It is not safe for
// concurrent use.
type Editor struct {
	buf   *text.Store
	cur   cursor.Position
	modes *mode.Manager

	registry *keymap.Registry
	resolver *keymap.Resolver
	regs     *register.Store
	marks    *mark.Map
	recorder *macro.Recorder
	player   *macro.Player

	pending vim.Pending
	// hold is set by commands that leave pending state for the next key.
	hold bool

	sel        mo.Option[cursor.Selection]
	lastVisual mo.Option[cursor.Selection]
	lastFind   mo.Option[cursor.Motion]
	lastJump   mo.Option[cursor.Position]
	search     searchState
	cmd        cmdline
	insert     insertSession
	message    string

	clock         clock.Clock
	logger        *slog.Logger
	renderer      Renderer
	clipboard     register.ClipboardProvider
	executor      CommandExecutor
	terminal      TerminalSink
	keyTimeout    time.Duration
	shiftWidth    int
	textWidth     int
	mappingSource string
	mappings      []keymap.Mapping
}

// New creates an editor over buf in Normal mode with the cursor at the
// start of the buffer.
func New(buf *text.Store, opts ...Option) (*Editor, error) {
	e := &Editor{
		buf:        buf,
		modes:      mode.NewManager(),
		registry:   keymap.NewRegistry(),
		regs:       register.NewStore(),
		marks:      mark.NewMap(),
		recorder:   macro.NewRecorder(),
		player:     macro.NewPlayer(),
		clock:      clock.System{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		keyTimeout: keymap.DefaultTimeout,
		shiftWidth: DefaultShiftWidth,
		textWidth:  DefaultTextWidth,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := keymap.LoadDefaults(e.registry); err != nil {
		return nil, fmt.Errorf("load default keymaps: %w", err)
	}
	e.resolver = keymap.NewResolver(e.registry, e.clock, e.keyTimeout)
	if e.clipboard != nil {
		e.regs.SetClipboard(e.clipboard)
	}
	if len(e.mappings) > 0 {
		if err := e.ApplyMappings(e.mappingSource, e.mappings); err != nil {
			e.logger.Warn("user mappings rejected", "source", e.mappingSource, "error", err)
			e.message = err.Error()
		}
	}
	e.modes.OnChange(func(from, to mode.Mode) {
		e.logger.Debug("mode change", "from", from, "to", to)
	})
	e.cur = cursor.Clamp(buf, cursor.At(0, 0), false)
	return e, nil
}

// HandleKey processes one typed key. It is recorded when a macro is being
// recorded.
func (e *Editor) HandleKey(ev key.Event) error {
	e.recorder.Record(ev)
	return e.process(ev)
}

// Replay processes one key produced by the macro player.
func (e *Editor) Replay(ev key.Event) error {
	return e.process(ev)
}

// Run feeds keys from live, interleaving macro playback, until live is
// exhausted or the user quits. Partial key sequences left at the end are
// resolved as if they had timed out. Errors other than ErrQuit are shown
// as messages and do not stop the loop.
func (e *Editor) Run(ctx context.Context, live input.KeySource) error {
	h := func(ev key.Event, replayed bool) error {
		var err error
		if replayed {
			err = e.Replay(ev)
		} else {
			err = e.HandleKey(ev)
		}
		if errors.Is(err, ErrQuit) {
			return err
		}
		return nil
	}
	if err := input.Pump(ctx, e.player, live, h); err != nil {
		return err
	}
	if err := e.Flush(); errors.Is(err, ErrQuit) {
		return err
	}
	return input.Pump(ctx, e.player, input.NewSliceSource(nil), h)
}

// Tick resolves a partial key sequence whose timeout has passed. The event
// loop calls it periodically.
func (e *Editor) Tick() error {
	if !e.resolver.Expired() {
		return nil
	}
	return e.Flush()
}

// Flush resolves any partial key sequence immediately.
func (e *Editor) Flush() error {
	res := e.resolver.Flush()
	if len(res) == 0 {
		return nil
	}
	var err error
	for _, r := range res {
		if err = e.resolve(r); err != nil {
			e.fail(err)
			break
		}
	}
	e.render()
	return visible(err)
}

func (e *Editor) process(ev key.Event) error {
	if e.pending.Idle() && len(e.resolver.Pending()) == 0 {
		e.message = ""
	}
	err := e.dispatch(ev)
	if err != nil {
		e.fail(err)
	}
	e.render()
	return visible(err)
}

// visible drops notices, which have already been shown as messages.
func visible(err error) error {
	var n notice
	if errors.As(err, &n) {
		return nil
	}
	return err
}

func (e *Editor) dispatch(ev key.Event) error {
	m := e.modes.Current()
	if ev.IsEscape() && m != mode.Terminal {
		e.resolver.Reset()
		return e.escape()
	}
	if acceptsCount(m) {
		e.pending.Echo(ev)
	}
	if e.pending.Await != vim.AwaitNone && len(e.resolver.Pending()) == 0 {
		return e.run(func() error { return e.handleAwait(ev) })
	}
	if acceptsCount(m) && len(e.resolver.Pending()) == 0 && ev.IsDigit() &&
		e.pending.Counter().AccumulateDigit(ev.Rune) {
		return nil
	}
	for _, res := range e.resolver.Feed(lookupMode(m), ev) {
		if err := e.resolve(res); err != nil {
			e.resolver.Reset()
			return err
		}
	}
	return nil
}

func (e *Editor) resolve(res keymap.Resolution) error {
	switch {
	case res.Refeed:
		return e.dispatch(res.Keys[0])
	case res.Command != "":
		return e.run(func() error { return e.execute(res.Command, res.Keys) })
	default:
		return e.run(func() error { return e.unmapped(res.Keys[0]) })
	}
}

// run executes one step of a command. Unless the step asked to hold its
// pending state, the pending command is complete afterwards and, outside
// insert modes, closes its undo group.
func (e *Editor) run(step func() error) error {
	e.hold = false
	err := step()
	if err != nil || !e.hold {
		e.pending.Reset()
		if e.modes.Is(mode.OperatorPending) {
			e.modes.Switch(mode.Normal)
		}
	}
	if !e.hold && !e.modes.Current().IsInsert() {
		e.buf.Commit()
	}
	return err
}

// keep marks the pending command as waiting for more keys.
func (e *Editor) keep() { e.hold = true }

func (e *Editor) unmapped(ev key.Event) error {
	switch m := e.modes.Current(); m {
	case mode.Insert, mode.Replace:
		if ev.IsPrintable() {
			return e.typeRune(ev.Rune)
		}
	case mode.Command:
		if ev.IsPrintable() {
			e.cmd.text = append(e.cmd.text, ev.Rune)
			e.keep()
		}
	case mode.Terminal:
		return e.forwardToTerminal(ev)
	case mode.OperatorPending:
		if op, ok := e.pending.Operator.Get(); ok && op.IsLinewiseKey(ev) {
			return e.operateLines(op)
		}
		e.cancelOperator()
	default:
		if m.IsVisual() {
			e.keep()
			e.pending.Reset()
		}
	}
	return nil
}

// escape cancels whatever is pending in the current mode.
func (e *Editor) escape() error {
	e.pending.Reset()
	switch m := e.modes.Current(); {
	case m.IsInsert():
		return e.finishInsert()
	case m.IsVisual():
		e.endVisual()
	case m == mode.Command:
		e.cancelCmdline()
	case m == mode.OperatorPending:
		e.cancelOperator()
	}
	return nil
}

// fail leaves the editor in a consistent state after an error escaped a
// command.
func (e *Editor) fail(err error) {
	if errors.Is(err, ErrQuit) {
		return
	}
	e.logger.Warn("command failed", "mode", e.modes.Current(), "error", err)
	e.message = err.Error()
	e.pending.Reset()
	e.player.Cancel()
	if e.modes.Is(mode.OperatorPending) {
		e.modes.Switch(mode.Normal)
	}
	e.cur = e.clamp(e.cur)
}

func (e *Editor) render() {
	if e.renderer != nil {
		e.renderer.Render(e.View())
	}
}

// View returns the state to draw.
func (e *Editor) View() View {
	v := View{
		Mode:      e.modes.Current(),
		Cursor:    e.cur,
		Buffer:    e.buf,
		Message:   e.message,
		Selection: e.sel,
		Recording: e.recorder.Register(),
		ReadOnly:  e.buf.ReadOnly(),
	}
	if v.Mode == mode.Command {
		v.CommandLine = string(e.cmd.prompt) + string(e.cmd.text)
	}
	if acceptsCount(v.Mode) {
		v.PendingKeys = e.pending.Keys.String()
		if len(v.PendingKeys) == 0 {
			v.PendingKeys = e.resolver.Pending().String()
		}
	}
	if e.search.highlight {
		v.Highlight = e.search.pattern
	}
	return v
}

// Text returns the buffer content.
func (e *Editor) Text() string { return e.buf.String() }

// Buffer returns the text store.
func (e *Editor) Buffer() *text.Store { return e.buf }

// Cursor returns the cursor position.
func (e *Editor) Cursor() cursor.Position { return e.cur }

// SetCursor moves the cursor, clamped for the current mode.
func (e *Editor) SetCursor(p cursor.Position) {
	e.cur = e.clamp(p)
	if s, ok := e.sel.Get(); ok {
		s.UpdateHead(e.cur)
		e.sel = mo.Some(s)
	}
}

// Mode returns the current mode.
func (e *Editor) Mode() mode.Mode { return e.modes.Current() }

// Registers returns the register store.
func (e *Editor) Registers() *register.Store { return e.regs }

// Marks returns the mark map.
func (e *Editor) Marks() *mark.Map { return e.marks }

// Player returns the macro player, a key source while it is playing.
func (e *Editor) Player() *macro.Player { return e.player }

// Recorder returns the macro recorder.
func (e *Editor) Recorder() *macro.Recorder { return e.recorder }

// Keymaps returns the keymap registry.
func (e *Editor) Keymaps() *keymap.Registry { return e.registry }

// Message returns the status message.
func (e *Editor) Message() string { return e.message }

// SetMessage replaces the status message.
func (e *Editor) SetMessage(msg string) { e.message = msg }

// Selection returns the active visual selection.
func (e *Editor) Selection() mo.Option[cursor.Selection] { return e.sel }

// SetKeyTimeout changes the partial key sequence timeout.
func (e *Editor) SetKeyTimeout(d time.Duration) { e.resolver.SetTimeout(d) }

// SetShiftWidth changes the indent width.
func (e *Editor) SetShiftWidth(n int) {
	if n > 0 {
		e.shiftWidth = n
	}
}

// ApplyMappings replaces the user key mappings. Mappings naming unknown
// commands are rejected as a whole.
func (e *Editor) ApplyMappings(source string, mappings []keymap.Mapping) error {
	for _, m := range mappings {
		if !KnownCommand(m.Command) {
			return fmt.Errorf("mapping %s %s: unknown command %q", m.Mode, m.Keys, m.Command)
		}
	}
	if err := keymap.ReplaceUser(e.registry, source, mappings); err != nil {
		return err
	}
	e.resolver.Reset()
	return nil
}

func acceptsCount(m mode.Mode) bool {
	return m == mode.Normal || m == mode.OperatorPending || m.IsVisual()
}

// lookupMode maps a mode to the mode its bindings are registered under.
func lookupMode(m mode.Mode) mode.Mode {
	if m.IsVisual() {
		return mode.Visual
	}
	return m
}
