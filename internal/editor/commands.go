package editor

import (
	"fmt"
	"strings"

	"github.com/samber/mo"

	"github.com/dshills/modal/internal/engine/cursor"
	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/input/mode"
	"github.com/dshills/modal/internal/input/vim"
)

type handler func(e *Editor, keys key.Sequence) error

// commands maps keymap command names to handlers. Motions and operators
// are resolved by prefix in execute.
var commands map[string]handler

func init() {
	commands = map[string]handler{
		"motion.repeatFind":        func(e *Editor, _ key.Sequence) error { return e.repeatFind(false) },
		"motion.repeatFindReverse": func(e *Editor, _ key.Sequence) error { return e.repeatFind(true) },

		"mark.set":      awaiting(vim.AwaitMarkSet),
		"mark.jump":     awaiting(vim.AwaitMarkJump),
		"mark.jumpLine": awaiting(vim.AwaitMarkLine),

		"search.forward":      func(e *Editor, _ key.Sequence) error { return e.openSearch(true) },
		"search.backward":     func(e *Editor, _ key.Sequence) error { return e.openSearch(false) },
		"search.next":         func(e *Editor, _ key.Sequence) error { return e.searchAgain(false) },
		"search.prev":         func(e *Editor, _ key.Sequence) error { return e.searchAgain(true) },
		"search.wordForward":  func(e *Editor, _ key.Sequence) error { return e.searchWord(true) },
		"search.wordBackward": func(e *Editor, _ key.Sequence) error { return e.searchWord(false) },

		"mode.normal":          (*Editor).enterNormal,
		"mode.insert":          func(e *Editor, _ key.Sequence) error { return e.beginInsert(insertAtCursor) },
		"mode.append":          func(e *Editor, _ key.Sequence) error { return e.beginInsert(insertAfterCursor) },
		"mode.insertLineStart": func(e *Editor, _ key.Sequence) error { return e.beginInsert(insertLineStart) },
		"mode.appendLineEnd":   func(e *Editor, _ key.Sequence) error { return e.beginInsert(insertLineEnd) },
		"mode.openBelow":       func(e *Editor, _ key.Sequence) error { return e.beginInsert(insertBelow) },
		"mode.openAbove":       func(e *Editor, _ key.Sequence) error { return e.beginInsert(insertAbove) },
		"mode.replace":         (*Editor).beginReplace,
		"mode.visual":          func(e *Editor, _ key.Sequence) error { return e.visual(cursor.Character) },
		"mode.visualLine":      func(e *Editor, _ key.Sequence) error { return e.visual(cursor.Line) },
		"mode.visualBlock":     func(e *Editor, _ key.Sequence) error { return e.visual(cursor.Block) },
		"mode.command":         (*Editor).openCommand,

		"edit.deleteChar":       func(e *Editor, _ key.Sequence) error { return e.deleteChars(false) },
		"edit.deleteCharBefore": func(e *Editor, _ key.Sequence) error { return e.deleteChars(true) },
		"edit.deleteToLineEnd":  func(e *Editor, _ key.Sequence) error { return e.toLineEnd(vim.Delete) },
		"edit.changeToLineEnd":  func(e *Editor, _ key.Sequence) error { return e.toLineEnd(vim.Change) },
		"edit.yankLine":         func(e *Editor, _ key.Sequence) error { return e.wholeLines(vim.Yank) },
		"edit.substitute":       (*Editor).substitute,
		"edit.substituteLine":   func(e *Editor, _ key.Sequence) error { return e.wholeLines(vim.Change) },
		"edit.joinLines":        (*Editor).joinCommand,
		"edit.replaceChar":      awaiting(vim.AwaitReplaceChar),
		"edit.swapCaseChar":     (*Editor).swapCaseChars,

		"paste.after":  func(e *Editor, _ key.Sequence) error { return e.paste(false) },
		"paste.before": func(e *Editor, _ key.Sequence) error { return e.paste(true) },

		"history.undo": func(e *Editor, _ key.Sequence) error { return e.undo(e.pending.TakeCount().OrElse(1)) },
		"history.redo": func(e *Editor, _ key.Sequence) error { return e.redo(e.pending.TakeCount().OrElse(1)) },

		"register.select": awaiting(vim.AwaitRegister),
		"macro.record":    (*Editor).macroRecord,
		"macro.play":      awaiting(vim.AwaitMacroPlay),

		"visual.swapEnds": (*Editor).swapEnds,
		"visual.paste":    (*Editor).visualPaste,

		"textobject.inner":  func(e *Editor, _ key.Sequence) error { return e.awaitTextObject(false) },
		"textobject.around": func(e *Editor, _ key.Sequence) error { return e.awaitTextObject(true) },

		"insert.backspace":          (*Editor).backspace,
		"insert.newline":            (*Editor).newline,
		"insert.tab":                func(e *Editor, _ key.Sequence) error { return e.typeRune('\t') },
		"insert.deleteForward":      (*Editor).deleteForward,
		"insert.deleteWordBackward": (*Editor).deleteWordBackward,
		"insert.deleteLineBackward": (*Editor).deleteLineBackward,

		"cmdline.backspace": (*Editor).cmdlineBackspace,
		"cmdline.execute":   (*Editor).cmdlineExecute,
		"cmdline.clear":     (*Editor).cmdlineClear,
	}
}

// awaiting returns a handler that waits for a character argument.
func awaiting(a vim.Await) handler {
	return func(e *Editor, _ key.Sequence) error {
		e.pending.Expect(a)
		e.keep()
		return nil
	}
}

// KnownCommand reports whether name is a command the editor can execute.
func KnownCommand(name string) bool {
	if _, ok := commands[name]; ok {
		return true
	}
	if motionKind(name).IsPresent() {
		return true
	}
	return vim.OperatorFromCommand(name).IsPresent()
}

// Commands lists every command name.
func Commands() []string {
	names := make([]string, 0, len(commands)+40)
	for name := range commands {
		names = append(names, name)
	}
	for k := cursor.Kind(0); ; k++ {
		name := k.String()
		if strings.HasPrefix(name, "Kind(") {
			break
		}
		names = append(names, "motion."+name)
	}
	for _, op := range vim.Operators() {
		names = append(names, op.Command())
	}
	return names
}

func motionKind(name string) mo.Option[cursor.Kind] {
	rest, ok := strings.CutPrefix(name, "motion.")
	if !ok {
		return mo.None[cursor.Kind]()
	}
	return cursor.KindByName(rest)
}

func (e *Editor) execute(name string, keys key.Sequence) error {
	e.logger.Debug("command", "name", name, "keys", keys.String(), "mode", e.modes.Current())
	if h, ok := commands[name]; ok {
		return h(e, keys)
	}
	if k, ok := motionKind(name).Get(); ok {
		return e.motion(k)
	}
	if op, ok := vim.OperatorFromCommand(name).Get(); ok {
		return e.operator(op, keys)
	}
	e.message = fmt.Sprintf("unknown command: %s", name)
	return nil
}

// count returns the count for the command being completed: the target
// count when an operator is pending, the plain count otherwise.
func (e *Editor) count() mo.Option[int] {
	if e.pending.Operator.IsPresent() {
		return e.pending.TargetCount()
	}
	return e.pending.TakeCount()
}

// handleAwait consumes the character argument of the pending command.
func (e *Editor) handleAwait(ev key.Event) error {
	a := e.pending.Await
	e.pending.Expect(vim.AwaitNone)

	r, ok := argRune(ev)
	if !ok {
		if e.modes.Is(mode.OperatorPending) {
			e.cancelOperator()
		}
		return nil
	}
	switch a {
	case vim.AwaitRegister:
		return e.selectRegister(r)
	case vim.AwaitFindChar:
		m := cursor.Motion{Kind: e.pending.Find, Char: r}
		e.lastFind = mo.Some(m)
		return e.applyMotion(m)
	case vim.AwaitReplaceChar:
		return e.replaceChars(r)
	case vim.AwaitMarkSet:
		return e.setMark(r)
	case vim.AwaitMarkJump:
		return e.jumpToMark(r, false)
	case vim.AwaitMarkLine:
		return e.jumpToMark(r, true)
	case vim.AwaitMacroRecord:
		return e.startRecording(r)
	case vim.AwaitMacroPlay:
		return e.playMacro(r)
	case vim.AwaitTextObject:
		return e.textObject(r)
	}
	return nil
}

// argRune maps the key typed as a command argument to a character. Enter
// and Tab stand for newline and tab.
func argRune(ev key.Event) (rune, bool) {
	switch {
	case ev.IsKey(key.KeyEnter):
		return '\n', true
	case ev.IsKey(key.KeyTab):
		return '\t', true
	case ev.IsPrintable():
		return ev.Rune, true
	}
	return 0, false
}

func (e *Editor) enterNormal(key.Sequence) error {
	if e.modes.Current().IsVisual() {
		e.endVisual()
		return nil
	}
	e.modes.Switch(mode.Normal)
	e.cur = e.clamp(e.cur)
	return nil
}
