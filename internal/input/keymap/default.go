package keymap

import "github.com/dshills/modal/internal/input/mode"

// LoadDefaults registers the built-in keymaps.
func LoadDefaults(r *Registry) error {
	for _, km := range Defaults() {
		if err := r.Register(km); err != nil {
			return err
		}
	}
	return nil
}

// Defaults returns the built-in keymaps. Visual bindings apply to all
// three visual modes.
func Defaults() []*Keymap {
	return []*Keymap{
		defaultKeymap("default-normal", mode.Normal, motionBindings, operatorBindings, normalBindings),
		defaultKeymap("default-visual", mode.Visual, motionBindings, operatorBindings, visualBindings),
		defaultKeymap("default-operator-pending", mode.OperatorPending, motionBindings, operatorBindings, pendingBindings),
		defaultKeymap("default-insert", mode.Insert, insertBindings),
		defaultKeymap("default-replace", mode.Replace, replaceBindings),
		defaultKeymap("default-command", mode.Command, commandBindings),
		defaultKeymap("default-terminal", mode.Terminal, terminalBindings),
	}
}

func defaultKeymap(name string, m mode.Mode, sets ...[]Binding) *Keymap {
	km := &Keymap{Name: name, Mode: m, Priority: PriorityDefault, Source: "default"}
	for _, set := range sets {
		km.Bindings = append(km.Bindings, set...)
	}
	return km
}

var motionBindings = []Binding{
	{Keys: "h", Command: "motion.left"},
	{Keys: "<Left>", Command: "motion.left"},
	{Keys: "<BS>", Command: "motion.left"},
	{Keys: "l", Command: "motion.right"},
	{Keys: "<Right>", Command: "motion.right"},
	{Keys: " ", Command: "motion.right"},
	{Keys: "j", Command: "motion.down"},
	{Keys: "<Down>", Command: "motion.down"},
	{Keys: "k", Command: "motion.up"},
	{Keys: "<Up>", Command: "motion.up"},
	{Keys: "0", Command: "motion.lineStart"},
	{Keys: "<Home>", Command: "motion.lineStart"},
	{Keys: "$", Command: "motion.lineEnd"},
	{Keys: "<End>", Command: "motion.lineEnd"},
	{Keys: "^", Command: "motion.firstNonBlank"},
	{Keys: "w", Command: "motion.wordNext"},
	{Keys: "b", Command: "motion.wordPrev"},
	{Keys: "e", Command: "motion.wordEnd"},
	{Keys: "W", Command: "motion.bigWordNext"},
	{Keys: "B", Command: "motion.bigWordPrev"},
	{Keys: "E", Command: "motion.bigWordEnd"},
	{Keys: "f", Command: "motion.findForward"},
	{Keys: "F", Command: "motion.findBackward"},
	{Keys: "t", Command: "motion.tillForward"},
	{Keys: "T", Command: "motion.tillBackward"},
	{Keys: ";", Command: "motion.repeatFind"},
	{Keys: ",", Command: "motion.repeatFindReverse"},
	{Keys: "%", Command: "motion.matchingBracket"},
	{Keys: "}", Command: "motion.paragraphNext"},
	{Keys: "{", Command: "motion.paragraphPrev"},
	{Keys: "gg", Command: "motion.bufferStart"},
	{Keys: "G", Command: "motion.bufferEnd"},
	{Keys: "<C-d>", Command: "motion.scrollHalfPageDown"},
	{Keys: "<C-u>", Command: "motion.scrollHalfPageUp"},
	{Keys: "<C-f>", Command: "motion.scrollFullPageDown"},
	{Keys: "<PageDown>", Command: "motion.scrollFullPageDown"},
	{Keys: "<C-b>", Command: "motion.scrollFullPageUp"},
	{Keys: "<PageUp>", Command: "motion.scrollFullPageUp"},
	{Keys: "`", Command: "mark.jump"},
	{Keys: "'", Command: "mark.jumpLine"},
	{Keys: "n", Command: "search.next"},
	{Keys: "N", Command: "search.prev"},
	{Keys: "*", Command: "search.wordForward"},
	{Keys: "#", Command: "search.wordBackward"},
}

var operatorBindings = []Binding{
	{Keys: "d", Command: "operator.delete"},
	{Keys: "c", Command: "operator.change"},
	{Keys: "y", Command: "operator.yank"},
	{Keys: ">", Command: "operator.indent"},
	{Keys: "<lt>", Command: "operator.outdent"},
	{Keys: "=", Command: "operator.format"},
	{Keys: "gq", Command: "operator.format"},
	{Keys: "zf", Command: "operator.fold"},
	{Keys: "zd", Command: "operator.unfold"},
	{Keys: "gU", Command: "operator.toUpper"},
	{Keys: "gu", Command: "operator.toLower"},
	{Keys: "g~", Command: "operator.swapCase"},
	{Keys: "!", Command: "operator.filter"},
}

var normalBindings = []Binding{
	{Keys: "i", Command: "mode.insert"},
	{Keys: "<Insert>", Command: "mode.insert"},
	{Keys: "a", Command: "mode.append"},
	{Keys: "I", Command: "mode.insertLineStart"},
	{Keys: "A", Command: "mode.appendLineEnd"},
	{Keys: "o", Command: "mode.openBelow"},
	{Keys: "O", Command: "mode.openAbove"},
	{Keys: "R", Command: "mode.replace"},
	{Keys: "v", Command: "mode.visual"},
	{Keys: "V", Command: "mode.visualLine"},
	{Keys: "<C-v>", Command: "mode.visualBlock"},
	{Keys: ":", Command: "mode.command"},
	{Keys: "/", Command: "search.forward"},
	{Keys: "?", Command: "search.backward"},
	{Keys: "x", Command: "edit.deleteChar"},
	{Keys: "<Del>", Command: "edit.deleteChar"},
	{Keys: "X", Command: "edit.deleteCharBefore"},
	{Keys: "D", Command: "edit.deleteToLineEnd"},
	{Keys: "C", Command: "edit.changeToLineEnd"},
	{Keys: "Y", Command: "edit.yankLine"},
	{Keys: "s", Command: "edit.substitute"},
	{Keys: "S", Command: "edit.substituteLine"},
	{Keys: "J", Command: "edit.joinLines"},
	{Keys: "r", Command: "edit.replaceChar"},
	{Keys: "~", Command: "edit.swapCaseChar"},
	{Keys: "p", Command: "paste.after"},
	{Keys: "P", Command: "paste.before"},
	{Keys: "u", Command: "history.undo"},
	{Keys: "<C-r>", Command: "history.redo"},
	{Keys: `"`, Command: "register.select"},
	{Keys: "q", Command: "macro.record"},
	{Keys: "@", Command: "macro.play"},
	{Keys: "m", Command: "mark.set"},
}

var visualBindings = []Binding{
	{Keys: "v", Command: "mode.visual"},
	{Keys: "V", Command: "mode.visualLine"},
	{Keys: "<C-v>", Command: "mode.visualBlock"},
	{Keys: ":", Command: "mode.command"},
	{Keys: "/", Command: "search.forward"},
	{Keys: "?", Command: "search.backward"},
	{Keys: "o", Command: "visual.swapEnds"},
	{Keys: "i", Command: "textobject.inner"},
	{Keys: "a", Command: "textobject.around"},
	{Keys: "x", Command: "operator.delete"},
	{Keys: "<Del>", Command: "operator.delete"},
	{Keys: "s", Command: "operator.change"},
	{Keys: "U", Command: "operator.toUpper"},
	{Keys: "u", Command: "operator.toLower"},
	{Keys: "~", Command: "operator.swapCase"},
	{Keys: "J", Command: "edit.joinLines"},
	{Keys: "p", Command: "visual.paste"},
	{Keys: "P", Command: "visual.paste"},
	{Keys: `"`, Command: "register.select"},
}

var pendingBindings = []Binding{
	{Keys: "i", Command: "textobject.inner"},
	{Keys: "a", Command: "textobject.around"},
	{Keys: "v", Command: "mode.visual"},
	{Keys: "V", Command: "mode.visualLine"},
	{Keys: "<C-v>", Command: "mode.visualBlock"},
	{Keys: "/", Command: "search.forward"},
	{Keys: "?", Command: "search.backward"},
}

var insertBindings = []Binding{
	{Keys: "<BS>", Command: "insert.backspace"},
	{Keys: "<CR>", Command: "insert.newline"},
	{Keys: "<Tab>", Command: "insert.tab"},
	{Keys: "<Del>", Command: "insert.deleteForward"},
	{Keys: "<C-w>", Command: "insert.deleteWordBackward"},
	{Keys: "<C-u>", Command: "insert.deleteLineBackward"},
	{Keys: "<Left>", Command: "motion.left"},
	{Keys: "<Right>", Command: "motion.right"},
	{Keys: "<Up>", Command: "motion.up"},
	{Keys: "<Down>", Command: "motion.down"},
	{Keys: "<Home>", Command: "motion.lineStart"},
	{Keys: "<End>", Command: "motion.lineEnd"},
	{Keys: "<Insert>", Command: "mode.replace"},
}

var replaceBindings = []Binding{
	{Keys: "<BS>", Command: "insert.backspace"},
	{Keys: "<CR>", Command: "insert.newline"},
	{Keys: "<Left>", Command: "motion.left"},
	{Keys: "<Right>", Command: "motion.right"},
	{Keys: "<Up>", Command: "motion.up"},
	{Keys: "<Down>", Command: "motion.down"},
	{Keys: "<Insert>", Command: "mode.insert"},
}

var commandBindings = []Binding{
	{Keys: "<BS>", Command: "cmdline.backspace"},
	{Keys: "<CR>", Command: "cmdline.execute"},
	{Keys: "<C-u>", Command: "cmdline.clear"},
}

var terminalBindings = []Binding{
	{Keys: `<C-\><C-n>`, Command: "mode.normal"},
}
