package editor

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/mo"

	"github.com/dshills/modal/internal/input/keymap"
	"github.com/dshills/modal/internal/input/mode"
	"github.com/dshills/modal/internal/input/vim"
	"github.com/dshills/modal/internal/register"
)

// mapCommands maps the :map family to the mode letter each applies to.
// :map and :noremap apply to Normal, Visual and Operator-pending mode.
var mapCommands = map[string]string{
	"map": "", "no": "", "noremap": "",
	"nm": "n", "nmap": "n", "nn": "n", "nnoremap": "n",
	"im": "i", "imap": "i", "ino": "i", "inoremap": "i",
	"vm": "v", "vmap": "v", "vn": "v", "vnoremap": "v",
	"xm": "x", "xmap": "x", "xn": "x", "xnoremap": "x",
	"om": "o", "omap": "o", "ono": "o", "onoremap": "o",
	"cm": "c", "cmap": "c", "cno": "c", "cnoremap": "c",
	"tma": "t", "tmap": "t", "tno": "t", "tnoremap": "t",
}

type exScanner struct {
	s []rune
	i int
}

func (sc *exScanner) peek() rune {
	if sc.i < len(sc.s) {
		return sc.s[sc.i]
	}
	return 0
}

func (sc *exScanner) skipSpace() {
	for sc.i < len(sc.s) && (sc.s[sc.i] == ' ' || sc.s[sc.i] == '\t') {
		sc.i++
	}
}

func (sc *exScanner) number() (int, bool) {
	start := sc.i
	for sc.i < len(sc.s) && sc.s[sc.i] >= '0' && sc.s[sc.i] <= '9' {
		sc.i++
	}
	if sc.i == start {
		return 0, false
	}
	n, err := strconv.Atoi(string(sc.s[start:sc.i]))
	return n, err == nil
}

// address parses one line address: a number, . $ or 'x, followed by any
// number of +N and -N offsets. Lines are zero based.
func (e *Editor) address(sc *exScanner) (int, bool, error) {
	sc.skipSpace()
	line, ok := e.cur.Line, false
	switch r := sc.peek(); {
	case r == '.':
		sc.i++
		ok = true
	case r == '$':
		sc.i++
		line, ok = e.lastLine(), true
	case r >= '0' && r <= '9':
		n, _ := sc.number()
		line, ok = max(n-1, 0), true
	case r == '\'':
		if sc.i+1 >= len(sc.s) {
			return 0, false, errInvalidRange
		}
		p, found := e.markPosition(sc.s[sc.i+1]).Get()
		if !found {
			return 0, false, errMarkNotSet
		}
		sc.i += 2
		line, ok = p.Line, true
	}
	for {
		sc.skipSpace()
		r := sc.peek()
		if r != '+' && r != '-' {
			break
		}
		sc.i++
		n, has := sc.number()
		if !has {
			n = 1
		}
		if r == '-' {
			n = -n
		}
		line += n
		ok = true
	}
	return line, ok, nil
}

func (e *Editor) parseRange(sc *exScanner) (mo.Option[LineSpan], error) {
	none := mo.None[LineSpan]()
	sc.skipSpace()
	if sc.peek() == '%' {
		sc.i++
		return mo.Some(LineSpan{First: 0, Last: e.lastLine()}), nil
	}
	first, ok, err := e.address(sc)
	if err != nil {
		return none, err
	}
	if !ok && sc.peek() != ',' && sc.peek() != ';' {
		return none, nil
	}
	last := first
	if r := sc.peek(); r == ',' || r == ';' {
		sc.i++
		l, ok, err := e.address(sc)
		if err != nil {
			return none, err
		}
		if ok {
			last = l
		}
	}
	if last < first {
		first, last = last, first
	}
	if first < 0 || last > e.lastLine() {
		return none, errInvalidRange
	}
	return mo.Some(LineSpan{First: first, Last: last}), nil
}

// ParseEx splits a command line into its range, name, bang and arguments.
func (e *Editor) ParseEx(line string) (ExCommand, error) {
	cmd := ExCommand{Line: line}
	sc := &exScanner{s: []rune(strings.TrimLeft(line, ": \t"))}
	rng, err := e.parseRange(sc)
	if err != nil {
		return cmd, err
	}
	cmd.Range = rng
	sc.skipSpace()

	start := sc.i
	switch r := sc.peek(); {
	case unicode.IsLetter(r):
		for unicode.IsLetter(sc.peek()) {
			sc.i++
		}
	case r == '<' || r == '>':
		for sc.peek() == r {
			sc.i++
		}
	case r != 0:
		sc.i++
	}
	cmd.Name = string(sc.s[start:sc.i])
	if sc.i > start && unicode.IsLetter(sc.s[start]) && sc.peek() == '!' {
		cmd.Bang = true
		sc.i++
	}
	cmd.Args = strings.TrimSpace(string(sc.s[sc.i:]))
	return cmd, nil
}

func (e *Editor) executeEx(line string) error {
	cmd, err := e.ParseEx(line)
	if err != nil {
		return err
	}
	e.logger.Debug("ex command", "name", cmd.Name, "args", cmd.Args, "bang", cmd.Bang)
	return e.runEx(cmd)
}

// abbrev reports whether name is full or an abbreviation of it at least n
// characters long.
func abbrev(name, full string, n int) bool {
	return len(name) >= n && strings.HasPrefix(full, name)
}

func (e *Editor) runEx(cmd ExCommand) error {
	span := cmd.Range.OrElse(LineSpan{First: e.cur.Line, Last: e.cur.Line})
	if m, ok := mapCommands[cmd.Name]; ok {
		return e.mapCommand(m, cmd.Args)
	}
	switch n := cmd.Name; {
	case n == "":
		if r, ok := cmd.Range.Get(); ok {
			return e.jumpTo(e.firstNonBlank(r.Last), false)
		}
		return nil
	case abbrev(n, "undo", 1):
		return e.undo(1)
	case abbrev(n, "redo", 3):
		return e.redo(1)
	case abbrev(n, "delete", 1):
		return e.exLines(vim.Delete, span, cmd.Args)
	case abbrev(n, "yank", 1):
		return e.exLines(vim.Yank, span, cmd.Args)
	case abbrev(n, "join", 1):
		first, last := span.First, span.Last
		if c, ok, err := exCount(cmd.Args); err != nil {
			return err
		} else if ok {
			first, last = span.Last, span.Last+c-1
		} else if first == last {
			last++
		}
		return e.join(first, last)
	case n[0] == '>' || n[0] == '<':
		c, ok, err := exCount(cmd.Args)
		if err != nil {
			return err
		}
		if ok {
			span = LineSpan{First: span.Last, Last: span.Last + c - 1}
		}
		times := len(n)
		if n[0] == '<' {
			times = -times
		}
		return e.shiftLines(e.lineRegion(span.First, span.Last), times)
	case abbrev(n, "registers", 3) || abbrev(n, "display", 2):
		e.message = e.listRegisters(cmd.Args)
		return nil
	case n == "marks":
		e.message = e.listMarks()
		return nil
	case abbrev(n, "nohlsearch", 3):
		e.search.highlight = false
		return nil
	case abbrev(n, "quit", 1) || abbrev(n, "qall", 2) || n == "quitall":
		return ErrQuit
	case abbrev(n, "terminal", 3):
		e.modes.Switch(mode.Terminal)
		return nil
	case n == "!":
		return e.shell(cmd)
	case n == "@":
		if cmd.Args != ":" {
			return notice(fmt.Sprintf("E492: Not an editor command: %s", cmd.Line))
		}
		return e.repeatEx(1)
	case abbrev(n, "write", 1):
		return e.write(cmd)
	case n == "wq" || abbrev(n, "xit", 1) || n == "exit":
		if err := e.write(cmd); err != nil {
			return err
		}
		return ErrQuit
	}
	return e.delegate(cmd)
}

// exCount parses the optional count argument of a line command.
func exCount(args string) (int, bool, error) {
	if args == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(args)
	if err != nil || n < 1 {
		return 0, false, notice(fmt.Sprintf("E488: Trailing characters: %s", args))
	}
	return n, true, nil
}

// exLines implements :d and :y with an optional register and count. The
// count starts at the last line of the range.
func (e *Editor) exLines(op vim.Operator, span LineSpan, args string) error {
	reg := mo.None[register.Register]()
	if args != "" && !unicode.IsDigit(rune(args[0])) {
		r, size := utf8.DecodeRuneInString(args)
		rg, ok := register.FromChar(r).Get()
		if !ok {
			return notice(fmt.Sprintf("E488: Trailing characters: %s", args))
		}
		reg = mo.Some(rg)
		args = strings.TrimSpace(args[size:])
	}
	n, ok, err := exCount(args)
	if err != nil {
		return err
	}
	if ok {
		span = LineSpan{First: span.Last, Last: span.Last + n - 1}
	}
	at := e.cur
	if err := e.cutOrCopy(op, e.lineRegion(span.First, span.Last), reg); err != nil {
		return err
	}
	if op == vim.Yank {
		e.cur = at
	}
	return nil
}

func (e *Editor) listRegisters(filter string) string {
	var b strings.Builder
	b.WriteString("--- Registers ---")
	for _, r := range e.regs.Names() {
		if filter != "" && !strings.ContainsRune(filter, r) {
			continue
		}
		c, ok := e.regs.GetChar(r).Get()
		if !ok || c.IsEmpty() {
			continue
		}
		fmt.Fprintf(&b, "\n\"%c   %s", r, controlChars.Replace(c.String()))
	}
	return b.String()
}

var controlChars = strings.NewReplacer("\n", "^J", "\t", "^I")

func (e *Editor) listMarks() string {
	var b strings.Builder
	b.WriteString("mark line  col text")
	for _, r := range e.marks.Names() {
		mk, _ := e.marks.Get(r).Get()
		text := ""
		if mk.Line <= e.lastLine() {
			text = strings.TrimSpace(string(e.buf.LineRunes(mk.Line)))
		}
		fmt.Fprintf(&b, "\n %c %6d %4d %s", r, mk.Line+1, mk.Column, text)
	}
	return b.String()
}

// mapCommand implements the :map family. Without a command it lists the
// user mappings of the mode.
func (e *Editor) mapCommand(m, args string) error {
	modes := []string{m}
	if m == "" {
		modes = []string{"n", "v", "o"}
	}
	fields := strings.Fields(args)
	switch len(fields) {
	case 0, 1:
		prefix := ""
		if len(fields) == 1 {
			prefix = fields[0]
		}
		e.message = e.listMappings(modes, prefix)
		return nil
	case 2:
	default:
		return notice("E474: Invalid argument")
	}
	lhs, command := fields[0], fields[1]
	if !KnownCommand(command) {
		return notice(fmt.Sprintf("unknown command: %s", command))
	}
	for _, md := range modes {
		if err := keymap.AddUser(e.registry, keymap.Mapping{Mode: md, Keys: lhs, Command: command}); err != nil {
			return notice(fmt.Sprintf("E474: Invalid argument: %v", err))
		}
	}
	e.resolver.Reset()
	return nil
}

func (e *Editor) listMappings(modes []string, prefix string) string {
	var lines []string
	for _, m := range modes {
		md, ok := mode.Parse(m).Get()
		if !ok {
			continue
		}
		km := e.registry.Get(keymap.UserKeymapName(md))
		if km == nil {
			continue
		}
		for _, b := range km.Bindings {
			if strings.HasPrefix(b.Keys, prefix) {
				lines = append(lines, fmt.Sprintf("%s  %-10s %s", m, b.Keys, b.Command))
			}
		}
	}
	if len(lines) == 0 {
		return "No mapping found"
	}
	return strings.Join(lines, "\n")
}

// shell implements :!cmd. With a range the lines are filtered through the
// command; without one its output becomes the message.
func (e *Editor) shell(cmd ExCommand) error {
	if cmd.Args == "" {
		return notice("E471: Argument required")
	}
	r, ok := cmd.Range.Get()
	if !ok {
		out, err := exec.Command("sh", "-c", cmd.Args).CombinedOutput()
		e.message = strings.TrimRight(string(out), "\n")
		if err != nil {
			e.logger.Debug("shell command failed", "command", cmd.Args, "error", err)
			if e.message == "" {
				e.message = fmt.Sprintf("shell returned: %v", err)
			}
		}
		return nil
	}
	start, end := e.span(e.lineRegion(r.First, r.Last))
	input, err := e.buf.Slice(start, end)
	if err != nil {
		return err
	}
	c := exec.Command("sh", "-c", cmd.Args)
	c.Stdin = strings.NewReader(input + "\n")
	out, err := c.Output()
	if err != nil {
		return notice(fmt.Sprintf("shell returned: %v", err))
	}
	if _, err := e.buf.Replace(start, end, strings.TrimSuffix(string(out), "\n")); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	e.cur = e.firstNonBlank(r.First)
	e.message = fmt.Sprintf("%d lines filtered", r.Last-r.First+1)
	return nil
}

// write hands :w to the executor, named "write" whichever form was typed.
func (e *Editor) write(cmd ExCommand) error {
	if e.executor == nil {
		return errNoFileName
	}
	cmd.Name = "write"
	return e.delegate(cmd)
}

func (e *Editor) delegate(cmd ExCommand) error {
	unknown := notice(fmt.Sprintf("E492: Not an editor command: %s", strings.TrimSpace(cmd.Line)))
	if e.executor == nil {
		return unknown
	}
	err := e.executor.Execute(e, cmd)
	if errors.Is(err, ErrUnknownCommand) {
		return unknown
	}
	return err
}

// repeatEx runs the last command line again n times.
func (e *Editor) repeatEx(n int) error {
	c, ok := e.regs.Get(register.CommandRegister).Get()
	if !ok || c.IsEmpty() {
		return errNoPrevCommand
	}
	for i := 0; i < n; i++ {
		if err := e.executeEx(c.String()); err != nil {
			return err
		}
	}
	return nil
}
