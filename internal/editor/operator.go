package editor

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/samber/mo"

	"github.com/dshills/modal/internal/engine/cursor"
	"github.com/dshills/modal/internal/engine/textobject"
	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/input/mode"
	"github.com/dshills/modal/internal/input/vim"
	"github.com/dshills/modal/internal/register"
)

// operator handles an operator key. In visual modes it applies to the
// selection at once; otherwise it waits for a target. Typing the same
// operator again targets whole lines.
func (e *Editor) operator(op vim.Operator, keys key.Sequence) error {
	switch m := e.modes.Current(); {
	case m.IsVisual():
		return e.visualOperator(op)
	case m == mode.OperatorPending:
		if st, ok := e.pending.Operator.Get(); ok && st.Operator == op {
			return e.operateLines(st)
		}
		e.cancelOperator()
		return nil
	}
	e.pending.StartOperator(op, keys)
	e.modes.Switch(mode.OperatorPending)
	e.keep()
	return nil
}

func (e *Editor) cancelOperator() {
	e.pending.Reset()
	if e.modes.Is(mode.OperatorPending) {
		e.modes.Switch(mode.Normal)
	}
}

// operateLines applies st to count lines starting at the cursor line.
func (e *Editor) operateLines(st vim.OperatorState) error {
	n := e.pending.TargetCount().OrElse(1)
	return e.applyOperator(st.Operator, e.lineRegion(e.cur.Line, e.cur.Line+n-1), 1)
}

// operateMotion applies st to the text between the cursor and where m
// lands. Exclusive motions leave out the character they land on.
func (e *Editor) operateMotion(st vim.OperatorState, m cursor.Motion, count mo.Option[int]) error {
	from := e.cur
	wordMotion := m.Kind == cursor.WordNext || m.Kind == cursor.BigWordNext
	if st.Operator == vim.Change && wordMotion && !e.onBlank(from) {
		return e.changeWord(st.Operator, m.Kind == cursor.BigWordNext, count.OrElse(1))
	}

	to := e.moveBy(m, count, from)
	if m.Linewise() {
		if to.Line == from.Line && isVertical(m.Kind) {
			return nil
		}
		return e.applyOperator(st.Operator, e.lineRegion(from.Line, to.Line), 1)
	}
	if wordMotion && to.Line > from.Line {
		to = e.wordTargetEnd(from, to)
	}
	if to.SamePlace(from) {
		return nil
	}
	start, end := e.idx(from), e.idx(to)
	if end < start {
		start, end = end, start
	}
	if m.Inclusive() {
		end = min(end+1, e.buf.Len())
	}
	return e.applyOperator(st.Operator, charRegion(start, end), 1)
}

func isVertical(k cursor.Kind) bool {
	switch k {
	case cursor.Up, cursor.Down, cursor.ScrollHalfPageDown, cursor.ScrollHalfPageUp,
		cursor.ScrollFullPageDown, cursor.ScrollFullPageUp:
		return true
	}
	return false
}

// wordTargetEnd stops a w motion used as a target at the end of the last
// line it passed over rather than at the next line's first word. From an
// empty line the target is its newline.
func (e *Editor) wordTargetEnd(from, to cursor.Position) cursor.Position {
	line := to.Line - 1
	for line > from.Line && cursor.IsBlank(e.buf, line) {
		line--
	}
	end := cursor.At(line, e.lineLen(line))
	if from.Before(end) {
		return end
	}
	return cursor.At(from.Line+1, 0)
}

// changeWord implements cw and cW, which change to the end of the word
// like ce rather than up to the next word.
func (e *Editor) changeWord(op vim.Operator, big bool, n int) error {
	kind := cursor.WordEnd
	if big {
		kind = cursor.BigWordEnd
	}
	to := e.cur
	for i := 0; i < n; i++ {
		if i == 0 && e.atWordEnd(to, big) {
			continue
		}
		to = cursor.Move(cursor.Motion{Kind: kind}, e.buf, to)
	}
	start := e.idx(e.cur)
	end := min(e.idx(to)+1, e.lineEnd(to.Line))
	return e.applyOperator(op, charRegion(start, max(start, end)), 1)
}

func (e *Editor) onBlank(p cursor.Position) bool {
	line := e.buf.LineRunes(p.Line)
	return p.Column >= len(line) || unicode.IsSpace(line[p.Column])
}

func (e *Editor) atWordEnd(p cursor.Position, big bool) bool {
	line := e.buf.LineRunes(p.Line)
	if p.Column+1 >= len(line) {
		return true
	}
	return charClass(line[p.Column], big) != charClass(line[p.Column+1], big)
}

func charClass(r rune, big bool) int {
	switch {
	case unicode.IsSpace(r):
		return 0
	case big || cursor.IsWordChar(r):
		return 1
	}
	return 2
}

func (e *Editor) awaitTextObject(include bool) error {
	e.pending.Include = include
	e.pending.Expect(vim.AwaitTextObject)
	e.keep()
	return nil
}

// textObject resolves the object named by r for the pending operator or
// the visual selection. Objects that cannot be found cancel silently.
func (e *Editor) textObject(r rune) error {
	kind, ok := textobject.KindForKey(r).Get()
	if !ok {
		return nil
	}
	include := e.pending.Include
	if e.modes.Current().IsVisual() {
		return e.selectObject(kind, include)
	}
	st, ok := e.pending.Operator.Get()
	if !ok {
		return nil
	}
	e.pending.TargetCount()
	rng, ok := textobject.Find(e.buf, e.idx(e.cur), kind, include).Get()
	if !ok {
		return nil
	}
	if kind.Linewise() {
		first := e.pos(rng.Start).Line
		last := e.pos(max(rng.Start, rng.End-1)).Line
		return e.applyOperator(st.Operator, e.lineRegion(first, last), 1)
	}
	if rng.Len() == 0 && st.Operator != vim.Change {
		return nil
	}
	return e.applyOperator(st.Operator, charRegion(rng.Start, rng.End), 1)
}

// applyOperator runs op over r. times repeats shifts in visual mode.
func (e *Editor) applyOperator(op vim.Operator, r region, times int) error {
	reg := e.pending.TakeRegister()
	if op.AlwaysLinewise() {
		r = e.toLines(r)
	}
	e.logger.Debug("operator", "op", op, "kind", r.kind, "start", r.start, "end", r.end,
		"first", r.first, "last", r.last)
	switch op {
	case vim.Delete, vim.Change, vim.Yank:
		return e.cutOrCopy(op, r, reg)
	case vim.ToUpper:
		return e.mapCase(r, strings.ToUpper)
	case vim.ToLower:
		return e.mapCase(r, strings.ToLower)
	case vim.SwapCase:
		return e.mapCase(r, swapCase)
	case vim.Indent:
		return e.shiftLines(r, times)
	case vim.Outdent:
		return e.shiftLines(r, -times)
	case vim.Format:
		return e.format(r)
	case vim.Filter:
		return e.openFilter(r)
	case vim.Fold, vim.Unfold:
		e.SetCursor(cursor.At(r.first, e.cur.Column))
	}
	return nil
}

// cutOrCopy yanks r, and for Delete and Change removes it. Change then
// enters Insert mode at the start of the region.
func (e *Editor) cutOrCopy(op vim.Operator, r region, reg mo.Option[register.Register]) error {
	if sel, ok := reg.Get(); ok && sel.Kind.ReadOnly() {
		return notice(fmt.Sprintf("E354: Invalid register name: '%c'", sel.Char()))
	}
	var (
		content register.Content
		err     error
	)
	switch r.kind {
	case charwise:
		content, err = e.cutChars(op, r)
	case linewise:
		content, err = e.cutLines(op, r)
	case blockwise:
		content, err = e.cutBlock(op, r)
	}
	if err != nil {
		return err
	}

	if op == vim.Yank {
		if err := e.regs.RecordYank(reg, content); err != nil {
			return fmt.Errorf("yank: %w", err)
		}
		if r.kind == linewise && r.last > r.first+1 {
			e.message = fmt.Sprintf("%d lines yanked", r.last-r.first+1)
		}
		e.cur = e.clamp(e.cur)
		return nil
	}
	if err := e.regs.RecordDelete(reg, content); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if op == vim.Change {
		return e.startInsert(mode.Insert, 1, "")
	}
	if r.kind == linewise && r.last > r.first+1 {
		e.message = fmt.Sprintf("%d fewer lines", r.last-r.first+1)
	}
	e.cur = e.clamp(e.cur)
	return nil
}

func (e *Editor) cutChars(op vim.Operator, r region) (register.Content, error) {
	text, err := e.buf.Slice(r.start, r.end)
	if err != nil {
		return register.Content{}, err
	}
	if op != vim.Yank {
		if _, err := e.buf.Delete(r.start, r.end); err != nil {
			return register.Content{}, fmt.Errorf("delete: %w", err)
		}
	}
	e.cur = e.pos(r.start)
	return register.Chars(text), nil
}

// cutLines removes whole lines. A change keeps one empty line to insert
// into; a delete also removes the newline after the last line, or before
// the first when the region ends the buffer.
func (e *Editor) cutLines(op vim.Operator, r region) (register.Content, error) {
	content := register.Content{Style: register.LineWise, Lines: e.lines(r.first, r.last)}
	switch op {
	case vim.Yank:
		if e.cur.Line > r.first {
			e.cur = e.clamp(cursor.At(r.first, e.cur.Column))
		}
		return content, nil
	case vim.Change:
		start, end := e.span(r)
		if _, err := e.buf.Delete(start, end); err != nil {
			return content, fmt.Errorf("change: %w", err)
		}
		e.cur = cursor.At(r.first, 0)
		return content, nil
	}
	start, end := e.lineStart(r.first), e.lineStart(r.last+1)
	if r.last >= e.lastLine() && r.first > 0 {
		start--
	}
	if _, err := e.buf.Delete(start, end); err != nil {
		return content, fmt.Errorf("delete: %w", err)
	}
	e.cur = e.firstNonBlank(min(r.first, e.lastLine()))
	return content, nil
}

func (e *Editor) cutBlock(op vim.Operator, r region) (register.Content, error) {
	content := register.Block(e.blockRows(r))
	if op != vim.Yank {
		for n := r.last; n >= r.first; n-- {
			ls, ll := e.lineStart(n), e.lineLen(n)
			lo, hi := min(r.left, ll), min(r.right, ll)
			if hi <= lo {
				continue
			}
			if _, err := e.buf.Delete(ls+lo, ls+hi); err != nil {
				return content, fmt.Errorf("delete: %w", err)
			}
		}
	}
	e.cur = cursor.At(r.first, min(r.left, e.lineLen(r.first)))
	return content, nil
}

// mapCase rewrites the text of r through f.
func (e *Editor) mapCase(r region, f func(string) string) error {
	replace := func(start, end int) error {
		text, err := e.buf.Slice(start, end)
		if err != nil {
			return err
		}
		if _, err := e.buf.Replace(start, end, f(text)); err != nil {
			return fmt.Errorf("change case: %w", err)
		}
		return nil
	}
	switch r.kind {
	case charwise:
		if err := replace(r.start, r.end); err != nil {
			return err
		}
		e.cur = e.pos(r.start)
	case linewise:
		start, end := e.span(r)
		if err := replace(start, end); err != nil {
			return err
		}
		if e.cur.Line != r.first {
			e.cur = cursor.At(r.first, 0)
		}
	case blockwise:
		for n := r.first; n <= r.last; n++ {
			ls, ll := e.lineStart(n), e.lineLen(n)
			lo, hi := min(r.left, ll), min(r.right, ll)
			if err := replace(ls+lo, ls+hi); err != nil {
				return err
			}
		}
		e.cur = cursor.At(r.first, r.left)
	}
	e.cur = e.clamp(e.cur)
	return nil
}

// shiftLines indents (times > 0) or outdents the lines of r by shift
// width columns per time. Empty lines are left alone.
func (e *Editor) shiftLines(r region, times int) error {
	width := e.shiftWidth * max(times, -times)
	for n := r.last; n >= r.first; n-- {
		line := e.buf.LineRunes(n)
		if len(line) == 0 {
			continue
		}
		ls := e.lineStart(n)
		if times > 0 {
			if err := e.buf.Insert(ls, strings.Repeat(" ", width)); err != nil {
				return fmt.Errorf("shift: %w", err)
			}
			continue
		}
		k := 0
		for cols := 0; k < len(line) && cols < width; k++ {
			if line[k] == '\t' {
				cols += e.shiftWidth
			} else if line[k] == ' ' {
				cols++
			} else {
				break
			}
		}
		if _, err := e.buf.Delete(ls, ls+k); err != nil {
			return fmt.Errorf("shift: %w", err)
		}
	}
	e.cur = e.firstNonBlank(r.first)
	if n := r.last - r.first + 1; n > 2 {
		dir := ">"
		if times < 0 {
			dir = "<"
		}
		e.message = fmt.Sprintf("%d lines %sed %d time", n, dir, max(times, -times))
		if times > 1 || times < -1 {
			e.message += "s"
		}
	}
	return nil
}

// format rewraps each paragraph of r to the text width, keeping the
// indent of its first line. Blank lines separate paragraphs.
func (e *Editor) format(r region) error {
	var (
		out    []string
		words  []string
		indent string
	)
	flush := func() {
		if len(words) == 0 {
			return
		}
		line := indent + words[0]
		for _, w := range words[1:] {
			if runeCount(line)+1+runeCount(w) > e.textWidth {
				out = append(out, line)
				line = indent + w
				continue
			}
			line += " " + w
		}
		out = append(out, line)
		words = nil
	}
	for _, line := range e.lines(r.first, r.last) {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			flush()
			out = append(out, "")
			continue
		}
		if len(words) == 0 {
			indent = line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		}
		words = append(words, fields...)
	}
	flush()

	start, end := e.span(r)
	if _, err := e.buf.Replace(start, end, strings.Join(out, "\n")); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	e.cur = e.firstNonBlank(r.first + len(out) - 1)
	return nil
}

// openFilter starts a command line that filters the lines of r through a
// shell command, as !{motion} does.
func (e *Editor) openFilter(r region) error {
	e.cur = e.clamp(cursor.At(r.first, e.cur.Column))
	rng := "."
	if r.last > r.first {
		rng = fmt.Sprintf(".,.+%d", r.last-r.first)
	}
	e.openCmdline(':', rng+"!", mode.Normal)
	return nil
}
