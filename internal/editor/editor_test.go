package editor

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/modal/internal/clock"
	"github.com/dshills/modal/internal/engine/text"
	"github.com/dshills/modal/internal/input"
	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/input/keymap"
	"github.com/dshills/modal/internal/input/macro"
	"github.com/dshills/modal/internal/input/mode"
	"github.com/dshills/modal/internal/register"
)

func newTestEditor(t *testing.T, content string, opts ...Option) *Editor {
	t.Helper()
	e, err := New(text.New(content), opts...)
	require.NoError(t, err)
	return e
}

func feed(t *testing.T, e *Editor, keys string) {
	t.Helper()
	for _, ev := range key.MustParseSequence(keys) {
		require.NoError(t, e.HandleKey(ev), "key %s of %q", ev, keys)
	}
}

func run(t *testing.T, e *Editor, keys string) error {
	t.Helper()
	return e.Run(context.Background(), input.NewSliceSource(key.MustParseSequence(keys)))
}

func assertCursor(t *testing.T, e *Editor, line, col int) {
	t.Helper()
	assert.Equal(t, line, e.Cursor().Line, "line")
	assert.Equal(t, col, e.Cursor().Column, "column")
}

func regText(e *Editor, r rune) string {
	c, ok := e.Registers().GetChar(r).Get()
	if !ok {
		return "<none>"
	}
	return c.String()
}

func TestVisualDeleteHelloWorld(t *testing.T) {
	e := newTestEditor(t, "Hello, world!")
	feed(t, e, "0llvllld")

	assert.Equal(t, "He, world!", e.Text())
	assert.Equal(t, mode.Normal, e.Mode())
	assertCursor(t, e, 0, 2)
}

func TestNormalCommands(t *testing.T) {
	tests := []struct {
		name string
		text string
		keys string
		want string
	}{
		{"dd", "one\ntwo\nthree", "dd", "two\nthree"},
		{"count dd", "a\nb\nc\nd", "3dd", "d"},
		{"dd last line", "a\nb", "jdd", "a"},
		{"dw", "foo bar baz", "dw", "bar baz"},
		{"counts multiply", "a b c d e f g h", "2d3w", "g h"},
		{"dw last word", "foo bar", "wdw", "foo "},
		{"cw stops at word end", "foo bar", "cwX<Esc>", "X bar"},
		{"dtc", "abcabc", "dtc", "cabc"},
		{"dfc", "abcabc", "dfc", "abc"},
		{"x", "abcd", "x", "bcd"},
		{"count x", "abcd", "3x", "d"},
		{"X", "abcd", "$X", "abd"},
		{"D", "hello world", "wD", "hello "},
		{"C", "hello world", "wCthere<Esc>", "hello there"},
		{"yyp", "a\nb", "yyp", "a\na\nb"},
		{"ddp", "a\nb\nc", "ddp", "b\na\nc"},
		{"xp", "ab", "xp", "ba"},
		{"yiwP", "foo bar", "yiwP", "foofoo bar"},
		{"J", "a\n  b", "J", "a b"},
		{"count J", "a\nb\nc", "3J", "a b c"},
		{"~", "abc", "~", "Abc"},
		{"r", "abc", "rx", "xbc"},
		{"count r", "abcd", "3rx", "xxxd"},
		{"gUiw", "foo bar", "gUiw", "FOO bar"},
		{"guiw", "FOO BAR", "wguiw", "FOO bar"},
		{"diw", "foo bar", "wdiw", "foo "},
		{"daw", "foo bar baz", "wdaw", "foo baz"},
		{"ci(", "f(a, b)", "faci(x<Esc>", "f(x)"},
		{">>", "a", ">>", "    a"},
		{"<<", "        a", "<lt><lt>", "    a"},
		{"o", "a", "ofoo<Esc>", "a\nfoo"},
		{"O", "a", "Ofoo<Esc>", "foo\na"},
		{"A", "ab", "Ax<Esc>", "abx"},
		{"I", "  ab", "Ix<Esc>", "  xab"},
		{"count insert", "", "3ix<Esc>", "xxx"},
		{"insert backspace", "abc", "A<BS><Esc>", "ab"},
		{"insert ctrl-w", "foo bar", "A<C-w><Esc>", "foo "},
		{"replace mode", "abc", "Rxy<Esc>", "xyc"},
		{"replace backspace restores", "abc", "Rxy<BS><BS><Esc>", "abc"},
		{"s", "abc", "sX<Esc>", "Xbc"},
		{"S", "abc\ndef", "Sx<Esc>", "x\ndef"},
		{"cc keeps a line", "abc\ndef", "ccx<Esc>", "x\ndef"},
		{"d'a", "a\nb\nc\nd", "jmajjd'a", "a"},
		{"dj", "a\nb\nc", "dj", "c"},
		{"dG", "a\nb\nc", "jdG", "a"},
		{"dk at top is a no-op", "a\nb", "dk", "a\nb"},
		{"unknown target cancels", "abc", "dzx", "bc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(t, tt.text)
			feed(t, e, tt.keys)
			assert.Equal(t, tt.want, e.Text())
			assert.Equal(t, mode.Normal, e.Mode())
		})
	}
}

func TestMotions(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		keys      string
		line, col int
	}{
		{"count l", "abcdef", "3l", 0, 3},
		{"l stops at line end", "abc", "10l", 0, 2},
		{"w", "foo bar", "w", 0, 4},
		{"e", "foo bar", "e", 0, 2},
		{"b", "foo bar", "$b", 0, 4},
		{"$", "foo bar", "$", 0, 6},
		{"0 is a motion", "abcdef", "$0", 0, 0},
		{"f", "abcabc", "fc", 0, 2},
		{"repeat find", "abcabc", "fc;", 0, 5},
		{"reverse find", "abcabc", "fc;,", 0, 2},
		{"G", "a\nb\nc", "G", 2, 0},
		{"count G", "a\nb\nc", "2G", 1, 0},
		{"gg", "a\nb\nc", "Ggg", 0, 0},
		{"percent", "(a)", "%", 0, 2},
		{"preferred column", "abcd\na\nabcd", "$jj", 2, 3},
		{"mark jump", "abc\ndef", "lmaj`a", 0, 1},
		{"mark line jump", "  abc\ndef", "$maj'a", 0, 2},
		{"back to last jump", "a\nb\nc", "G``", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(t, tt.text)
			feed(t, e, tt.keys)
			assertCursor(t, e, tt.line, tt.col)
		})
	}
}

func TestInsertEscapeKeepsCursor(t *testing.T) {
	e := newTestEditor(t, "abc")
	feed(t, e, "ix<Esc>")

	assert.Equal(t, "xabc", e.Text())
	assertCursor(t, e, 0, 1)
	assert.Equal(t, "x", regText(e, '.'))
}

func TestEditorMaintainedRegistersSkipUnnamed(t *testing.T) {
	e := newTestEditor(t, "foo bar")
	feed(t, e, "/bar<CR>ahi<Esc>:nohlsearch<CR>")

	assert.Equal(t, "bar", regText(e, '/'))
	assert.Equal(t, "hi", regText(e, '.'))
	assert.Equal(t, "nohlsearch", regText(e, ':'))
	assert.Equal(t, "<none>", regText(e, '"'))
}

func TestRegisterDuality(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		keys   string
		reg    rune
		want   string
		absent []rune
	}{
		{"yank", "one\ntwo", "yy", '0', "one\n", nil},
		{"named yank", "one\ntwo", `"ayy`, 'a', "one\n", []rune{'0'}},
		{"line delete", "one\ntwo", "dd", '1', "one\n", []rune{'-'}},
		{"named delete", "one\ntwo", `"bdd`, 'b', "one\n", nil},
		{"small delete", "foo bar", "dw", '-', "foo ", []rune{'1'}},
		{"char yank", "foo bar", "yw", '0', "foo ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(t, tt.text)
			feed(t, e, tt.keys)
			assert.Equal(t, tt.want, regText(e, tt.reg))
			assert.Equal(t, regText(e, tt.reg), regText(e, '"'))
			for _, r := range tt.absent {
				assert.False(t, e.Registers().GetChar(r).IsPresent(), string(r))
			}
		})
	}
}

func TestBlackHoleDelete(t *testing.T) {
	e := newTestEditor(t, "one\ntwo")
	feed(t, e, `yy"_dd`)

	assert.Equal(t, "two", e.Text())
	assert.Equal(t, "one\n", regText(e, '"'))
}

func TestAppendRegister(t *testing.T) {
	e := newTestEditor(t, "foo bar")
	feed(t, e, `"ayiww"Ayiw`)

	assert.Equal(t, "foobar", regText(e, 'a'))
}

func TestReadOnlyRegisterRejected(t *testing.T) {
	e := newTestEditor(t, "foo")
	feed(t, e, `".yy`)

	assert.Contains(t, e.Message(), "E354")
	assert.Equal(t, mode.Normal, e.Mode())
}

func TestOperatorEscapeCancels(t *testing.T) {
	ops := []string{"d", "c", "y", ">", "<lt>", "=", "gq", "zf", "zd", "gU", "gu", "g~", "!"}
	for _, op := range ops {
		t.Run(op, func(t *testing.T) {
			e := newTestEditor(t, "abc\ndef")
			feed(t, e, "2"+op)
			assert.Equal(t, mode.OperatorPending, e.Mode())

			feed(t, e, "<Esc>")
			assert.Equal(t, mode.Normal, e.Mode())
			assert.Equal(t, "abc\ndef", e.Text())
			assert.Empty(t, e.View().PendingKeys)

			feed(t, e, "<Esc>")
			assert.Equal(t, mode.Normal, e.Mode())

			// The count was dropped with the operator.
			feed(t, e, "x")
			assert.Equal(t, "bc\ndef", e.Text())
		})
	}
}

func TestVisualModes(t *testing.T) {
	tests := []struct {
		name string
		text string
		keys string
		want string
	}{
		{"line delete", "a\nb\nc", "Vjd", "c"},
		{"block delete", "abc\ndef", "<C-v>jld", "bc\nef"},
		{"inner word", "foo bar", "viwd", " bar"},
		{"upper", "foo bar", "veU", "FOo bar"},
		{"paste over", "foo bar", "yiwwviwp", "foo foo"},
		{"line paste over", "a\nb", "yyjVp", "a\na"},
		{"indent", "a\nb", "Vj>", "    a\n    b"},
		{"join", "a\nb\nc", "VjjJ", "a b c"},
		{"operator then v", "abc", "dvlld", "c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(t, tt.text)
			feed(t, e, tt.keys)
			assert.Equal(t, tt.want, e.Text())
			assert.Equal(t, mode.Normal, e.Mode())
			assert.False(t, e.Selection().IsPresent())
		})
	}
}

func TestBlockSelectionEndsBeforeHeadColumn(t *testing.T) {
	e := newTestEditor(t, "abc\ndef")
	feed(t, e, "<C-v>jly")
	assert.Equal(t, "a\nd", regText(e, '"'))
	assert.Equal(t, "abc\ndef", e.Text())

	e = newTestEditor(t, "abc\ndef")
	feed(t, e, "<C-v>jld")
	assert.Equal(t, "bc\nef", e.Text())
	assert.Equal(t, "a\nd", regText(e, '"'))
}

func TestVisualSwitching(t *testing.T) {
	e := newTestEditor(t, "abc")

	feed(t, e, "v")
	assert.Equal(t, mode.Visual, e.Mode())
	feed(t, e, "V")
	assert.Equal(t, mode.VisualLine, e.Mode())
	feed(t, e, "<C-v>")
	assert.Equal(t, mode.VisualBlock, e.Mode())
	feed(t, e, "<C-v>")
	assert.Equal(t, mode.Normal, e.Mode())

	feed(t, e, "vllo")
	s := e.Selection().MustGet()
	assert.Equal(t, 2, s.Anchor.Column)
	assert.Equal(t, 0, s.Head.Column)
	assertCursor(t, e, 0, 0)

	feed(t, e, "<Esc>")
	assert.Equal(t, mode.Normal, e.Mode())
	assert.False(t, e.Selection().IsPresent())
}

func TestUndoRedoInverse(t *testing.T) {
	scripts := []string{"dd", "dw", "ciwfoo<Esc>", "3x", "J", ">>", "gUiw", "ofoo<Esc>", "p"}
	const original = "alpha beta\ngamma delta"
	for _, keys := range scripts {
		t.Run(keys, func(t *testing.T) {
			e := newTestEditor(t, original)
			feed(t, e, "yiw")
			feed(t, e, keys)
			edited := e.Text()
			require.NotEqual(t, original, edited)

			feed(t, e, "u")
			assert.Equal(t, original, e.Text())
			feed(t, e, "<C-r>")
			assert.Equal(t, edited, e.Text())
		})
	}
}

func TestUndoAtOldestChange(t *testing.T) {
	e := newTestEditor(t, "abc")
	feed(t, e, "u")

	assert.Equal(t, "abc", e.Text())
	assert.Equal(t, "Already at oldest change", e.Message())
}

func TestReadOnlyBuffer(t *testing.T) {
	e, err := New(text.New("abc", text.WithReadOnly(true)))
	require.NoError(t, err)

	err = e.HandleKey(key.Rune('i'))
	assert.ErrorIs(t, err, text.ErrReadOnly)
	assert.Equal(t, mode.Normal, e.Mode())

	err = e.HandleKey(key.Rune('x'))
	assert.ErrorIs(t, err, text.ErrReadOnly)
	assert.Equal(t, "abc", e.Text())
	assert.NotEmpty(t, e.Message())

	// Reads still work.
	feed(t, e, "yy")
	assert.Equal(t, "abc\n", regText(e, '0'))
}

func TestMacroReplayDeterministic(t *testing.T) {
	const script = "qaA!<Esc>jq2@a"
	results := make([]string, 2)
	for i := range results {
		e := newTestEditor(t, "a1\na2\na3")
		require.NoError(t, run(t, e, script))
		results[i] = e.Text()
		assert.Equal(t, "A!<Esc>j", regText(e, 'a'))
		assert.False(t, e.Recorder().IsRecording())
		assert.False(t, e.Player().IsPlaying())
	}
	assert.Equal(t, "a1!\na2!\na3!", results[0])
	assert.Equal(t, results[0], results[1])
}

func TestMacroRepeatLast(t *testing.T) {
	e := newTestEditor(t, "abcdef")
	require.NoError(t, run(t, e, "qaxq@a@@"))

	assert.Equal(t, "def", e.Text())
}

func TestMacroFromEditedRegister(t *testing.T) {
	e := newTestEditor(t, "abc")
	require.NoError(t, e.Registers().SetChar('q', register.Chars("A<lt>!<Esc>")))
	require.NoError(t, run(t, e, "@q"))

	assert.Equal(t, "abc<!", e.Text())
}

func TestMacroEmptyRegister(t *testing.T) {
	e := newTestEditor(t, "abc")
	feed(t, e, "@")
	err := e.HandleKey(key.Rune('z'))

	assert.ErrorIs(t, err, macro.ErrEmptyRegister)
	assert.Equal(t, mode.Normal, e.Mode())
}

func TestSearch(t *testing.T) {
	e := newTestEditor(t, "foo bar foo baz")

	feed(t, e, "/foo<CR>")
	assertCursor(t, e, 0, 8)
	assert.Equal(t, "foo", regText(e, '/'))
	assert.Equal(t, "foo", e.View().Highlight)

	feed(t, e, "n")
	assertCursor(t, e, 0, 0)
	assert.Equal(t, "search hit BOTTOM, continuing at TOP", e.Message())

	feed(t, e, "N")
	assertCursor(t, e, 0, 8)
	assert.Equal(t, "search hit TOP, continuing at BOTTOM", e.Message())

	feed(t, e, "?bar<CR>")
	assertCursor(t, e, 0, 4)

	feed(t, e, ":noh<CR>")
	assert.Empty(t, e.View().Highlight)
}

func TestSearchFailures(t *testing.T) {
	e := newTestEditor(t, "foo")

	feed(t, e, "/xyz<CR>")
	assert.Equal(t, "E486: Pattern not found: xyz", e.Message())
	assertCursor(t, e, 0, 0)

	feed(t, e, "/(<CR>")
	assert.Equal(t, "E383: Invalid search string: (", e.Message())

	e = newTestEditor(t, "foo")
	feed(t, e, "n")
	assert.Equal(t, "E35: No previous regular expression", e.Message())
}

func TestSearchAsTarget(t *testing.T) {
	e := newTestEditor(t, "foo bar baz")
	feed(t, e, "d/baz<CR>")

	assert.Equal(t, "baz", e.Text())
	assert.Equal(t, mode.Normal, e.Mode())
}

func TestSearchWordUnderCursor(t *testing.T) {
	e := newTestEditor(t, "foo food foo")
	feed(t, e, "*")
	assertCursor(t, e, 0, 9)

	feed(t, e, "#")
	assertCursor(t, e, 0, 0)
}

func TestExCommands(t *testing.T) {
	tests := []struct {
		name string
		text string
		keys string
		want string
		line int
	}{
		{"goto line", "a\nb\nc", ":2<CR>", "a\nb\nc", 1},
		{"goto last", "a\nb\nc", ":$<CR>", "a\nb\nc", 2},
		{"delete range", "a\nb\nc\nd", ":2,3d<CR>", "a\nd", 1},
		{"delete count", "a\nb\nc\nd", ":d 2<CR>", "c\nd", 0},
		{"relative range", "a\nb\nc\nd", "j:.,+1d<CR>", "a\nd", 1},
		{"join", "a\nb\nc", ":1,3j<CR>", "a b c", 0},
		{"shift", "a\nb", ":%><CR>", "    a\n    b", 0},
		{"undo", "a\nb", "dd:u<CR>", "a\nb", 0},
		{"count opens range", "a\nb\nc\nd", "2:d<CR>", "c\nd", 0},
		{"visual range", "a\nb\nc\nd", "jVj:d<CR>", "a\nd", 1},
		{"repeat last command", "a\nb\nc\nd", ":d<CR>@:", "c\nd", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(t, tt.text)
			feed(t, e, tt.keys)
			assert.Equal(t, tt.want, e.Text())
			assert.Equal(t, tt.line, e.Cursor().Line)
			assert.Equal(t, mode.Normal, e.Mode())
		})
	}
}

func TestExYankKeepsCursor(t *testing.T) {
	e := newTestEditor(t, "a\nb\nc\nd")
	feed(t, e, "G:%y<CR>")

	assert.Equal(t, "a\nb\nc\nd\n", regText(e, '0'))
	assertCursor(t, e, 3, 0)
	assert.Equal(t, "4 lines yanked", e.Message())
}

func TestExMessages(t *testing.T) {
	tests := []struct {
		keys string
		want string
	}{
		{":frobnicate<CR>", "E492: Not an editor command: frobnicate"},
		{":w<CR>", "E32: No file name"},
		{":9d<CR>", "E16: Invalid range"},
		{":'zd<CR>", "E20: Mark not set"},
		{":nmap x bogus.command<CR>", "unknown command: bogus.command"},
		{":nmap<CR>", "No mapping found"},
		{"@:", "E30: No previous command line"},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			e := newTestEditor(t, "abc")
			feed(t, e, tt.keys)
			assert.Equal(t, tt.want, e.Message())
			assert.Equal(t, "abc", e.Text())
			assert.Equal(t, mode.Normal, e.Mode())
		})
	}
}

func TestExRegistersListing(t *testing.T) {
	e := newTestEditor(t, "foo\nbar")
	feed(t, e, `"ayy:reg a<CR>`)

	assert.Equal(t, "--- Registers ---\n\"a   foo^J", e.Message())
}

func TestExMap(t *testing.T) {
	e := newTestEditor(t, "abc")
	feed(t, e, ":nmap X edit.deleteChar<CR>")
	feed(t, e, "X")

	assert.Equal(t, "bc", e.Text())

	feed(t, e, ":nmap<CR>")
	assert.Contains(t, e.Message(), "edit.deleteChar")
}

func TestExWriteAndQuit(t *testing.T) {
	var got []ExCommand
	x := ExecutorFunc(func(_ *Editor, cmd ExCommand) error {
		if cmd.Name != "write" {
			return ErrUnknownCommand
		}
		got = append(got, cmd)
		return nil
	})
	e := newTestEditor(t, "abc", WithExecutor(x))

	feed(t, e, ":w out.txt<CR>")
	require.Len(t, got, 1)
	assert.Equal(t, "out.txt", got[0].Args)

	feed(t, e, ":wq")
	assert.ErrorIs(t, e.HandleKey(key.Special(key.KeyEnter)), ErrQuit)
	assert.Len(t, got, 2)

	feed(t, e, ":sort<CR>")
	assert.Equal(t, "E492: Not an editor command: sort", e.Message())

	feed(t, e, ":q")
	assert.ErrorIs(t, e.HandleKey(key.Special(key.KeyEnter)), ErrQuit)
}

func TestParseEx(t *testing.T) {
	e := newTestEditor(t, "a\nb\nc\nd")
	tests := []struct {
		line  string
		name  string
		bang  bool
		args  string
		first int
		last  int
		ok    bool
	}{
		{"q!", "q", true, "", 0, 0, false},
		{"%d x", "d", false, "x", 0, 3, true},
		{"2,3y", "y", false, "", 1, 2, true},
		{".,$!sort", "!", false, "sort", 0, 3, true},
		{"3,1d", "d", false, "", 0, 2, true},
		{">>", ">>", false, "", 0, 0, false},
		{"w file.txt", "w", false, "file.txt", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, err := e.ParseEx(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.name, cmd.Name)
			assert.Equal(t, tt.bang, cmd.Bang)
			assert.Equal(t, tt.args, cmd.Args)
			r, ok := cmd.Range.Get()
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, LineSpan{First: tt.first, Last: tt.last}, r)
			}
		})
	}
}

func TestShellFilter(t *testing.T) {
	if _, err := exec.LookPath("sort"); err != nil {
		t.Skip("sort not available")
	}
	e := newTestEditor(t, "b\na\nc")
	feed(t, e, ":%!sort<CR>")

	assert.Equal(t, "a\nb\nc", e.Text())
}

func TestKeyTimeout(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	mappings := []keymap.Mapping{{Mode: "n", Keys: "jk", Command: "edit.deleteChar"}}
	e := newTestEditor(t, "abc\ndef", WithClock(clk), WithMappings("test", mappings))

	feed(t, e, "j")
	assertCursor(t, e, 0, 0)
	assert.Equal(t, "j", e.View().PendingKeys)

	require.NoError(t, e.Tick())
	assertCursor(t, e, 0, 0)

	clk.Advance(2 * keymap.DefaultTimeout)
	require.NoError(t, e.Tick())
	assertCursor(t, e, 1, 0)

	feed(t, e, "kjk")
	assert.Equal(t, "bc\ndef", e.Text())
}

func TestBadMappingsReported(t *testing.T) {
	mappings := []keymap.Mapping{{Mode: "n", Keys: "Q", Command: "no.such"}}
	e := newTestEditor(t, "abc", WithMappings("init.toml", mappings))

	assert.Contains(t, e.Message(), "no.such")
	assert.Nil(t, e.Keymaps().Get(keymap.UserKeymapName(mode.Normal)))
}

type fakeSink struct{ got []string }

func (f *fakeSink) Write(s string) error {
	f.got = append(f.got, s)
	return nil
}

func TestTerminalMode(t *testing.T) {
	sink := &fakeSink{}
	e := newTestEditor(t, "abc", WithTerminal(sink))

	feed(t, e, ":ter<CR>")
	assert.Equal(t, mode.Terminal, e.Mode())

	feed(t, e, "ls<CR><Esc>")
	assert.Equal(t, []string{"l", "s", "\r", "\x1b"}, sink.got)

	feed(t, e, `<C-\><C-n>`)
	assert.Equal(t, mode.Normal, e.Mode())
	assert.Equal(t, "abc", e.Text())
}

func TestRendererSeesEveryKey(t *testing.T) {
	var views []View
	e := newTestEditor(t, "abc", WithRenderer(RendererFunc(func(v View) { views = append(views, v) })))

	feed(t, e, "ix")
	require.Len(t, views, 2)
	assert.Equal(t, mode.Insert, views[0].Mode)
	assert.Equal(t, "xabc", string(views[1].Buffer.LineRunes(0)))

	feed(t, e, "<Esc>:ab")
	assert.Equal(t, ":ab", views[len(views)-1].CommandLine)

	feed(t, e, "<Esc>qa")
	assert.Equal(t, 'a', views[len(views)-1].Recording.MustGet())
}

func TestRunStopsOnQuit(t *testing.T) {
	e := newTestEditor(t, "")
	err := run(t, e, "ihi<Esc>:q<CR>ithere")

	assert.ErrorIs(t, err, ErrQuit)
	assert.Equal(t, "hi", e.Text())
}

func TestRunResolvesTrailingPrefix(t *testing.T) {
	mappings := []keymap.Mapping{{Mode: "n", Keys: "jk", Command: "edit.deleteChar"}}
	e := newTestEditor(t, "abc\ndef", WithMappings("test", mappings))
	require.NoError(t, run(t, e, "j"))

	assertCursor(t, e, 1, 0)
}

func TestCommandsAreKnown(t *testing.T) {
	for _, name := range Commands() {
		assert.True(t, KnownCommand(name), name)
	}
	for _, km := range keymap.Defaults() {
		for _, b := range km.Bindings {
			assert.True(t, KnownCommand(b.Command), "%s %s", km.Name, b.Command)
		}
	}
	assert.False(t, KnownCommand("motion.nowhere"))
}

func TestUnknownCommandIsAMessage(t *testing.T) {
	e := newTestEditor(t, "abc")
	require.NoError(t, e.execute("no.such", nil))
	assert.Equal(t, "unknown command: no.such", e.Message())
	assert.NoError(t, e.HandleKey(key.Rune('x')))
	assert.Equal(t, "bc", e.Text())
}
