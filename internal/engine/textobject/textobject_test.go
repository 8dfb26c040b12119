package textobject

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/modal/internal/engine/text"
)

func resolve(t *testing.T, content string, idx int, kind Kind, include bool) (string, bool) {
	t.Helper()
	s := text.New(content)
	r, ok := Find(s, idx, kind, include).Get()
	if !ok {
		return "", false
	}
	got, err := s.Slice(r.Start, r.End)
	require.NoError(t, err)
	return got, true
}

func TestDelimitedBlockExtraction(t *testing.T) {
	const src = "function(arg1, arg2) { return arg1 + arg2; }"
	idx := strings.Index(src, "arg2")

	inner, ok := resolve(t, src, idx, Paren, false)
	require.True(t, ok)
	assert.Equal(t, "arg1, arg2", inner)

	around, ok := resolve(t, src, idx, Paren, true)
	require.True(t, ok)
	assert.Equal(t, "(arg1, arg2)", around)
}

func TestFind(t *testing.T) {
	tests := []struct {
		name    string
		content string
		at      string // the cursor sits on the first character of this substring
		kind    Kind
		include bool
		want    string
		ok      bool
	}{
		{"inner word", "hello big world", "ig", Word, false, "big", true},
		{"around word takes trailing space", "hello big world", "ig", Word, true, "big ", true},
		{"around last word takes leading space", "hello big", "ig", Word, true, " big", true},
		{"word on space", "a  b", "  ", Word, false, "", false},
		{"word stops at punctuation", "foo.bar", "bar", Word, false, "bar", true},
		{"big word spans punctuation", "x foo.bar y", "bar", BigWord, false, "foo.bar", true},
		{"nested paren inner", "f(a, (b), c)", "a,", Paren, false, "a, (b), c", true},
		{"on open paren", "f(a)", "(a", Paren, true, "(a)", true},
		{"on close paren", "f(a)", ")", Paren, false, "a", true},
		{"brace across lines", "if {\n  x\n}", "x", Brace, false, "\n  x\n", true},
		{"bracket", "a[1][2]", "2", Bracket, true, "[2]", true},
		{"angle", "vec<int>", "int", Angle, false, "int", true},
		{"unbalanced", "f(a", "a", Paren, false, "", false},
		{"outside parens", "f(a) b", "b", Paren, false, "", false},
		{"double quote inner", `say "hi there" now`, "there", DoubleQuote, false, "hi there", true},
		{"double quote around", `say "hi" now`, "hi", DoubleQuote, true, `"hi"`, true},
		{"on opening quote", `a 'x' b`, "'x", Quote, false, "x", true},
		{"escaped quote", `"a\"b"`, "a", DoubleQuote, false, `a\"b`, true},
		{"back quote", "run `ls` now", "ls", BackQuote, false, "ls", true},
		{"missing quote", `say "hi`, "hi", DoubleQuote, false, "", false},
		{"sentence", "One. Two words! Three?", "words", Sentence, false, "Two words!", true},
		{"first sentence", "One two. Three.", "two", Sentence, false, "One two.", true},
		{"unterminated sentence", "Done. trailing", "trail", Sentence, false, "trailing", true},
		{"tag inner", "<p>hi <b>x</b></p>", "hi", Tag, false, "hi <b>x</b>", true},
		{"tag around", "<div class=\"a\">x</div>", "x", Tag, true, "<div class=\"a\">x</div>", true},
		{"tag skips closed sibling", "<a><b>1</b>2</a>", "2", Tag, false, "<b>1</b>2", true},
		{"tag missing close", "<p>open", "open", Tag, false, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := strings.Index(tt.content, tt.at)
			require.GreaterOrEqual(t, idx, 0)
			idx = len([]rune(tt.content[:idx]))

			got, ok := resolve(t, tt.content, idx, tt.kind, tt.include)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParagraph(t *testing.T) {
	const src = "one\ntwo\n\n\nthree\nfour"

	inner, ok := resolve(t, src, 1, Paragraph, false)
	require.True(t, ok)
	assert.Equal(t, "one\ntwo\n", inner)

	around, ok := resolve(t, src, 1, Paragraph, true)
	require.True(t, ok)
	assert.Equal(t, "one\ntwo\n\n\n", around)

	last, ok := resolve(t, src, strings.Index(src, "four"), Paragraph, false)
	require.True(t, ok)
	assert.Equal(t, "three\nfour", last)

	assert.True(t, Paragraph.Linewise())
}

func TestParagraphOnBlankLineIsNone(t *testing.T) {
	const src = "one\n\ntwo"
	_, ok := resolve(t, src, 4, Paragraph, false)
	assert.False(t, ok)
	_, ok = resolve(t, src, 4, Paragraph, true)
	assert.False(t, ok)
}

func TestKindForKey(t *testing.T) {
	tests := map[rune]Kind{
		'w': Word, 'W': BigWord, 's': Sentence, 'p': Paragraph,
		'(': Paren, ')': Paren, 'b': Paren, '{': Brace, 'B': Brace,
		'[': Bracket, '<': Angle, '\'': Quote, '"': DoubleQuote, '`': BackQuote, 't': Tag,
	}
	for key, want := range tests {
		got, ok := KindForKey(key).Get()
		assert.True(t, ok, "key %q", key)
		assert.Equal(t, want, got, "key %q", key)
	}
	assert.True(t, KindForKey('z').IsAbsent())
}

func TestFindOutOfRange(t *testing.T) {
	s := text.New("abc")
	assert.True(t, Find(s, -1, Word, false).IsAbsent())
	assert.True(t, Find(s, 10, Word, false).IsAbsent())
}
