package register

import (
	"errors"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/modal/internal/input/key"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) Get() (string, error) { return f.text, f.err }

func (f *fakeClipboard) Set(s string) error {
	if f.err != nil {
		return f.err
	}
	f.text = s
	return nil
}

func reg(ch rune) Register {
	return FromChar(ch).MustGet()
}

func TestFromCharRoundTrip(t *testing.T) {
	for _, ch := range "\"azAZ09-_+*/:." {
		r, ok := FromChar(ch).Get()
		require.True(t, ok, string(ch))
		assert.Equal(t, ch, r.Char())
	}
	for _, ch := range "!@#%=~ " {
		assert.False(t, IsValid(ch), string(ch))
	}
	assert.True(t, reg('Q').Append)
	assert.Equal(t, 'q', reg('Q').Name)
}

func TestSetDualWritesUnnamed(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Set(reg('a'), Chars("hello")))

	assert.Equal(t, "hello", s.Get(reg('a')).MustGet().String())
	assert.Equal(t, "hello", s.Get(UnnamedRegister).MustGet().String())
}

func TestPutSkipsUnnamed(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Put(SearchRegister, Chars("foo")))

	assert.Equal(t, "foo", s.GetChar('/').MustGet().String())
	assert.False(t, s.Get(UnnamedRegister).IsPresent())
}

func TestRememberReadOnlyRegisters(t *testing.T) {
	s := NewStore()
	s.Remember(SearchRegister, Chars("foo"))
	s.Remember(CommandRegister, Chars("w"))
	s.Remember(InsertedRegister, Chars("hi"))
	s.Remember(reg('a'), Chars("ignored"))

	assert.Equal(t, "foo", s.GetChar('/').MustGet().String())
	assert.Equal(t, "w", s.GetChar(':').MustGet().String())
	assert.Equal(t, "hi", s.GetChar('.').MustGet().String())
	assert.False(t, s.GetChar('a').IsPresent())
	assert.False(t, s.Get(UnnamedRegister).IsPresent())
}

func TestMissingRegisterIsNone(t *testing.T) {
	s := NewStore()
	assert.False(t, s.GetChar('z').IsPresent())
	assert.False(t, s.GetChar('!').IsPresent())
	assert.False(t, s.Get(UnnamedRegister).IsPresent())
}

func TestBlackHole(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Set(reg('a'), Chars("keep")))
	require.NoError(t, s.Set(BlackHoleReg, Chars("gone")))
	require.NoError(t, s.RecordDelete(mo.Some(BlackHoleReg), Lines("gone\n")))

	assert.Equal(t, "keep", s.Get(UnnamedRegister).MustGet().String())
	assert.False(t, s.GetChar('_').IsPresent())
	assert.False(t, s.GetChar('1').IsPresent())
}

func TestReadOnlyRegisters(t *testing.T) {
	s := NewStore()
	for _, ch := range "/:." {
		err := s.SetChar(ch, Chars("x"))
		assert.True(t, errors.Is(err, ErrReadOnlyRegister), string(ch))
	}
}

func TestAppend(t *testing.T) {
	tests := []struct {
		name  string
		first Content
		more  Content
		want  string
		style Style
	}{
		{"chars", Chars("foo"), Chars("bar"), "foobar", CharacterWise},
		{"lines", Lines("a\n"), Lines("b\n"), "a\nb\n", LineWise},
		{"chars then lines", Chars("a"), Lines("b\n"), "a\nb\n", LineWise},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			require.NoError(t, s.SetChar('a', tt.first))
			require.NoError(t, s.SetChar('A', tt.more))

			got := s.GetChar('a').MustGet()
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, tt.style, got.Style)
			assert.Equal(t, tt.want, s.Get(UnnamedRegister).MustGet().String())
		})
	}
}

func TestRecordYank(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.RecordYank(mo.None[Register](), Chars("word")))
	assert.Equal(t, "word", s.GetChar('0').MustGet().String())
	assert.Equal(t, "word", s.GetChar('"').MustGet().String())

	require.NoError(t, s.RecordYank(mo.Some(reg('b')), Chars("other")))
	assert.Equal(t, "other", s.GetChar('b').MustGet().String())
	assert.Equal(t, "other", s.GetChar('"').MustGet().String())
	assert.Equal(t, "word", s.GetChar('0').MustGet().String())
}

func TestRecordDelete(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.RecordDelete(mo.None[Register](), Lines("one\n")))
	require.NoError(t, s.RecordDelete(mo.None[Register](), Lines("two\n")))
	require.NoError(t, s.RecordDelete(mo.None[Register](), Chars("w")))

	assert.Equal(t, "two\n", s.GetChar('1').MustGet().String())
	assert.Equal(t, "one\n", s.GetChar('2').MustGet().String())
	assert.Equal(t, "w", s.GetChar('-').MustGet().String())
	assert.Equal(t, "w", s.GetChar('"').MustGet().String())

	t.Run("multi-line character delete shifts", func(t *testing.T) {
		require.NoError(t, s.RecordDelete(mo.None[Register](), Chars("a\nb")))
		assert.Equal(t, "a\nb", s.GetChar('1').MustGet().String())
		assert.Equal(t, "two\n", s.GetChar('2').MustGet().String())
	})

	t.Run("shift stops at nine", func(t *testing.T) {
		for i := 0; i < 12; i++ {
			require.NoError(t, s.RecordDelete(mo.None[Register](), Lines("x\n")))
		}
		assert.Len(t, s.Names(), len("\"123456789-"))
	})
}

func TestClipboardRegisters(t *testing.T) {
	s := NewStore()
	cb := &fakeClipboard{}
	s.SetClipboard(cb)

	require.NoError(t, s.SetChar('+', Chars("shared")))
	assert.Equal(t, "shared", cb.text)
	assert.Equal(t, "shared", s.GetChar('"').MustGet().String())

	cb.text = "from outside\n"
	got := s.GetChar('*').MustGet()
	assert.Equal(t, LineWise, got.Style)
	assert.Equal(t, "from outside\n", got.String())

	cb.err = errors.New("no display")
	assert.Error(t, s.SetChar('+', Chars("x")))
}

func TestContentSequence(t *testing.T) {
	tests := []struct {
		name    string
		content Content
		want    key.Sequence
	}{
		{
			name:    "recorded keys",
			content: Macro(key.Sequence{key.Rune('i'), key.Special(key.KeyEscape)}),
			want:    key.Sequence{key.Rune('i'), key.Special(key.KeyEscape)},
		},
		{
			name:    "notation text",
			content: Chars("ix<Esc>"),
			want:    key.Sequence{key.Rune('i'), key.Rune('x'), key.Special(key.KeyEscape)},
		},
		{
			name:    "line-wise text ends with enter",
			content: Lines("dd\n"),
			want:    key.Sequence{key.Rune('d'), key.Rune('d'), key.Special(key.KeyEnter)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.content.Sequence())
		})
	}
}

func TestContentIsEmpty(t *testing.T) {
	assert.True(t, Chars("").IsEmpty())
	assert.False(t, Lines("\n").IsEmpty())
	assert.False(t, Macro(key.Sequence{key.Rune('x')}).IsEmpty())
}
