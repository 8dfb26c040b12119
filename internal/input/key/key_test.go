package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"a", Rune('a')},
		{"A", Rune('A')},
		{" ", Rune(' ')},
		{"<Space>", Rune(' ')},
		{"<lt>", Rune('<')},
		{"<Esc>", Special(KeyEscape)},
		{"<esc>", Special(KeyEscape)},
		{"<CR>", Special(KeyEnter)},
		{"<Enter>", Special(KeyEnter)},
		{"<BS>", Special(KeyBackspace)},
		{"<C-r>", Ctrl('r')},
		{"<C-R>", Ctrl('r')},
		{`<C-\>`, Ctrl('\\')},
		{"<S-Tab>", NewSpecialEvent(KeyTab, ModShift)},
		{"<A-x>", NewRuneEvent('x', ModAlt)},
		{"<C-A-Del>", NewSpecialEvent(KeyDelete, ModCtrl|ModAlt)},
		{"<F5>", Special(KeyF5)},
		{"é", Rune('é')},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{"", "ab", "<X-a>", "<Esx>"}
	for _, spec := range tests {
		t.Run(spec, func(t *testing.T) {
			_, err := Parse(spec)
			assert.Error(t, err)
		})
	}
}

func TestParseSequence(t *testing.T) {
	seq, err := ParseSequence("d2w<Esc>")
	require.NoError(t, err)
	assert.Equal(t, Sequence{Rune('d'), Rune('2'), Rune('w'), Special(KeyEscape)}, seq)

	seq, err = ParseSequence(`<C-\><C-n>`)
	require.NoError(t, err)
	assert.Equal(t, Sequence{Ctrl('\\'), Ctrl('n')}, seq)

	seq, err = ParseSequence("a <b c>")
	require.NoError(t, err)
	assert.Equal(t, 7, seq.Len())

	seq, err = ParseSequence("x<>y")
	require.NoError(t, err)
	assert.Equal(t, "x<lt>>y", seq.String())
}

func TestStringRoundTrip(t *testing.T) {
	events := Sequence{
		Rune('a'), Rune(' '), Rune('<'), Rune('>'), Rune('\\'),
		Ctrl('w'), Ctrl('\\'), Special(KeyEscape), Special(KeyEnter),
		NewSpecialEvent(KeyTab, ModShift), NewRuneEvent(' ', ModCtrl),
		NewRuneEvent('<', ModAlt),
	}
	parsed, err := ParseSequence(events.String())
	require.NoError(t, err)
	assert.Equal(t, events, parsed)
}

func TestRuneEventsDropShift(t *testing.T) {
	assert.Equal(t, Rune('A'), NewRuneEvent('A', ModShift))
	assert.False(t, NewRuneEvent('A', ModShift).IsModified())
	assert.True(t, NewSpecialEvent(KeyTab, ModShift).IsModified())
}

func TestEventPredicates(t *testing.T) {
	assert.True(t, Rune('5').IsDigit())
	assert.False(t, Ctrl('5').IsDigit())
	assert.True(t, Rune('x').Is('x'))
	assert.False(t, Ctrl('x').Is('x'))
	assert.True(t, Rune('x').IsPrintable())
	assert.False(t, Special(KeyEnter).IsPrintable())
	assert.True(t, Special(KeyEscape).IsEscape())
	assert.False(t, NewSpecialEvent(KeyEscape, ModCtrl).IsEscape())
}

func TestSequencePrefix(t *testing.T) {
	g := MustParseSequence("g")
	gg := MustParseSequence("gg")
	gu := MustParseSequence("gU")

	assert.True(t, g.IsPrefixOf(gg))
	assert.False(t, gg.IsPrefixOf(gg))
	assert.True(t, gg.HasPrefix(gg))
	assert.False(t, gu.HasPrefix(gg))
	assert.True(t, gg.Equals(gg.Clone()))
}

func TestModifierString(t *testing.T) {
	assert.Equal(t, "Ctrl+Alt", (ModCtrl | ModAlt).String())
	assert.Equal(t, "", ModNone.String())
}
