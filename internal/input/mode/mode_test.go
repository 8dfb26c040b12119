package mode

import (
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
)

func TestPredicates(t *testing.T) {
	tests := []struct {
		mode   Mode
		visual bool
		insert bool
	}{
		{Normal, false, false},
		{Insert, false, true},
		{Replace, false, true},
		{Visual, true, false},
		{VisualLine, true, false},
		{VisualBlock, true, false},
		{Command, false, false},
		{Terminal, false, false},
		{OperatorPending, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			assert.Equal(t, tt.visual, tt.mode.IsVisual())
			assert.Equal(t, tt.insert, tt.mode.IsInsert())
		})
	}
}

func TestParse(t *testing.T) {
	assert.Equal(t, mo.Some(VisualLine), Parse("visual-line"))
	assert.Equal(t, mo.Some(Normal), Parse("n"))
	assert.Equal(t, mo.Some(OperatorPending), Parse("o"))
	assert.Equal(t, mo.Some(Insert), Parse("INSERT"))
	assert.True(t, Parse("bogus").IsAbsent())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "-- INSERT --", Insert.DisplayName())
	assert.Equal(t, "-- VISUAL LINE --", VisualLine.DisplayName())
	assert.Equal(t, "", Normal.DisplayName())
}

func TestManagerRemembersOneLevel(t *testing.T) {
	m := NewManager()
	var seen [][2]Mode
	m.OnChange(func(from, to Mode) { seen = append(seen, [2]Mode{from, to}) })

	m.Switch(Visual)
	m.Switch(Command)
	assert.Equal(t, Command, m.Current())
	assert.Equal(t, Visual, m.Previous())

	m.Return()
	assert.Equal(t, Visual, m.Current())
	assert.Equal(t, Command, m.Previous())

	m.Switch(Visual)
	assert.Len(t, seen, 3)
	assert.True(t, m.Is(Normal, Visual))
}
