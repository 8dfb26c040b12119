package macro

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/register"
)

func drain(p *Player) key.Sequence {
	var out key.Sequence
	for {
		ev, ok := p.Next()
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}

func TestCanRecordTo(t *testing.T) {
	for _, r := range "azAZ09\"" {
		assert.True(t, CanRecordTo(r), string(r))
	}
	for _, r := range "_-+/:.!" {
		assert.False(t, CanRecordTo(r), string(r))
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	assert.False(t, r.IsRecording())

	_, _, err := r.Stop()
	assert.ErrorIs(t, err, ErrNotRecording)

	require.NoError(t, r.Start('a'))
	assert.ErrorIs(t, r.Start('b'), ErrAlreadyRecording)
	assert.Equal(t, 'a', r.Register().MustGet())

	for _, ev := range key.MustParseSequence("dwq") {
		r.Record(ev)
	}
	r.Truncate(1)
	assert.Equal(t, 2, r.Len())

	reg, keys, err := r.Stop()
	require.NoError(t, err)
	assert.Equal(t, 'a', reg)
	assert.Equal(t, "dw", keys.String())
	assert.False(t, r.IsRecording())

	r.Record(key.Rune('x'))
	assert.Equal(t, 0, r.Len())
}

func TestRecorderInvalidRegister(t *testing.T) {
	r := NewRecorder()
	assert.ErrorIs(t, r.Start('_'), ErrInvalidRegister)
	assert.False(t, r.IsRecording())
}

func TestPlayerCount(t *testing.T) {
	p := NewPlayer()
	require.NoError(t, p.Start('a', key.MustParseSequence("jx"), 3))
	assert.True(t, p.IsPlaying())
	assert.Equal(t, "jxjxjx", drain(p).String())
	assert.False(t, p.IsPlaying())
	assert.Equal(t, 'a', p.Last().MustGet())
}

func TestPlayerNested(t *testing.T) {
	p := NewPlayer()
	require.NoError(t, p.Start('a', key.MustParseSequence("x@by"), 1))

	var got key.Sequence
	for {
		ev, ok := p.Next()
		if !ok {
			break
		}
		got = append(got, ev)
		if ev.Is('b') {
			require.NoError(t, p.Start('b', key.MustParseSequence("12"), 2))
		}
	}
	assert.Equal(t, "x@b1212y", got.String())
	assert.Equal(t, 'b', p.Last().MustGet())
}

func TestPlayerRecursionLimit(t *testing.T) {
	p := NewPlayer()
	var err error
	for i := 0; i <= MaxDepth && err == nil; i++ {
		err = p.Start('a', key.MustParseSequence("@a"), 1)
	}
	assert.True(t, errors.Is(err, ErrRecursionLimit))
	assert.False(t, p.IsPlaying())
	assert.Equal(t, 0, p.Depth())
}

func TestPlayerEmptyRegister(t *testing.T) {
	p := NewPlayer()
	assert.ErrorIs(t, p.Start('a', nil, 1), ErrEmptyRegister)
	assert.False(t, p.Last().IsPresent())
}

func TestPlayerKeySource(t *testing.T) {
	p := NewPlayer()
	require.NoError(t, p.Start('q', key.MustParseSequence("a"), 1))

	ev, err := p.NextKey(context.Background())
	require.NoError(t, err)
	assert.True(t, ev.Is('a'))

	_, err = p.NextKey(context.Background())
	assert.ErrorIs(t, err, io.EOF)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.NextKey(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPersistenceRoundTrip(t *testing.T) {
	regs := register.NewStore()
	require.NoError(t, regs.Put(register.FromChar('a').MustGet(), register.Macro(key.MustParseSequence("ihi<lt><Esc>"))))
	require.NoError(t, regs.Put(register.FromChar('b').MustGet(), register.Chars("plain text")))
	player := NewPlayer()
	player.SetLast('a')

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	snap := Capture(regs, player, now)
	require.Len(t, snap.Macros, 1)
	assert.Equal(t, "ihi<lt><Esc>", snap.Macros[0].Keys)

	path := filepath.Join(t.TempDir(), "nested", "macros.yaml")
	require.NoError(t, Save(path, snap))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, loaded.ID)
	assert.True(t, now.Equal(loaded.SavedAt))

	fresh := register.NewStore()
	freshPlayer := NewPlayer()
	require.NoError(t, loaded.Apply(fresh, freshPlayer))

	got := fresh.GetChar('a').MustGet()
	assert.Equal(t, key.MustParseSequence("ihi<lt><Esc>"), got.Keys)
	assert.Equal(t, 'a', freshPlayer.Last().MustGet())
	assert.False(t, fresh.GetChar('b').IsPresent())
	assert.False(t, fresh.GetChar('"').IsPresent())
}

func TestLoadMissingFile(t *testing.T) {
	snap, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Empty(t, snap.Macros)
}
