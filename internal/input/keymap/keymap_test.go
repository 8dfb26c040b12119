package keymap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/modal/internal/clock"
	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/input/mode"
)

func defaultRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, LoadDefaults(r))
	return r
}

func TestDefaultsValidate(t *testing.T) {
	for _, km := range Defaults() {
		t.Run(km.Name, func(t *testing.T) {
			assert.NoError(t, km.Validate())
		})
	}
}

func TestLookup(t *testing.T) {
	r := defaultRegistry(t)
	tests := []struct {
		name    string
		mode    mode.Mode
		keys    string
		match   Match
		command string
	}{
		{"single key", mode.Normal, "d", Exact, "operator.delete"},
		{"g is a prefix", mode.Normal, "g", Prefix, ""},
		{"gU digraph", mode.Normal, "gU", Exact, "operator.toUpper"},
		{"gu digraph", mode.Normal, "gu", Exact, "operator.toLower"},
		{"gg motion", mode.Normal, "gg", Exact, "motion.bufferStart"},
		{"unbound", mode.Normal, "gX", NoMatch, ""},
		{"visual inner", mode.Visual, "i", Exact, "textobject.inner"},
		{"pending motion", mode.OperatorPending, "w", Exact, "motion.wordNext"},
		{"insert backspace", mode.Insert, "<BS>", Exact, "insert.backspace"},
		{"insert printable unbound", mode.Insert, "x", NoMatch, ""},
		{"terminal escape prefix", mode.Terminal, `<C-\>`, Prefix, ""},
		{"terminal escape", mode.Terminal, `<C-\><C-n>`, Exact, "mode.normal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Lookup(tt.mode, key.MustParseSequence(tt.keys))
			assert.Equal(t, tt.match, res.Match)
			assert.Equal(t, tt.command, res.Command)
		})
	}
}

func TestUserMappingsShadowDefaults(t *testing.T) {
	r := defaultRegistry(t)
	require.NoError(t, ReplaceUser(r, "test", []Mapping{
		{Mode: "normal", Keys: "x", Command: "history.undo"},
		{Mode: "i", Keys: "jk", Command: "mode.normal"},
	}))

	assert.Equal(t, "history.undo", r.Lookup(mode.Normal, key.MustParseSequence("x")).Command)
	assert.Equal(t, "test", r.Lookup(mode.Normal, key.MustParseSequence("x")).Source)
	assert.Equal(t, Prefix, r.Lookup(mode.Insert, key.MustParseSequence("j")).Match)

	// Replacing the user layer drops earlier user mappings.
	require.NoError(t, ReplaceUser(r, "test", nil))
	assert.Equal(t, "edit.deleteChar", r.Lookup(mode.Normal, key.MustParseSequence("x")).Command)
	assert.Equal(t, NoMatch, r.Lookup(mode.Insert, key.MustParseSequence("j")).Match)
}

func TestReplaceUserRejectsBadMappings(t *testing.T) {
	r := defaultRegistry(t)
	err := ReplaceUser(r, "test", []Mapping{{Mode: "nowhere", Keys: "x", Command: "history.undo"}})
	assert.Error(t, err)
	err = ReplaceUser(r, "test", []Mapping{{Mode: "n", Keys: "x", Command: ""}})
	assert.Error(t, err)
}

func TestAddUserOverridesSameKeys(t *testing.T) {
	r := defaultRegistry(t)
	require.NoError(t, AddUser(r, Mapping{Mode: "n", Keys: "Q", Command: "history.undo"}))
	require.NoError(t, AddUser(r, Mapping{Mode: "n", Keys: "Q", Command: "history.redo"}))
	require.NoError(t, AddUser(r, Mapping{Mode: "n", Keys: "K", Command: "motion.up"}))

	assert.Equal(t, "history.redo", r.Lookup(mode.Normal, key.MustParseSequence("Q")).Command)
	assert.Equal(t, "motion.up", r.Lookup(mode.Normal, key.MustParseSequence("K")).Command)
}

func TestBindings(t *testing.T) {
	r := defaultRegistry(t)
	b := r.Bindings(mode.Terminal)
	assert.Equal(t, map[string]string{`<C-\><C-n>`: "mode.normal"}, b)
}

func newResolver(t *testing.T) (*Resolver, *clock.Manual) {
	t.Helper()
	c := clock.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return NewResolver(defaultRegistry(t), c, time.Second), c
}

func TestResolverExactAndPrefix(t *testing.T) {
	r, _ := newResolver(t)

	out := r.Feed(mode.Normal, key.Rune('d'))
	require.Len(t, out, 1)
	assert.Equal(t, "operator.delete", out[0].Command)

	out = r.Feed(mode.Normal, key.Rune('g'))
	assert.Empty(t, out)
	assert.Equal(t, "g", r.Pending().String())

	out = r.Feed(mode.Normal, key.Rune('U'))
	require.Len(t, out, 1)
	assert.Equal(t, "operator.toUpper", out[0].Command)
	assert.Equal(t, "gU", out[0].Keys.String())
	assert.Empty(t, r.Pending())
}

func TestResolverUnmapped(t *testing.T) {
	r, _ := newResolver(t)
	out := r.Feed(mode.Insert, key.Rune('x'))
	require.Len(t, out, 1)
	assert.True(t, out[0].Unmapped())
	assert.Equal(t, key.Rune('x'), out[0].Keys[0])
}

func TestResolverBrokenPrefixRefeeds(t *testing.T) {
	r, _ := newResolver(t)
	assert.Empty(t, r.Feed(mode.Normal, key.Rune('g')))

	out := r.Feed(mode.Normal, key.Rune('w'))
	require.Len(t, out, 2)
	assert.True(t, out[0].Unmapped())
	assert.Equal(t, key.Rune('g'), out[0].Keys[0])
	assert.True(t, out[1].Refeed)
	assert.Equal(t, key.Rune('w'), out[1].Keys[0])
}

func TestResolverTimeoutFlushesLongestBoundPrefix(t *testing.T) {
	reg := defaultRegistry(t)
	require.NoError(t, AddUser(reg, Mapping{Mode: "i", Keys: "jk", Command: "mode.normal"}))
	c := clock.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	r := NewResolver(reg, c, time.Second)

	assert.Empty(t, r.Feed(mode.Insert, key.Rune('j')))
	assert.False(t, r.Expired())

	c.Advance(1500 * time.Millisecond)
	assert.True(t, r.Expired())

	out := r.Feed(mode.Insert, key.Rune('k'))
	require.Len(t, out, 2)
	assert.True(t, out[0].Unmapped(), "held j is typed literally")
	assert.True(t, out[1].Refeed)

	// Within the window the mapping fires.
	assert.Empty(t, r.Feed(mode.Insert, key.Rune('j')))
	c.Advance(200 * time.Millisecond)
	out = r.Feed(mode.Insert, key.Rune('k'))
	require.Len(t, out, 1)
	assert.Equal(t, "mode.normal", out[0].Command)
}

func TestResolverFlushPrefersBoundPrefix(t *testing.T) {
	reg := defaultRegistry(t)
	require.NoError(t, AddUser(reg, Mapping{Mode: "n", Keys: "dxy", Command: "history.undo"}))
	r := NewResolver(reg, clock.NewManual(time.Now()), time.Second)

	assert.Empty(t, r.Feed(mode.Normal, key.Rune('d')))
	assert.Empty(t, r.Feed(mode.Normal, key.Rune('x')))
	out := r.Flush()
	require.Len(t, out, 2)
	assert.Equal(t, "operator.delete", out[0].Command)
	assert.True(t, out[1].Refeed)
	assert.Equal(t, key.Rune('x'), out[1].Keys[0])
}
