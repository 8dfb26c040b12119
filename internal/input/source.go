package input

import (
	"context"
	"errors"
	"io"

	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/input/macro"
)

// KeySource yields key events. NextKey blocks until a key is available and
// returns io.EOF when the source is exhausted.
type KeySource interface {
	NextKey(ctx context.Context) (key.Event, error)
}

// SliceSource replays a fixed sequence.
type SliceSource struct {
	keys key.Sequence
	pos  int
}

// NewSliceSource creates a source over keys.
func NewSliceSource(keys key.Sequence) *SliceSource {
	return &SliceSource{keys: keys.Clone()}
}

// NextKey returns the next key of the sequence.
func (s *SliceSource) NextKey(ctx context.Context) (key.Event, error) {
	if err := ctx.Err(); err != nil {
		return key.Event{}, err
	}
	if s.pos >= len(s.keys) {
		return key.Event{}, io.EOF
	}
	ev := s.keys[s.pos]
	s.pos++
	return ev, nil
}

// Remaining returns the number of keys not yet read.
func (s *SliceSource) Remaining() int {
	return len(s.keys) - s.pos
}

// Select returns the macro player while it is playing and live otherwise.
func Select(player *macro.Player, live KeySource) KeySource {
	if player != nil && player.IsPlaying() {
		return player
	}
	return live
}

// Handler consumes one key. replayed is true for keys from the player.
type Handler func(ev key.Event, replayed bool) error

// Pump feeds keys to h until live is exhausted. Before each live key the
// player is drained, and it is drained once more after the last one. A
// handler error stops the pump and is returned; io.EOF from live ends it
// cleanly.
func Pump(ctx context.Context, player *macro.Player, live KeySource, h Handler) error {
	for {
		src := Select(player, live)
		ev, err := src.NextKey(ctx)
		if errors.Is(err, io.EOF) {
			if src == live {
				return nil
			}
			continue
		}
		if err != nil {
			return err
		}
		if err := h(ev, src != live); err != nil {
			return err
		}
	}
}
