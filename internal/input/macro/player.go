package macro

import (
	"context"
	"fmt"
	"io"

	"github.com/samber/mo"

	"github.com/dshills/modal/internal/input/key"
)

// MaxDepth bounds nested playback.
const MaxDepth = 100

type frame struct {
	register  rune
	keys      key.Sequence
	pos       int
	remaining int
}

// Player replays key sequences. Frames form a stack: the innermost macro
// is read until exhausted, then the one that started it resumes.
type Player struct {
	frames   []frame
	last     mo.Option[rune]
	maxDepth int
}

// NewPlayer creates an idle player.
func NewPlayer() *Player {
	return &Player{maxDepth: MaxDepth}
}

// Start pushes keys from register reg to be played count times.
func (p *Player) Start(reg rune, keys key.Sequence, count int) error {
	if len(keys) == 0 {
		return fmt.Errorf("register %c: %w", reg, ErrEmptyRegister)
	}
	if p.Depth() >= p.maxDepth {
		p.Cancel()
		return fmt.Errorf("register %c: %w", reg, ErrRecursionLimit)
	}
	if count < 1 {
		count = 1
	}
	p.frames = append(p.frames, frame{register: reg, keys: keys.Clone(), remaining: count})
	p.last = mo.Some(reg)
	return nil
}

// Next returns the next key to replay.
func (p *Player) Next() (key.Event, bool) {
	for len(p.frames) > 0 {
		top := &p.frames[len(p.frames)-1]
		if top.pos < len(top.keys) {
			ev := top.keys[top.pos]
			top.pos++
			return ev, true
		}
		top.remaining--
		if top.remaining > 0 {
			top.pos = 0
			continue
		}
		p.frames = p.frames[:len(p.frames)-1]
	}
	return key.Event{}, false
}

// NextKey makes the player a key source. It returns io.EOF once every
// frame is exhausted.
func (p *Player) NextKey(ctx context.Context) (key.Event, error) {
	if err := ctx.Err(); err != nil {
		return key.Event{}, err
	}
	ev, ok := p.Next()
	if !ok {
		return key.Event{}, io.EOF
	}
	return ev, nil
}

// IsPlaying reports whether any keys remain.
func (p *Player) IsPlaying() bool {
	for _, f := range p.frames {
		if f.pos < len(f.keys) || f.remaining > 1 {
			return true
		}
	}
	return false
}

// Depth returns the number of active frames.
func (p *Player) Depth() int {
	return len(p.frames)
}

// Cancel abandons all playback.
func (p *Player) Cancel() {
	p.frames = nil
}

// Last returns the register most recently played, for @@.
func (p *Player) Last() mo.Option[rune] {
	return p.last
}

// SetLast restores the last played register.
func (p *Player) SetLast(reg rune) {
	p.last = mo.Some(reg)
}
