package keymap

import (
	"time"

	"github.com/dshills/modal/internal/clock"
	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/input/mode"
)

// DefaultTimeout is how long a partial sequence waits for its next key.
const DefaultTimeout = time.Second

// Resolution is one outcome of feeding keys to a Resolver.
type Resolution struct {
	// Command is set when Keys completed a binding.
	Command string

	// Keys are the events this resolution accounts for.
	Keys key.Sequence

	// Refeed marks a key that was held back and must be fed again once
	// the resolutions before it have been applied.
	Refeed bool
}

// Unmapped reports whether the resolution is a single key with no binding.
func (r Resolution) Unmapped() bool { return r.Command == "" && !r.Refeed }

// Resolver turns key events into commands using a Registry.
type Resolver struct {
	registry *Registry
	clock    clock.Clock
	timeout  time.Duration

	pending     key.Sequence
	pendingMode mode.Mode
	lastKey     time.Time
}

// NewResolver creates a resolver over reg.
func NewResolver(reg *Registry, c clock.Clock, timeout time.Duration) *Resolver {
	if c == nil {
		c = clock.System{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{registry: reg, clock: c, timeout: timeout}
}

// SetTimeout changes the partial-sequence timeout.
func (r *Resolver) SetTimeout(d time.Duration) {
	if d > 0 {
		r.timeout = d
	}
}

// Timeout returns the partial-sequence timeout.
func (r *Resolver) Timeout() time.Duration { return r.timeout }

// Pending returns the keys being held.
func (r *Resolver) Pending() key.Sequence { return r.pending }

// Expired reports whether held keys have waited past the timeout.
func (r *Resolver) Expired() bool {
	return len(r.pending) > 0 && r.clock.Now().Sub(r.lastKey) > r.timeout
}

// Feed resolves ev in mode m.
func (r *Resolver) Feed(m mode.Mode, ev key.Event) []Resolution {
	if len(r.pending) > 0 && (r.Expired() || m != r.pendingMode) {
		out := r.Flush()
		return append(out, Resolution{Keys: key.Sequence{ev}, Refeed: true})
	}

	r.pending = append(r.pending, ev)
	r.pendingMode = m
	r.lastKey = r.clock.Now()

	res := r.registry.Lookup(m, r.pending)
	switch res.Match {
	case Exact:
		out := []Resolution{{Command: res.Command, Keys: r.pending}}
		r.pending = nil
		return out
	case Prefix:
		return nil
	}

	if len(r.pending) == 1 {
		r.pending = nil
		return []Resolution{{Keys: key.Sequence{ev}}}
	}
	held := r.pending[:len(r.pending)-1]
	r.pending = held
	out := r.Flush()
	return append(out, Resolution{Keys: key.Sequence{ev}, Refeed: true})
}

// Flush resolves held keys to the longest bound prefix. Keys after that
// prefix are returned with Refeed set.
func (r *Resolver) Flush() []Resolution {
	if len(r.pending) == 0 {
		return nil
	}
	held := r.pending
	r.pending = nil

	var out []Resolution
	n := 0
	for i := len(held); i > 0; i-- {
		if res := r.registry.Lookup(r.pendingMode, held[:i]); res.Bound() {
			out = append(out, Resolution{Command: res.Command, Keys: held[:i].Clone()})
			n = i
			break
		}
	}
	if n == 0 {
		out = append(out, Resolution{Keys: key.Sequence{held[0]}})
		n = 1
	}
	for _, ev := range held[n:] {
		out = append(out, Resolution{Keys: key.Sequence{ev}, Refeed: true})
	}
	return out
}

// Reset drops held keys.
func (r *Resolver) Reset() {
	r.pending = nil
}
