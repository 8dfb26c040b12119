package text

import (
	"time"

	"github.com/dshills/modal/internal/clock"
)

// Option is a functional option for configuring a Store.
type Option func(*Store)

// WithReadOnly makes the store refuse mutations.
func WithReadOnly(ro bool) Option {
	return func(s *Store) {
		s.readOnly = ro
	}
}

// WithClock sets the clock used for undo grouping.
func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithUndoTimeout sets the idle time that closes an undo group.
func WithUndoTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.undoTimeout = d
		}
	}
}

// WithMaxUndo bounds the number of undo groups kept.
func WithMaxUndo(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxUndo = n
		}
	}
}
