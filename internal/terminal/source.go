package terminal

import (
	"context"
	"io"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/modal/internal/input/key"
)

// Source reads key presses from a tcell screen. A single goroutine polls
// the screen and hands keys to the event loop over a channel.
type Source struct {
	screen  tcell.Screen
	keys    chan key.Event
	resizes chan struct{}
}

// NewSource creates a source over an initialized screen.
func NewSource(screen tcell.Screen) *Source {
	return &Source{
		screen:  screen,
		keys:    make(chan key.Event, 64),
		resizes: make(chan struct{}, 1),
	}
}

// Start begins polling. The poller stops, closing Keys, when the screen is
// finalized.
func (s *Source) Start() {
	go s.poll()
}

func (s *Source) poll() {
	defer close(s.keys)
	for {
		switch ev := s.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			if k, ok := FromTcell(ev); ok {
				s.keys <- k
			}
		case *tcell.EventResize:
			select {
			case s.resizes <- struct{}{}:
			default:
			}
		}
	}
}

// Keys delivers key presses in order.
func (s *Source) Keys() <-chan key.Event { return s.keys }

// Resizes receives a value when the terminal changed size since the last
// receive.
func (s *Source) Resizes() <-chan struct{} { return s.resizes }

// NextKey returns the next key press, or io.EOF once the screen is gone.
func (s *Source) NextKey(ctx context.Context) (key.Event, error) {
	select {
	case <-ctx.Done():
		return key.Event{}, ctx.Err()
	case ev, ok := <-s.keys:
		if !ok {
			return key.Event{}, io.EOF
		}
		return ev, nil
	}
}
