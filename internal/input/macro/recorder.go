package macro

import (
	"fmt"

	"github.com/samber/mo"

	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/register"
)

// CanRecordTo reports whether r may receive a recording: letters, digits
// and the unnamed register. Uppercase letters append.
func CanRecordTo(r rune) bool {
	reg, ok := register.FromChar(r).Get()
	if !ok {
		return false
	}
	switch reg.Kind {
	case register.Named, register.Numbered, register.Unnamed:
		return true
	}
	return false
}

// Recorder captures keys while recording is active.
type Recorder struct {
	target mo.Option[rune]
	events key.Sequence
}

// NewRecorder creates an idle recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Start begins recording into register r.
func (r *Recorder) Start(reg rune) error {
	if cur, ok := r.target.Get(); ok {
		return fmt.Errorf("register %c: %w", cur, ErrAlreadyRecording)
	}
	if !CanRecordTo(reg) {
		return fmt.Errorf("%q: %w", reg, ErrInvalidRegister)
	}
	r.target = mo.Some(reg)
	r.events = nil
	return nil
}

// Stop ends the recording and returns the target register and the keys
// captured.
func (r *Recorder) Stop() (rune, key.Sequence, error) {
	reg, ok := r.target.Get()
	if !ok {
		return 0, nil, ErrNotRecording
	}
	events := r.events
	r.target = mo.None[rune]()
	r.events = nil
	return reg, events, nil
}

// Record appends ev when recording.
func (r *Recorder) Record(ev key.Event) {
	if r.target.IsPresent() {
		r.events = append(r.events, ev)
	}
}

// Truncate drops the last n recorded keys, used to leave out the keys
// that stopped the recording.
func (r *Recorder) Truncate(n int) {
	if n > len(r.events) {
		n = len(r.events)
	}
	if n > 0 {
		r.events = r.events[:len(r.events)-n]
	}
}

// IsRecording reports whether a recording is active.
func (r *Recorder) IsRecording() bool {
	return r.target.IsPresent()
}

// Register returns the register being recorded into.
func (r *Recorder) Register() mo.Option[rune] {
	return r.target
}

// Len returns the number of keys recorded so far.
func (r *Recorder) Len() int {
	return len(r.events)
}
