package macro

import "errors"

var (
	// ErrAlreadyRecording is returned when recording starts twice.
	ErrAlreadyRecording = errors.New("already recording")

	// ErrNotRecording is returned when stopping without a recording.
	ErrNotRecording = errors.New("not recording")

	// ErrEmptyRegister is returned when playing a register with no keys.
	ErrEmptyRegister = errors.New("register is empty")

	// ErrRecursionLimit is returned when nested playback exceeds MaxDepth.
	ErrRecursionLimit = errors.New("macro recursion too deep")

	// ErrInvalidRegister is returned for registers that cannot hold a macro.
	ErrInvalidRegister = errors.New("invalid macro register")
)
