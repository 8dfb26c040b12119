package text

import "errors"

// Errors returned by Store operations.
var (
	// ErrInvalidPosition indicates an index, line or column outside the text.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrReadOnly indicates a mutation on a read-only store.
	ErrReadOnly = errors.New("buffer is read-only")
)
