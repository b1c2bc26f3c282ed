package buffer

import "errors"

// Sentinel errors. Every error returned by this package wraps one of them,
// so callers should test with errors.Is.
var (
	// ErrOutOfBounds is returned by a read whose range extends past the
	// logical size. The cursor is left where it was.
	ErrOutOfBounds = errors.New("buffer: out of bounds")

	// ErrLimitExceeded is returned by any operation that would grow the
	// buffer past its configured maximum size. The buffer is left unchanged.
	ErrLimitExceeded = errors.New("buffer: limit exceeded")
)
