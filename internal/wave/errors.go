package wave

import "errors"

var (
	// ErrInvalidFormat is returned when the RIFF or WAVE tag does not match.
	ErrInvalidFormat = errors.New("not a WAVE file")
	// ErrTruncatedHeader is returned when fewer than HeaderLen bytes are available.
	ErrTruncatedHeader = errors.New("truncated WAVE header")
)
