package study

import "errors"

var (
	// ErrInvalidDirection is returned for an unknown quiz direction
	ErrInvalidDirection = errors.New("invalid quiz direction")
	// ErrUnknownMode is returned when entering a mode that does not exist
	ErrUnknownMode = errors.New("unknown study mode")
	// ErrNoDeletePending is returned when confirming a delete that was not requested
	ErrNoDeletePending = errors.New("no delete awaiting confirmation")
)
