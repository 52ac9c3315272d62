package domain

import "errors"

// ErrSetNotFound is returned when no flashcard set exists for an id
var ErrSetNotFound = errors.New("flashcard set not found")
