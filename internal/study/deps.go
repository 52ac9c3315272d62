package study

import (
	"context"
	"math/rand"

	"flashstudy/internal/domain"
)

// Preferences is the per-set durable flag store used by the navigator
type Preferences interface {
	// Get returns the stored value and whether one was present
	Get(ctx context.Context, key domain.PreferenceKey) (bool, bool, error)
	Set(ctx context.Context, key domain.PreferenceKey, value bool) error
}

// Speaker speaks text aloud
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// SetDeleter removes a flashcard set
type SetDeleter interface {
	DeleteSet(ctx context.Context, setID int64) error
}

// ShuffleFunc has the signature of rand.Shuffle
type ShuffleFunc func(n int, swap func(i, j int))

var defaultShuffle ShuffleFunc = rand.Shuffle
