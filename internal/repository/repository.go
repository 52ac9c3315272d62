package repository

import (
	"context"
	"time"

	"flashstudy/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	IsAuthorized(ctx context.Context, userID int64) (bool, error)
	AuthorizeUser(ctx context.Context, userID int64) error
	EnsureUserExists(ctx context.Context, userID int64) error
}

// SetRepository reads and removes flashcard sets
type SetRepository interface {
	// GetSetByID returns the set with its cards in order, or domain.ErrSetNotFound
	GetSetByID(ctx context.Context, id int64) (*domain.FlashcardSet, error)
	DeleteSet(ctx context.Context, id int64) error
}

// PreferenceRepository stores per-user flags as strings with an expiry
type PreferenceRepository interface {
	// GetPreference returns the stored value and whether a live row exists
	GetPreference(ctx context.Context, userID int64, key domain.PreferenceKey) (string, bool, error)
	SetPreference(ctx context.Context, userID int64, key domain.PreferenceKey, value string, expiresAt time.Time) error
	DeleteExpiredPreferences(ctx context.Context) (int64, error)
}
