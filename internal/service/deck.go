package service

import (
	"context"
	"errors"
	"fmt"

	"flashstudy/internal/domain"
	"flashstudy/internal/repository"

	"go.uber.org/zap"
)

var (
	// ErrFetchFailed means a set could not be loaded for studying
	ErrFetchFailed = errors.New("failed to load flashcard set")
	// ErrDeleteFailed means a set could not be deleted; nothing was removed
	ErrDeleteFailed = errors.New("failed to delete flashcard set")
)

// DeckService loads and removes the sets that study sessions run on
type DeckService struct {
	sets   repository.SetRepository
	logger *zap.Logger
}

// NewDeckService creates a new deck service
func NewDeckService(sets repository.SetRepository, logger *zap.Logger) *DeckService {
	return &DeckService{
		sets:   sets,
		logger: logger,
	}
}

// FetchSetByID loads a set with its cards. Every failure wraps
// ErrFetchFailed; a missing set also wraps domain.ErrSetNotFound.
func (s *DeckService) FetchSetByID(ctx context.Context, id int64) (*domain.FlashcardSet, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, domain.ErrSetNotFound)
	}

	set, err := s.sets.GetSetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: set %d: %w", ErrFetchFailed, id, err)
	}

	s.logger.Debug("Flashcard set loaded",
		zap.Int64("set_id", id),
		zap.Int("cards", set.Cards.Len()),
	)
	return set, nil
}

// DeleteSet removes a set and its cards
func (s *DeckService) DeleteSet(ctx context.Context, id int64) error {
	if err := s.sets.DeleteSet(ctx, id); err != nil {
		return fmt.Errorf("%w: set %d: %w", ErrDeleteFailed, id, err)
	}

	s.logger.Info("Flashcard set deleted", zap.Int64("set_id", id))
	return nil
}
