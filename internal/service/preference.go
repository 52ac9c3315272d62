package service

import (
	"context"
	"strconv"
	"time"

	"flashstudy/internal/domain"
	"flashstudy/internal/repository"

	"go.uber.org/zap"
)

// PreferenceService stores per-set boolean flags such as which side of a
// card faces up. Values are kept as "true"/"false" strings and expire a
// year after they were last written.
type PreferenceService struct {
	repo   repository.PreferenceRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(repo repository.PreferenceRepository, logger *zap.Logger) *PreferenceService {
	return &PreferenceService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Get returns a flag and whether it was stored. Values other than "true"
// read as false.
func (s *PreferenceService) Get(ctx context.Context, userID int64, key domain.PreferenceKey) (bool, bool, error) {
	raw, ok, err := s.repo.GetPreference(ctx, userID, key)
	if err != nil || !ok {
		return false, false, err
	}
	return raw == "true", true, nil
}

// Set stores a flag and renews its retention
func (s *PreferenceService) Set(ctx context.Context, userID int64, key domain.PreferenceKey, value bool) error {
	expiresAt := s.now().Add(domain.PreferenceRetention)
	if err := s.repo.SetPreference(ctx, userID, key, strconv.FormatBool(value), expiresAt); err != nil {
		s.logger.Error("Failed to store preference",
			zap.Int64("user_id", userID),
			zap.String("key", key.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// CleanupExpired removes preferences that outlived their retention
func (s *PreferenceService) CleanupExpired(ctx context.Context) error {
	s.logger.Info("Starting cleanup of expired preferences")

	deleted, err := s.repo.DeleteExpiredPreferences(ctx)
	if err != nil {
		s.logger.Error("Failed to cleanup expired preferences", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully", zap.Int64("deleted", deleted))
	return nil
}

// ForUser binds the store to one user so a study session can use it
func (s *PreferenceService) ForUser(userID int64) *UserPreferences {
	return &UserPreferences{service: s, userID: userID}
}

// UserPreferences is one user's view of the preference store
type UserPreferences struct {
	service *PreferenceService
	userID  int64
}

// Get returns a flag and whether it was stored
func (p *UserPreferences) Get(ctx context.Context, key domain.PreferenceKey) (bool, bool, error) {
	return p.service.Get(ctx, p.userID, key)
}

// Set stores a flag
func (p *UserPreferences) Set(ctx context.Context, key domain.PreferenceKey, value bool) error {
	return p.service.Set(ctx, p.userID, key, value)
}
