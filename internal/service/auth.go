package service

import (
	"context"

	"flashstudy/internal/repository"
)

// AuthService handles authentication logic
type AuthService struct {
	userRepo    repository.UserRepository
	botPassword string
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, botPassword string) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		botPassword: botPassword,
	}
}

// CheckPassword verifies if provided password matches
func (s *AuthService) CheckPassword(password string) bool {
	return password == s.botPassword
}

// IsAuthorized checks if user is authorized
func (s *AuthService) IsAuthorized(ctx context.Context, userID int64) (bool, error) {
	return s.userRepo.IsAuthorized(ctx, userID)
}

// AuthorizeUser authorizes a user
func (s *AuthService) AuthorizeUser(ctx context.Context, userID int64) error {
	return s.userRepo.AuthorizeUser(ctx, userID)
}

// EnsureUserExists creates user record if doesn't exist
func (s *AuthService) EnsureUserExists(ctx context.Context, userID int64) error {
	return s.userRepo.EnsureUserExists(ctx, userID)
}
