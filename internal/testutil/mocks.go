package testutil

import (
	"context"
	"time"

	"flashstudy/internal/domain"
	"flashstudy/internal/speech"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) IsAuthorized(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AuthorizeUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureUserExists(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockSetRepository is a mock for SetRepository
type MockSetRepository struct {
	mock.Mock
}

func (m *MockSetRepository) GetSetByID(ctx context.Context, id int64) (*domain.FlashcardSet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlashcardSet), args.Error(1)
}

func (m *MockSetRepository) DeleteSet(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPreferenceRepository is a mock for PreferenceRepository
type MockPreferenceRepository struct {
	mock.Mock
}

func (m *MockPreferenceRepository) GetPreference(ctx context.Context, userID int64, key domain.PreferenceKey) (string, bool, error) {
	args := m.Called(ctx, userID, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockPreferenceRepository) SetPreference(ctx context.Context, userID int64, key domain.PreferenceKey, value string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, key, value, expiresAt)
	return args.Error(0)
}

func (m *MockPreferenceRepository) DeleteExpiredPreferences(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockSynthesizer is a mock for speech.Synthesizer
type MockSynthesizer struct {
	mock.Mock
}

func (m *MockSynthesizer) Speak(ctx context.Context, text string, locale speech.Locale) error {
	args := m.Called(ctx, text, locale)
	return args.Error(0)
}

func (m *MockSynthesizer) CancelAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockSetDeleter is a mock for study.SetDeleter
type MockSetDeleter struct {
	mock.Mock
}

func (m *MockSetDeleter) DeleteSet(ctx context.Context, setID int64) error {
	args := m.Called(ctx, setID)
	return args.Error(0)
}
