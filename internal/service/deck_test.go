package service

import (
	"context"
	"errors"
	"testing"

	"flashstudy/internal/domain"
	"flashstudy/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDeckService_FetchSetByID(t *testing.T) {
	testSet := testutil.NewTestSet(1, "Animals", "cat", "кот")

	tests := []struct {
		name          string
		id            int64
		mockReturn    *domain.FlashcardSet
		mockError     error
		expectedSet   *domain.FlashcardSet
		expectedError error
		callsRepo     bool
	}{
		{
			name:        "set found",
			id:          1,
			mockReturn:  testSet,
			expectedSet: testSet,
			callsRepo:   true,
		},
		{
			name:          "set not found",
			id:            2,
			mockError:     domain.ErrSetNotFound,
			expectedError: domain.ErrSetNotFound,
			callsRepo:     true,
		},
		{
			name:          "database error",
			id:            3,
			mockError:     errors.New("db error"),
			expectedError: ErrFetchFailed,
			callsRepo:     true,
		},
		{
			name:          "invalid id",
			id:            0,
			expectedError: domain.ErrSetNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockSetRepository)
			if tt.callsRepo {
				mockRepo.On("GetSetByID", mock.Anything, tt.id).Return(tt.mockReturn, tt.mockError)
			}

			service := NewDeckService(mockRepo, testutil.NewTestLogger())

			set, err := service.FetchSetByID(context.Background(), tt.id)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.ErrorIs(t, err, ErrFetchFailed)
				assert.Nil(t, set)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedSet, set)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestDeckService_DeleteSet(t *testing.T) {
	tests := []struct {
		name          string
		mockError     error
		expectedError bool
	}{
		{
			name: "successful delete",
		},
		{
			name:          "database error",
			mockError:     errors.New("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockSetRepository)
			mockRepo.On("DeleteSet", mock.Anything, int64(4)).Return(tt.mockError)

			service := NewDeckService(mockRepo, testutil.NewTestLogger())

			err := service.DeleteSet(context.Background(), 4)

			if tt.expectedError {
				assert.ErrorIs(t, err, ErrDeleteFailed)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
