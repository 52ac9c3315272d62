package middleware

import (
	"errors"
	"testing"

	"flashstudy/internal/service"
	"flashstudy/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	tele "gopkg.in/telebot.v3"
)

// fakeContext implements the few tele.Context methods the middleware uses
type fakeContext struct {
	tele.Context
	sender    *tele.User
	callback  *tele.Callback
	sent      []interface{}
	responses []*tele.CallbackResponse
}

func (c *fakeContext) Sender() *tele.User {
	return c.sender
}

func (c *fakeContext) Callback() *tele.Callback {
	return c.callback
}

func (c *fakeContext) Send(what interface{}, _ ...interface{}) error {
	c.sent = append(c.sent, what)
	return nil
}

func (c *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	c.responses = append(c.responses, resp...)
	return nil
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name        string
		callback    *tele.Callback
		setupMock   func(*testutil.MockUserRepository)
		expectNext  bool
		expectSent  int
		expectAlert bool
	}{
		{
			name: "authorized user passes",
			setupMock: func(m *testutil.MockUserRepository) {
				m.On("EnsureUserExists", mock.Anything, int64(1)).Return(nil)
				m.On("IsAuthorized", mock.Anything, int64(1)).Return(true, nil)
			},
			expectNext: true,
		},
		{
			name: "unauthorized message asks for password",
			setupMock: func(m *testutil.MockUserRepository) {
				m.On("EnsureUserExists", mock.Anything, int64(1)).Return(nil)
				m.On("IsAuthorized", mock.Anything, int64(1)).Return(false, nil)
			},
			expectSent: 1,
		},
		{
			name:     "unauthorized callback gets an alert",
			callback: &tele.Callback{ID: "cb"},
			setupMock: func(m *testutil.MockUserRepository) {
				m.On("EnsureUserExists", mock.Anything, int64(1)).Return(nil)
				m.On("IsAuthorized", mock.Anything, int64(1)).Return(false, nil)
			},
			expectAlert: true,
		},
		{
			name: "repository error",
			setupMock: func(m *testutil.MockUserRepository) {
				m.On("EnsureUserExists", mock.Anything, int64(1)).Return(errors.New("db error"))
			},
			expectSent: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockUserRepository)
			tt.setupMock(repo)

			called := false
			next := func(tele.Context) error {
				called = true
				return nil
			}

			mw := AuthMiddleware(service.NewAuthService(repo, "secret"), testutil.NewTestLogger())
			c := &fakeContext{sender: &tele.User{ID: 1}, callback: tt.callback}

			assert.NoError(t, mw(next)(c))
			assert.Equal(t, tt.expectNext, called)
			assert.Len(t, c.sent, tt.expectSent)
			if tt.expectAlert {
				if assert.Len(t, c.responses, 1) {
					assert.True(t, c.responses[0].ShowAlert)
				}
			}
			repo.AssertExpectations(t)
		})
	}
}
