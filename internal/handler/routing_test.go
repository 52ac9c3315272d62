package handler

import (
	"context"
	"fmt"
	"testing"

	"flashstudy/internal/domain"
	"flashstudy/internal/service"
	"flashstudy/internal/study"
	"flashstudy/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

// fakeContext implements the tele.Context methods the handlers use
type fakeContext struct {
	tele.Context
	sender    *tele.User
	callback  *tele.Callback
	text      string
	sent      []interface{}
	responses []*tele.CallbackResponse
}

func (c *fakeContext) Sender() *tele.User {
	return c.sender
}

func (c *fakeContext) Callback() *tele.Callback {
	return c.callback
}

func (c *fakeContext) Text() string {
	return c.text
}

func (c *fakeContext) Send(what interface{}, _ ...interface{}) error {
	c.sent = append(c.sent, what)
	return nil
}

func (c *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	c.responses = append(c.responses, resp...)
	return nil
}

func newRoutingHandler(t *testing.T, mode study.Mode) (*Handler, *userSession, *testutil.FakeScheduler) {
	t.Helper()

	repo := new(testutil.MockUserRepository)
	repo.On("EnsureUserExists", mock.Anything, int64(1)).Return(nil)
	repo.On("IsAuthorized", mock.Anything, int64(1)).Return(true, nil)

	h := &Handler{
		authService: service.NewAuthService(repo, "secret"),
		logger:      testutil.NewTestLogger(),
		sessions:    make(map[int64]*userSession),
	}

	sched := testutil.NewFakeScheduler()
	us := newUserSession(&fakeChat{}, &tele.Chat{ID: 1}, h.logger)
	set := testutil.NewTestSet(7, "Animals", "cat", "кот", "dog", "собака")
	us.session = study.NewSession(*set, study.Deps{
		Scheduler: sched,
		OnChange:  us.show,
	})
	require.NoError(t, us.session.Enter(context.Background(), mode))
	h.sessions[1] = us

	return h, us, sched
}

func callbackContext(unique, data string) *fakeContext {
	return &fakeContext{
		sender:   &tele.User{ID: 1},
		callback: &tele.Callback{ID: "cb", Unique: unique, Data: data},
	}
}

func TestHandleCallback_QuizOptionFromReplacedKeyboard(t *testing.T) {
	h, us, sched := newRoutingHandler(t, study.ModeQuiz)

	require.NoError(t, h.handleCallback(callbackContext("quiz_t2d", "")))
	first := us.session.Quiz().State()
	require.Equal(t, domain.QuizAnswering, first.Phase)

	correct := optionIndexOf(first.Options, "кот")
	require.NotEqual(t, -1, correct)
	tap := fmt.Sprintf("%d|%d", first.Deal, correct)

	require.NoError(t, h.handleCallback(callbackContext("quiz_opt", tap)))
	assert.Equal(t, domain.ResultCorrect, us.session.Quiz().State().LastResult)
	sched.RunAll()

	// The same button pressed again after the quiz moved on
	require.NoError(t, h.handleCallback(callbackContext("quiz_opt", tap)))

	s := us.session.Quiz().State()
	assert.Equal(t, 1, s.Index)
	assert.Equal(t, 0, s.ErrorCount)
	assert.Equal(t, domain.ResultNone, s.LastResult)
}

func TestHandleCallback_QuizOptionMalformed(t *testing.T) {
	h, us, _ := newRoutingHandler(t, study.ModeQuiz)
	require.NoError(t, h.handleCallback(callbackContext("quiz_t2d", "")))

	c := callbackContext("quiz_opt", "2")
	require.NoError(t, h.handleCallback(c))

	require.Len(t, c.responses, 1)
	assert.Equal(t, "Неверный вариант", c.responses[0].Text)
	assert.Equal(t, 0, us.session.Quiz().State().ErrorCount)
}

func TestHandleCallback_KeyButtons(t *testing.T) {
	h, us, sched := newRoutingHandler(t, study.ModeFlashcards)

	require.NoError(t, h.handleCallback(callbackContext("nav_next", "")))
	sched.RunAll()
	assert.Equal(t, 1, us.session.Navigator().State().Index)

	require.NoError(t, h.handleCallback(callbackContext("nav_flip", "")))
	assert.True(t, us.session.Navigator().State().Flipped)
}

func TestHandleCallback_NoSession(t *testing.T) {
	h, _, _ := newRoutingHandler(t, study.ModeFlashcards)
	h.dropSession(1)

	c := callbackContext("nav_next", "")
	require.NoError(t, h.handleCallback(c))

	require.Len(t, c.responses, 1)
	assert.True(t, c.responses[0].ShowAlert)
}

func TestHandleText_RecallAnswer(t *testing.T) {
	h, us, sched := newRoutingHandler(t, study.ModeRecall)

	require.NoError(t, h.handleText(&fakeContext{sender: &tele.User{ID: 1}, text: "dog"}))
	s := us.session.Recall().State()
	assert.Equal(t, 1, s.ErrorCount)
	assert.Equal(t, 0, s.Index)

	require.NoError(t, h.handleText(&fakeContext{sender: &tele.User{ID: 1}, text: " Cat "}))
	assert.Equal(t, domain.ResultCorrect, us.session.Recall().State().LastResult)
	sched.RunAll()
	assert.Equal(t, 1, us.session.Recall().State().Index)
}

func TestHandleText_OutsideRecall(t *testing.T) {
	h, _, _ := newRoutingHandler(t, study.ModeFlashcards)

	c := &fakeContext{sender: &tele.User{ID: 1}, text: "cat"}
	require.NoError(t, h.handleText(c))

	require.Len(t, c.sent, 1)
	assert.Equal(t, "Ответы принимаются только в режиме Written.", c.sent[0])
}

func optionIndexOf(options []string, v string) int {
	for i, o := range options {
		if o == v {
			return i
		}
	}
	return -1
}
