package handler

import (
	"context"
	"errors"
	"testing"

	"flashstudy/internal/domain"
	"flashstudy/internal/study"
	"flashstudy/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

func newTestUserSession(api *fakeChat) *userSession {
	return newUserSession(api, &tele.Chat{ID: 1}, testutil.NewTestLogger())
}

func TestUserSession_ShowSendsThenEdits(t *testing.T) {
	api := &fakeChat{}
	us := newTestUserSession(api)
	card := domain.Card{Term: "cat", Definition: "кот"}

	us.show(navigatorView(domain.NavigatorState{Total: 1, TermFront: true, Card: card}))
	us.show(navigatorView(domain.NavigatorState{Total: 1, TermFront: true, Flipped: true, Card: card}))

	assert.Len(t, api.sent, 1)
	require.Len(t, api.edited, 1)
	assert.Contains(t, api.edited[0], "кот")
}

func TestUserSession_ShowNotModified(t *testing.T) {
	api := &fakeChat{}
	us := newTestUserSession(api)
	v := navigatorView(domain.NavigatorState{Total: 1, TermFront: true, Card: domain.Card{Term: "cat"}})

	us.show(v)
	api.editErr = errors.New("telegram: Bad Request: message is not modified (400)")
	us.show(v)

	assert.Len(t, api.sent, 1)
}

func TestUserSession_ShowEditFailure(t *testing.T) {
	api := &fakeChat{}
	us := newTestUserSession(api)
	v := navigatorView(domain.NavigatorState{Total: 1, TermFront: true, Card: domain.Card{Term: "cat"}})

	us.show(v)
	api.editErr = errors.New("telegram: Bad Request: message to edit not found (400)")
	us.show(v)

	assert.Len(t, api.sent, 2)
}

func TestUserSession_RecallFocusPrompt(t *testing.T) {
	api := &fakeChat{}
	us := newTestUserSession(api)
	zero := 0

	recallView := func(index int, caret *int) study.View {
		return study.View{SetName: "Animals", Mode: study.ModeRecall, Recall: &domain.RecallState{
			Index: index, Total: 2, Prompt: "кот", CaretAt: caret,
		}}
	}

	us.show(recallView(0, &zero))
	// view + prompt
	require.Len(t, api.sent, 2)
	assert.Equal(t, "✍️ Ваш ответ:", api.sent[1])

	// Same card asks again: no new prompt
	us.show(recallView(0, &zero))
	assert.Len(t, api.sent, 2)

	// No focus request
	us.show(recallView(1, nil))
	assert.Len(t, api.sent, 2)

	us.show(recallView(1, &zero))
	assert.Len(t, api.sent, 3)
}

func TestUserSession_Bind(t *testing.T) {
	api := &fakeChat{}
	us := newTestUserSession(api)

	us.bind(nil)
	assert.Nil(t, us.card)

	msg := &tele.Message{ID: 42}
	us.bind(msg)
	us.show(navigatorView(domain.NavigatorState{Total: 1, TermFront: true, Card: domain.Card{Term: "cat"}}))

	assert.Empty(t, api.sent)
	assert.Len(t, api.edited, 1)
}

func TestUserSession_WithStudySession(t *testing.T) {
	api := &fakeChat{}
	us := newTestUserSession(api)
	sched := testutil.NewFakeScheduler()
	set := testutil.NewTestSet(1, "Animals", "cat", "кот", "dog", "собака")

	us.session = study.NewSession(*set, study.Deps{
		Preferences: testutil.NewMemoryPreferences(),
		Scheduler:   sched,
		OnChange:    us.show,
	})
	require.NoError(t, us.session.Enter(context.Background(), study.ModeRecall))

	us.session.Recall().SetAnswer("cat")
	us.session.HandleKey(study.KeyEnter)
	sched.RunAll()

	last := api.edited[len(api.edited)-1].(string)
	assert.Contains(t, last, "2 / 2")
	assert.Contains(t, last, "собака")
}
