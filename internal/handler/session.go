package handler

import (
	"strings"
	"sync"

	"flashstudy/internal/study"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// chatAPI is the part of the bot API a session display needs
type chatAPI interface {
	messenger
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// userSession is a study session bound to the chat message that shows it
type userSession struct {
	session *study.Session
	api     chatAPI
	chat    tele.Recipient
	logger  *zap.Logger

	mu       sync.Mutex
	card     *tele.Message
	mode     study.Mode
	prompted int
}

func newUserSession(api chatAPI, chat tele.Recipient, logger *zap.Logger) *userSession {
	return &userSession{
		api:      api,
		chat:     chat,
		logger:   logger,
		prompted: -1,
	}
}

// show renders a view into the session message. It runs under the lock of
// the mode that changed and must not call into the session.
func (us *userSession) show(v study.View) {
	text, markup := renderView(v)

	us.mu.Lock()
	defer us.mu.Unlock()

	if v.Mode != us.mode {
		us.mode = v.Mode
		us.prompted = -1
	}

	if !us.editCard(text, markup) {
		msg, err := us.api.Send(us.chat, text, markup)
		if err != nil {
			us.logger.Error("Failed to send study view", zap.Error(err))
			return
		}
		us.card = msg
	}

	// Ask for keyboard focus once per recall card
	if st := v.Recall; st != nil && st.CaretAt != nil && !st.Completed && us.prompted != st.Index {
		us.prompted = st.Index
		prompt, opts := focusPrompt(st)
		if _, err := us.api.Send(us.chat, prompt, opts); err != nil {
			us.logger.Warn("Failed to send answer prompt", zap.Error(err))
		}
	}
}

// editCard updates the session message in place
func (us *userSession) editCard(text string, markup *tele.ReplyMarkup) bool {
	if us.card == nil {
		return false
	}

	_, err := us.api.Edit(us.card, text, markup)
	if err == nil || isNotModified(err) {
		return true
	}

	us.logger.Warn("Failed to edit study view, sending new", zap.Error(err))
	return false
}

// bind makes msg the session message
func (us *userSession) bind(msg *tele.Message) {
	if msg == nil {
		return
	}
	us.mu.Lock()
	defer us.mu.Unlock()
	us.card = msg
}

func isNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
