package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"flashstudy/internal/domain"
	"flashstudy/internal/study"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// callbackRoute returns the button and payload of a callback. Callbacks that
// did not come through a registered button carry them as "unique|payload".
func callbackRoute(callback *tele.Callback) (unique, payload string) {
	if callback.Unique != "" {
		return callback.Unique, callback.Data
	}
	data := cleanCallbackData(callback.Data)
	unique, payload, _ = strings.Cut(data, "|")
	return unique, payload
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// If message is not modified, it was already edited by another callback
	if isNotModified(err) {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	userID := c.Sender().ID
	unique, payload := callbackRoute(callback)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("unique", unique),
		zap.String("payload", payload),
		zap.String("id", callback.ID),
		zap.Int64("user_id", userID),
	)

	us := h.getSession(userID)
	if us == nil {
		return c.Respond(&tele.CallbackResponse{
			Text:      "Занятие завершено. Отправьте /study <номер>, чтобы начать заново.",
			ShowAlert: true,
		})
	}
	us.bind(callback.Message)

	// Buttons that stand in for keys
	if key, ok := buttonKeys[unique]; ok {
		us.session.HandleKey(key)
		return c.Respond()
	}

	ctx, cancel := requestContext()
	defer cancel()

	switch unique {
	case btnSpeak.Unique, btnSide.Unique, btnTermVoice.Unique, btnDefVoice.Unique:
		return h.handleNavigatorAction(ctx, c, us, unique)
	case btnCards.Unique:
		return h.enterMode(ctx, c, us, study.ModeFlashcards)
	case btnQuiz.Unique:
		return h.enterMode(ctx, c, us, study.ModeQuiz)
	case btnWritten.Unique:
		return h.enterMode(ctx, c, us, study.ModeRecall)
	case btnTermToDef.Unique, btnDefToTerm.Unique, btnQuizOption.Unique, btnQuizReselect.Unique:
		return h.handleQuizAction(c, us, unique, payload)
	case btnHint.Unique:
		if recall := us.session.Recall(); recall != nil {
			recall.Hint()
		}
		return c.Respond()
	case btnDelete.Unique:
		us.session.RequestDelete()
		return c.Respond()
	case btnDeleteNo.Unique:
		us.session.CancelDelete()
		return c.Respond()
	case btnDeleteYes.Unique:
		return h.handleDeleteSet(ctx, c, us)
	case btnExit.Unique:
		h.dropSession(userID)
		return h.finishSession(c, mainMenuText)
	}

	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("unique", unique),
		zap.String("payload", payload),
	)
	return c.Respond()
}

// handleNavigatorAction runs the flashcard buttons that can fail
func (h *Handler) handleNavigatorAction(ctx context.Context, c tele.Context, us *userSession, unique string) error {
	nav := us.session.Navigator()
	if nav == nil {
		return c.Respond()
	}

	var err error
	switch unique {
	case btnSpeak.Unique:
		err = nav.Speak(ctx)
	case btnSide.Unique:
		err = nav.ToggleSide(ctx)
	case btnTermVoice.Unique:
		err = nav.ToggleTermVoice(ctx)
	case btnDefVoice.Unique:
		err = nav.ToggleDefinitionVoice(ctx)
	}
	if err != nil {
		h.logger.Error("Flashcard action failed",
			zap.Error(err),
			zap.String("action", unique),
			zap.Int64("user_id", c.Sender().ID),
		)
		return c.Respond(&tele.CallbackResponse{Text: "Произошла ошибка. Попробуйте позже."})
	}
	return c.Respond()
}

func (h *Handler) enterMode(ctx context.Context, c tele.Context, us *userSession, m study.Mode) error {
	if err := us.session.Enter(ctx, m); err != nil {
		h.logger.Error("Failed to enter study mode", zap.Error(err), zap.String("mode", string(m)))
		return c.Respond(&tele.CallbackResponse{Text: "Произошла ошибка. Попробуйте позже."})
	}
	return c.Respond()
}

func (h *Handler) handleQuizAction(c tele.Context, us *userSession, unique, payload string) error {
	quiz := us.session.Quiz()
	if quiz == nil {
		return c.Respond()
	}

	switch unique {
	case btnTermToDef.Unique:
		_ = quiz.SelectDirection(domain.TermToDefinition)
	case btnDefToTerm.Unique:
		_ = quiz.SelectDirection(domain.DefinitionToTerm)
	case btnQuizReselect.Unique:
		quiz.Reselect()
	case btnQuizOption.Unique:
		deal, i, err := parseOption(payload)
		if err != nil {
			return c.Respond(&tele.CallbackResponse{Text: "Неверный вариант"})
		}
		if quiz.AnswerAt(deal, i) == domain.ResultNone {
			h.logger.Debug("Quiz option ignored",
				zap.Uint64("deal", deal),
				zap.Int("option", i),
				zap.Int64("user_id", c.Sender().ID),
			)
		}
	}
	return c.Respond()
}

// parseOption splits a "deal|option" payload
func parseOption(payload string) (uint64, int, error) {
	dealStr, optStr, ok := strings.Cut(payload, "|")
	if !ok {
		return 0, 0, fmt.Errorf("malformed option payload %q", payload)
	}
	deal, err := strconv.ParseUint(dealStr, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed option deal: %w", err)
	}
	i, err := strconv.Atoi(optStr)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed option index: %w", err)
	}
	return deal, i, nil
}

// handleDeleteSet deletes the set after confirmation. Failures are shown as
// an alert and the confirmation stays open.
func (h *Handler) handleDeleteSet(ctx context.Context, c tele.Context, us *userSession) error {
	userID := c.Sender().ID
	set := us.session.Set()

	if err := us.session.ConfirmDelete(ctx); err != nil {
		h.logger.Error("Failed to delete set",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("set_id", set.ID),
		)
		return c.Respond(&tele.CallbackResponse{
			Text:      "Не удалось удалить набор. Попробуйте ещё раз.",
			ShowAlert: true,
		})
	}

	h.dropSession(userID)
	return h.finishSession(c, fmt.Sprintf("🗑 Набор «%s» удалён\n\n%s", set.Name, mainMenuText))
}

// finishSession replaces the session message with text
func (h *Handler) finishSession(c tele.Context, text string) error {
	if err := c.Edit(text); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return c.Send(text)
	}
	return c.Respond()
}
