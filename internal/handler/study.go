package handler

import (
	"errors"
	"strconv"
	"strings"

	"flashstudy/internal/domain"
	"flashstudy/internal/speech"
	"flashstudy/internal/study"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStudy handles /study <set id>
func (h *Handler) handleStudy(c tele.Context) error {
	userID := c.Sender().ID

	id, err := strconv.ParseInt(strings.TrimSpace(c.Message().Payload), 10, 64)
	if err != nil {
		return c.Send("Укажите номер набора: /study <номер>")
	}

	ctx, cancel := requestContext()
	defer cancel()

	set, err := h.deckService.FetchSetByID(ctx, id)
	if err != nil {
		h.logger.Warn("Failed to open set",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("set_id", id),
		)
		if errors.Is(err, domain.ErrSetNotFound) {
			return c.Send("Набор не найден")
		}
		return c.Send("Не удалось загрузить набор. Попробуйте позже.")
	}

	us := h.startSession(userID, c.Chat(), *set)
	if err := us.session.Enter(ctx, study.ModeFlashcards); err != nil {
		h.logger.Error("Failed to enter flashcards", zap.Error(err))
		return c.Send("Произошла ошибка. Попробуйте позже.")
	}

	h.logger.Info("Study session started",
		zap.Int64("user_id", userID),
		zap.Int64("set_id", set.ID),
		zap.String("session_id", us.session.ID().String()),
	)
	return nil
}

// startSession replaces the user's session with a new one for set
func (h *Handler) startSession(userID int64, chat *tele.Chat, set domain.FlashcardSet) *userSession {
	logger := h.logger.With(zap.Int64("user_id", userID))
	us := newUserSession(h.bot, chat, logger)

	synth := newChatSynth(h.bot, chat, h.studyCfg.TTSURL)
	us.session = study.NewSession(set, study.Deps{
		Preferences: h.preferenceService.ForUser(userID),
		Speaker:     speech.NewDispatcher(synth, h.guesser, logger),
		Deleter:     h.deckService,
		Timing:      h.timing(),
		Logger:      logger,
		OnChange:    us.show,
	})

	h.setSession(userID, us)
	return us
}

func (h *Handler) timing() study.Timing {
	t := study.DefaultTiming()
	if h.studyCfg.SlideDelay > 0 {
		t.SlideDelay = h.studyCfg.SlideDelay
		t.SettleDelay = h.studyCfg.SlideDelay
	}
	if h.studyCfg.FeedbackDelay > 0 {
		t.FeedbackDelay = h.studyCfg.FeedbackDelay
	}
	return t
}
