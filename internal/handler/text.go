package handler

import (
	"strings"

	"flashstudy/internal/study"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles password entry and typed recall answers
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := c.Text()

	// Ignore commands (starting with /)
	if strings.HasPrefix(strings.TrimSpace(text), "/") {
		return nil
	}

	ctx, cancel := requestContext()
	defer cancel()

	// Ensure user exists
	if err := h.authService.EnsureUserExists(ctx, userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return nil
	}

	// Check authorization first
	authorized, err := h.authService.IsAuthorized(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send("Произошла ошибка. Попробуйте позже.")
	}

	if !authorized {
		if !h.authService.CheckPassword(strings.TrimSpace(text)) {
			return c.Send("Неверный пароль")
		}
		if err := h.authService.AuthorizeUser(ctx, userID); err != nil {
			h.logger.Error("Failed to authorize user", zap.Error(err))
			return c.Send("Произошла ошибка. Попробуйте позже.")
		}

		h.logger.Info("User authorized", zap.Int64("user_id", userID))
		return c.Send("✅ Доступ разрешён!\n\n" + mainMenuText)
	}

	us := h.getSession(userID)
	if us == nil {
		return c.Send(mainMenuText)
	}

	recall := us.session.Recall()
	if recall == nil {
		return c.Send("Ответы принимаются только в режиме Written.")
	}

	// The typed answer is kept untrimmed; comparison trims it.
	recall.SetAnswer(text)
	us.session.HandleKey(study.KeyEnter)
	return nil
}
