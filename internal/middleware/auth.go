package middleware

import (
	"context"
	"time"

	"flashstudy/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const authTimeout = 5 * time.Second

// AuthMiddleware creates authentication middleware
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
			defer cancel()

			// Ensure user exists
			if err := authService.EnsureUserExists(ctx, userID); err != nil {
				logger.Error("Failed to ensure user exists in middleware", zap.Error(err))
				return c.Send("Произошла ошибка. Попробуйте позже.")
			}

			// Check authorization
			authorized, err := authService.IsAuthorized(ctx, userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return c.Send("Произошла ошибка. Попробуйте позже.")
			}

			if !authorized {
				if c.Callback() != nil {
					return c.Respond(&tele.CallbackResponse{Text: "Сначала введите пароль", ShowAlert: true})
				}
				return c.Send("Привет! Введите пароль, чтобы продолжить:")
			}

			return next(c)
		}
	}
}
