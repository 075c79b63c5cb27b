// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"recipebook/internal/recipes/ports/services"
	"recipebook/pkg/logger"
)

// Заголовок, в котором клиенты передают токен доступа.
const TokenHeader = "x-auth-token"

// Ключ, под которым идентификатор пользователя попадает в контекст запроса.
const UserIDKey = "userID"

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoToken      = "no token, authorization denied"
	ErrorInvalidToken = "token is not valid"
)

// sendUnauthorized отправляет ответ 401 и завершает цепочку без ошибки,
// чтобы стандартный обработчик ошибок fiber не затер статус ответа.
func sendUnauthorized(ctx fiber.Ctx, message string) error {
	if err := ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// NewAuthMiddleware создает промежуточное ПО проверки токена доступа.
// Токен читается из заголовка x-auth-token, идентификатор пользователя
// сохраняется в Locals под ключом UserIDKey.
func NewAuthMiddleware(tokenService services.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		token := ctx.Get(TokenHeader)
		if token == "" {
			log.Debug(requestCtx, ErrorNoToken)
			return sendUnauthorized(ctx, ErrorNoToken)
		}

		userID, err := tokenService.ValidateAccessToken(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, ErrorInvalidToken, zap.Error(err))
			return sendUnauthorized(ctx, ErrorInvalidToken)
		}

		ctx.Locals(UserIDKey, userID)

		return ctx.Next()
	}
}

// UserID извлекает идентификатор пользователя, сохраненный промежуточным ПО.
func UserID(ctx fiber.Ctx) (string, bool) {
	userID, ok := ctx.Locals(UserIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
