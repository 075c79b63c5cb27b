// Package auth содержит HTTP обработчики регистрации и входа.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"recipebook/internal/recipes/app/dto"
	"recipebook/internal/recipes/domain/entities"
	"recipebook/internal/recipes/domain/services"
	"recipebook/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister = "auth handler: register"
	LogHandlerLogin    = "auth handler: login"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
)

// Сообщения об ошибках, отдаваемые клиенту.
const (
	MsgUserAlreadyExists  = "User already exists"
	MsgInvalidCredentials = "Invalid credentials"
	MsgFieldsRequired     = "name, email and password are required"
)

// Service описывает операции аутентификации, нужные обработчику.
type Service interface {
	Register(ctx context.Context, name, email, password string) (*services.AuthToken, error)
	Login(ctx context.Context, email, password string) (*services.AuthToken, error)
}

// Вспомогательная функция для отправки ошибок HTTP.
func sendErrorResponse(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Handler содержит HTTP обработчики аутентификации.
type Handler struct {
	authService Service
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authService Service) *Handler {
	return &Handler{
		authService: authService,
	}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, MsgFieldsRequired)
	}

	token, err := h.authService.Register(requestCtx, req.Name, req.Email, req.Password)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, registerStatus(err), registerMessage(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.TokenResponse{Token: token.Token}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Email == "" || req.Password == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "email and password are required")
	}

	token, err := h.authService.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		if errors.Is(err, services.ErrInvalidCredentials) {
			return sendErrorResponse(ctx, http.StatusUnauthorized, MsgInvalidCredentials)
		}
		return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.TokenResponse{Token: token.Token}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// registerStatus сопоставляет ошибку регистрации HTTP статусу.
func registerStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrEmailAlreadyExists),
		errors.Is(err, entities.ErrInvalidEmail),
		errors.Is(err, entities.ErrEmptyName),
		errors.Is(err, entities.ErrPasswordTooShort):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// registerMessage возвращает клиентское сообщение об ошибке регистрации.
func registerMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrEmailAlreadyExists):
		return MsgUserAlreadyExists
	case errors.Is(err, entities.ErrInvalidEmail):
		return entities.ErrInvalidEmail.Error()
	case errors.Is(err, entities.ErrEmptyName):
		return entities.ErrEmptyName.Error()
	case errors.Is(err, entities.ErrPasswordTooShort):
		return entities.ErrPasswordTooShort.Error()
	default:
		return ErrorFailedToServeRequest
	}
}
