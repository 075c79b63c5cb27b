// Package users содержит HTTP обработчики профиля текущего пользователя.
package users

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"recipebook/internal/recipes/adapters/http/middleware"
	"recipebook/internal/recipes/app"
	"recipebook/internal/recipes/app/dto"
	"recipebook/internal/recipes/domain/entities"
	"recipebook/internal/recipes/domain/services"
	"recipebook/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerGetUser        = "users handler: get current user"
	LogHandlerUpdateProfile  = "users handler: update profile"
	LogHandlerChangePassword = "users handler: change password"
	LogHandlerMyRecipes      = "users handler: list own recipes"
	LogHandlerFavorites      = "users handler: list favorites"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
	ErrorUnauthorized         = "unauthorized"
)

// ProfileService описывает операции над профилем, нужные обработчику.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*entities.User, error)
	UpdateProfile(ctx context.Context, userID string, patch app.ProfilePatch) (*entities.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

// RecipeService описывает операции над рецептами пользователя.
type RecipeService interface {
	ListByCreator(ctx context.Context, userID string) ([]*entities.Recipe, error)
	ListFavorites(ctx context.Context, userID string) ([]*entities.Recipe, error)
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

// Handler содержит HTTP обработчики пользователя.
type Handler struct {
	profileService ProfileService
	recipeService  RecipeService
}

// NewHandler создает новый экземпляр обработчика пользователя.
func NewHandler(profileService ProfileService, recipeService RecipeService) *Handler {
	return &Handler{
		profileService: profileService,
		recipeService:  recipeService,
	}
}

// Me возвращает профиль текущего пользователя без хэша пароля.
func (h *Handler) Me(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetUser)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	user, err := h.profileService.GetProfile(requestCtx, userID)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, profileStatus(err), profileMessage(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewUserResponse(user)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// UpdateProfile применяет частичное обновление имени и email.
func (h *Handler) UpdateProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdateProfile)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	var req dto.UpdateProfileRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	user, err := h.profileService.UpdateProfile(requestCtx, userID, app.ProfilePatch{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, profileStatus(err), profileMessage(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewUserResponse(user)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// ChangePassword заменяет пароль после проверки текущего.
func (h *Handler) ChangePassword(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerChangePassword)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	var req dto.ChangePasswordRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "currentPassword and newPassword are required")
	}

	if err := h.profileService.ChangePassword(requestCtx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		if errors.Is(err, services.ErrInvalidCredentials) {
			return sendErrorResponse(ctx, http.StatusUnauthorized, "Current password is incorrect")
		}
		return sendErrorResponse(ctx, profileStatus(err), profileMessage(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"msg": "Password updated",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// MyRecipes возвращает рецепты, созданные текущим пользователем.
func (h *Handler) MyRecipes(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerMyRecipes)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	recipes, err := h.recipeService.ListByCreator(requestCtx, userID)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewRecipeListResponse(recipes)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Favorites возвращает избранные рецепты текущего пользователя.
// Идентификаторы удаленных рецептов пропускаются.
func (h *Handler) Favorites(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerFavorites)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	recipes, err := h.recipeService.ListFavorites(requestCtx, userID)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewRecipeListResponse(recipes)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// profileStatus сопоставляет ошибку операции с профилем HTTP статусу.
// Токен, чей пользователь больше не существует, считается недействительным.
func profileStatus(err error) int {
	switch {
	case errors.Is(err, entities.ErrUserNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, entities.ErrInvalidEmail),
		errors.Is(err, entities.ErrEmptyName),
		errors.Is(err, entities.ErrPasswordTooShort),
		errors.Is(err, services.ErrEmailAlreadyExists):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// profileMessage возвращает клиентское сообщение об ошибке профиля.
func profileMessage(err error) string {
	switch {
	case errors.Is(err, entities.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, services.ErrEmailAlreadyExists):
		return "Email already in use"
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
