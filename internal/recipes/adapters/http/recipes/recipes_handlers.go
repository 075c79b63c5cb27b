// Package recipes содержит HTTP обработчики каталога рецептов.
package recipes

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
	"recipebook/internal/recipes/ports/repositories"
	"recipebook/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerList           = "recipes handler: list"
	LogHandlerGet            = "recipes handler: get"
	LogHandlerCreate         = "recipes handler: create"
	LogHandlerUpdate         = "recipes handler: update"
	LogHandlerDelete         = "recipes handler: delete"
	LogHandlerRate           = "recipes handler: rate"
	LogHandlerAddFavorite    = "recipes handler: add favorite"
	LogHandlerRemoveFavorite = "recipes handler: remove favorite"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
	ErrorUnauthorized         = "unauthorized"
)

// Сообщения об ошибках, отдаваемые клиенту.
const (
	MsgRecipeNotFound    = "Recipe not found"
	MsgNotAuthorized     = "User not authorized"
	MsgInvalidRating     = "Rating must be between 1 and 5"
	MsgAlreadyInFavs     = "Recipe already in favorites"
	MsgRecipeRemoved     = "Recipe removed"
	MsgInvalidDifficulty = "difficulty must be Easy, Medium or Hard"
)

// Service описывает операции над рецептами, нужные обработчику.
type Service interface {
	List(ctx context.Context, filter repositories.RecipeFilter) ([]*entities.Recipe, error)
	Get(ctx context.Context, id string) (*entities.Recipe, error)
	Create(ctx context.Context, userID string, draft *entities.Recipe) (*entities.Recipe, error)
	Update(ctx context.Context, userID, id string, patch app.RecipePatch) (*entities.Recipe, error)
	Delete(ctx context.Context, userID, id string) error
	Rate(ctx context.Context, userID, id string, value int) (*entities.Recipe, error)
	AddFavorite(ctx context.Context, userID, recipeID string) ([]string, error)
	RemoveFavorite(ctx context.Context, userID, recipeID string) ([]string, error)
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

// Handler содержит HTTP обработчики рецептов.
type Handler struct {
	recipeService Service
}

// NewHandler создает новый экземпляр обработчика рецептов.
func NewHandler(recipeService Service) *Handler {
	return &Handler{
		recipeService: recipeService,
	}
}

// List возвращает каталог рецептов с фильтрацией через query параметры.
func (h *Handler) List(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerList)

	filter := repositories.RecipeFilter{
		Category:   ctx.Query("category"),
		Difficulty: ctx.Query("difficulty"),
		Search:     ctx.Query("search"),
	}

	recipes, err := h.recipeService.List(requestCtx, filter)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewRecipeListResponse(recipes)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Get возвращает один рецепт по идентификатору.
func (h *Handler) Get(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGet)

	recipe, err := h.recipeService.Get(requestCtx, ctx.Params("id"))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, recipeStatus(err), recipeMessage(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewRecipeResponse(recipe)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Create создает новый рецепт от имени текущего пользователя.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreate)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	var req dto.CreateRecipeRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.PrepTime == nil || req.CookTime == nil {
		log.Debug(requestCtx, ErrorInvalidRequest)
		return sendErrorResponse(ctx, http.StatusBadRequest, "prepTime and cookTime are required")
	}

	recipe, err := h.recipeService.Create(requestCtx, userID, req.ToEntity())
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, recipeStatus(err), recipeMessage(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewRecipeResponse(recipe)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Update применяет частичное обновление рецепта. Только владелец
// может изменять рецепт.
func (h *Handler) Update(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdate)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	var req dto.UpdateRecipeRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	recipe, err := h.recipeService.Update(requestCtx, userID, ctx.Params("id"), req.ToPatch())
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, recipeStatus(err), recipeMessage(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewRecipeResponse(recipe)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Delete удаляет рецепт. Только владелец может удалить рецепт.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDelete)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	if err := h.recipeService.Delete(requestCtx, userID, ctx.Params("id")); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, recipeStatus(err), recipeMessage(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"msg": MsgRecipeRemoved,
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Rate выставляет оценку рецепту от имени текущего пользователя.
func (h *Handler) Rate(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRate)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	var req dto.RateRecipeRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	recipe, err := h.recipeService.Rate(requestCtx, userID, ctx.Params("id"), req.Value)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, recipeStatus(err), recipeMessage(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewRecipeResponse(recipe)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// AddFavorite добавляет рецепт в избранное текущего пользователя.
func (h *Handler) AddFavorite(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerAddFavorite)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	favorites, err := h.recipeService.AddFavorite(requestCtx, userID, ctx.Params("id"))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, recipeStatus(err), recipeMessage(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewFavoritesResponse(favorites)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// RemoveFavorite удаляет рецепт из избранного. Повторное удаление
// проходит без ошибки.
func (h *Handler) RemoveFavorite(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRemoveFavorite)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	favorites, err := h.recipeService.RemoveFavorite(requestCtx, userID, ctx.Params("id"))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, recipeStatus(err), recipeMessage(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewFavoritesResponse(favorites)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// recipeStatus сопоставляет ошибку операции с рецептом HTTP статусу.
func recipeStatus(err error) int {
	switch {
	case errors.Is(err, entities.ErrRecipeNotFound), errors.Is(err, entities.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrNotRecipeOwner):
		return http.StatusUnauthorized
	case errors.Is(err, entities.ErrInvalidRating),
		errors.Is(err, entities.ErrAlreadyFavorite),
		errors.Is(err, entities.ErrInvalidDifficulty),
		errors.Is(err, app.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// recipeMessage возвращает клиентское сообщение об ошибке рецепта.
func recipeMessage(err error) string {
	switch {
	case errors.Is(err, entities.ErrRecipeNotFound):
		return MsgRecipeNotFound
	case errors.Is(err, entities.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, entities.ErrNotRecipeOwner):
		return MsgNotAuthorized
	case errors.Is(err, entities.ErrInvalidRating):
		return MsgInvalidRating
	case errors.Is(err, entities.ErrAlreadyFavorite):
		return MsgAlreadyInFavs
	case errors.Is(err, entities.ErrInvalidDifficulty):
		return MsgInvalidDifficulty
	case errors.Is(err, app.ErrValidation):
		return err.Error()
	default:
		return ErrorFailedToServeRequest
	}
}
