package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"recipebook/internal/recipes/domain/entities"
	"recipebook/internal/recipes/ports/repositories"
	"recipebook/pkg/logger"
)

// ErrValidation оборачивает все ошибки валидации данных рецепта.
var ErrValidation = errors.New("invalid recipe data")

const (
	methodListRecipes    = "List"
	methodGetRecipe      = "Get"
	methodCreateRecipe   = "Create"
	methodUpdateRecipe   = "Update"
	methodDeleteRecipe   = "Delete"
	methodRateRecipe     = "Rate"
	methodAddFavorite    = "AddFavorite"
	methodRemoveFavorite = "RemoveFavorite"
	methodListByCreator  = "ListByCreator"
	methodListFavorites  = "ListFavorites"

	msgListingRecipes   = "listing recipes"
	msgGettingRecipe    = "getting recipe"
	msgCreatingRecipe   = "creating recipe"
	msgUpdatingRecipe   = "updating recipe"
	msgDeletingRecipe   = "deleting recipe"
	msgRatingRecipe     = "rating recipe"
	msgAddingFavorite   = "adding recipe to favorites"
	msgRemovingFavorite = "removing recipe from favorites"
	msgRecipeCreated    = "recipe created successfully"
	msgRecipeUpdated    = "recipe updated successfully"
	msgRecipeDeleted    = "recipe deleted successfully"
	msgRecipeRated      = "recipe rated successfully"
	msgNotOwner         = "mutation attempt by non-owner"

	errCtxListingRecipes  = "listing recipes"
	errCtxLoadingRecipe   = "loading recipe"
	errCtxCreatingRecipe  = "creating recipe"
	errCtxUpdatingRecipe  = "updating recipe"
	errCtxDeletingRecipe  = "deleting recipe"
	errCtxCheckingOwner   = "checking ownership"
	errCtxRatingRecipe    = "rating recipe"
	errCtxSavingFavorites = "saving favorites"
)

// RecipePatch описывает частичное обновление рецепта:
// применяются только переданные поля, остальные остаются без изменений.
type RecipePatch struct {
	Title        *string
	Description  *string
	PrepTime     *int
	CookTime     *int
	Servings     *int
	Difficulty   *string
	Category     *string
	Ingredients  *[]entities.Ingredient
	Instructions *[]entities.Instruction
	Image        *string
	Notes        *string
	Tags         *[]string
}

// RecipeUseCase реализует бизнес-логику работы с рецептами,
// включая оценки и избранное.
type RecipeUseCase struct {
	recipeRepo repositories.RecipeRepository
	userRepo   repositories.UserRepository
}

// NewRecipeUseCase создает новый экземпляр RecipeUseCase.
func NewRecipeUseCase(recipeRepo repositories.RecipeRepository, userRepo repositories.UserRepository) *RecipeUseCase {
	return &RecipeUseCase{
		recipeRepo: recipeRepo,
		userRepo:   userRepo,
	}
}

// List возвращает каталог рецептов по фильтру, новые первыми.
func (uc *RecipeUseCase) List(ctx context.Context, filter repositories.RecipeFilter) ([]*entities.Recipe, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListRecipes))
	log.Debug(ctx, msgListingRecipes,
		zap.String("category", filter.Category),
		zap.String("difficulty", filter.Difficulty),
		zap.String("search", filter.Search))

	recipes, err := uc.recipeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingRecipes, err)
	}

	return recipes, nil
}

// Get возвращает рецепт по идентификатору.
func (uc *RecipeUseCase) Get(ctx context.Context, id string) (*entities.Recipe, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetRecipe), zap.String("recipeID", id))
	log.Debug(ctx, msgGettingRecipe)

	recipe, err := uc.recipeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxLoadingRecipe, err)
	}

	return recipe, nil
}

// Create валидирует и сохраняет новый рецепт от имени пользователя.
// Владелец фиксируется при создании, оценки начинаются с пустого множества.
func (uc *RecipeUseCase) Create(ctx context.Context, userID string, draft *entities.Recipe) (*entities.Recipe, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateRecipe), zap.String("userID", userID))
	log.Debug(ctx, msgCreatingRecipe)

	if err := validateRecipe(draft); err != nil {
		log.Debug(ctx, "recipe validation failed", zap.Error(err))
		return nil, err
	}

	draft.CreatedBy = userID
	draft.Ratings = map[string]int{}
	draft.AverageRating = 0
	if draft.Difficulty == "" {
		draft.Difficulty = entities.DifficultyMedium
	}
	if draft.Tags == nil {
		draft.Tags = []string{}
	}

	created, err := uc.recipeRepo.Create(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingRecipe, err)
	}

	log.Info(ctx, msgRecipeCreated, zap.String("recipeID", created.ID))
	return created, nil
}

// Update применяет частичное обновление рецепта после проверки владения.
func (uc *RecipeUseCase) Update(ctx context.Context, userID, id string, patch RecipePatch) (*entities.Recipe, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodUpdateRecipe),
		zap.String("userID", userID),
		zap.String("recipeID", id))
	log.Debug(ctx, msgUpdatingRecipe)

	recipe, err := uc.recipeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxLoadingRecipe, err)
	}

	if recipe.CreatedBy != userID {
		log.Debug(ctx, msgNotOwner)
		return nil, fmt.Errorf("%s: %w", errCtxCheckingOwner, entities.ErrNotRecipeOwner)
	}

	applyPatch(recipe, patch)
	if !entities.ValidDifficulty(recipe.Difficulty) {
		return nil, fmt.Errorf("%s: %w: %w", errCtxUpdatingRecipe, ErrValidation, entities.ErrInvalidDifficulty)
	}

	updated, err := uc.recipeRepo.Update(ctx, recipe)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingRecipe, err)
	}

	log.Info(ctx, msgRecipeUpdated)
	return updated, nil
}

// Delete удаляет рецепт после проверки владения.
// Идентификатор рецепта намеренно не вычищается из избранного других
// пользователей: чтение избранного отфильтровывает исчезнувшие рецепты.
func (uc *RecipeUseCase) Delete(ctx context.Context, userID, id string) error {
	log := logger.Log(ctx).With(
		zap.String("method", methodDeleteRecipe),
		zap.String("userID", userID),
		zap.String("recipeID", id))
	log.Debug(ctx, msgDeletingRecipe)

	recipe, err := uc.recipeRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxLoadingRecipe, err)
	}

	if recipe.CreatedBy != userID {
		log.Debug(ctx, msgNotOwner)
		return fmt.Errorf("%s: %w", errCtxCheckingOwner, entities.ErrNotRecipeOwner)
	}

	if err := uc.recipeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingRecipe, err)
	}

	log.Info(ctx, msgRecipeDeleted)
	return nil
}

// Rate выставляет оценку пользователя рецепту.
// Повторная оценка того же пользователя затирает предыдущее значение,
// средняя оценка пересчитывается при каждом изменении.
func (uc *RecipeUseCase) Rate(ctx context.Context, userID, id string, value int) (*entities.Recipe, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodRateRecipe),
		zap.String("userID", userID),
		zap.String("recipeID", id),
		zap.Int("value", value))
	log.Debug(ctx, msgRatingRecipe)

	if value < entities.MinRating || value > entities.MaxRating {
		return nil, fmt.Errorf("%s: %w", errCtxRatingRecipe, entities.ErrInvalidRating)
	}

	recipe, err := uc.recipeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxLoadingRecipe, err)
	}

	if err := recipe.SetRating(userID, value); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxRatingRecipe, err)
	}

	updated, err := uc.recipeRepo.UpdateRatings(ctx, id, recipe.Ratings, recipe.AverageRating)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxRatingRecipe, err)
	}

	log.Info(ctx, msgRecipeRated, zap.Float64("averageRating", updated.AverageRating))
	return updated, nil
}

// AddFavorite добавляет существующий рецепт в избранное пользователя.
// Повторное добавление возвращает entities.ErrAlreadyFavorite.
func (uc *RecipeUseCase) AddFavorite(ctx context.Context, userID, recipeID string) ([]string, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodAddFavorite),
		zap.String("userID", userID),
		zap.String("recipeID", recipeID))
	log.Debug(ctx, msgAddingFavorite)

	if _, err := uc.recipeRepo.FindByID(ctx, recipeID); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxLoadingRecipe, err)
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxLoadingUser, err)
	}

	if err := user.AddFavorite(recipeID); err != nil {
		log.Debug(ctx, "recipe already in favorites")
		return nil, fmt.Errorf("%s: %w", errCtxSavingFavorites, err)
	}

	favorites, err := uc.userRepo.UpdateFavorites(ctx, userID, user.Favorites)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxSavingFavorites, err)
	}

	return favorites, nil
}

// RemoveFavorite удаляет рецепт из избранного пользователя.
// Удаление отсутствующего идентификатора проходит без ошибки.
func (uc *RecipeUseCase) RemoveFavorite(ctx context.Context, userID, recipeID string) ([]string, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodRemoveFavorite),
		zap.String("userID", userID),
		zap.String("recipeID", recipeID))
	log.Debug(ctx, msgRemovingFavorite)

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxLoadingUser, err)
	}

	user.RemoveFavorite(recipeID)

	favorites, err := uc.userRepo.UpdateFavorites(ctx, userID, user.Favorites)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxSavingFavorites, err)
	}

	return favorites, nil
}

// ListByCreator возвращает рецепты, созданные пользователем.
func (uc *RecipeUseCase) ListByCreator(ctx context.Context, userID string) ([]*entities.Recipe, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListByCreator), zap.String("userID", userID))
	log.Debug(ctx, msgListingRecipes)

	recipes, err := uc.recipeRepo.ListByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingRecipes, err)
	}

	return recipes, nil
}

// ListFavorites возвращает избранные рецепты пользователя.
// Идентификаторы удаленных рецептов пропускаются при чтении,
// но остаются в сохраненном множестве.
func (uc *RecipeUseCase) ListFavorites(ctx context.Context, userID string) ([]*entities.Recipe, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListFavorites), zap.String("userID", userID))
	log.Debug(ctx, msgListingRecipes)

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxLoadingUser, err)
	}

	recipes, err := uc.recipeRepo.ListByIDs(ctx, user.Favorites)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingRecipes, err)
	}

	return recipes, nil
}

// applyPatch переносит в рецепт только переданные поля.
func applyPatch(recipe *entities.Recipe, patch RecipePatch) {
	if patch.Title != nil {
		recipe.Title = *patch.Title
	}
	if patch.Description != nil {
		recipe.Description = *patch.Description
	}
	if patch.PrepTime != nil {
		recipe.PrepTime = *patch.PrepTime
	}
	if patch.CookTime != nil {
		recipe.CookTime = *patch.CookTime
	}
	if patch.Servings != nil {
		recipe.Servings = *patch.Servings
	}
	if patch.Difficulty != nil {
		recipe.Difficulty = *patch.Difficulty
	}
	if patch.Category != nil {
		recipe.Category = *patch.Category
	}
	if patch.Ingredients != nil {
		recipe.Ingredients = *patch.Ingredients
	}
	if patch.Instructions != nil {
		recipe.Instructions = *patch.Instructions
	}
	if patch.Image != nil {
		recipe.Image = *patch.Image
	}
	if patch.Notes != nil {
		recipe.Notes = *patch.Notes
	}
	if patch.Tags != nil {
		recipe.Tags = *patch.Tags
	}
}

// validateRecipe проверяет обязательные поля нового рецепта.
func validateRecipe(r *entities.Recipe) error {
	switch {
	case r.Title == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	case r.Description == "":
		return fmt.Errorf("%w: description is required", ErrValidation)
	case r.PrepTime < 0:
		return fmt.Errorf("%w: prepTime must be non-negative", ErrValidation)
	case r.CookTime < 0:
		return fmt.Errorf("%w: cookTime must be non-negative", ErrValidation)
	case r.Servings < 1:
		return fmt.Errorf("%w: servings must be at least 1", ErrValidation)
	case r.Category == "":
		return fmt.Errorf("%w: category is required", ErrValidation)
	case len(r.Ingredients) == 0:
		return fmt.Errorf("%w: at least one ingredient is required", ErrValidation)
	case len(r.Instructions) == 0:
		return fmt.Errorf("%w: at least one instruction is required", ErrValidation)
	}

	for _, ing := range r.Ingredients {
		if ing.Name == "" || ing.Quantity == "" {
			return fmt.Errorf("%w: ingredient name and quantity are required", ErrValidation)
		}
	}
	for _, ins := range r.Instructions {
		if ins.Description == "" {
			return fmt.Errorf("%w: instruction description is required", ErrValidation)
		}
	}

	if r.Difficulty != "" && !entities.ValidDifficulty(r.Difficulty) {
		return fmt.Errorf("%w: %w", ErrValidation, entities.ErrInvalidDifficulty)
	}

	return nil
}
