package recipeusecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"recipebook/internal/recipes/app"
	"recipebook/internal/recipes/domain/entities"
)

func TestCreate(t *testing.T) {
	ctx := context.Background()
	userID := "user-id-1"

	t.Run("Успешное создание рецепта", func(t *testing.T) {
		recipeRepo := new(mockRecipeRepository)
		userRepo := new(mockUserRepository)

		draft := validDraft()
		recipeRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.Recipe) bool {
			return r.CreatedBy == userID &&
				r.Difficulty == entities.DifficultyMedium &&
				r.AverageRating == 0 &&
				len(r.Ratings) == 0
		})).Return(&entities.Recipe{
			ID:         "recipe-id-1",
			Title:      draft.Title,
			CreatedBy:  userID,
			Difficulty: entities.DifficultyMedium,
			Ratings:    map[string]int{},
		}, nil).Once()

		useCase := app.NewRecipeUseCase(recipeRepo, userRepo)
		created, err := useCase.Create(ctx, userID, draft)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, userID, created.CreatedBy)
		assert.Equal(t, entities.DifficultyMedium, created.Difficulty)
		recipeRepo.AssertExpectations(t)
	})

	t.Run("Явно указанная сложность сохраняется", func(t *testing.T) {
		recipeRepo := new(mockRecipeRepository)
		userRepo := new(mockUserRepository)

		draft := validDraft()
		draft.Difficulty = entities.DifficultyHard
		recipeRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.Recipe) bool {
			return r.Difficulty == entities.DifficultyHard
		})).Return(draft, nil).Once()

		useCase := app.NewRecipeUseCase(recipeRepo, userRepo)
		_, err := useCase.Create(ctx, userID, draft)

		require.NoError(t, err)
		recipeRepo.AssertExpectations(t)
	})

	t.Run("Ошибка валидации - нет названия", func(t *testing.T) {
		recipeRepo := new(mockRecipeRepository)
		userRepo := new(mockUserRepository)

		draft := validDraft()
		draft.Title = ""

		useCase := app.NewRecipeUseCase(recipeRepo, userRepo)
		created, err := useCase.Create(ctx, userID, draft)

		require.Error(t, err)
		assert.ErrorIs(t, err, app.ErrValidation)
		assert.Nil(t, created)
		recipeRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Ошибка валидации - нет ингредиентов", func(t *testing.T) {
		recipeRepo := new(mockRecipeRepository)
		userRepo := new(mockUserRepository)

		draft := validDraft()
		draft.Ingredients = nil

		useCase := app.NewRecipeUseCase(recipeRepo, userRepo)
		_, err := useCase.Create(ctx, userID, draft)

		require.Error(t, err)
		assert.ErrorIs(t, err, app.ErrValidation)
	})

	t.Run("Ошибка валидации - недопустимая сложность", func(t *testing.T) {
		recipeRepo := new(mockRecipeRepository)
		userRepo := new(mockUserRepository)

		draft := validDraft()
		draft.Difficulty = "Impossible"

		useCase := app.NewRecipeUseCase(recipeRepo, userRepo)
		_, err := useCase.Create(ctx, userID, draft)

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrInvalidDifficulty)
	})

	t.Run("Ошибка валидации - нулевое количество порций", func(t *testing.T) {
		recipeRepo := new(mockRecipeRepository)
		userRepo := new(mockUserRepository)

		draft := validDraft()
		draft.Servings = 0

		useCase := app.NewRecipeUseCase(recipeRepo, userRepo)
		_, err := useCase.Create(ctx, userID, draft)

		require.Error(t, err)
		assert.ErrorIs(t, err, app.ErrValidation)
	})
}
