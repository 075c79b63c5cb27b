package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebook/internal/recipes/domain/entities"
)

func TestSetRating(t *testing.T) {
	t.Run("Первая оценка", func(t *testing.T) {
		recipe := &entities.Recipe{}

		err := recipe.SetRating("rater-1", 5)

		require.NoError(t, err)
		assert.Equal(t, 5, recipe.Ratings["rater-1"])
		assert.InDelta(t, 5.0, recipe.AverageRating, 0.0001)
	})

	t.Run("Повторная оценка затирает предыдущую", func(t *testing.T) {
		recipe := &entities.Recipe{Ratings: map[string]int{"rater-1": 5, "rater-2": 1}}

		err := recipe.SetRating("rater-1", 3)

		require.NoError(t, err)
		assert.Len(t, recipe.Ratings, 2)
		assert.InDelta(t, 2.0, recipe.AverageRating, 0.0001)
	})

	t.Run("Оценка вне диапазона", func(t *testing.T) {
		recipe := &entities.Recipe{}

		for _, value := range []int{0, 6, -3} {
			err := recipe.SetRating("rater-1", value)
			require.Error(t, err)
			assert.ErrorIs(t, err, entities.ErrInvalidRating)
		}
		assert.Empty(t, recipe.Ratings)
	})
}

func TestRecalculateAverage(t *testing.T) {
	t.Run("Без оценок средняя равна нулю", func(t *testing.T) {
		recipe := &entities.Recipe{AverageRating: 4.2}

		recipe.RecalculateAverage()

		assert.Zero(t, recipe.AverageRating)
	})

	t.Run("Среднее арифметическое всех оценок", func(t *testing.T) {
		recipe := &entities.Recipe{Ratings: map[string]int{"a": 5, "b": 4, "c": 3}}

		recipe.RecalculateAverage()

		assert.InDelta(t, 4.0, recipe.AverageRating, 0.0001)
	})
}

func TestValidDifficulty(t *testing.T) {
	assert.True(t, entities.ValidDifficulty(entities.DifficultyEasy))
	assert.True(t, entities.ValidDifficulty(entities.DifficultyMedium))
	assert.True(t, entities.ValidDifficulty(entities.DifficultyHard))
	assert.False(t, entities.ValidDifficulty("easy"))
	assert.False(t, entities.ValidDifficulty(""))
	assert.False(t, entities.ValidDifficulty("Impossible"))
}

func TestUserFavorites(t *testing.T) {
	t.Run("Добавление нового рецепта", func(t *testing.T) {
		user := &entities.User{}

		err := user.AddFavorite("recipe-1")

		require.NoError(t, err)
		assert.True(t, user.HasFavorite("recipe-1"))
	})

	t.Run("Повторное добавление возвращает ошибку", func(t *testing.T) {
		user := &entities.User{Favorites: []string{"recipe-1"}}

		err := user.AddFavorite("recipe-1")

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrAlreadyFavorite)
		assert.Len(t, user.Favorites, 1)
	})

	t.Run("Удаление отсутствующего рецепта идемпотентно", func(t *testing.T) {
		user := &entities.User{Favorites: []string{"recipe-1"}}

		user.RemoveFavorite("recipe-2")
		assert.Equal(t, []string{"recipe-1"}, user.Favorites)

		user.RemoveFavorite("recipe-1")
		assert.Empty(t, user.Favorites)

		user.RemoveFavorite("recipe-1")
		assert.Empty(t, user.Favorites)
	})
}
