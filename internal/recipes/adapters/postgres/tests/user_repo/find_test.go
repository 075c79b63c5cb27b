package userrepo_test

import (
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebook/internal/recipes/adapters/postgres"
	"recipebook/internal/recipes/domain/entities"
)

func TestUserRepository_FindByID(t *testing.T) {
	ctx := testContext(t)
	validID := "ec0e33f3-6a9e-4b39-8c2d-88d43f6c1a55"
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Успешный поиск пользователя", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs(validID).
			WillReturnRows(
				pgxmock.NewRows(userColumns()).
					AddRow(validID, "Ann", "ann@example.com", "hash", []string{"fav-1"}, now, now),
			)

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByID(ctx, validID)

		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, validID, user.ID)
		assert.Equal(t, []string{"fav-1"}, user.Favorites)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Некорректный идентификатор трактуется как отсутствие", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByID(ctx, "not-a-uuid")

		assert.Nil(t, user)
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs(validID).
			WillReturnRows(pgxmock.NewRows(userColumns()))

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByID(ctx, validID)

		assert.Nil(t, user)
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_FindByEmail(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Поиск без учета регистра", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs("Ann@Example.com").
			WillReturnRows(
				pgxmock.NewRows(userColumns()).
					AddRow("user-id", "Ann", "ann@example.com", "hash", []string{}, now, now),
			)

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByEmail(ctx, "Ann@Example.com")

		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "ann@example.com", user.Email)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Email не найден", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs("ghost@example.com").
			WillReturnRows(pgxmock.NewRows(userColumns()))

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByEmail(ctx, "ghost@example.com")

		assert.Nil(t, user)
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_UpdateFavorites(t *testing.T) {
	ctx := testContext(t)
	userID := "ec0e33f3-6a9e-4b39-8c2d-88d43f6c1a55"

	t.Run("Успешная замена избранного", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		favorites := []string{"recipe-1", "recipe-2"}
		mock.ExpectQuery("UPDATE users").
			WithArgs(userID, favorites).
			WillReturnRows(pgxmock.NewRows([]string{"favorites"}).AddRow(favorites))

		repo := postgres.NewUserRepository(mock)
		updated, err := repo.UpdateFavorites(ctx, userID, favorites)

		require.NoError(t, err)
		assert.Equal(t, favorites, updated)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Nil избранное сохраняется как пустой список", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("UPDATE users").
			WithArgs(userID, []string{}).
			WillReturnRows(pgxmock.NewRows([]string{"favorites"}).AddRow([]string{}))

		repo := postgres.NewUserRepository(mock)
		updated, err := repo.UpdateFavorites(ctx, userID, nil)

		require.NoError(t, err)
		assert.Empty(t, updated)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("UPDATE users").
			WithArgs(userID, []string{"recipe-1"}).
			WillReturnRows(pgxmock.NewRows([]string{"favorites"}))

		repo := postgres.NewUserRepository(mock)
		updated, err := repo.UpdateFavorites(ctx, userID, []string{"recipe-1"})

		assert.Nil(t, updated)
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
