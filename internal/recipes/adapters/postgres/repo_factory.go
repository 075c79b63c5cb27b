package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"recipebook/internal/recipes/ports/repositories"
)

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	userRepo   repositories.UserRepository
	recipeRepo repositories.RecipeRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool *pgxpool.Pool) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo:   NewUserRepository(pool),
		recipeRepo: NewRecipeRepository(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// RecipeRepository возвращает репозиторий рецептов.
func (f *RepositoryFactory) RecipeRepository() repositories.RecipeRepository {
	return f.recipeRepo
}
