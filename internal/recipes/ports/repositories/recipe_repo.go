package repositories

import (
	"context"

	"recipebook/internal/recipes/domain/entities"
)

// RecipeFilter задает критерии выборки каталога рецептов.
// Category и Difficulty сравниваются точно, Search ищется как подстрока
// в названии или описании без учета регистра.
type RecipeFilter struct {
	Category   string
	Difficulty string
	Search     string
}

// RecipeRepository определяет интерфейс для операций с хранилищем рецептов.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *entities.Recipe) (*entities.Recipe, error)

	FindByID(ctx context.Context, id string) (*entities.Recipe, error)

	List(ctx context.Context, filter RecipeFilter) ([]*entities.Recipe, error)

	ListByCreator(ctx context.Context, userID string) ([]*entities.Recipe, error)

	ListByIDs(ctx context.Context, ids []string) ([]*entities.Recipe, error)

	Update(ctx context.Context, recipe *entities.Recipe) (*entities.Recipe, error)

	UpdateRatings(ctx context.Context, id string, ratings map[string]int, average float64) (*entities.Recipe, error)

	Delete(ctx context.Context, id string) error
}
