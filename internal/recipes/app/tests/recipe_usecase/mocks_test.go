package recipeusecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"recipebook/internal/recipes/domain/entities"
	"recipebook/internal/recipes/ports/repositories"
)

type mockRecipeRepository struct {
	mock.Mock
}

func (m *mockRecipeRepository) Create(ctx context.Context, recipe *entities.Recipe) (*entities.Recipe, error) {
	args := m.Called(ctx, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Recipe), args.Error(1)
}

func (m *mockRecipeRepository) FindByID(ctx context.Context, id string) (*entities.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Recipe), args.Error(1)
}

func (m *mockRecipeRepository) List(ctx context.Context, filter repositories.RecipeFilter) ([]*entities.Recipe, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Recipe), args.Error(1)
}

func (m *mockRecipeRepository) ListByCreator(ctx context.Context, userID string) ([]*entities.Recipe, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Recipe), args.Error(1)
}

func (m *mockRecipeRepository) ListByIDs(ctx context.Context, ids []string) ([]*entities.Recipe, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Recipe), args.Error(1)
}

func (m *mockRecipeRepository) Update(ctx context.Context, recipe *entities.Recipe) (*entities.Recipe, error) {
	args := m.Called(ctx, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Recipe), args.Error(1)
}

func (m *mockRecipeRepository) UpdateRatings(ctx context.Context, id string, ratings map[string]int, average float64) (*entities.Recipe, error) {
	args := m.Called(ctx, id, ratings, average)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Recipe), args.Error(1)
}

func (m *mockRecipeRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) UpdateFavorites(ctx context.Context, userID string, favorites []string) ([]string, error) {
	args := m.Called(ctx, userID, favorites)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func validDraft() *entities.Recipe {
	return &entities.Recipe{
		Title:       "Soup",
		Description: "A simple soup",
		PrepTime:    10,
		CookTime:    20,
		Servings:    2,
		Category:    "Lunch",
		Ingredients: []entities.Ingredient{
			{Name: "Salt", Quantity: "1", Unit: "tsp"},
		},
		Instructions: []entities.Instruction{
			{Step: 1, Description: "Boil"},
		},
	}
}
