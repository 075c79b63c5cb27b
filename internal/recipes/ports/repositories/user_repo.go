// Package repositories определяет интерфейсы хранилищ приложения рецептов.
package repositories

import (
	"context"

	"recipebook/internal/recipes/domain/entities"
)

// UserRepository определяет интерфейс для операций с хранилищем пользователей.
// Сравнение email регистронезависимое.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	Update(ctx context.Context, user *entities.User) (*entities.User, error)

	UpdateFavorites(ctx context.Context, userID string, favorites []string) ([]string, error)
}
