// Package entities определяет доменные сущности приложения рецептов.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrPasswordTooShort = errors.New("password must contain at least 6 characters")
	ErrUserNotFound     = errors.New("user not found")
	ErrAlreadyFavorite  = errors.New("recipe already in favorites")
)

// User представляет основную сущность домена пользователя.
// Favorites хранит множество идентификаторов рецептов без дубликатов.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Favorites    []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasFavorite проверяет наличие рецепта в избранном.
func (u *User) HasFavorite(recipeID string) bool {
	for _, id := range u.Favorites {
		if id == recipeID {
			return true
		}
	}
	return false
}

// AddFavorite добавляет рецепт в избранное.
// Повторное добавление возвращает ErrAlreadyFavorite.
func (u *User) AddFavorite(recipeID string) error {
	if u.HasFavorite(recipeID) {
		return ErrAlreadyFavorite
	}
	u.Favorites = append(u.Favorites, recipeID)
	return nil
}

// RemoveFavorite удаляет рецепт из избранного.
// Удаление отсутствующего идентификатора не является ошибкой.
func (u *User) RemoveFavorite(recipeID string) {
	filtered := u.Favorites[:0]
	for _, id := range u.Favorites {
		if id != recipeID {
			filtered = append(filtered, id)
		}
	}
	u.Favorites = filtered
}
