package dto

import (
	"time"

	"recipebook/internal/recipes/domain/entities"
)

// UserResponse содержит публичные данные пользователя без хэша пароля.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Favorites []string  `json:"favorites"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateProfileRequest содержит поля частичного обновления профиля.
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// ChangePasswordRequest содержит данные для смены пароля.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// NewFavoritesResponse нормализует множество избранного для ответа:
// клиенты получают массив идентификаторов, никогда не null.
func NewFavoritesResponse(favorites []string) []string {
	if favorites == nil {
		return []string{}
	}
	return favorites
}

// NewUserResponse строит ответ из доменной сущности пользователя.
func NewUserResponse(user *entities.User) *UserResponse {
	favorites := user.Favorites
	if favorites == nil {
		favorites = []string{}
	}
	return &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Favorites: favorites,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
