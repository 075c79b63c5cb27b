// Package services определяет доменные типы и ошибки сервисов аутентификации.
package services

import (
	"errors"
	"time"
)

// Минимальная длина пароля.
const MinPasswordLength = 6

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEmailAlreadyExists    = errors.New("user with this email already exists")
	ErrInvalidPassword       = errors.New("invalid password")
	ErrHashingFailed         = errors.New("failed to hash password")
	ErrTokenGenerationFailed = errors.New("failed to generate authentication token")
)

// AuthToken представляет выданный токен доступа.
type AuthToken struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
}
