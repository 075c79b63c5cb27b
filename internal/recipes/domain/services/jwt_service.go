package services

import (
	"errors"
	"time"
)

// Ошибки работы с JWT токенами.
var (
	ErrGeneratingJWTToken = errors.New("error generating JWT token")
	ErrInvalidJWTToken    = errors.New("invalid JWT token")
	ErrExpiredJWTToken    = errors.New("JWT token has expired")
)

// JWTConfig содержит параметры подписи токенов.
type JWTConfig struct {
	SecretKey      []byte
	AccessTokenTTL time.Duration
}

// JWTClaims представляет доменную модель утверждений токена.
type JWTClaims struct {
	UserID    string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
