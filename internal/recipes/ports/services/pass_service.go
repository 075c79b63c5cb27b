// Package services определяет интерфейсы вспомогательных сервисов.
package services

import "context"

// PasswordService определяет операции для работы с паролем.
type PasswordService interface {
	Hash(ctx context.Context, password string) (string, error)

	Verify(ctx context.Context, password, hash string) (bool, error)
}
