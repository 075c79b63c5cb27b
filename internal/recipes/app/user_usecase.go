package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"recipebook/internal/recipes/domain/entities"
	"recipebook/internal/recipes/domain/services"
	"recipebook/internal/recipes/ports/repositories"
	svc "recipebook/internal/recipes/ports/services"
	"recipebook/pkg/logger"
)

const (
	methodGetProfile     = "GetProfile"
	methodUpdateProfile  = "UpdateProfile"
	methodChangePassword = "ChangePassword"

	msgGettingProfile     = "getting user profile"
	msgUpdatingProfile    = "updating user profile"
	msgChangingPassword   = "changing user password"
	msgProfileUpdated     = "profile updated successfully"
	msgPasswordChanged    = "password changed successfully"
	msgWrongCurrentPass   = "current password does not match"
	msgErrLoadUser        = "failed to load user"
	msgErrUpdateUser      = "failed to update user"
	msgErrHashNewPassword = "failed to hash new password"

	errCtxLoadingUser        = "loading user"
	errCtxUpdatingUser       = "updating user"
	errCtxCurrentPassword    = "verifying current password"
	errCtxHashingNewPassword = "hashing new password"
)

// ProfilePatch описывает частичное обновление профиля:
// обновляются только переданные поля.
type ProfilePatch struct {
	Name  *string
	Email *string
}

// UserUseCase реализует операции над профилем текущего пользователя.
type UserUseCase struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
}

// NewUserUseCase создает новый экземпляр сервиса пользователя.
func NewUserUseCase(userRepo repositories.UserRepository, passwordSvc svc.PasswordService) *UserUseCase {
	return &UserUseCase{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
	}
}

// GetProfile возвращает профиль пользователя по его идентификатору.
func (u *UserUseCase) GetProfile(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetProfile), zap.String("userID", userID))
	log.Debug(ctx, msgGettingProfile)

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, entities.ErrUserNotFound) {
			log.Error(ctx, msgErrLoadUser, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxLoadingUser, err)
	}

	return user, nil
}

// UpdateProfile применяет частичное обновление имени и email пользователя.
func (u *UserUseCase) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateProfile), zap.String("userID", userID))
	log.Debug(ctx, msgUpdatingProfile)

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxLoadingUser, err)
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingName, entities.ErrEmptyName)
		}
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		if err := validateEmail(*patch.Email); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, err)
		}
		user.Email = *patch.Email
	}

	updated, err := u.userRepo.Update(ctx, user)
	if err != nil {
		if !errors.Is(err, services.ErrEmailAlreadyExists) {
			log.Error(ctx, msgErrUpdateUser, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	log.Info(ctx, msgProfileUpdated)
	return updated, nil
}

// ChangePassword заменяет хэш пароля после проверки текущего пароля.
func (u *UserUseCase) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	log := logger.Log(ctx).With(zap.String("method", methodChangePassword), zap.String("userID", userID))
	log.Debug(ctx, msgChangingPassword)

	if len(newPassword) < services.MinPasswordLength {
		return fmt.Errorf("%s: %w", errCtxValidatingPassword, entities.ErrPasswordTooShort)
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxLoadingUser, err)
	}

	valid, err := u.passwordSvc.Verify(ctx, currentPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxCurrentPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgWrongCurrentPass)
		return fmt.Errorf("%s: %w", errCtxCurrentPassword, services.ErrInvalidCredentials)
	}

	hash, err := u.passwordSvc.Hash(ctx, newPassword)
	if err != nil {
		log.Error(ctx, msgErrHashNewPassword, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxHashingNewPassword, err)
	}

	user.PasswordHash = hash
	if _, err := u.userRepo.Update(ctx, user); err != nil {
		log.Error(ctx, msgErrUpdateUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	log.Info(ctx, msgPasswordChanged)
	return nil
}
