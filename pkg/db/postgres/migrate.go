package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"recipebook/pkg/logger"
)

const (
	errCtxOpenMigrations  = "opening migrations"
	errCtxApplyMigrations = "applying migrations"

	msgSchemaUpToDate = "database schema is up to date"
)

// MigrateDSN применяет накопленные миграции схемы из указанного пути.
// Отсутствие новых миграций не считается ошибкой.
func MigrateDSN(ctx context.Context, dsn string, migrationsPath string) error {
	log := logger.Log(ctx)

	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		log.Error(ctx, errCtxOpenMigrations, zap.Error(err), zap.String("path", migrationsPath))
		return fmt.Errorf("%s: %w", errCtxOpenMigrations, err)
	}
	defer m.Close()

	switch err := m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		log.Info(ctx, msgSchemaUpToDate)
	case err != nil:
		log.Error(ctx, errCtxApplyMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxApplyMigrations, err)
	default:
		log.Info(ctx, LogMigrationsApplied)
	}

	return nil
}
