package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/guttosm/msepulse/db"
	"github.com/guttosm/msepulse/internal/logger"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies every pending embedded migration.
func RunMigrations(ctx context.Context, conn *sql.DB) error {
	goose.SetBaseFS(db.Migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, conn, db.MigrationsDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, conn)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	logger.L().Info().Int64("version", version).Msg("migrations applied")
	return nil
}
