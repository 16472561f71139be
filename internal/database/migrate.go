package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Each driver keeps its own copy of the schema; the DDL differs in column
// types and index syntax.
//
//go:embed migrations
var migrationsFS embed.FS

func gooseDialect(driver string) (goose.Dialect, error) {
	switch driver {
	case DriverMySQL:
		return goose.DialectMySQL, nil
	case DriverPostgres:
		return goose.DialectPostgres, nil
	case DriverSQLite:
		return goose.DialectSQLite3, nil
	}
	return "", fmt.Errorf("no migrations for driver %q", driver)
}

// Migrate applies every pending migration for driver.
func Migrate(ctx context.Context, db *sqlx.DB, driver string, log *zap.Logger) error {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return err
	}
	fsys, err := fs.Sub(migrationsFS, "migrations/"+driver)
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(dialect, db.DB, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	for _, r := range results {
		log.Info("migration applied",
			zap.Int64("version", r.Source.Version),
			zap.String("file", r.Source.Path),
			zap.Duration("took", r.Duration))
	}
	return nil
}
