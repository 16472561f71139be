// Package dbtest opens throwaway migrated databases for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/twitter-api/internal/config"
	"github.com/iliyamo/twitter-api/internal/database"
)

// New returns a private in-memory SQLite database with the schema applied.
// It is closed when the test ends.
func New(t testing.TB) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	cfg := config.DBConfig{
		Driver: database.DriverSQLite,
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared&_time_format=sqlite",
	}
	db, err := database.Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(ctx, db, cfg.Driver, zap.NewNop()))
	return db
}
