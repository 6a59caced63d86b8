// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package testutil

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/migration"
)

// EnvTestDatabaseURL names the variable that enables integration tests.
const EnvTestDatabaseURL = "CATALOG_TEST_DATABASE_URL"

// PostgresPool connects to the integration database, applies migrations and
// empties every table. The test is skipped when no database is configured.
func PostgresPool(t testing.TB) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(EnvTestDatabaseURL)
	if dsn == "" {
		t.Skipf("%s not set; skipping PostgreSQL integration test", EnvTestDatabaseURL)
	}

	require.NoError(t, migration.RunUp(dsn, migrationsPath(), Logger()))

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `
		TRUNCATE catalog.loanevent, catalog.bookinstance, catalog.bookgenre, catalog.book,
		         catalog.author, catalog.genre, catalog.language,
		         users.permission, users.account
		RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return pool
}

// migrationsPath resolves data/migrations relative to this source file.
func migrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "data", "migrations")
}
