// Package testutils provides database helpers for integration tests.
//
// Integration tests are gated on the DATABASE_URL environment variable:
// when it is unset the tests skip, so the unit suite stays runnable
// without infrastructure. Each test runs inside a transaction that is
// rolled back on completion, so tests never need manual cleanup and can
// safely share a database.
package testutils

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// migrationsRunOnce ensures migrations are only run once across all tests.
var migrationsRunOnce sync.Once

// IsIntegrationTestEnvironment reports whether a test database is
// configured.
func IsIntegrationTestEnvironment() bool {
	return os.Getenv("DATABASE_URL") != ""
}

// GetTestDB opens a connection to the test database, applies the
// project migrations, and registers cleanup. Tests that call it skip
// when DATABASE_URL is unset.
func GetTestDB(t *testing.T) *sql.DB {
	t.Helper()

	if !IsIntegrationTestEnvironment() {
		t.Skip("skipping integration test: DATABASE_URL not set")
	}

	db, err := sql.Open("pgx", os.Getenv("DATABASE_URL"))
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, db.Ping(), "failed to ping test database")

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	require.NoError(t, setupSchema(db), "failed to set up test database schema")
	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so
// the test leaves no trace in the database.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "failed to begin test transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Logf("failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// setupSchema applies all goose migrations, once per test binary.
func setupSchema(db *sql.DB) error {
	var setupErr error
	migrationsRunOnce.Do(func() {
		if err := goose.SetDialect("postgres"); err != nil {
			setupErr = fmt.Errorf("setting goose dialect: %w", err)
			return
		}

		dir, err := migrationsDir()
		if err != nil {
			setupErr = err
			return
		}

		if err := goose.Up(db, dir); err != nil {
			setupErr = fmt.Errorf("applying migrations: %w", err)
		}
	})
	return setupErr
}

// migrationsDir locates the migrations directory relative to this file,
// so tests work regardless of the package they run from.
func migrationsDir() (string, error) {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("unable to determine caller location")
	}
	dir := filepath.Join(filepath.Dir(thisFile), "..", "..", "migrations")
	if _, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("migrations directory not found at %s: %w", dir, err)
	}
	return dir, nil
}
