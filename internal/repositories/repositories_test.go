package repositories

import (
	"database/sql"
	"testing"

	"github.com/a-yossy/spotify-mcp/internal/shared"
)

// setupTestDB opens an in-memory database with migrations applied. The
// pool is pinned to one connection so every query sees the same memory
// database.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}
