package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/timelog/internal/db"
	"github.com/alexanderramin/timelog/internal/repository"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestStore returns a SQLite-backed Store over a fresh in-memory database.
func NewTestStore(t *testing.T) *repository.SQLiteStore {
	t.Helper()
	return repository.NewSQLiteStore(NewTestDB(t))
}
