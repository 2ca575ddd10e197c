package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent, so it is
// safe to call on an already-migrated database.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Deletes are RESTRICTed at the schema level too; the rule sets reject them
// first with a count of the dependents.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		code       TEXT NOT NULL,
		active     INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_code ON projects(code)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_name ON projects(name)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE RESTRICT,
		active     INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_tasks_project_name ON tasks(project_id, name)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_name ON tasks(name)`,

	`CREATE TABLE IF NOT EXISTS time_entries (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		entry_date  TEXT NOT NULL,
		hours       REAL NOT NULL CHECK(hours >= 0.1 AND hours <= 24),
		description TEXT NOT NULL,
		task_id     INTEGER NOT NULL REFERENCES tasks(id) ON DELETE RESTRICT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_time_entries_date ON time_entries(entry_date)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_task ON time_entries(task_id)`,
}
