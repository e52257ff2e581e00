package db

import (
	"database/sql"
	"fmt"
)

// step is one versioned schema change. Versions are applied in slice order
// and never edited once released.
type step struct {
	version int
	name    string
	ddl     string
}

var schemaSteps = []step{
	{
		version: 1,
		name:    "app_state",
		ddl: `
CREATE TABLE IF NOT EXISTS app_state (
  key TEXT PRIMARY KEY NOT NULL,
  value BLOB NOT NULL,
  updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);`,
	},
	{
		version: 2,
		name:    "app_config",
		ddl: `
CREATE TABLE IF NOT EXISTS app_config (
  key TEXT PRIMARY KEY NOT NULL,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);`,
	},
}

const migrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at TEXT NOT NULL DEFAULT (datetime('now'))
);`

// LatestVersion is the highest schema version ApplyMigrations knows about.
func LatestVersion() int {
	return schemaSteps[len(schemaSteps)-1].version
}

// ApplyMigrations brings the schema up to LatestVersion, one transaction per
// step. A database written by a newer build is refused untouched.
func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(migrationsTable); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}
	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}
	if current > LatestVersion() {
		return fmt.Errorf("database schema version %d is newer than this build supports (%d)", current, LatestVersion())
	}
	for _, s := range schemaSteps {
		if s.version <= current {
			continue
		}
		if err := applyStep(db, s); err != nil {
			return err
		}
	}
	return nil
}

func applyStep(db *sql.DB, s step) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", s.version, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(s.ddl); err != nil {
		return fmt.Errorf("apply migration %d (%s): %w", s.version, s.name, err)
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, s.version, s.name); err != nil {
		return fmt.Errorf("record migration %d: %w", s.version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d: %w", s.version, err)
	}
	return nil
}
