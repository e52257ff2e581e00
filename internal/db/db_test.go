package db_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MEME-CORP/calaiweb/internal/db"
)

func TestOpenKeepsPathCharactersAndPragmas(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "odd?name#dir")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, "calai 1.db")

	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected database file at %s: %v", path, err)
	}
	if matches, _ := filepath.Glob(filepath.Join(filepath.Dir(dir), "odd*")); len(matches) != 1 {
		t.Fatalf("expected only the named directory, got %v", matches)
	}

	var fk, timeout int
	if err := sqldb.QueryRow(`PRAGMA foreign_keys`).Scan(&fk); err != nil {
		t.Fatalf("read foreign_keys: %v", err)
	}
	if err := sqldb.QueryRow(`PRAGMA busy_timeout`).Scan(&timeout); err != nil {
		t.Fatalf("read busy_timeout: %v", err)
	}
	if fk != 1 || timeout != 5000 {
		t.Fatalf("expected foreign_keys=1 busy_timeout=5000, got %d and %d", fk, timeout)
	}
}
