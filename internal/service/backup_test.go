package service_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MEME-CORP/calaiweb/internal/db"
	"github.com/MEME-CORP/calaiweb/internal/service"
	"github.com/MEME-CORP/calaiweb/internal/store"
)

func TestBackupCreateListRestore(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "calai.db")
	sqldb := newTestDBAt(t, dbPath)
	st := service.NewState(db.NewKV(sqldb, nil))
	if err := st.Profile.SetAge(29); err != nil {
		t.Fatalf("set age: %v", err)
	}
	_ = sqldb.Close()

	backupDir := filepath.Join(dir, "backups")
	name := service.BackupFileName(time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC))
	if name != "calai-20260501-093000.db" {
		t.Fatalf("unexpected backup name %q", name)
	}
	info, err := service.CreateBackup(dbPath, filepath.Join(backupDir, name))
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if len(info.Checksum) != 64 {
		t.Fatalf("expected sha256 checksum, got %q", info.Checksum)
	}

	backups, err := service.ListBackups(backupDir)
	if err != nil || len(backups) != 1 || backups[0].Checksum != info.Checksum {
		t.Fatalf("unexpected backups %+v err=%v", backups, err)
	}

	if err := service.RestoreBackup(info.Path, dbPath, false); err == nil {
		t.Fatalf("expected restore over existing db to require force")
	}
	restored := filepath.Join(dir, "restored.db")
	if err := service.RestoreBackup(info.Path, restored, false); err != nil {
		t.Fatalf("restore: %v", err)
	}
	rdb, err := db.Open(restored)
	if err != nil {
		t.Fatalf("open restored: %v", err)
	}
	defer rdb.Close()
	if p := store.NewProfileStore(db.NewKV(rdb, nil)).Profile(); p.Age == nil || *p.Age != 29 {
		t.Fatalf("expected restored age 29, got %v", p.Age)
	}
}

func TestRestoreBackupDetectsTampering(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "calai.db")
	sqldb := newTestDBAt(t, dbPath)
	_ = sqldb.Close()

	info, err := service.CreateBackup(dbPath, filepath.Join(dir, "b.db"))
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if err := os.WriteFile(info.Path+".sha256", []byte(strings.Repeat("0", 64)), 0o644); err != nil {
		t.Fatalf("tamper checksum: %v", err)
	}
	err = service.RestoreBackup(info.Path, filepath.Join(dir, "out.db"), false)
	if err == nil || !strings.Contains(err.Error(), "checksum mismatch") {
		t.Fatalf("expected checksum mismatch, got %v", err)
	}
}

func TestListBackupsMissingDir(t *testing.T) {
	t.Parallel()
	backups, err := service.ListBackups(filepath.Join(t.TempDir(), "nope"))
	if err != nil || len(backups) != 0 {
		t.Fatalf("expected empty list, got %v err=%v", backups, err)
	}
}


func TestRestoreBackupRejectsForeignFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	bogus := filepath.Join(dir, "notes.db")
	if err := os.WriteFile(bogus, []byte("not sqlite"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	target := filepath.Join(dir, "out.db")
	if err := service.RestoreBackup(bogus, target, false); err == nil {
		t.Fatalf("expected foreign file to be rejected")
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("expected no database written, got %v", err)
	}
}
