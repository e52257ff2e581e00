package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/MEME-CORP/calaiweb/internal/db"
)

const (
	backupLayout   = "20060102-150405"
	checksumSuffix = ".sha256"
)

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

// BackupFileName names a backup taken at now.
func BackupFileName(now time.Time) string {
	return "calai-" + now.Format(backupLayout) + ".db"
}

// CreateBackup copies the database file to outPath and writes the copy's
// SHA-256 to a sidecar file next to it.
func CreateBackup(dbPath, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(dbPath) == "" || strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("db path and backup path are required")
	}
	if _, err := os.Stat(dbPath); err != nil {
		return BackupInfo{}, fmt.Errorf("stat db: %w", err)
	}
	sum, size, err := copyAtomic(dbPath, outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("write backup: %w", err)
	}
	if err := os.WriteFile(outPath+checksumSuffix, []byte(sum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum sidecar: %w", err)
	}
	return BackupInfo{Path: outPath, Checksum: sum, CreatedAt: time.Now(), SizeBytes: size}, nil
}

// RestoreBackup copies backupPath over dbPath. The sidecar checksum, when
// present, must match, and the file must carry a schema this build can
// read. An existing database is only replaced when force is set.
func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if _, err := os.Stat(backupPath); err != nil {
		return fmt.Errorf("stat backup: %w", err)
	}
	if _, err := os.Stat(dbPath); err == nil && !force {
		return fmt.Errorf("database %s already exists; use --force to overwrite", dbPath)
	}
	if err := verifyChecksum(backupPath); err != nil {
		return err
	}
	if err := checkBackupSchema(backupPath); err != nil {
		return err
	}
	if _, _, err := copyAtomic(backupPath, dbPath); err != nil {
		return fmt.Errorf("restore backup: %w", err)
	}
	return nil
}

// ListBackups returns the *.db files in dir, newest first. A missing
// directory is an empty list.
func ListBackups(dir string) ([]BackupInfo, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".db" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(dir, e.Name())
		out = append(out, BackupInfo{
			Path:      path,
			Checksum:  readSidecar(path),
			CreatedAt: info.ModTime(),
			SizeBytes: info.Size(),
		})
	}
	slices.SortFunc(out, func(a, b BackupInfo) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func readSidecar(path string) string {
	b, err := os.ReadFile(path + checksumSuffix)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func verifyChecksum(path string) error {
	want := readSidecar(path)
	if want == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open backup: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("hash backup: %w", err)
	}
	if got := hex.EncodeToString(h.Sum(nil)); got != want {
		return fmt.Errorf("backup checksum mismatch: sidecar %s, file %s", want, got)
	}
	return nil
}

func checkBackupSchema(path string) error {
	sqldb, err := db.OpenExisting(path)
	if err != nil {
		return fmt.Errorf("open backup: %w", err)
	}
	defer sqldb.Close()
	version, err := db.SchemaVersion(sqldb)
	if err != nil {
		return fmt.Errorf("backup is not a calai database: %w", err)
	}
	if version > db.LatestVersion() {
		return fmt.Errorf("backup schema version %d is newer than supported version %d", version, db.LatestVersion())
	}
	return nil
}

// copyAtomic streams src into a temp file beside dst, hashing on the way,
// then renames it into place so dst is never left half written.
func copyAtomic(src, dst string) (string, int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", 0, err
	}
	defer in.Close()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", 0, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return "", 0, err
	}
	defer os.Remove(tmp.Name())

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(tmp, h), in)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", 0, err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}
