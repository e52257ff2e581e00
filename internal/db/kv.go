package db

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
)

// KV is a store.Persister backed by the app_state table.
//
// The stores never look at save results, so KV keeps the first failure for
// the caller to collect through Err. After a failed read, or a snapshot a
// store reports as undecodable, it refuses all writes so a store that fell
// back to defaults cannot overwrite the data it could not read.
type KV struct {
	db     *sql.DB
	logger *log.Logger
	err    error
	frozen bool
}

func NewKV(db *sql.DB, logger *log.Logger) *KV {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &KV{db: db, logger: logger}
}

func (kv *KV) Load(key string) ([]byte, bool) {
	var value []byte
	err := kv.db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		kv.fail(fmt.Errorf("load state %q: %w", key, err))
		kv.frozen = true
		return nil, false
	}
	return value, true
}

func (kv *KV) Save(key string, value []byte) {
	if kv.frozen {
		kv.logger.Printf("skip save of %q after failed load", key)
		return
	}
	_, err := kv.db.Exec(`
INSERT INTO app_state(key, value, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`, key, value)
	if err != nil {
		kv.fail(fmt.Errorf("save state %q: %w", key, err))
		return
	}
	kv.logger.Printf("saved %q (%d bytes)", key, len(value))
}

// Fail implements store.FailureReporter. It records err and freezes writes.
func (kv *KV) Fail(key string, err error) {
	kv.fail(fmt.Errorf("state %q is unusable (run `calai doctor --fix` to reset it): %w", key, err))
	kv.frozen = true
}

// Err returns the first load or save failure, if any.
func (kv *KV) Err() error {
	return kv.err
}

func (kv *KV) fail(err error) {
	kv.logger.Println(err)
	if kv.err == nil {
		kv.err = err
	}
}

// StateEntry is one raw row of app_state.
type StateEntry struct {
	Key       string
	Value     []byte
	UpdatedAt string
}

// ListState returns every stored state row ordered by key.
func ListState(db *sql.DB) ([]StateEntry, error) {
	rows, err := db.Query(`SELECT key, value, updated_at FROM app_state ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list state: %w", err)
	}
	defer rows.Close()

	out := make([]StateEntry, 0)
	for rows.Next() {
		var e StateEntry
		if err := rows.Scan(&e.Key, &e.Value, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan state: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteState removes a state row so the owning store starts from defaults.
func DeleteState(db *sql.DB, key string) error {
	if _, err := db.Exec(`DELETE FROM app_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete state %q: %w", key, err)
	}
	return nil
}
