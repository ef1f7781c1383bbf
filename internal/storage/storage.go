// Package storage persists store snapshots across restarts. Each snapshot is
// a JSON blob wrapped in a versioned envelope and written under a fixed key
// in an embedded SQLite database; a version mismatch discards the blob
// instead of failing deserialization.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Fixed snapshot keys. Kept compatible with the web client's storage names.
const (
	KeyAuth = "auth-storage"
	KeyCart = "cart-storage"
)

// SchemaVersion tags every persisted envelope. Bump when a snapshot shape
// changes; old blobs are then treated as absent rather than migrated.
const SchemaVersion = 1

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// Store is a durable key-value snapshot store. Safe for concurrent use.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open initializes the snapshot database at path, creating the directory and
// schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init snapshot schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Put writes v as the versioned snapshot for key, replacing any prior value.
func (s *Store) Put(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", key, err)
	}
	blob, err := json.Marshal(envelope{Version: SchemaVersion, Data: data})
	if err != nil {
		return fmt.Errorf("encode envelope %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(
		`INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(blob), time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("write snapshot %q: %w", key, err)
	}
	return nil
}

// Get loads the snapshot for key into out. It reports false when no usable
// snapshot exists: never written, deleted, or written under a different
// schema version (stale blobs are dropped, not migrated).
func (s *Store) Get(key string, out interface{}) (bool, error) {
	s.mu.Lock()
	var blob string
	err := s.db.QueryRow(`SELECT value FROM snapshots WHERE key = ?`, key).Scan(&blob)
	s.mu.Unlock()

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read snapshot %q: %w", key, err)
	}

	var env envelope
	if err := json.Unmarshal([]byte(blob), &env); err != nil {
		return false, fmt.Errorf("decode envelope %q: %w", key, err)
	}
	if env.Version != SchemaVersion {
		// Stale shape from an older build. Drop it.
		_ = s.Delete(key)
		return false, nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return false, fmt.Errorf("decode snapshot %q: %w", key, err)
	}
	return true, nil
}

// Delete removes the snapshot for key. Removing an absent key is a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete snapshot %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
