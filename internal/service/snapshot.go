package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// SnapshotKey is the fixed key the project is saved under.
const SnapshotKey = "measurement-project"

// ErrNoSnapshot is returned when nothing was saved under a key yet.
var ErrNoSnapshot = errors.New("no saved snapshot")

// SnapshotStore is a key-value store for serialized project snapshots.
type SnapshotStore interface {
	// Put stores payload under key, replacing or versioning earlier saves.
	Put(ctx context.Context, key string, payload []byte, savedAt time.Time) error
	// Get returns the latest payload under key, or ErrNoSnapshot.
	Get(ctx context.Context, key string) ([]byte, error)
	// Backend names the store in logs and metrics.
	Backend() string
}

// SnapshotRecord describes one saved version.
type SnapshotRecord struct {
	Version int       `json:"version" doc:"Save counter for the key, starting at 1"`
	SavedAt time.Time `json:"savedAt" doc:"Time of the save"`
	Size    int       `json:"size" doc:"Payload size in bytes"`
}

// HistoryStore is implemented by stores that keep earlier versions.
type HistoryStore interface {
	History(ctx context.Context, key string, limit int) ([]SnapshotRecord, error)
}

// FileStore keeps one JSON file per key in a directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a file store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Backend() string { return "file" }

// file returns the path of key.
func (s *FileStore) file(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid snapshot key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Put writes payload to disk.
func (s *FileStore) Put(ctx context.Context, key string, payload []byte, _ time.Time) error {
	path, err := s.file(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Get reads the payload from disk.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := s.file(key)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	return data, err
}

// DuckDBStore keeps every save as a new row of the snapshots table.
type DuckDBStore struct {
	db *sql.DB
}

// NewDuckDBStore wraps a connection whose schema is already migrated.
func NewDuckDBStore(db *sql.DB) *DuckDBStore {
	return &DuckDBStore{db: db}
}

func (s *DuckDBStore) Backend() string { return "duckdb" }

// Put inserts a new version of key.
func (s *DuckDBStore) Put(ctx context.Context, key string, payload []byte, savedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var version int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) + 1 FROM snapshots WHERE key = ?`, key,
	).Scan(&version); err != nil {
		return fmt.Errorf("next version: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (key, version, payload, saved_at) VALUES (?, ?, ?, ?)`,
		key, version, string(payload), savedAt.UTC(),
	); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return tx.Commit()
}

// Get returns the newest version of key.
func (s *DuckDBStore) Get(ctx context.Context, key string) ([]byte, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE key = ? ORDER BY version DESC LIMIT 1`, key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	return []byte(payload), nil
}

// History lists the newest versions of key first.
func (s *DuckDBStore) History(ctx context.Context, key string, limit int) ([]SnapshotRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT version, saved_at, length(payload) FROM snapshots WHERE key = ? ORDER BY version DESC LIMIT ?`,
		key, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []SnapshotRecord{}
	for rows.Next() {
		var r SnapshotRecord
		if err := rows.Scan(&r.Version, &r.SavedAt, &r.Size); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
