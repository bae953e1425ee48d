// Package sqlite implements the object store over a local SQLite
// database. It backs dry runs and local development, where pointing
// the pipeline at a real bucket is unnecessary; the idempotent
// skip-if-exists semantics are identical to the production store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/custodia-labs/histora/internal/core/domain"
	"github.com/custodia-labs/histora/internal/core/ports/driven"
)

const schema = `
CREATE TABLE IF NOT EXISTS objects (
	key          TEXT PRIMARY KEY,
	body         BLOB NOT NULL,
	content_type TEXT NOT NULL DEFAULT '',
	metadata     TEXT NOT NULL DEFAULT '{}',
	created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Ensure ObjectStore implements the interface.
var _ driven.ObjectStore = (*ObjectStore)(nil)

// ObjectStore stores objects in a SQLite database file.
type ObjectStore struct {
	db *sql.DB
}

// Open opens (creating if needed) a store at path. Use ":memory:"
// for an ephemeral store.
func Open(path string) (*ObjectStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &ObjectStore{db: db}, nil
}

// Close closes the underlying database.
func (s *ObjectStore) Close() error {
	return s.db.Close()
}

// Put writes an object, replacing any existing row at the key.
func (s *ObjectStore) Put(ctx context.Context, key string, body []byte, contentType string, metadata map[string]string) error {
	meta, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO objects (key, body, content_type, metadata) VALUES (?, ?, ?, ?)`,
		key, body, contentType, string(meta))
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Get retrieves an object body.
func (s *ObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM objects WHERE key = ?`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return body, nil
}

// Exists reports whether an object exists at key.
func (s *ObjectStore) Exists(ctx context.Context, key string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM objects WHERE key = ?`, key).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check %s: %w", key, err)
	}
	return true, nil
}

// List returns the keys under a prefix, sorted.
func (s *ObjectStore) List(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM objects WHERE key LIKE ? || '%' ORDER BY key`, prefix)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Delete removes an object. Deleting a missing key is not an error.
func (s *ObjectStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM objects WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Metadata returns an object's metadata tags.
func (s *ObjectStore) Metadata(ctx context.Context, key string) (map[string]string, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT metadata FROM objects WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("metadata %s: %w", key, err)
	}
	var meta map[string]string
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, fmt.Errorf("decode metadata %s: %w", key, err)
	}
	return meta, nil
}
