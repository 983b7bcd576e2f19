// Package sqlstore persists panel metadata in a SQL table, one row per
// (content_id, meta_key), with values encoded as JSON. SQLite and Postgres
// are supported.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-metabox/pkg/panel"
)

const defaultTable = "content_meta"

// Store implements panel.Store on database/sql.
type Store struct {
	db      *sql.DB
	dialect Dialect

	getQuery    string
	setQuery    string
	deleteQuery string
	allQuery    string
}

var _ panel.Store = (*Store)(nil)

// New wraps an open database. The content_meta table must already exist.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{
		db:      db,
		dialect: dialect,
		getQuery: dialect.rebind(
			`SELECT meta_value FROM ` + defaultTable + ` WHERE content_id = ? AND meta_key = ?`),
		setQuery: dialect.rebind(
			`INSERT INTO ` + defaultTable + ` (content_id, meta_key, meta_value) VALUES (?, ?, ?)` +
				` ON CONFLICT (content_id, meta_key) DO UPDATE SET meta_value = excluded.meta_value, updated_at = ` + dialect.Now),
		deleteQuery: dialect.rebind(
			`DELETE FROM ` + defaultTable + ` WHERE content_id = ? AND meta_key = ?`),
		allQuery: dialect.rebind(
			`SELECT meta_key, meta_value FROM ` + defaultTable + ` WHERE content_id = ? ORDER BY meta_key`),
	}
}

// DB exposes the underlying handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get loads and decodes one value.
func (s *Store) Get(ctx context.Context, contentID, key string) (any, bool, error) {
	if err := validateKey(contentID, key); err != nil {
		return nil, false, err
	}

	var raw []byte
	err := s.db.QueryRowContext(ctx, s.getQuery, contentID, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sqlstore: get %s/%s: %w", contentID, key, err)
	}

	value, err := decodeValue(raw)
	if err != nil {
		return nil, false, fmt.Errorf("sqlstore: decode %s/%s: %w", contentID, key, err)
	}
	return value, true, nil
}

// Set upserts one value.
func (s *Store) Set(ctx context.Context, contentID, key string, value any) error {
	if err := validateKey(contentID, key); err != nil {
		return err
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("sqlstore: encode %s/%s: %w", contentID, key, err)
	}
	if _, err := s.db.ExecContext(ctx, s.setQuery, contentID, key, string(encoded)); err != nil {
		return fmt.Errorf("sqlstore: set %s/%s: %w", contentID, key, err)
	}
	return nil
}

// Delete removes one value. Missing rows are not an error.
func (s *Store) Delete(ctx context.Context, contentID, key string) error {
	if err := validateKey(contentID, key); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, s.deleteQuery, contentID, key); err != nil {
		return fmt.Errorf("sqlstore: delete %s/%s: %w", contentID, key, err)
	}
	return nil
}

// All loads every value stored for contentID.
func (s *Store) All(ctx context.Context, contentID string) (map[string]any, error) {
	rows, err := s.db.QueryContext(ctx, s.allQuery, contentID)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: list %s: %w", contentID, err)
	}
	defer rows.Close()

	out := make(map[string]any)
	for rows.Next() {
		var key string
		var raw []byte
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("sqlstore: scan %s: %w", contentID, err)
		}
		value, err := decodeValue(raw)
		if err != nil {
			return nil, fmt.Errorf("sqlstore: decode %s/%s: %w", contentID, key, err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: list %s: %w", contentID, err)
	}
	return out, nil
}

func validateKey(contentID, key string) error {
	if strings.TrimSpace(contentID) == "" {
		return ErrContentIDRequired
	}
	if strings.TrimSpace(key) == "" {
		return ErrKeyRequired
	}
	return nil
}

func decodeValue(raw []byte) (any, error) {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	return value, nil
}
