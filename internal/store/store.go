// Package store handles SQLite persistence of saved hints.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/verte-zerg/randomhints/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// savedAtLayout is fixed width so text order matches time order.
const savedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for saved hints.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS saved_hints (
			id TEXT PRIMARY KEY,
			saved_at TEXT NOT NULL,
			application TEXT NOT NULL,
			target TEXT NOT NULL,
			object TEXT NOT NULL,
			action TEXT NOT NULL,
			color TEXT NOT NULL,
			patterns INTEGER NOT NULL,
			snapshot_path TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_saved_hints_saved_at ON saved_hints(saved_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertHint stores a saved hint.
func (s *Store) InsertHint(ctx context.Context, hint model.SavedHint) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO saved_hints (id, saved_at, application, target, object, action, color, patterns, snapshot_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		hint.ID,
		hint.SavedAt.UTC().Format(savedAtLayout),
		hint.Selection.Application,
		hint.Selection.Target,
		hint.Selection.Object,
		hint.Selection.Action,
		hint.Selection.Color.Hex(),
		hint.Patterns,
		hint.SnapshotPath,
	)
	return err
}

// ListHints returns saved hints, newest first. limit <= 0 returns all.
func (s *Store) ListHints(ctx context.Context, limit int) ([]model.SavedHint, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, saved_at, application, target, object, action, color, patterns, snapshot_path
		 FROM saved_hints
		 ORDER BY saved_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var hints []model.SavedHint
	for rows.Next() {
		var hint model.SavedHint
		var savedAt, color string
		if err := rows.Scan(&hint.ID, &savedAt, &hint.Selection.Application, &hint.Selection.Target,
			&hint.Selection.Object, &hint.Selection.Action, &color, &hint.Patterns, &hint.SnapshotPath); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(savedAtLayout, savedAt)
		if err != nil {
			return nil, err
		}
		hint.SavedAt = parsed
		c, err := colorful.Hex(color)
		if err != nil {
			return nil, err
		}
		hint.Selection.Color = c
		hints = append(hints, hint)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return hints, nil
}
