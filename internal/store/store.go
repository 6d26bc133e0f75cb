// Package store is a thin transactional façade over the SQLite staging
// database. It owns slug uniqueness, record timestamps, and the
// archive-on-delete contract; callers never see raw rows.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Store wraps the bun handle shared by the per-entity stores.
type Store struct {
	db *bun.DB
}

// Open opens or creates the SQLite database at path. The schema is not
// touched; call Init for that.
func Open(path string) (*Store, error) {
	sqlDB, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := sqlDB.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	// Single-writer tool; one connection keeps transactions simple.
	db.SetMaxOpenConns(1)

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Posts returns the post operations bound to this store.
func (s *Store) Posts() *PostStore {
	return &PostStore{db: s.db}
}

// Projects returns the project operations bound to this store.
func (s *Store) Projects() *ProjectStore {
	return &ProjectStore{db: s.db}
}

const schema = `
CREATE TABLE IF NOT EXISTS posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	slug TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	summary TEXT,
	body_md TEXT NOT NULL,
	author TEXT,
	thumbnail_url TEXT,
	tags TEXT,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS deleted_posts (
	id INTEGER NOT NULL,
	slug TEXT NOT NULL,
	title TEXT NOT NULL,
	summary TEXT,
	body_md TEXT NOT NULL,
	author TEXT,
	thumbnail_url TEXT,
	tags TEXT,
	created_at TIMESTAMP,
	updated_at TIMESTAMP,
	deleted_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	slug TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	project_type TEXT,
	summary TEXT,
	duration TEXT,
	skills TEXT,
	description_md TEXT,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS deleted_projects (
	id INTEGER NOT NULL,
	slug TEXT NOT NULL,
	title TEXT NOT NULL,
	project_type TEXT,
	summary TEXT,
	duration TEXT,
	skills TEXT,
	description_md TEXT,
	created_at TIMESTAMP,
	updated_at TIMESTAMP,
	deleted_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_posts_created ON posts(created_at);
CREATE INDEX IF NOT EXISTS idx_projects_created ON projects(created_at);
`

// Init creates the live and archive tables. Idempotent; safe to run on
// every start.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}
