// Package store keeps a library of serialized wick projects in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/wickgo/wick"
)

const schemaVersion = "1"

// ErrNotFound is returned when no project has the requested identifier.
var ErrNotFound = errors.New("store: project not found")

// Entry describes a stored project without its data.
type Entry struct {
	UUID      string
	Name      string
	Framerate int
	Size      int
	UpdatedAt time.Time
}

// Store is a SQLite-backed project library.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the library at path. ":memory:" opens a private
// in-memory library.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	// A single connection keeps ":memory:" libraries shared across queries.
	db.SetMaxOpenConns(1)

	_, err = db.ExecContext(ctx, `
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS projects (
			uuid TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			framerate INTEGER NOT NULL,
			data BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_projects_name ON projects(name);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("setup store: %w", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("setup store: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the path the store was opened with.
func (s *Store) Path() string { return s.path }

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save serializes p and inserts or replaces its record.
func (s *Store) Save(ctx context.Context, p *wick.Project) error {
	data, err := p.Serialize()
	if err != nil {
		return fmt.Errorf("save %s: %w", p.Name, err)
	}
	return s.Put(ctx, p.UUID(), p.Name, p.Framerate(), data)
}

// Put stores already serialized project data.
func (s *Store) Put(ctx context.Context, uuid, name string, framerate int, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO projects (uuid, name, framerate, data, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, uuid, name, framerate, data, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

// Data returns the serialized project stored under uuid.
func (s *Store) Data(ctx context.Context, uuid string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM projects WHERE uuid = ?`, uuid).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, uuid)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", uuid, err)
	}
	return data, nil
}

// Load deserializes the project stored under uuid.
func (s *Store) Load(ctx context.Context, uuid string) (*wick.Project, error) {
	data, err := s.Data(ctx, uuid)
	if err != nil {
		return nil, err
	}
	p, err := wick.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", uuid, err)
	}
	return p, nil
}

// Find returns the entry whose identifier or name is key. Identifiers take
// precedence; among equal names the most recently saved wins.
func (s *Store) Find(ctx context.Context, key string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT uuid, name, framerate, length(data), updated_at
		FROM projects WHERE uuid = ? OR name = ?
		ORDER BY uuid = ? DESC, updated_at DESC
		LIMIT 1
	`, key, key, key)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return e, err
}

// List returns every stored project, most recently saved first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT uuid, name, framerate, length(data), updated_at
		FROM projects ORDER BY updated_at DESC, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete removes the project stored under uuid.
func (s *Store) Delete(ctx context.Context, uuid string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE uuid = ?`, uuid)
	if err != nil {
		return fmt.Errorf("delete %s: %w", uuid, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, uuid)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		e       Entry
		updated int64
	)
	if err := row.Scan(&e.UUID, &e.Name, &e.Framerate, &e.Size, &updated); err != nil {
		return Entry{}, err
	}
	e.UpdatedAt = time.UnixMilli(updated)
	return e, nil
}
