// Package store persists project settings in a SQLite database. Bodies are
// opaque JSON documents; the planner decides what goes in them.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ErrNotFound is returned for unknown project ids
var ErrNotFound = errors.New("project not found")

const schema = `
CREATE TABLE IF NOT EXISTS projects (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    body       TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS projects_name ON projects(name);
`

// Project is one stored settings document
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Body      []byte    `json:"-"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store is a project repository
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and applies the schema
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir db dir: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts a new project when id is empty, otherwise replaces the
// project with that id. It returns the id.
func (s *Store) Save(ctx context.Context, id, name string, body []byte) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO projects (id, name, body, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET name = excluded.name, body = excluded.body, updated_at = excluded.updated_at
    `, id, name, string(body), s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("save project %s: %w", name, err)
	}
	return id, nil
}

// Load returns one project
func (s *Store) Load(ctx context.Context, id string) (*Project, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, name, body, updated_at
        FROM projects
        WHERE id = ?
    `, id)

	var (
		p       Project
		body    string
		updated string
	)
	if err := row.Scan(&p.ID, &p.Name, &body, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	p.Body = []byte(body)
	p.UpdatedAt = parseTime(updated)
	return &p, nil
}

// FindByName returns the most recently updated project with a name
func (s *Store) FindByName(ctx context.Context, name string) (*Project, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
        SELECT id FROM projects WHERE name = ? ORDER BY updated_at DESC LIMIT 1
    `, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return s.Load(ctx, id)
}

// List returns all projects without their bodies, newest first
func (s *Store) List(ctx context.Context) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, name, updated_at
        FROM projects
        ORDER BY updated_at DESC, name
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		var (
			p       Project
			updated string
		)
		if err := rows.Scan(&p.ID, &p.Name, &updated); err != nil {
			return nil, err
		}
		p.UpdatedAt = parseTime(updated)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes a project
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
