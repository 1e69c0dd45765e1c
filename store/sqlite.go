package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"task-manager/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL CHECK (length(trim(title)) BETWEEN 1 AND 200),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at DESC, seq DESC);
`

// SQLite stores tasks in a single table. Ids are random UUIDs; seq preserves
// insertion order for tasks created within the same millisecond.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at uri, which may be a
// plain path, a file: URI or sqlite://path.
func OpenSQLite(ctx context.Context, uri string) (*SQLite, error) {
	db, err := sql.Open("sqlite", sqliteDSN(uri))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection: writes serialize and :memory: databases stay shared.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &SQLite{db: db}, nil
}

func sqliteDSN(uri string) string {
	dsn := strings.TrimPrefix(uri, "sqlite://")
	params := []struct{ marker, param string }{
		{"_time_format=", "_time_format=sqlite"},
		{"busy_timeout", "_pragma=busy_timeout(5000)"},
	}
	for _, p := range params {
		if strings.Contains(dsn, p.marker) {
			continue
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + p.param
	}
	return dsn
}

// Create inserts a new task.
func (s *SQLite) Create(ctx context.Context, title string) (*models.Task, error) {
	title, err := prepareTitle(title)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	task := &models.Task{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
	INSERT INTO tasks (id, title, created_at, updated_at)
	VALUES (?, ?, ?, ?)
	`
	if _, err := s.db.ExecContext(ctx, query, task.ID, task.Title, task.CreatedAt, task.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

// List returns all tasks, newest first.
func (s *SQLite) List(ctx context.Context) ([]models.Task, error) {
	query := `
	SELECT id, title, created_at, updated_at
	FROM tasks
	ORDER BY created_at DESC, seq DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// Delete removes a task inside a transaction so the returned snapshot is the
// row that was actually deleted.
func (s *SQLite) Delete(ctx context.Context, id string) (*models.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
	SELECT id, title, created_at, updated_at
	FROM tasks
	WHERE id = ?
	`, id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("delete task %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit delete: %w", err)
	}
	return task, nil
}

// ValidID accepts canonical UUID strings.
func (s *SQLite) ValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*models.Task, error) {
	var task models.Task
	err := row.Scan(&task.ID, &task.Title, &task.CreatedAt, &task.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan task: %w", err)
	}
	task.CreatedAt = task.CreatedAt.UTC()
	task.UpdatedAt = task.UpdatedAt.UTC()
	return &task, nil
}
