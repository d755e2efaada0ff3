package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tasktime/internal/apperr"
	"tasktime/internal/models"
)

// Store wraps access to the SQLite database backing the reference API.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open initializes a new SQLite store and runs the required migrations.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("empty database path")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)

	s := &Store{db: conn, logger: logger}
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	logger.Info("sqlite store ready", slog.String("path", dbPath))
	return s, nil
}

// Close releases the database resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// Operations carry a plain task_id column without a foreign key: the API
// enforces nothing and deleting a task leaves its operations in place.
func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL DEFAULT '',
            description TEXT NOT NULL DEFAULT '',
            added_date DATETIME NOT NULL,
            status TEXT NOT NULL DEFAULT 'open'
        );`,
		`CREATE TABLE IF NOT EXISTS operations (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            task_id INTEGER NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            added_date DATETIME NOT NULL,
            spent_time INTEGER NOT NULL DEFAULT 0
        );`,
		`CREATE INDEX IF NOT EXISTS idx_operations_task ON operations(task_id);`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

func normalizeTime(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC()
}

// ListTasks returns every task ordered by id.
func (s *Store) ListTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description, added_date, status FROM tasks ORDER BY id`)
	if err != nil {
		return nil, apperr.NewStorageError("list tasks", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.AddedDate, &t.Status); err != nil {
			return nil, apperr.NewStorageError("scan task", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CreateTask persists a new task. An empty status is stored as open.
func (s *Store) CreateTask(ctx context.Context, in models.NewTask) (models.Task, error) {
	status := in.Status
	if status == "" {
		status = models.StatusOpen
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO tasks(name, description, added_date, status) VALUES(?, ?, ?, ?)`,
		in.Name, in.Description, normalizeTime(in.AddedDate), string(status))
	if err != nil {
		return models.Task{}, apperr.NewStorageError("insert task", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Task{}, fmt.Errorf("task id: %w", err)
	}
	return s.GetTask(ctx, id)
}

// GetTask retrieves a task by id.
func (s *Store) GetTask(ctx context.Context, id int64) (models.Task, error) {
	var t models.Task
	err := s.db.QueryRowContext(ctx, `SELECT id, name, description, added_date, status FROM tasks WHERE id = ?`, id).
		Scan(&t.ID, &t.Name, &t.Description, &t.AddedDate, &t.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, apperr.NewNotFoundError("task", id)
	}
	if err != nil {
		return models.Task{}, apperr.NewStorageError("get task", err)
	}
	return t, nil
}

// UpdateTask applies the non-nil fields of patch.
func (s *Store) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (models.Task, error) {
	current, err := s.GetTask(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	if patch.Name != nil {
		current.Name = *patch.Name
	}
	if patch.Description != nil {
		current.Description = *patch.Description
	}
	if patch.Status != nil {
		if _, ok := models.ValidStatuses[*patch.Status]; !ok {
			return models.Task{}, apperr.NewInputError("status", string(*patch.Status), "must be open or closed")
		}
		current.Status = *patch.Status
	}

	_, err = s.db.ExecContext(ctx, `UPDATE tasks SET name = ?, description = ?, status = ? WHERE id = ?`,
		current.Name, current.Description, string(current.Status), id)
	if err != nil {
		return models.Task{}, apperr.NewStorageError("update task", err)
	}
	return s.GetTask(ctx, id)
}

// DeleteTask removes a task by id. Its operations are not touched.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return apperr.NewStorageError("delete task", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NewNotFoundError("task", id)
	}
	return nil
}

// ListOperations returns every operation ordered by id.
func (s *Store) ListOperations(ctx context.Context) ([]models.Operation, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, task_id, description, added_date, spent_time FROM operations ORDER BY id`)
	if err != nil {
		return nil, apperr.NewStorageError("list operations", err)
	}
	defer rows.Close()

	ops := []models.Operation{}
	for rows.Next() {
		var op models.Operation
		if err := rows.Scan(&op.ID, &op.TaskID, &op.Description, &op.AddedDate, &op.SpentTime); err != nil {
			return nil, apperr.NewStorageError("scan operation", err)
		}
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

// CreateOperation persists a new operation.
func (s *Store) CreateOperation(ctx context.Context, in models.NewOperation) (models.Operation, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO operations(task_id, description, added_date, spent_time) VALUES(?, ?, ?, ?)`,
		in.TaskID, in.Description, normalizeTime(in.AddedDate), in.SpentTime)
	if err != nil {
		return models.Operation{}, apperr.NewStorageError("insert operation", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Operation{}, fmt.Errorf("operation id: %w", err)
	}
	return s.GetOperation(ctx, id)
}

// GetOperation retrieves an operation by id.
func (s *Store) GetOperation(ctx context.Context, id int64) (models.Operation, error) {
	var op models.Operation
	err := s.db.QueryRowContext(ctx, `SELECT id, task_id, description, added_date, spent_time FROM operations WHERE id = ?`, id).
		Scan(&op.ID, &op.TaskID, &op.Description, &op.AddedDate, &op.SpentTime)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Operation{}, apperr.NewNotFoundError("operation", id)
	}
	if err != nil {
		return models.Operation{}, apperr.NewStorageError("get operation", err)
	}
	return op, nil
}

// UpdateOperation applies the non-nil fields of patch.
func (s *Store) UpdateOperation(ctx context.Context, id int64, patch models.OperationPatch) (models.Operation, error) {
	current, err := s.GetOperation(ctx, id)
	if err != nil {
		return models.Operation{}, err
	}

	if patch.Description != nil {
		current.Description = *patch.Description
	}
	if patch.SpentTime != nil {
		current.SpentTime = *patch.SpentTime
	}

	_, err = s.db.ExecContext(ctx, `UPDATE operations SET description = ?, spent_time = ? WHERE id = ?`,
		current.Description, current.SpentTime, id)
	if err != nil {
		return models.Operation{}, apperr.NewStorageError("update operation", err)
	}
	return s.GetOperation(ctx, id)
}

// DeleteOperation removes an operation by id.
func (s *Store) DeleteOperation(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM operations WHERE id = ?`, id)
	if err != nil {
		return apperr.NewStorageError("delete operation", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NewNotFoundError("operation", id)
	}
	return nil
}
