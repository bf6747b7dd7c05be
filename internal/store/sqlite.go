package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/taskboard/internal/models"
	"github.com/desertthunder/taskboard/internal/shared"
)

// SQLiteStore is the local durable backend, persisting tasks to a sqlite
// database created by the embedded migrations.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLiteStore with the given database connection.
// The connection is expected to be migrated (see shared.RunMigrations).
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const taskColumns = "id, title, description, category, status, agent, created_at, completed_at"

// List retrieves all tasks ordered newest-createdAt-first.
func (s *SQLiteStore) List(ctx context.Context) ([]models.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks ORDER BY created_at DESC", taskColumns)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tasks, nil
}

// Create inserts a new task with a generated id.
func (s *SQLiteStore) Create(ctx context.Context, task models.Task) (models.Task, error) {
	task.ID = shared.GenerateID()
	if err := task.Validate(); err != nil {
		return models.Task{}, fmt.Errorf("validation failed: %w", err)
	}

	query := fmt.Sprintf("INSERT INTO tasks (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?)", taskColumns)

	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Category,
		task.Status,
		task.Agent,
		task.CreatedAt,
		nullableTime(task.CompletedAt),
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to insert task: %w", err)
	}

	return task, nil
}

// Update reads the task, applies the patch, and writes the mutable columns
// back. Returns [shared.ErrTaskNotFound] for unknown ids.
func (s *SQLiteStore) Update(ctx context.Context, id string, patch Patch) (models.Task, error) {
	task, err := s.get(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	patch.Apply(&task, time.Now().UTC())

	query := `
		UPDATE tasks
		SET title = ?, description = ?, category = ?, status = ?, completed_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		task.Category,
		task.Status,
		nullableTime(task.CompletedAt),
		id,
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return models.Task{}, shared.ErrTaskNotFound
	}

	return task, nil
}

// Delete removes the task with the given id and returns it.
func (s *SQLiteStore) Delete(ctx context.Context, id string) (models.Task, error) {
	task, err := s.get(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return models.Task{}, shared.ErrTaskNotFound
	}

	return task, nil
}

// get retrieves a single task by id.
func (s *SQLiteStore) get(ctx context.Context, id string) (models.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = ?", taskColumns)

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return models.Task{}, shared.ErrTaskNotFound
	}
	if err != nil {
		return models.Task{}, err
	}

	return task, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask scans one task row, translating NULL completed_at to nil.
func scanTask(row rowScanner) (models.Task, error) {
	var (
		task        models.Task
		category    string
		status      string
		agent       string
		completedAt sql.NullTime
	)

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&category,
		&status,
		&agent,
		&task.CreatedAt,
		&completedAt,
	)
	if err == sql.ErrNoRows {
		return models.Task{}, err
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to scan task: %w", err)
	}

	task.Category = models.Category(category)
	task.Status = models.Status(status)
	task.Agent = models.Agent(agent)
	if completedAt.Valid {
		t := completedAt.Time
		task.CompletedAt = &t
	}

	return task, nil
}

// nullableTime converts an optional timestamp to its sql representation.
func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
