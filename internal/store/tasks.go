package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tracker/internal/models"
)

// ErrTaskNotFound is returned by mutations targeting an absent task.
var ErrTaskNotFound = errors.New("task not found")

const taskColumns = "id, title, description, label, requester, priority, status, created_at, due_at, done"

// TaskUpdate carries the editable field subset. Priority and label are
// fixed at creation and not part of it.
type TaskUpdate struct {
	Title       string
	Description string
	Status      string
	Requester   string
	DueAt       *time.Time
}

// LoadAllTasks returns every task keyed by id. An empty database yields
// an empty, non-nil map.
func (s *Store) LoadAllTasks(ctx context.Context) (map[int64]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+taskColumns+" FROM todos ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make(map[int64]models.Task)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks[task.ID] = *task
	}
	return tasks, rows.Err()
}

// GetTask returns a task by id, or nil if it does not exist.
func (s *Store) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM todos WHERE id = ?", id)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// CreateTask inserts a task and assigns its id on the struct.
func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	if task == nil {
		return fmt.Errorf("task is required")
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO todos (title, description, label, requester, priority, status, created_at, due_at, done)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		task.Title,
		nullIfEmpty(task.Description),
		nullIfEmpty(task.Label),
		nullIfEmpty(task.Requester),
		task.Priority,
		task.Status,
		formatDate(task.CreatedAt),
		nullDate(task.DueAt),
		boolToInt(task.Done),
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	task.ID = id
	return nil
}

// UpdateTask overwrites the editable field subset of a task.
func (s *Store) UpdateTask(ctx context.Context, id int64, update TaskUpdate) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE todos SET title = ?, description = ?, status = ?, requester = ?, due_at = ?
		WHERE id = ?
	`,
		update.Title,
		nullIfEmpty(update.Description),
		update.Status,
		nullIfEmpty(update.Requester),
		nullDate(update.DueAt),
		id,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// DeleteTask removes a task. Its subtasks are left in place.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// SetTaskDone writes the done flag.
func (s *Store) SetTaskDone(ctx context.Context, id int64, done bool) error {
	res, err := s.db.ExecContext(ctx, "UPDATE todos SET done = ? WHERE id = ?", boolToInt(done), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func scanTask(scanner interface {
	Scan(dest ...any) error
}) (*models.Task, error) {
	var task models.Task
	var description, label, requester, dueAt sql.NullString
	var createdAt string
	var done int

	if err := scanner.Scan(
		&task.ID,
		&task.Title,
		&description,
		&label,
		&requester,
		&task.Priority,
		&task.Status,
		&createdAt,
		&dueAt,
		&done,
	); err != nil {
		return nil, err
	}

	task.Description = description.String
	task.Label = label.String
	task.Requester = requester.String
	task.Done = done != 0

	parsedCreated, err := parseDate(createdAt)
	if err != nil {
		return nil, err
	}
	task.CreatedAt = parsedCreated

	if dueAt.Valid && dueAt.String != "" {
		parsedDue, err := parseDate(dueAt.String)
		if err != nil {
			return nil, err
		}
		task.DueAt = &parsedDue
	}

	return &task, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullDate(value *time.Time) any {
	if value == nil || value.IsZero() {
		return nil
	}
	return formatDate(*value)
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

// Dates are stored at day precision.
const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, value)
}
