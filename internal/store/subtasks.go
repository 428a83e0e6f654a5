package store

import (
	"context"
	"database/sql"

	"tracker/internal/models"
)

// ListSubtasks returns the subtasks of a task ordered by id.
func (s *Store) ListSubtasks(ctx context.Context, taskID int64) ([]models.Subtask, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, todo_id, title, done FROM subtasks WHERE todo_id = ? ORDER BY id ASC", taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subtasks []models.Subtask
	for rows.Next() {
		var subtask models.Subtask
		var done int
		if err := rows.Scan(&subtask.ID, &subtask.TaskID, &subtask.Title, &done); err != nil {
			return nil, err
		}
		subtask.Done = done != 0
		subtasks = append(subtasks, subtask)
	}
	return subtasks, rows.Err()
}

// GetSubtask returns a subtask by id, or nil if it does not exist.
func (s *Store) GetSubtask(ctx context.Context, id int64) (*models.Subtask, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, todo_id, title, done FROM subtasks WHERE id = ?", id)

	var subtask models.Subtask
	var done int
	err := row.Scan(&subtask.ID, &subtask.TaskID, &subtask.Title, &done)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	subtask.Done = done != 0
	return &subtask, nil
}

// CreateSubtask inserts a not-done subtask under a task.
func (s *Store) CreateSubtask(ctx context.Context, taskID int64, title string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO subtasks (todo_id, title, done) VALUES (?, ?, 0)", taskID, title)
	return err
}

// SetSubtaskDone writes the done flag of a single subtask.
func (s *Store) SetSubtaskDone(ctx context.Context, id int64, done bool) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE subtasks SET done = ? WHERE id = ?", boolToInt(done), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// MarkAllSubtasksDone marks every subtask of a task done. Subtasks that
// are already done keep their state; calling it twice is a no-op.
func (s *Store) MarkAllSubtasksDone(ctx context.Context, taskID int64) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE subtasks SET done = 1 WHERE todo_id = ?", taskID)
	return err
}
