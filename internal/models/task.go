package models

import "time"

// Task represents a single to-do item.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Label       string     `json:"label,omitempty"`
	Requester   string     `json:"requester,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	Done        bool       `json:"done"`
}

// Subtask is a checklist item attached to a task. The link to its task is
// a plain integer column, not a schema-level foreign key, so deleting a
// task leaves its subtask rows behind.
type Subtask struct {
	ID     int64  `json:"id"`
	TaskID int64  `json:"task_id"`
	Title  string `json:"title"`
	Done   bool   `json:"done"`
}
