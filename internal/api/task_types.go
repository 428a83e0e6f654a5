package api

import "tracker/internal/models"

// TaskCreateRequest defines the payload for creating a task.
type TaskCreateRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Label       *string `json:"label,omitempty"`
	Requester   *string `json:"requester,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Status      *string `json:"status,omitempty"`
	DueAt       *string `json:"due_at,omitempty"`
}

// TaskUpdateRequest defines the payload for updating a task. It carries
// the whole editable field subset; priority and label cannot change after
// creation.
type TaskUpdateRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Requester   string  `json:"requester"`
	DueAt       *string `json:"due_at,omitempty"`
}

// TaskResponse wraps a task with its subtask progress.
type TaskResponse struct {
	models.Task
	SubtasksDone  int    `json:"subtasks_done"`
	SubtasksTotal int    `json:"subtasks_total"`
	CalendarLink  string `json:"calendar_link,omitempty"`
}

// SubtaskCreateRequest defines the payload for adding a subtask.
type SubtaskCreateRequest struct {
	Title string `json:"title"`
}

// SubtaskDoneRequest defines the payload for setting a subtask done flag.
type SubtaskDoneRequest struct {
	Done bool `json:"done"`
}

// SubtaskResponse is a single subtask row.
type SubtaskResponse struct {
	models.Subtask
}

// TaskDoneResponse is the response from POST /v1/tasks/{id}/toggle.
type TaskDoneResponse struct {
	ID   int64 `json:"id"`
	Done bool  `json:"done"`
}

// InfoResponse is the response from GET /v1/info.
type InfoResponse struct {
	SchemaVersion int            `json:"schema_version"`
	TaskCounts    map[string]int `json:"task_counts"`
	TotalTasks    int            `json:"total_tasks"`
}

// MigrateResponse is the response from POST /v1/admin/migrate.
type MigrateResponse struct {
	CurrentVersion int  `json:"current_version"`
	Applied        bool `json:"applied"`
}
