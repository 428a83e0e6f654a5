package server

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tracker/internal/api"
	"tracker/internal/calendar"
	"tracker/internal/models"
	"tracker/internal/store"
)

// TaskService centralizes validation and the mutation discipline: every
// callback performs exactly one persistence write, then refreshes the
// session cache from the store.
type TaskService struct {
	store *store.Store
	hub   *Hub
}

// NewTaskService constructs a TaskService. The hub may be nil; then no
// change notifications are sent.
func NewTaskService(st *store.Store, hub *Hub) *TaskService {
	return &TaskService{store: st, hub: hub}
}

// TaskForm carries the new-task form fields.
type TaskForm struct {
	Title       string
	Description string
	Label       string
	Requester   string
	Priority    string
	Status      string
	DueAt       *time.Time
}

// EditForm carries the inline edit form fields. Priority and label are
// absent on purpose: they are fixed at creation.
type EditForm struct {
	Title       string
	Description string
	Status      string
	Requester   string
	DueAt       *time.Time
}

// LoadTasks populates the session cache if it has not been loaded yet.
func (s *TaskService) LoadTasks(ctx context.Context, sess *Session) error {
	if sess.Loaded() {
		return nil
	}
	return s.RefreshAll(ctx, sess)
}

// RefreshAll replaces the whole session cache from the store.
func (s *TaskService) RefreshAll(ctx context.Context, sess *Session) error {
	tasks, err := s.store.LoadAllTasks(ctx)
	if err != nil {
		return storeFailure(err)
	}
	sess.ReplaceTasks(tasks)
	return nil
}

// CreateTask validates the form, inserts the task and reloads the cache.
// An empty title sets a flash message and writes nothing.
func (s *TaskService) CreateTask(ctx context.Context, sess *Session, form TaskForm) error {
	title, err := validateTitle(form.Title)
	if err != nil {
		sess.Flash = "Please enter a task title."
		return err
	}

	task, err := buildTask(title, form)
	if err != nil {
		return err
	}

	if err := s.store.CreateTask(ctx, task); err != nil {
		return storeFailure(err)
	}
	if err := s.RefreshAll(ctx, sess); err != nil {
		return err
	}
	s.notify(task.ID)
	return nil
}

// UpdateTask writes the editable field subset, refreshes the single cache
// entry and leaves edit mode.
func (s *TaskService) UpdateTask(ctx context.Context, sess *Session, id int64, form EditForm) error {
	title, err := validateTitle(form.Title)
	if err != nil {
		sess.Flash = "Please enter a task title."
		return err
	}
	status, err := normalizeStatus(form.Status)
	if err != nil {
		return err
	}

	update := store.TaskUpdate{
		Title:       title,
		Description: form.Description,
		Status:      status,
		Requester:   form.Requester,
		DueAt:       form.DueAt,
	}
	if err := s.store.UpdateTask(ctx, id, update); err != nil {
		return mapStoreError(err)
	}
	if err := s.refreshOne(ctx, sess, id); err != nil {
		return err
	}
	sess.SetEditing(id, false)
	s.notify(id)
	return nil
}

// DeleteTask removes the task and reloads the cache. Subtask rows are
// not touched; they stay behind as orphans.
func (s *TaskService) DeleteTask(ctx context.Context, sess *Session, id int64) error {
	if err := s.store.DeleteTask(ctx, id); err != nil {
		return mapStoreError(err)
	}
	if err := s.RefreshAll(ctx, sess); err != nil {
		return err
	}
	sess.DropTask(id)
	s.notify(id)
	return nil
}

// ToggleTaskDone negates the done flag as cached in the session, writes
// it, and refreshes the entry from the store.
func (s *TaskService) ToggleTaskDone(ctx context.Context, sess *Session, id int64) error {
	current, ok := sess.Tasks[id]
	if !ok {
		return notFound(fmt.Errorf("task %d not in session", id))
	}
	if err := s.store.SetTaskDone(ctx, id, !current.Done); err != nil {
		return mapStoreError(err)
	}
	if err := s.refreshOne(ctx, sess, id); err != nil {
		return err
	}
	s.notify(id)
	return nil
}

// SetEditing flips the per-task inline edit flag. No persistence write.
func (s *TaskService) SetEditing(sess *Session, id int64, editing bool) {
	sess.SetEditing(id, editing)
}

// AddSubtask appends a subtask to a task.
func (s *TaskService) AddSubtask(ctx context.Context, sess *Session, taskID int64, title string) error {
	trimmed, err := validateTitle(title)
	if err != nil {
		sess.Flash = "Please enter a subtask title."
		return err
	}
	if err := s.store.CreateSubtask(ctx, taskID, trimmed); err != nil {
		return storeFailure(err)
	}
	s.notify(taskID)
	return nil
}

// SetSubtaskDone writes a single subtask's done flag.
func (s *TaskService) SetSubtaskDone(ctx context.Context, taskID, subtaskID int64, done bool) error {
	if err := s.store.SetSubtaskDone(ctx, subtaskID, done); err != nil {
		return mapStoreError(err)
	}
	s.notify(taskID)
	return nil
}

// MarkAllSubtasksDone bulk-completes a task's subtasks.
func (s *TaskService) MarkAllSubtasksDone(ctx context.Context, taskID int64) error {
	if err := s.store.MarkAllSubtasksDone(ctx, taskID); err != nil {
		return storeFailure(err)
	}
	s.notify(taskID)
	return nil
}

// Subtasks lists a task's subtasks. They are read per render rather
// than cached in the session.
func (s *TaskService) Subtasks(ctx context.Context, taskID int64) ([]models.Subtask, error) {
	subtasks, err := s.store.ListSubtasks(ctx, taskID)
	if err != nil {
		return nil, storeFailure(err)
	}
	return subtasks, nil
}

func (s *TaskService) refreshOne(ctx context.Context, sess *Session, id int64) error {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return storeFailure(err)
	}
	if task == nil {
		sess.DropTask(id)
		return nil
	}
	sess.PutTask(*task)
	return nil
}

func (s *TaskService) notify(taskID int64) {
	if s.hub == nil {
		return
	}
	s.hub.NotifyTaskUpdated(taskID)
}

// Stateless API operations below; they serve the JSON surface and share
// validation with the session callbacks.

// Create creates a task from an API request.
func (s *TaskService) Create(ctx context.Context, req api.TaskCreateRequest) (api.TaskResponse, error) {
	var resp api.TaskResponse

	title, err := validateTitle(req.Title)
	if err != nil {
		return resp, badRequestCode(err, ErrCodeMissingRequired)
	}

	form := TaskForm{
		Title:       title,
		Description: valueOrEmpty(req.Description),
		Label:       valueOrEmpty(req.Label),
		Requester:   valueOrEmpty(req.Requester),
		Priority:    valueOrEmpty(req.Priority),
		Status:      valueOrEmpty(req.Status),
	}
	if req.DueAt != nil {
		due, err := parseDueDate(*req.DueAt)
		if err != nil {
			return resp, err
		}
		form.DueAt = due
	}

	task, err := buildTask(title, form)
	if err != nil {
		return resp, err
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		return resp, storeFailure(err)
	}
	s.notify(task.ID)
	return s.taskResponse(ctx, *task)
}

// Get returns one task.
func (s *TaskService) Get(ctx context.Context, id int64) (api.TaskResponse, error) {
	var resp api.TaskResponse
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return resp, storeFailure(err)
	}
	if task == nil {
		return resp, notFound(fmt.Errorf("task %d not found", id))
	}
	return s.taskResponse(ctx, *task)
}

// List returns all tasks ordered by id.
func (s *TaskService) List(ctx context.Context) ([]api.TaskResponse, error) {
	tasks, err := s.store.LoadAllTasks(ctx)
	if err != nil {
		return nil, storeFailure(err)
	}

	out := make([]api.TaskResponse, 0, len(tasks))
	for _, id := range sortedTaskIDs(tasks) {
		resp, err := s.taskResponse(ctx, tasks[id])
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// Update applies an API update and returns the re-read task.
func (s *TaskService) Update(ctx context.Context, id int64, req api.TaskUpdateRequest) (api.TaskResponse, error) {
	var resp api.TaskResponse

	title, err := validateTitle(req.Title)
	if err != nil {
		return resp, badRequestCode(err, ErrCodeMissingRequired)
	}
	status, err := normalizeStatus(req.Status)
	if err != nil {
		return resp, err
	}
	var due *time.Time
	if req.DueAt != nil {
		due, err = parseDueDate(*req.DueAt)
		if err != nil {
			return resp, err
		}
	}

	update := store.TaskUpdate{
		Title:       title,
		Description: req.Description,
		Status:      status,
		Requester:   req.Requester,
		DueAt:       due,
	}
	if err := s.store.UpdateTask(ctx, id, update); err != nil {
		return resp, mapStoreError(err)
	}
	s.notify(id)
	return s.Get(ctx, id)
}

// Delete removes a task without cascading to subtasks.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteTask(ctx, id); err != nil {
		return mapStoreError(err)
	}
	s.notify(id)
	return nil
}

// CreateSubtask validates the title, refuses absent parents so orphans
// cannot be minted, and returns the parent's full subtask list.
func (s *TaskService) CreateSubtask(ctx context.Context, taskID int64, title string) ([]models.Subtask, error) {
	trimmed, err := validateTitle(title)
	if err != nil {
		return nil, badRequestCode(err, ErrCodeMissingRequired)
	}

	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, storeFailure(err)
	}
	if task == nil {
		return nil, notFound(fmt.Errorf("task %d not found", taskID))
	}

	if err := s.store.CreateSubtask(ctx, taskID, trimmed); err != nil {
		return nil, storeFailure(err)
	}
	s.notify(taskID)
	return s.Subtasks(ctx, taskID)
}

// MarkSubtask writes the done flag of a subtask addressed by its own id
// and notifies under the parent task.
func (s *TaskService) MarkSubtask(ctx context.Context, subtaskID int64, done bool) error {
	subtask, err := s.store.GetSubtask(ctx, subtaskID)
	if err != nil {
		return storeFailure(err)
	}
	if subtask == nil {
		return subtaskNotFound(fmt.Errorf("subtask %d not found", subtaskID))
	}

	if err := s.store.SetSubtaskDone(ctx, subtaskID, done); err != nil {
		return mapStoreError(err)
	}
	s.notify(subtask.TaskID)
	return nil
}

// Toggle negates the stored done flag and returns the new value.
func (s *TaskService) Toggle(ctx context.Context, id int64) (api.TaskDoneResponse, error) {
	var resp api.TaskDoneResponse

	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return resp, storeFailure(err)
	}
	if task == nil {
		return resp, notFound(fmt.Errorf("task %d not found", id))
	}
	if err := s.store.SetTaskDone(ctx, id, !task.Done); err != nil {
		return resp, mapStoreError(err)
	}
	s.notify(id)
	return api.TaskDoneResponse{ID: id, Done: !task.Done}, nil
}

func (s *TaskService) taskResponse(ctx context.Context, task models.Task) (api.TaskResponse, error) {
	subtasks, err := s.store.ListSubtasks(ctx, task.ID)
	if err != nil {
		return api.TaskResponse{}, storeFailure(err)
	}

	done := 0
	for _, subtask := range subtasks {
		if subtask.Done {
			done++
		}
	}

	resp := api.TaskResponse{Task: task, SubtasksDone: done, SubtasksTotal: len(subtasks)}
	if task.DueAt != nil {
		resp.CalendarLink = calendar.EventLink(task.Title, task.Description, *task.DueAt)
	}
	return resp, nil
}

func buildTask(title string, form TaskForm) (*models.Task, error) {
	status, err := normalizeStatus(form.Status)
	if err != nil {
		return nil, err
	}
	priority, err := normalizePriority(form.Priority)
	if err != nil {
		return nil, err
	}
	label, err := normalizeLabel(form.Label)
	if err != nil {
		return nil, err
	}

	return &models.Task{
		Title:       title,
		Description: form.Description,
		Label:       label,
		Requester:   form.Requester,
		Priority:    priority,
		Status:      status,
		CreatedAt:   time.Now().UTC(),
		DueAt:       form.DueAt,
	}, nil
}

func mapStoreError(err error) error {
	if err == store.ErrTaskNotFound {
		return notFound(err)
	}
	return storeFailure(err)
}

func sortedTaskIDs(tasks map[int64]models.Task) []int64 {
	ids := make([]int64, 0, len(tasks))
	for id := range tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
