package server

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService(t *testing.T) (*TaskService, *Session) {
	t.Helper()

	st := newTestStore(t)
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewTaskService(st, nil), &Session{ID: "test"}
}

func TestCreateTaskEmptyTitle(t *testing.T) {
	service, sess := newTestService(t)
	ctx := context.Background()

	err := service.CreateTask(ctx, sess, TaskForm{Title: "   "})
	if !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if sess.Flash == "" {
		t.Fatal("expected a flash message")
	}

	tasks, err := service.store.LoadAllTasks(ctx)
	if err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("rejected submission must not write, got %d tasks", len(tasks))
	}
}

func TestCreateTaskPopulatesCache(t *testing.T) {
	service, sess := newTestService(t)
	ctx := context.Background()

	if err := service.CreateTask(ctx, sess, TaskForm{Title: "  Water plants  "}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(sess.Tasks) != 1 {
		t.Fatalf("expected 1 cached task, got %d", len(sess.Tasks))
	}
	for _, task := range sess.Tasks {
		if task.Title != "Water plants" {
			t.Fatalf("expected trimmed title, got %q", task.Title)
		}
		if task.Priority != "medium" || task.Status != "to-do" {
			t.Fatalf("expected defaults, got %s/%s", task.Priority, task.Status)
		}
		if task.Done {
			t.Fatal("new tasks start not done")
		}
		if task.CreatedAt.Format("2006-01-02") != time.Now().UTC().Format("2006-01-02") {
			t.Fatalf("expected today's creation date, got %v", task.CreatedAt)
		}
	}
}

func TestUpdateTaskKeepsPriorityAndLabel(t *testing.T) {
	service, sess := newTestService(t)
	ctx := context.Background()

	if err := service.CreateTask(ctx, sess, TaskForm{Title: "Fix bug", Priority: "high", Label: "work"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	var id int64
	for taskID := range sess.Tasks {
		id = taskID
	}

	sess.SetEditing(id, true)
	err := service.UpdateTask(ctx, sess, id, EditForm{
		Title:     "Fix bug properly",
		Status:    "in progress",
		Requester: "sam",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	task := sess.Tasks[id]
	if task.Title != "Fix bug properly" || task.Status != "in progress" || task.Requester != "sam" {
		t.Fatalf("update not reflected in cache: %+v", task)
	}
	if task.Priority != "high" || task.Label != "work" {
		t.Fatalf("priority/label must survive updates: %s/%s", task.Priority, task.Label)
	}
	if sess.Editing[id] {
		t.Fatal("saving should leave edit mode")
	}
}

func TestToggleTaskDoneRoundTrip(t *testing.T) {
	service, sess := newTestService(t)
	ctx := context.Background()

	if err := service.CreateTask(ctx, sess, TaskForm{Title: "Walk dog"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	var id int64
	for taskID := range sess.Tasks {
		id = taskID
	}

	if err := service.ToggleTaskDone(ctx, sess, id); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !sess.Tasks[id].Done {
		t.Fatal("expected task done after first toggle")
	}

	if err := service.ToggleTaskDone(ctx, sess, id); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if sess.Tasks[id].Done {
		t.Fatal("expected task reopened after second toggle")
	}
}

func TestDeleteTaskDropsCacheEntry(t *testing.T) {
	service, sess := newTestService(t)
	ctx := context.Background()

	if err := service.CreateTask(ctx, sess, TaskForm{Title: "first"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := service.CreateTask(ctx, sess, TaskForm{Title: "second"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	var id int64
	for taskID, task := range sess.Tasks {
		if task.Title == "first" {
			id = taskID
		}
	}

	if err := service.DeleteTask(ctx, sess, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(sess.Tasks) != 1 {
		t.Fatalf("expected 1 cached task after delete, got %d", len(sess.Tasks))
	}
	if _, ok := sess.Tasks[id]; ok {
		t.Fatal("deleted task still cached")
	}
}

func TestAddSubtaskEmptyTitle(t *testing.T) {
	service, sess := newTestService(t)
	ctx := context.Background()

	if err := service.CreateTask(ctx, sess, TaskForm{Title: "parent"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	var id int64
	for taskID := range sess.Tasks {
		id = taskID
	}

	err := service.AddSubtask(ctx, sess, id, "  ")
	if !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if sess.Flash == "" {
		t.Fatal("expected a flash message")
	}

	subtasks, err := service.Subtasks(ctx, id)
	if err != nil {
		t.Fatalf("list subtasks: %v", err)
	}
	if len(subtasks) != 0 {
		t.Fatalf("rejected subtask must not write, got %d", len(subtasks))
	}
}
