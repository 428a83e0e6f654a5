package server

import (
	"sort"
	"time"

	"tracker/internal/calendar"
	"tracker/internal/models"
)

// Sort keys for the task list.
const (
	SortByDueDate   = "due"
	SortByCreatedAt = "created"
)

// farFuture stands in for a missing date so undated tasks sort after
// every dated one in ascending order.
var farFuture = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// ViewOptions selects and orders the rendered task list. A task passes
// when its label, priority and status are each members of the
// corresponding set, and the hide-done flag does not exclude it.
type ViewOptions struct {
	Labels     []string
	Priorities []string
	Statuses   []string
	HideDone   bool
	SortBy     string
	Descending bool
}

// DefaultViewOptions selects everything, sorted by due date ascending.
func DefaultViewOptions() ViewOptions {
	return ViewOptions{
		Labels:     models.AllTaskLabelStrings(),
		Priorities: models.AllTaskPriorityStrings(),
		Statuses:   models.AllTaskStatusStrings(),
		SortBy:     SortByDueDate,
	}
}

// TaskView is one rendered task row.
type TaskView struct {
	models.Task
	Editing       bool
	SubtasksDone  int
	SubtasksTotal int
	CalendarLink  string
}

// BuildView filters and sorts the session's task cache for rendering.
func BuildView(sess *Session, opts ViewOptions) []TaskView {
	views := make([]TaskView, 0, len(sess.Tasks))
	for _, task := range sess.Tasks {
		if !matches(task, opts) {
			continue
		}
		view := TaskView{Task: task, Editing: sess.Editing[task.ID]}
		if task.DueAt != nil {
			view.CalendarLink = calendar.EventLink(task.Title, task.Description, *task.DueAt)
		}
		views = append(views, view)
	}

	sortViews(views, opts)
	return views
}

func matches(task models.Task, opts ViewOptions) bool {
	if opts.HideDone && task.Done {
		return false
	}
	// A full label selection admits uncategorized tasks; any narrower
	// selection is strict membership.
	if task.Label == "" {
		if len(opts.Labels) < len(models.AllTaskLabelStrings()) {
			return false
		}
	} else if !contains(opts.Labels, task.Label) {
		return false
	}
	if !contains(opts.Priorities, task.Priority) {
		return false
	}
	if !contains(opts.Statuses, task.Status) {
		return false
	}
	return true
}

func sortViews(views []TaskView, opts ViewOptions) {
	key := func(v TaskView) time.Time {
		if opts.SortBy == SortByCreatedAt {
			return v.CreatedAt
		}
		if v.DueAt == nil {
			return farFuture
		}
		return *v.DueAt
	}

	sort.SliceStable(views, func(i, j int) bool {
		a, b := key(views[i]), key(views[j])
		if a.Equal(b) {
			return views[i].ID < views[j].ID
		}
		if opts.Descending {
			return a.After(b)
		}
		return a.Before(b)
	})
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
