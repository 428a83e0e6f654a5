package server

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"tracker/internal/models"
)

type filterOption struct {
	Value   string
	Checked bool
}

type taskRow struct {
	TaskView
	Subtasks []models.Subtask
}

type indexData struct {
	Flash      string
	Tasks      []taskRow
	Labels     []filterOption
	Priorities []filterOption
	Statuses   []filterOption
	HideDone   bool
	SortBy     string
	Descending bool

	AllLabels     []string
	AllPriorities []string
	AllStatuses   []string
}

// uiSchemaReady renders the setup page when the todos table is missing.
// The UI blocks entirely until the schema is created.
func (s *Server) uiSchemaReady(w http.ResponseWriter, r *http.Request) bool {
	exists, err := s.store.TableExists(r.Context(), "todos")
	if err != nil {
		s.uiFailure(w, r, err)
		return false
	}
	if !exists {
		s.render(w, http.StatusServiceUnavailable, "setup.html", nil)
		return false
	}
	return true
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if !s.uiSchemaReady(w, r) {
		return
	}

	sess := s.sessions.Get(w, r)
	sess.Lock()
	defer sess.Unlock()

	if err := s.service.LoadTasks(r.Context(), sess); err != nil {
		s.uiFailure(w, r, err)
		return
	}

	opts := parseViewOptions(r)
	views := BuildView(sess, opts)

	rows := make([]taskRow, 0, len(views))
	for _, view := range views {
		subtasks, err := s.service.Subtasks(r.Context(), view.ID)
		if err != nil {
			s.uiFailure(w, r, err)
			return
		}
		row := taskRow{TaskView: view, Subtasks: subtasks}
		row.SubtasksTotal = len(subtasks)
		for _, subtask := range subtasks {
			if subtask.Done {
				row.SubtasksDone++
			}
		}
		rows = append(rows, row)
	}

	data := indexData{
		Flash:      sess.TakeFlash(),
		Tasks:      rows,
		Labels:     filterOptions(models.AllTaskLabelStrings(), opts.Labels),
		Priorities: filterOptions(models.AllTaskPriorityStrings(), opts.Priorities),
		Statuses:   filterOptions(models.AllTaskStatusStrings(), opts.Statuses),
		HideDone:   opts.HideDone,
		SortBy:     opts.SortBy,
		Descending: opts.Descending,

		AllLabels:     models.AllTaskLabelStrings(),
		AllPriorities: models.AllTaskPriorityStrings(),
		AllStatuses:   models.AllTaskStatusStrings(),
	}
	s.render(w, http.StatusOK, "index.html", data)
}

func (s *Server) handleUICreateTask(w http.ResponseWriter, r *http.Request) {
	if !s.uiSchemaReady(w, r) {
		return
	}

	sess := s.sessions.Get(w, r)
	sess.Lock()
	defer sess.Unlock()

	due, err := parseDueDate(r.FormValue("due_at"))
	if err != nil {
		sess.Flash = "Due date must be YYYY-MM-DD."
		s.redirectIndex(w, r)
		return
	}

	form := TaskForm{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Label:       r.FormValue("label"),
		Requester:   r.FormValue("requester"),
		Priority:    r.FormValue("priority"),
		Status:      r.FormValue("status"),
		DueAt:       due,
	}
	s.finishUI(w, r, s.service.CreateTask(r.Context(), sess, form))
}

func (s *Server) handleUIEditTask(w http.ResponseWriter, r *http.Request) {
	if !s.uiSchemaReady(w, r) {
		return
	}

	sess := s.sessions.Get(w, r)
	sess.Lock()
	defer sess.Unlock()

	id, ok := s.uiPathID(w, r)
	if !ok {
		return
	}

	s.service.SetEditing(sess, id, true)
	s.redirectIndex(w, r)
}

func (s *Server) handleUICancelEdit(w http.ResponseWriter, r *http.Request) {
	if !s.uiSchemaReady(w, r) {
		return
	}

	sess := s.sessions.Get(w, r)
	sess.Lock()
	defer sess.Unlock()

	id, ok := s.uiPathID(w, r)
	if !ok {
		return
	}

	s.service.SetEditing(sess, id, false)
	s.redirectIndex(w, r)
}

func (s *Server) handleUISaveTask(w http.ResponseWriter, r *http.Request) {
	if !s.uiSchemaReady(w, r) {
		return
	}

	sess := s.sessions.Get(w, r)
	sess.Lock()
	defer sess.Unlock()

	id, ok := s.uiPathID(w, r)
	if !ok {
		return
	}

	due, err := parseDueDate(r.FormValue("due_at"))
	if err != nil {
		sess.Flash = "Due date must be YYYY-MM-DD."
		s.redirectIndex(w, r)
		return
	}

	form := EditForm{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Status:      r.FormValue("status"),
		Requester:   r.FormValue("requester"),
		DueAt:       due,
	}
	s.finishUI(w, r, s.service.UpdateTask(r.Context(), sess, id, form))
}

func (s *Server) handleUIDeleteTask(w http.ResponseWriter, r *http.Request) {
	if !s.uiSchemaReady(w, r) {
		return
	}

	sess := s.sessions.Get(w, r)
	sess.Lock()
	defer sess.Unlock()

	id, ok := s.uiPathID(w, r)
	if !ok {
		return
	}

	s.finishUI(w, r, s.service.DeleteTask(r.Context(), sess, id))
}

func (s *Server) handleUIToggleTask(w http.ResponseWriter, r *http.Request) {
	if !s.uiSchemaReady(w, r) {
		return
	}

	sess := s.sessions.Get(w, r)
	sess.Lock()
	defer sess.Unlock()

	if err := s.service.LoadTasks(r.Context(), sess); err != nil {
		s.uiFailure(w, r, err)
		return
	}

	id, ok := s.uiPathID(w, r)
	if !ok {
		return
	}

	s.finishUI(w, r, s.service.ToggleTaskDone(r.Context(), sess, id))
}

func (s *Server) handleUIAddSubtask(w http.ResponseWriter, r *http.Request) {
	if !s.uiSchemaReady(w, r) {
		return
	}

	sess := s.sessions.Get(w, r)
	sess.Lock()
	defer sess.Unlock()

	id, ok := s.uiPathID(w, r)
	if !ok {
		return
	}

	s.finishUI(w, r, s.service.AddSubtask(r.Context(), sess, id, r.FormValue("title")))
}

func (s *Server) handleUIMarkAllSubtasks(w http.ResponseWriter, r *http.Request) {
	if !s.uiSchemaReady(w, r) {
		return
	}

	sess := s.sessions.Get(w, r)
	sess.Lock()
	defer sess.Unlock()

	id, ok := s.uiPathID(w, r)
	if !ok {
		return
	}

	s.finishUI(w, r, s.service.MarkAllSubtasksDone(r.Context(), id))
}

func (s *Server) handleUIToggleSubtask(w http.ResponseWriter, r *http.Request) {
	if !s.uiSchemaReady(w, r) {
		return
	}

	sess := s.sessions.Get(w, r)
	sess.Lock()
	defer sess.Unlock()

	id, ok := s.uiPathID(w, r)
	if !ok {
		return
	}

	taskID, err := strconv.ParseInt(r.FormValue("task_id"), 10, 64)
	if err != nil || taskID <= 0 {
		http.NotFound(w, r)
		return
	}

	// The form carries the current done flag; the click means the opposite.
	done := r.FormValue("done") != "1"
	s.finishUI(w, r, s.service.SetSubtaskDone(r.Context(), taskID, id, done))
}

func (s *Server) handleUICreateTable(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Migrate(r.Context()); err != nil {
		s.uiFailure(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// parseViewOptions reads the filter sidebar's GET parameters. Without the
// filters marker every set is fully selected.
func parseViewOptions(r *http.Request) ViewOptions {
	q := r.URL.Query()

	opts := DefaultViewOptions()
	if q.Get("filters") != "" {
		opts.Labels = q["label"]
		opts.Priorities = q["priority"]
		opts.Statuses = q["status"]
		opts.HideDone = q.Get("hide_done") != ""
	}
	if q.Get("sort") == SortByCreatedAt {
		opts.SortBy = SortByCreatedAt
	}
	opts.Descending = q.Get("order") == "desc"
	return opts
}

func filterOptions(all, selected []string) []filterOption {
	options := make([]filterOption, 0, len(all))
	for _, value := range all {
		options = append(options, filterOption{Value: value, Checked: contains(selected, value)})
	}
	return options
}

func (s *Server) uiPathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := requirePathID(r)
	if err != nil {
		http.NotFound(w, r)
		return 0, false
	}
	return id, true
}

// finishUI redirects back to the index after a mutation. Validation
// failures have already left a flash message on the session; server
// failures become a plain error response.
func (s *Server) finishUI(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil && !errors.Is(err, ErrEmptyTitle) {
		if httpStatusFromError(err) >= 500 {
			s.uiFailure(w, r, err)
			return
		}
		s.log().Debug("ui action rejected", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	s.redirectIndex(w, r)
}

func (s *Server) uiFailure(w http.ResponseWriter, r *http.Request, err error) {
	s.log().Error("ui request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// redirectIndex sends the browser back to the task list, keeping the
// active filter query from the referring page.
func (s *Server) redirectIndex(w http.ResponseWriter, r *http.Request) {
	target := "/"
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Path == "/" && ref.RawQuery != "" {
		target += "?" + ref.RawQuery
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
