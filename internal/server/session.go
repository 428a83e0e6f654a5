package server

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"tracker/internal/models"
)

const sessionCookieName = "tracker_session"

// Session holds one browser's working state: a task cache keyed by id,
// per-task editing flags, and a one-shot flash message. The cache is
// populated lazily from the store and refreshed after every mutation;
// it is never patched from form input.
type Session struct {
	mu sync.Mutex

	ID      string
	Tasks   map[int64]models.Task
	Editing map[int64]bool
	Flash   string

	loaded bool
}

// Lock serializes callbacks within one session. The UI issues one
// mutation at a time, but nothing stops a second tab from racing it.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// Loaded reports whether the task cache has been populated at least once.
func (s *Session) Loaded() bool {
	return s.loaded
}

// ReplaceTasks swaps the whole task cache.
func (s *Session) ReplaceTasks(tasks map[int64]models.Task) {
	s.Tasks = tasks
	s.loaded = true
}

// PutTask refreshes a single cache entry from a store read.
func (s *Session) PutTask(task models.Task) {
	if s.Tasks == nil {
		s.Tasks = make(map[int64]models.Task)
	}
	s.Tasks[task.ID] = task
}

// DropTask removes a task and its editing flag from the cache.
func (s *Session) DropTask(id int64) {
	delete(s.Tasks, id)
	delete(s.Editing, id)
}

// SetEditing flips the inline edit form for a task.
func (s *Session) SetEditing(id int64, editing bool) {
	if s.Editing == nil {
		s.Editing = make(map[int64]bool)
	}
	if editing {
		s.Editing[id] = true
		return
	}
	delete(s.Editing, id)
}

// TakeFlash returns the pending flash message and clears it.
func (s *Session) TakeFlash() string {
	flash := s.Flash
	s.Flash = ""
	return flash
}

// Reset drops all cached state; the next render reloads from the store.
func (s *Session) Reset() {
	s.Tasks = nil
	s.Editing = nil
	s.Flash = ""
	s.loaded = false
}

// SessionManager tracks sessions by cookie.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionManager creates an empty session registry.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session)}
}

// Get returns the request's session, creating one and setting the cookie
// if the request carries none.
func (m *SessionManager) Get(w http.ResponseWriter, r *http.Request) *Session {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if sess := m.lookup(cookie.Value); sess != nil {
			return sess
		}
	}

	sess := &Session{ID: uuid.NewString()}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func (m *SessionManager) lookup(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id]
}
