package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tracker/internal/models"
)

func TestSessionFlashIsOneShot(t *testing.T) {
	sess := &Session{}
	sess.Flash = "hello"

	if got := sess.TakeFlash(); got != "hello" {
		t.Fatalf("expected flash, got %q", got)
	}
	if got := sess.TakeFlash(); got != "" {
		t.Fatalf("expected cleared flash, got %q", got)
	}
}

func TestSessionEditingFlags(t *testing.T) {
	sess := &Session{}

	sess.SetEditing(7, true)
	if !sess.Editing[7] {
		t.Fatal("expected editing flag set")
	}

	sess.SetEditing(7, false)
	if _, ok := sess.Editing[7]; ok {
		t.Fatal("expected editing flag removed")
	}
}

func TestSessionDropTask(t *testing.T) {
	sess := &Session{}
	sess.ReplaceTasks(map[int64]models.Task{1: {ID: 1, Title: "a"}})
	sess.SetEditing(1, true)

	sess.DropTask(1)
	if _, ok := sess.Tasks[1]; ok {
		t.Fatal("expected task removed from cache")
	}
	if _, ok := sess.Editing[1]; ok {
		t.Fatal("expected editing flag removed with the task")
	}
}

func TestSessionManagerReusesSession(t *testing.T) {
	manager := NewSessionManager()

	w := httptest.NewRecorder()
	first := manager.Get(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if first == nil || first.ID == "" {
		t.Fatal("expected a new session with an id")
	}

	cookies := w.Result().Cookies()
	var cookie *http.Cookie
	for _, c := range cookies {
		if c.Name == sessionCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected a session cookie to be set")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	second := manager.Get(httptest.NewRecorder(), req)
	if second != first {
		t.Fatal("expected the cookie to resolve to the same session")
	}
}

func TestSessionManagerUnknownCookie(t *testing.T) {
	manager := NewSessionManager()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "stale"})

	sess := manager.Get(httptest.NewRecorder(), req)
	if sess == nil || sess.ID == "stale" {
		t.Fatal("expected a fresh session for an unknown cookie")
	}
}
