package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func doForm(t *testing.T, h http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func doGet(t *testing.T, h http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			return cookie
		}
	}
	t.Fatal("expected a session cookie")
	return nil
}

func TestUISetupPageBlocksUntilMigrated(t *testing.T) {
	srv := newServerFor(t, newTestStore(t))
	handler := srv.routes()

	w := doGet(t, handler, "/")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before migration, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "/admin/create-table") {
		t.Fatal("setup page should offer table creation")
	}

	w = doForm(t, handler, "/admin/create-table", url.Values{})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("create-table: expected 303, got %d", w.Code)
	}

	w = doGet(t, handler, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 after migration, got %d", w.Code)
	}
}

func TestUICreateTaskFlow(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.routes()

	w := doForm(t, handler, "/tasks", url.Values{
		"title":    {"Buy milk"},
		"priority": {"high"},
		"label":    {"personal"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	cookie := sessionCookie(t, w)

	w = doGet(t, handler, "/", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Buy milk") {
		t.Fatal("expected the new task on the page")
	}
	if !strings.Contains(body, `<span class="badge">personal</span>`) {
		t.Fatal("expected the label badge on the page")
	}
	// The card anchor is what the websocket client swaps in place.
	if !strings.Contains(body, `id="task-1"`) {
		t.Fatal("expected a card anchor for the task")
	}
}

func TestUIEmptyTitleShowsFlashOnce(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.routes()

	w := doForm(t, handler, "/tasks", url.Values{"title": {"   "}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	cookie := sessionCookie(t, w)

	w = doGet(t, handler, "/", cookie)
	if !strings.Contains(w.Body.String(), "Please enter a task title.") {
		t.Fatal("expected the flash message")
	}

	w = doGet(t, handler, "/", cookie)
	if strings.Contains(w.Body.String(), "Please enter a task title.") {
		t.Fatal("flash must only show once")
	}
}

func TestUIEditAndSaveTask(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.routes()

	w := doForm(t, handler, "/tasks", url.Values{"title": {"Draft notes"}})
	cookie := sessionCookie(t, w)

	// The freshly created task is the only one, so its id is 1.
	w = doForm(t, handler, "/tasks/1/edit", url.Values{}, cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("edit: expected 303, got %d", w.Code)
	}

	w = doGet(t, handler, "/", cookie)
	if !strings.Contains(w.Body.String(), "/tasks/1/save") {
		t.Fatal("expected the inline edit form")
	}

	w = doForm(t, handler, "/tasks/1/save", url.Values{
		"title":  {"Draft notes v2"},
		"status": {"in progress"},
	}, cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("save: expected 303, got %d", w.Code)
	}

	w = doGet(t, handler, "/", cookie)
	body := w.Body.String()
	if !strings.Contains(body, "Draft notes v2") {
		t.Fatal("expected the updated title")
	}
	if strings.Contains(body, "/tasks/1/save") {
		t.Fatal("saving should leave edit mode")
	}
}

func TestUIRedirectKeepsFilterQuery(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.routes()

	w := doForm(t, handler, "/tasks", url.Values{"title": {"Filtered"}})
	cookie := sessionCookie(t, w)

	req := httptest.NewRequest(http.MethodPost, "/tasks/1/toggle", nil)
	req.Header.Set("Referer", "http://127.0.0.1:7072/?filters=1&hide_done=1")
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/?filters=1&hide_done=1" {
		t.Fatalf("expected the filter query to survive, got %q", loc)
	}
}

func TestParseViewOptions(t *testing.T) {
	t.Run("defaults without marker", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		opts := parseViewOptions(r)
		if len(opts.Labels) != 4 || len(opts.Priorities) != 3 || len(opts.Statuses) != 4 {
			t.Fatalf("expected full selections, got %+v", opts)
		}
		if opts.HideDone || opts.Descending || opts.SortBy != SortByDueDate {
			t.Fatalf("unexpected defaults: %+v", opts)
		}
	})

	t.Run("submitted filters", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/?filters=1&label=work&priority=high&status=to-do&hide_done=1&sort=created&order=desc", nil)
		opts := parseViewOptions(r)
		if len(opts.Labels) != 1 || opts.Labels[0] != "work" {
			t.Fatalf("unexpected labels: %v", opts.Labels)
		}
		if !opts.HideDone || !opts.Descending || opts.SortBy != SortByCreatedAt {
			t.Fatalf("unexpected options: %+v", opts)
		}
	})

	t.Run("unchecking everything selects nothing", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/?filters=1", nil)
		opts := parseViewOptions(r)
		if len(opts.Labels) != 0 || len(opts.Priorities) != 0 || len(opts.Statuses) != 0 {
			t.Fatalf("expected empty selections, got %+v", opts)
		}
	})
}
