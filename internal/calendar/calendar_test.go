package calendar

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestEventLink(t *testing.T) {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	link := EventLink("Write report", "Quarterly summary", due)

	if !strings.HasPrefix(link, "https://calendar.google.com/calendar/render?") {
		t.Fatalf("unexpected base: %s", link)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	query := parsed.Query()

	if query.Get("action") != "TEMPLATE" {
		t.Fatalf("expected action TEMPLATE, got %q", query.Get("action"))
	}
	if query.Get("text") != "Write report" {
		t.Fatalf("expected text, got %q", query.Get("text"))
	}
	if query.Get("dates") != "20260901T090000Z/20260901T100000Z" {
		t.Fatalf("unexpected dates: %q", query.Get("dates"))
	}
	if query.Get("details") != "Quarterly summary" {
		t.Fatalf("unexpected details: %q", query.Get("details"))
	}
}

func TestEventLinkEmptyDescription(t *testing.T) {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	link := EventLink("Write report", "", due)

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	if got := parsed.Query().Get("details"); got != "No description provided." {
		t.Fatalf("expected placeholder details, got %q", got)
	}
}
