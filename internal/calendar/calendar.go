// Package calendar builds Google Calendar event links for task due dates.
package calendar

import (
	"net/url"
	"time"
)

const renderBase = "https://calendar.google.com/calendar/render"

// Events default to a one-hour block on the morning of the due date.
const (
	eventStartHour = 9
	eventEndHour   = 10
)

// EventLink returns a prefilled event-creation URL for a task due date.
// The description falls back to a placeholder when empty.
func EventLink(title, description string, due time.Time) string {
	if description == "" {
		description = "No description provided."
	}

	start := time.Date(due.Year(), due.Month(), due.Day(), eventStartHour, 0, 0, 0, time.UTC)
	end := time.Date(due.Year(), due.Month(), due.Day(), eventEndHour, 0, 0, 0, time.UTC)

	query := url.Values{}
	query.Set("action", "TEMPLATE")
	query.Set("text", title)
	query.Set("dates", formatStamp(start)+"/"+formatStamp(end))
	query.Set("details", description)

	return renderBase + "?" + query.Encode()
}

func formatStamp(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}
