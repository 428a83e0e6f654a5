package server

import (
	"errors"
	"strings"

	"tracker/internal/models"
)

// ErrEmptyTitle marks a submission rejected before any write happens. The
// UI turns it into a flash message instead of an error page.
var ErrEmptyTitle = errors.New("title is required")

func validateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrEmptyTitle
	}
	return trimmed, nil
}

func normalizeStatus(value string) (string, error) {
	status, err := models.ParseTaskStatus(value)
	if err != nil {
		return "", badRequestCode(err, ErrCodeInvalidStatus)
	}
	return string(status), nil
}

func normalizePriority(value string) (string, error) {
	priority, err := models.ParseTaskPriority(value)
	if err != nil {
		return "", badRequestCode(err, ErrCodeInvalidPriority)
	}
	return string(priority), nil
}

func normalizeLabel(value string) (string, error) {
	label, err := models.ParseTaskLabel(value)
	if err != nil {
		return "", badRequestCode(err, ErrCodeInvalidLabel)
	}
	return string(label), nil
}
