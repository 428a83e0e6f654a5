package models

import (
	"fmt"
	"strings"
)

// TaskStatus defines allowed lifecycle states for tasks.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "to-do"
	StatusInProgress TaskStatus = "in progress"
	StatusCompleted  TaskStatus = "completed"
	StatusBlocked    TaskStatus = "blocked"
)

// TaskPriority defines allowed priority levels.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// TaskLabel defines allowed task categories. The empty label is valid and
// means "uncategorized".
type TaskLabel string

const (
	LabelWork     TaskLabel = "work"
	LabelSchool   TaskLabel = "school"
	LabelPersonal TaskLabel = "personal"
	LabelOthers   TaskLabel = "others"
)

const (
	DefaultPriority = PriorityMedium
	DefaultStatus   = StatusTodo
)

var validTaskStatuses = map[TaskStatus]struct{}{
	StatusTodo:       {},
	StatusInProgress: {},
	StatusCompleted:  {},
	StatusBlocked:    {},
}

var validTaskPriorities = map[TaskPriority]struct{}{
	PriorityLow:    {},
	PriorityMedium: {},
	PriorityHigh:   {},
}

var validTaskLabels = map[TaskLabel]struct{}{
	LabelWork:     {},
	LabelSchool:   {},
	LabelPersonal: {},
	LabelOthers:   {},
}

// Ordered option lists for the UI selects and filter checkboxes.
var (
	allTaskStatuses   = []TaskStatus{StatusTodo, StatusInProgress, StatusCompleted, StatusBlocked}
	allTaskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}
	allTaskLabels     = []TaskLabel{LabelWork, LabelSchool, LabelPersonal, LabelOthers}
)

func IsValidTaskStatus(status TaskStatus) bool {
	_, ok := validTaskStatuses[status]
	return ok
}

func IsValidTaskPriority(priority TaskPriority) bool {
	_, ok := validTaskPriorities[priority]
	return ok
}

func IsValidTaskLabel(label TaskLabel) bool {
	_, ok := validTaskLabels[label]
	return ok
}

func ParseTaskStatus(raw string) (TaskStatus, error) {
	value := TaskStatus(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return DefaultStatus, nil
	}
	if !IsValidTaskStatus(value) {
		return "", fmt.Errorf("invalid status: %s", value)
	}
	return value, nil
}

func ParseTaskPriority(raw string) (TaskPriority, error) {
	value := TaskPriority(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return DefaultPriority, nil
	}
	if !IsValidTaskPriority(value) {
		return "", fmt.Errorf("invalid priority: %s", value)
	}
	return value, nil
}

func ParseTaskLabel(raw string) (TaskLabel, error) {
	value := TaskLabel(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", nil
	}
	if !IsValidTaskLabel(value) {
		return "", fmt.Errorf("invalid label: %s", value)
	}
	return value, nil
}

func AllTaskStatusStrings() []string {
	out := make([]string, 0, len(allTaskStatuses))
	for _, value := range allTaskStatuses {
		out = append(out, string(value))
	}
	return out
}

func AllTaskPriorityStrings() []string {
	out := make([]string, 0, len(allTaskPriorities))
	for _, value := range allTaskPriorities {
		out = append(out, string(value))
	}
	return out
}

func AllTaskLabelStrings() []string {
	out := make([]string, 0, len(allTaskLabels))
	for _, value := range allTaskLabels {
		out = append(out, string(value))
	}
	return out
}
