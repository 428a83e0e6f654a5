package main

import (
	"fmt"
	"os"
	"strings"

	"tracker/internal/api"
	"tracker/internal/format"
	"tracker/internal/models"
)

var outputFormatter format.Formatter = format.JSONFormatter{}

func writeJSON(payload any) error {
	return outputFormatter.Write(os.Stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}

func writeTaskList(tasks []api.TaskResponse) error {
	for _, task := range tasks {
		if err := writePlain("%s\n", formatTaskLine(task)); err != nil {
			return err
		}
	}
	return nil
}

func writeTaskDetail(task api.TaskResponse) error {
	lines := []string{
		fmt.Sprintf("id: %d", task.ID),
		fmt.Sprintf("title: %s", task.Title),
		fmt.Sprintf("status: %s", task.Status),
		fmt.Sprintf("priority: %s", task.Priority),
		fmt.Sprintf("created_at: %s", task.CreatedAt.Format("2006-01-02")),
	}

	if task.Label != "" {
		lines = append(lines, fmt.Sprintf("label: %s", task.Label))
	}
	if task.Requester != "" {
		lines = append(lines, fmt.Sprintf("requester: %s", task.Requester))
	}
	if task.Description != "" {
		lines = append(lines, fmt.Sprintf("description: %s", task.Description))
	}
	if task.DueAt != nil {
		lines = append(lines, fmt.Sprintf("due_at: %s", task.DueAt.Format("2006-01-02")))
	}
	if task.Done {
		lines = append(lines, "done: yes")
	}
	if task.SubtasksTotal > 0 {
		lines = append(lines, fmt.Sprintf("subtasks: %d/%d done", task.SubtasksDone, task.SubtasksTotal))
	}
	if task.CalendarLink != "" {
		lines = append(lines, fmt.Sprintf("calendar: %s", task.CalendarLink))
	}

	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func writeSubtaskList(subtasks []api.SubtaskResponse) error {
	for _, subtask := range subtasks {
		marker := " "
		if subtask.Done {
			marker = "x"
		}
		if err := writePlain("  [%s] %d %s\n", marker, subtask.ID, subtask.Title); err != nil {
			return err
		}
	}
	return nil
}

func formatTaskLine(task api.TaskResponse) string {
	marker := "○"
	if task.Done {
		marker = "●"
	}
	line := fmt.Sprintf("%s %d [%s]", marker, task.ID, task.Priority)
	if task.Label != "" {
		line += fmt.Sprintf(" [%s]", task.Label)
	}
	line += " - " + task.Title
	if task.DueAt != nil {
		line += fmt.Sprintf(" (due %s)", task.DueAt.Format("2006-01-02"))
	}
	return line
}

func statusOrder() []string {
	return models.AllTaskStatusStrings()
}
