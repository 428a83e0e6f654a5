package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tracker/internal/api"
	"tracker/internal/config"
)

// importTask is one entry of the YAML import file.
type importTask struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Label       string   `yaml:"label"`
	Requester   string   `yaml:"requester"`
	Priority    string   `yaml:"priority"`
	Status      string   `yaml:"status"`
	DueAt       string   `yaml:"due"`
	Subtasks    []string `yaml:"subtasks"`
}

type importFile struct {
	Tasks []importTask `yaml:"tasks"`
}

func newImportCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import tasks from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputPath == "" {
				return errors.New("--input is required")
			}

			data, err := os.ReadFile(inputPath)
			if err != nil {
				return err
			}

			var file importFile
			if err := yaml.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("parse %s: %w", inputPath, err)
			}
			if len(file.Tasks) == 0 {
				return fmt.Errorf("no tasks found in %s", inputPath)
			}

			return withClient(cfg, func(client *api.Client) error {
				created := make([]api.TaskResponse, 0, len(file.Tasks))
				for i, entry := range file.Tasks {
					req := api.TaskCreateRequest{Title: entry.Title}
					if entry.Description != "" {
						req.Description = &file.Tasks[i].Description
					}
					if entry.Label != "" {
						req.Label = &file.Tasks[i].Label
					}
					if entry.Requester != "" {
						req.Requester = &file.Tasks[i].Requester
					}
					if entry.Priority != "" {
						req.Priority = &file.Tasks[i].Priority
					}
					if entry.Status != "" {
						req.Status = &file.Tasks[i].Status
					}
					if entry.DueAt != "" {
						req.DueAt = &file.Tasks[i].DueAt
					}

					task, err := client.CreateTask(cmd.Context(), req)
					if err != nil {
						return fmt.Errorf("task %d (%q): %w", i+1, entry.Title, err)
					}

					for _, subtask := range entry.Subtasks {
						if _, err := client.CreateSubtask(cmd.Context(), task.ID, api.SubtaskCreateRequest{Title: subtask}); err != nil {
							return fmt.Errorf("task %d subtask %q: %w", i+1, subtask, err)
						}
					}
					created = append(created, task)
				}

				if *jsonOutput {
					return writeJSON(created)
				}
				return writePlain("imported %d tasks\n", len(created))
			})
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "input YAML file")
	return cmd
}
