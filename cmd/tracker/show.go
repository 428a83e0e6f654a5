package main

import (
	"github.com/spf13/cobra"

	"tracker/internal/api"
	"tracker/internal/config"
)

func newShowCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details including subtasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withClient(cfg, func(client *api.Client) error {
				task, err := client.GetTask(cmd.Context(), id)
				if err != nil {
					return err
				}
				subtasks, err := client.ListSubtasks(cmd.Context(), id)
				if err != nil {
					return err
				}

				if *jsonOutput {
					return writeJSON(struct {
						api.TaskResponse
						Subtasks []api.SubtaskResponse `json:"subtasks"`
					}{task, subtasks})
				}

				if err := writeTaskDetail(task); err != nil {
					return err
				}
				return writeSubtaskList(subtasks)
			})
		},
	}
}
