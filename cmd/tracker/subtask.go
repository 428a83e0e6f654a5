package main

import (
	"strings"

	"github.com/spf13/cobra"

	"tracker/internal/api"
	"tracker/internal/config"
)

func newSubtaskCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtask",
		Short: "Manage subtasks",
	}

	cmd.AddCommand(
		newSubtaskListCmd(cfg, jsonOutput),
		newSubtaskAddCmd(cfg, jsonOutput),
		newSubtaskDoneCmd(cfg),
		newSubtaskDoneAllCmd(cfg),
	)
	return cmd
}

func newSubtaskListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "list <task-id>",
		Short: "List a task's subtasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.ListSubtasks(cmd.Context(), taskID)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writeSubtaskList(resp)
			})
		},
	}
}

func newSubtaskAddCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "add <task-id> <title>",
		Short: "Add a subtask to a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID(args[0])
			if err != nil {
				return err
			}
			title := strings.Join(args[1:], " ")

			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.CreateSubtask(cmd.Context(), taskID, api.SubtaskCreateRequest{Title: title})
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writeSubtaskList(resp)
			})
		},
	}
}

func newSubtaskDoneCmd(cfg *config.Config) *cobra.Command {
	var undone bool

	cmd := &cobra.Command{
		Use:   "done <subtask-id>",
		Short: "Mark a subtask done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withClient(cfg, func(client *api.Client) error {
				req := api.SubtaskDoneRequest{Done: !undone}
				if err := client.SetSubtaskDone(cmd.Context(), id, req); err != nil {
					return err
				}
				if undone {
					return writePlain("subtask %d reopened\n", id)
				}
				return writePlain("subtask %d marked done\n", id)
			})
		},
	}

	cmd.Flags().BoolVar(&undone, "undone", false, "mark the subtask not done instead")
	return cmd
}

func newSubtaskDoneAllCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "done-all <task-id>",
		Short: "Mark every subtask of a task done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withClient(cfg, func(client *api.Client) error {
				if err := client.MarkAllSubtasksDone(cmd.Context(), taskID); err != nil {
					return err
				}
				return writePlain("all subtasks of task %d marked done\n", taskID)
			})
		},
	}
}
