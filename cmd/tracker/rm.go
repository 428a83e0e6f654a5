package main

import (
	"github.com/spf13/cobra"

	"tracker/internal/api"
	"tracker/internal/config"
)

func newRmCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withClient(cfg, func(client *api.Client) error {
				if err := client.DeleteTask(cmd.Context(), id); err != nil {
					return err
				}
				return writePlain("task %d deleted\n", id)
			})
		},
	}
}
