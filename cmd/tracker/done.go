package main

import (
	"github.com/spf13/cobra"

	"tracker/internal/api"
	"tracker/internal/config"
)

func newDoneCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's done flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.ToggleTaskDone(cmd.Context(), id)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				if resp.Done {
					return writePlain("task %d marked done\n", resp.ID)
				}
				return writePlain("task %d reopened\n", resp.ID)
			})
		},
	}
}
