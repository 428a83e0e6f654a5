package main

import (
	"github.com/spf13/cobra"

	"tracker/internal/api"
	"tracker/internal/config"
)

func newInfoCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show schema version and task counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.GetInfo(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}

				if err := writePlain("schema version: %d\n", resp.SchemaVersion); err != nil {
					return err
				}
				if err := writePlain("total tasks: %d\n", resp.TotalTasks); err != nil {
					return err
				}
				for _, status := range statusOrder() {
					if count, ok := resp.TaskCounts[status]; ok {
						if err := writePlain("  %s: %d\n", status, count); err != nil {
							return err
						}
					}
				}
				return nil
			})
		},
	}
}
