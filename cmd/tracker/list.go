package main

import (
	"github.com/spf13/cobra"

	"tracker/internal/api"
	"tracker/internal/config"
)

func newListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		label    string
		priority string
		status   string
		hideDone bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.ListTasks(cmd.Context(), nil)
				if err != nil {
					return err
				}

				filtered := resp[:0]
				for _, task := range resp {
					if label != "" && task.Label != label {
						continue
					}
					if priority != "" && task.Priority != priority {
						continue
					}
					if status != "" && task.Status != status {
						continue
					}
					if hideDone && task.Done {
						continue
					}
					filtered = append(filtered, task)
				}

				if *jsonOutput {
					return writeJSON(filtered)
				}
				return writeTaskList(filtered)
			})
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "label filter")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "priority filter")
	cmd.Flags().StringVarP(&status, "status", "s", "", "status filter")
	cmd.Flags().BoolVar(&hideDone, "hide-done", false, "hide completed tasks")

	return cmd
}
