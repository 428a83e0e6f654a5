package main

import (
	"github.com/spf13/cobra"

	"tracker/internal/api"
	"tracker/internal/config"
)

func newUpdateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		title       string
		description string
		status      string
		requester   string
		dueAt       string
		clearDue    bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task's editable fields",
		Long: `Update a task's title, description, status, requester or due date.
Priority and label are fixed at creation and cannot be changed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withClient(cfg, func(client *api.Client) error {
				// The update endpoint takes the whole editable subset, so
				// merge the flags over the current values.
				current, err := client.GetTask(cmd.Context(), id)
				if err != nil {
					return err
				}

				req := api.TaskUpdateRequest{
					Title:       current.Title,
					Description: current.Description,
					Status:      current.Status,
					Requester:   current.Requester,
				}
				if current.DueAt != nil {
					due := current.DueAt.Format("2006-01-02")
					req.DueAt = &due
				}

				if cmd.Flags().Changed("title") {
					req.Title = title
				}
				if cmd.Flags().Changed("description") {
					req.Description = description
				}
				if cmd.Flags().Changed("status") {
					req.Status = status
				}
				if cmd.Flags().Changed("requester") {
					req.Requester = requester
				}
				if cmd.Flags().Changed("due") {
					req.DueAt = &dueAt
				}
				if clearDue {
					req.DueAt = nil
				}

				resp, err := client.UpdateTask(cmd.Context(), id, req)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writeTaskDetail(resp)
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVarP(&status, "status", "s", "", "new status")
	cmd.Flags().StringVar(&requester, "requester", "", "new requester")
	cmd.Flags().StringVar(&dueAt, "due", "", "new due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "remove the due date")

	return cmd
}
