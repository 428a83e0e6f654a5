package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tracker/internal/api"
	"tracker/internal/config"
)

type createCmdOptions struct {
	description string
	label       string
	requester   string
	priority    string
	status      string
	dueAt       string
}

func newCreateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	opts := &createCmdOptions{}
	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildCreateRequest(opts, args)
			if err != nil {
				return err
			}

			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.CreateTask(cmd.Context(), req)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writePlain("%d\n", resp.ID)
			})
		},
	}

	bindCreateFlags(cmd, opts)
	return cmd
}

func buildCreateRequest(opts *createCmdOptions, args []string) (api.TaskCreateRequest, error) {
	if len(args) == 0 {
		return api.TaskCreateRequest{}, errors.New("title is required")
	}

	req := api.TaskCreateRequest{
		Title: strings.Join(args, " "),
	}
	if opts.description != "" {
		req.Description = &opts.description
	}
	if opts.label != "" {
		req.Label = &opts.label
	}
	if opts.requester != "" {
		req.Requester = &opts.requester
	}
	if opts.priority != "" {
		req.Priority = &opts.priority
	}
	if opts.status != "" {
		req.Status = &opts.status
	}
	if opts.dueAt != "" {
		req.DueAt = &opts.dueAt
	}

	return req, nil
}

func bindCreateFlags(cmd *cobra.Command, opts *createCmdOptions) {
	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&opts.label, "label", "l", "", "label (work|school|personal|others)")
	cmd.Flags().StringVar(&opts.requester, "requester", "", "who asked for the task")
	cmd.Flags().StringVarP(&opts.priority, "priority", "p", "", "priority (low|medium|high)")
	cmd.Flags().StringVarP(&opts.status, "status", "s", "", "status (to-do|in progress|completed|blocked)")
	cmd.Flags().StringVar(&opts.dueAt, "due", "", "due date (YYYY-MM-DD)")
}
