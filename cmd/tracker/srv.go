package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"tracker/internal/config"
	"tracker/internal/server"
	"tracker/internal/store"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "srv",
		Short: "Run the tracker web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg == nil {
				return fmt.Errorf("config not initialized")
			}
			if cfg.DBPath == "" {
				return fmt.Errorf("db path is required")
			}

			logger := slog.Default().With("component", "server")

			addr, err := server.ListenAddr(cfg.APIURL)
			if err != nil {
				return err
			}

			logger.Info("opening database", "path", cfg.DBPath)
			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			// The schema is not created here. The UI offers a setup page
			// and `tracker migrate` does it from the shell.
			srv := server.New(addr, st, logger)
			return srv.ListenAndServe()
		},
	}
}
