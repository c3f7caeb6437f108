package main

import (
	"github.com/spf13/cobra"

	"github.com/joestump/bookmarks-api/internal/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			database, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			log.Info("migrations complete", logger.String("driver", cfg.DB.Driver))
			return nil
		},
	}
}
