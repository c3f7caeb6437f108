package main

import (
	"github.com/spf13/cobra"

	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/seed"
	"github.com/joestump/bookmarks-api/internal/store"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Insert bookmarks from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			// Validate the whole file before touching the database.
			bookmarks, err := seed.Load(args[0])
			if err != nil {
				return err
			}

			database, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			n, err := seed.Apply(cmd.Context(), store.NewBookmarkStore(database), bookmarks, log)
			if err != nil {
				return err
			}
			log.Info("seed complete", logger.Int("created", n), logger.String("file", args[0]))
			return nil
		},
	}
}
