package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLogging(logrus.InfoLevel); err != nil {
				return err
			}
			url, err := config.DbURL()
			if err != nil {
				return err
			}
			version, dirty, err := database.Migrate(url)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"version": version,
				"dirty":   dirty,
			}).Info("migration successful")
			return nil
		},
	}
}
