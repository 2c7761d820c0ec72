package main

import (
	"log/slog"

	"github.com/SscSPs/budget_tracker/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			changed, err := database.Migrate(cmd.Context(), cfg)
			if err != nil {
				logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
				return err
			}
			if changed {
				logger.Info("Database migrations applied successfully", slog.String("backend", cfg.DataBackend))
			} else {
				logger.Info("No new migrations to apply", slog.String("backend", cfg.DataBackend))
			}
			return nil
		},
	}
}
