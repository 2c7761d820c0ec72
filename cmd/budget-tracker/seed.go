package main

import (
	"log/slog"

	"github.com/SscSPs/budget_tracker/internal/core/services"
	"github.com/SscSPs/budget_tracker/pkg/database"
	"github.com/spf13/cobra"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert starter banks, accounts and categories into an empty ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			backend, err := database.Open(cmd.Context(), cfg)
			if err != nil {
				logger.Error("Failed to open data backend", slog.String("error", err.Error()))
				return err
			}
			defer backend.Close()

			seeded, err := services.NewServiceContainer(cfg, backend.Repos).Seeder.InitializeStaticData(cmd.Context())
			if err != nil {
				logger.Error("Failed to seed ledger", slog.String("error", err.Error()))
				return err
			}
			logger.Info("Seed finished", slog.Bool("seeded", seeded))
			return nil
		},
	}
}
