package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gabriola-connects/portal-backend/internal/infrastructure/persistence/postgres"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/seed"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := environment()
		if err != nil {
			return err
		}
		db, err := openDatabase(cfg, logger)
		if err != nil {
			return err
		}
		defer closeDatabase(db)

		if err := postgres.Migrate(db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the embedded categories and directory listings",
	Long: `Load the embedded categories and directory listings.

Categories are inserted when missing. Listings are upserted by slug, so the
command can be run again after editing the embedded data.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := environment()
		if err != nil {
			return err
		}
		db, err := openDatabase(cfg, logger)
		if err != nil {
			return err
		}
		defer closeDatabase(db)

		if err := postgres.Migrate(db); err != nil {
			return err
		}

		seeder := seed.NewSeeder(
			postgres.NewCategoryRepository(db),
			postgres.NewBusinessRepository(db),
			postgres.NewUnitOfWork(db),
			logger,
		)
		result, err := seeder.Run(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "categories created: %d\nlistings upserted: %d\n",
			result.CategoriesCreated, result.BusinessesUpserted)
		return nil
	},
}
