package main

import (
	"mes/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(c *cobra.Command, _ []string) error {
			a, err := setup(c)
			if err != nil {
				return err
			}
			defer a.close()

			a.logger.InfoContext(c.Context(), "Running database migrations")
			if err = postgres.Migrate(a.db); err != nil {
				return err
			}
			a.logger.InfoContext(c.Context(), "Database migrations completed")
			return nil
		},
	}
}
