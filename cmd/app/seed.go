package main

import (
	"fmt"
	"os"

	"mes/cmd"

	"github.com/spf13/cobra"
)

func newSeedCommand() *cobra.Command {
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Load processes and route templates from a YAML catalog",
		RunE: func(c *cobra.Command, _ []string) error {
			path, err := c.Flags().GetString("file")
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer f.Close()

			catalog, err := cmd.DecodeCatalog(f)
			if err != nil {
				return err
			}

			a, err := setup(c)
			if err != nil {
				return err
			}
			defer a.close()

			root, err := cmd.NewCompositionRoot(a.cfg, a.db, a.logger)
			if err != nil {
				return err
			}
			return root.Seed(c.Context(), catalog)
		},
	}
	seed.Flags().StringP("file", "f", "catalog.yaml", "YAML catalog of processes and routes")
	return seed
}
