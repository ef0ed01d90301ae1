package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wellbase/wellbase/config"
)

// MigrateCmd returns the migrate command, which brings the schema up to
// date and exits.
func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := connect()
			if err != nil {
				return err
			}
			defer log.Sync()

			if err := config.Migrations(config.DB); err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}
			fmt.Printf("%s Schema up to date.\n", okMark)
			return nil
		},
	}
}

// SeedCmd returns the seed command, which loads the default users and
// strat dictionary. Existing rows are left alone, so reruns are safe.
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed default users and stratigraphic units",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := connect()
			if err != nil {
				return err
			}
			defer log.Sync()

			if err := config.Migrations(config.DB); err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}
			if err := config.RunAllSeeding(log); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			fmt.Printf("%s Seeding complete.\n", okMark)
			return nil
		},
	}
}
