package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ats/internal/config"
	"github.com/jonathan/resume-ats/internal/db"
	"github.com/jonathan/resume-ats/internal/db/sqlite"
)

func newMigrateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the history store schema",
		Long: `Apply the embedded PostgreSQL migrations, or create the SQLite schema.
Migrations are idempotent and safe to run on every deploy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch cfg.Storage.Driver {
			case config.StoragePostgres:
				database, err := db.Connect(cmd.Context(), cfg.Storage.DatabaseURL)
				if err != nil {
					return err
				}
				defer database.Close()

				if err := database.Migrate(cmd.Context()); err != nil {
					return err
				}
				names, err := db.MigrationNames()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintf(out, "applied %s\n", name)
				}
				return nil

			case config.StorageSQLite:
				// Open migrates
				store, err := sqlite.Open(cfg.Storage.SQLitePath)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "sqlite schema ready at %s\n", cfg.Storage.SQLitePath)
				return store.Close()

			default:
				return fmt.Errorf("storage driver %q has no schema to migrate", cfg.Storage.Driver)
			}
		},
	}
}
