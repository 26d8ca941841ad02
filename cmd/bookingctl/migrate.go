package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"roombooking/pkg/db"
)

func newMigrateCmd(a *app) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending Postgres migrations",
		Long:  `Applies migrations using DIRECT_URL when set, which avoids pooler limitations on hosted Postgres.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if driver := a.cfg.Driver(); driver != "postgres" {
				return fmt.Errorf("migrate needs the postgres driver, configured driver is %q", driver)
			}
			if path == "" {
				path = a.cfg.MigrationsPath
			}
			version, err := db.Migrate(path, a.cfg)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			// Make sure the runtime connection works too; DSNs are never printed.
			pool, err := db.Open(cmd.Context(), a.cfg)
			if err != nil {
				return fmt.Errorf("runtime db open: %w", err)
			}
			pool.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (version %d)\n", version)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "migrations source URL (default MIGRATIONS_PATH or file://migrations)")
	return cmd
}
