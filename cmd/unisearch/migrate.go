package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pgstore "github.com/kailas-cloud/unisearch/internal/db/postgres"
)

func newMigrateCmd(flags *globalFlags) *cobra.Command {
	var statusOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := flags.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if !statusOnly {
				if err := pgstore.Migrate(cfg.Database.DSN); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}

			v, dirty, err := pgstore.MigrationVersion(cfg.Database.DSN)
			if err != nil {
				return fmt.Errorf("read migration version: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema version: %d (dirty: %t)\n", v, dirty)
			return nil
		},
	}
	cmd.Flags().BoolVar(&statusOnly, "status", false, "Only print the current schema version")
	return cmd
}
