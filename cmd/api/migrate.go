package main

import (
	"errors"

	"UserAPI/internal/config"
	"UserAPI/migrations"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var status bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply Postgres migrations (or show their status with --status)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Storage.Driver != config.StoragePostgres {
				return errors.New("migrate only applies to STORAGE_DRIVER=postgres")
			}
			if status {
				return migrations.Status(cfg.PG.DSN)
			}
			if err := migrations.Up(cfg.PG.DSN); err != nil {
				return err
			}
			cmd.Println("migrations applied")
			return nil
		},
	}
	cmd.Flags().BoolVar(&status, "status", false, "print migration status instead of applying")
	return cmd
}
