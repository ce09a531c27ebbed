package main

import (
	"fmt"

	"crediasesor-backoffice/internal/config"
	"crediasesor-backoffice/internal/infrastructure/db"
	"crediasesor-backoffice/internal/infrastructure/db/migrations"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back the database schema.",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations (MySQL) or auto-migrate (SQLite).",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()
		if err := migrateUp(a); err != nil {
			return err
		}
		a.log.Info("schema up to date")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every MySQL migration.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()
		if a.cfg.DBDriver != config.DriverMySQL {
			return fmt.Errorf("migrate down needs DB_DRIVER=mysql, got %q", a.cfg.DBDriver)
		}
		if err := migrations.Down(a.cfg.MigrateURL()); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		a.log.Info("schema rolled back")
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}

func migrateUp(a *app) error {
	if a.cfg.DBDriver == config.DriverSQLite {
		if err := db.AutoMigrate(a.db); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
		return nil
	}
	if err := migrations.Up(a.cfg.MigrateURL()); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
