package main

import (
	"fmt"
	"os"

	"crediasesor-backoffice/internal/config"
	"crediasesor-backoffice/internal/infrastructure/db"
	"crediasesor-backoffice/internal/infrastructure/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:           "crediasesor",
	Short:         "CrediAsesor backoffice API and maintenance commands.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(superadminCmd)
	rootCmd.AddCommand(commissionsCmd)
}

// app holds what every command needs: config, logger and database.
type app struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

func bootstrap() (*app, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	gdb, err := db.Open(cfg, logger.GormLevel(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	return &app{cfg: cfg, log: log, db: gdb}, nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.log.Sync()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
