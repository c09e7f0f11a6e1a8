// portalctl reúne as tarefas operacionais do portal: migração, carga de
// dados, criação do primeiro administrador e consulta do horário da balsa.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/config"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/logging"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/persistence/postgres"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "portalctl",
	Short:         "Operational tasks for the Gabriola Connects backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(createAdminCmd)
	rootCmd.AddCommand(ferryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// environment carrega configuração e logger para um comando
func environment() (*config.Config, ports.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	return cfg, logging.NewSlogLogger(level), nil
}

// openDatabase conecta ao banco; o chamador fecha com closeDatabase
func openDatabase(cfg *config.Config, logger ports.Logger) (*gorm.DB, error) {
	db, err := postgres.NewDatabaseConnection(&cfg.Database, cfg.Logging.Level, logger)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func closeDatabase(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
