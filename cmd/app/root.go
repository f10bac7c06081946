package main

import (
	"fmt"
	"log/slog"
	"os"

	"mes/cmd"
	httpin "mes/internal/adapters/in/http"
	"mes/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "mes",
		Short:         "Manufacturing execution service",
		Long:          "mes manages work orders, splits them into tasks along their routes and gates task progress.",
		SilenceUsage:  true,
	}
	root.PersistentFlags().String("env-file", ".env", "file with environment variables; a missing file is ignored")

	root.AddCommand(newServeCommand(), newMigrateCommand(), newSeedCommand())
	return root
}

// app holds what every subcommand needs.
type app struct {
	cfg    cmd.Config
	logger *slog.Logger
	db     *gorm.DB
}

func setup(c *cobra.Command) (*app, error) {
	envFile, err := c.Flags().GetString("env-file")
	if err != nil {
		return nil, err
	}

	cfg, err := cmd.LoadConfig(envFile)
	if err != nil {
		return nil, err
	}

	level, _ := httpin.ParseLogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	db, err := postgres.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect database %s@%s:%s/%s: %w", cfg.DBUser, cfg.DBHost, cfg.DBPort, cfg.DBName, err)
	}

	return &app{cfg: cfg, logger: logger, db: db}, nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
