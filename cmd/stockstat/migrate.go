package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/urfave/cli/v2"

	"github.com/mtlprog/stockstat/internal/config"
	"github.com/mtlprog/stockstat/internal/database"
)

func migrateCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply pending Postgres migrations",
		Action: func(c *cli.Context) error {
			if cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL is required")
			}

			pool, err := database.Connect(c.Context, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrationsSub, err := fs.Sub(migrationsFS, "migrations")
			if err != nil {
				return fmt.Errorf("creating migrations sub-fs: %w", err)
			}
			applied, err := database.RunMigrations(c.Context, pool, migrationsSub)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "%d migration(s) applied\n", len(applied))
			return nil
		},
	}
}
