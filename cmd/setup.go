package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"songblog/internal/shared"
)

// setupCommand initializes the config file, database, and schema.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config file, initialize database, and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// migrateCommand applies or rolls back schema migrations.
func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending schema migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Roll back the most recent migration instead",
			},
		},
		Action: r.Migrate,
	}
}

// Setup creates the config file from the embedded template when absent, then
// initializes the database and applies migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
	}

	config := r.loadConfig(configPath)

	r.logger.Info("initializing database", "path", config.Database.Path)
	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}

// Migrate applies pending migrations, or rolls back the most recent one.
func (r *Runner) Migrate(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	if cmd.Bool("rollback") {
		r.logger.Info("rolling back most recent migration")
		return shared.RollbackMigration(db)
	}

	r.logger.Info("applying pending migrations")
	return shared.RunMigrations(db)
}
