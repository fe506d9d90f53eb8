package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"songblog/internal/catalog"
	"songblog/internal/server"
	"songblog/internal/shared"
)

// serveCommand runs the HTTP API server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Serve,
	}
}

// Serve boots the database, catalog client, and HTTP server, then blocks
// until the context is cancelled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	if err := config.Validate(); err != nil {
		return err
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	resolver, err := catalog.NewClient(config.Credentials.Spotify.ClientID, config.Credentials.Spotify.ClientSecret)
	if err != nil {
		return err
	}

	srv := server.New(config, db, resolver, r.logger)
	return srv.Run(ctx)
}
