package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"songblog/internal/shared"
)

// Runner holds shared dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	logger *log.Logger
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Logger *log.Logger
}

// NewRunner creates a new Runner with the provided options.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &Runner{logger: opts.Logger}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, setupCommand, migrateCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig reads configuration from the given path, falling back to
// embedded defaults (plus environment overrides) when the file is absent.
func (r *Runner) loadConfig(path string) *shared.Config {
	if _, err := os.Stat(path); err == nil {
		config, err := shared.LoadConfig(path)
		if err == nil {
			return config
		}
		r.logger.Warn("failed to load config, using defaults", "error", err)
	}
	return shared.DefaultConfig()
}

// openDatabase opens and configures the SQLite database from config.
func (r *Runner) openDatabase(config *shared.Config) (*sql.DB, error) {
	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
	return db, nil
}
