package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/knowhub/internal/config"
	"github.com/kailas-cloud/knowhub/internal/db"
	"github.com/kailas-cloud/knowhub/internal/db/storage"
	logpkg "github.com/kailas-cloud/knowhub/internal/logger"
)

func main() {
	app := &cli.Command{
		Name:  "knowhub",
		Usage: "Search users, workspaces, projects, questions, answers, notes and tags",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Usage:   "Configuration environment (config/<env>.yaml)",
				Value:   config.GetEnv(),
				Sources: cli.EnvVars("ENV"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override the configured log level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			searchCommand(),
			migrateCommand(),
			importCommand(),
			versionCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "knowhub:", err)
		os.Exit(1)
	}
}

// app holds what every command needs: configuration, a logger and an open store.
type app struct {
	env    string
	cfg    config.Config
	logger *zap.Logger
	store  db.Store
}

func setup(ctx context.Context, c *cli.Command) (*app, error) {
	env := c.String("env")

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Logging.Level
	if l := c.String("log-level"); l != "" {
		level = l
	}
	logger, err := logpkg.NewLogger(env, level)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	store, err := storage.Open(ctx, cfg.Database, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	return &app{env: env, cfg: cfg, logger: logger, store: store}, nil
}

func (a *app) Close() {
	a.store.Close()
	_ = a.logger.Sync()
}
