package main

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/knowhub/internal/db/storage"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create the schema in the configured database",
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := setup(ctx, c)
			if err != nil {
				return err
			}
			defer a.Close()

			err = storage.Migrate(ctx, a.store)
			if errors.Is(err, storage.ErrNoMigrations) {
				a.logger.Info("Store is schemaless, nothing to migrate", zap.String("driver", a.cfg.Database.Driver))
				return nil
			}
			if err != nil {
				return err
			}
			a.logger.Info("Schema is up to date", zap.String("driver", a.cfg.Database.Driver))
			return nil
		},
	}
}
