// Package storage opens the db.Store selected by configuration.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/knowhub/internal/config"
	"github.com/kailas-cloud/knowhub/internal/db"
	"github.com/kailas-cloud/knowhub/internal/db/redis"
	"github.com/kailas-cloud/knowhub/internal/db/sqldb"
)

// ErrNoMigrations is returned by Migrate for stores without a schema.
var ErrNoMigrations = errors.New("store has no schema to migrate")

// Migrator applies the embedded schema.
type Migrator interface {
	Migrate(ctx context.Context) error
}

// Open connects to the configured database and waits until it answers.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (db.Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		store db.Store
		err   error
	)
	switch cfg.Driver {
	case config.DriverPostgres, config.DriverSQLite:
		store, err = sqldb.Open(ctx, sqldb.Config{
			Driver:         cfg.Driver,
			DSN:            cfg.DSN,
			MaxOpenConns:   cfg.MaxOpenConns,
			MaxIdleConns:   cfg.MaxIdleConns,
			ConnectRetries: cfg.ConnectRetries,
		})
	case config.DriverRedis, config.DriverValkey:
		store, err = redis.NewStore(redis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
			Prefix:   cfg.KeyPrefix,
		})
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	timeout := time.Duration(cfg.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, timeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("%s not ready: %w", cfg.Driver, err)
	}
	logger.Info("Connected to database", zap.String("driver", cfg.Driver))
	return store, nil
}

// Migrate applies the schema when the store has one. Key-value stores are schemaless
// and return ErrNoMigrations.
func Migrate(ctx context.Context, store db.Store) error {
	m, ok := store.(Migrator)
	if !ok {
		return ErrNoMigrations
	}
	return m.Migrate(ctx)
}
