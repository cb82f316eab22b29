package knowhub

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/knowhub/internal/config"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	database    config.DatabaseConfig
	migrate     bool
	maxPageSize int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithPostgres connects to PostgreSQL using a lib/pq DSN.
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.database.Driver = config.DriverPostgres
		c.database.DSN = dsn
	})
}

// WithSQLite opens (or creates) a SQLite database file.
func WithSQLite(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.database.Driver = config.DriverSQLite
		c.database.DSN = path
	})
}

// WithRedis connects to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.database.Driver = config.DriverRedis
		c.database.Addrs = []string{addr}
		c.database.Password = password
	})
}

// WithValkey connects to a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.database.Driver = config.DriverValkey
		c.database.Addrs = []string{addr}
		c.database.Password = password
	})
}

// WithKeyPrefix namespaces Redis and Valkey keys. Default: "knowhub".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.database.KeyPrefix = prefix
	})
}

// WithAutoMigrate creates the SQL schema on connect. Ignored by key-value stores.
func WithAutoMigrate() Option {
	return optionFunc(func(c *clientConfig) {
		c.migrate = true
	})
}

// WithMaxPageSize caps the page size of every search.
// Default: 100.
func WithMaxPageSize(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxPageSize = size
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
