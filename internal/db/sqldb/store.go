// Package sqldb implements db.Store on database/sql for PostgreSQL and SQLite.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq" // postgres driver
	"github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed" // bundled sqlite build
	"github.com/ncruces/go-sqlite3/ext/unicode"

	"github.com/kailas-cloud/knowhub/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds connection parameters for a SQL store.
type Config struct {
	Driver          string // postgres | sqlite
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectRetries  uint64
}

// Store implements db.Store on a *sql.DB.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects and pings the database, retrying with exponential backoff.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	d, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}

	conn, err := openConn(d, cfg.DSN)
	if err != nil {
		return nil, &db.Error{Op: db.OpConnect, Err: err}
	}
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), cfg.ConnectRetries), ctx)
	if err := backoff.Retry(func() error { return conn.PingContext(ctx) }, bo); err != nil {
		_ = conn.Close()
		return nil, &db.Error{Op: db.OpConnect, Err: err}
	}

	return &Store{db: conn, dialect: d}, nil
}

// openConn opens the pool. SQLite connections get Unicode aware LOWER and
// LIKE so case folding matches the other stores.
func openConn(d Dialect, dsn string) (*sql.DB, error) {
	if d.driver == SQLite.driver {
		return driver.Open(dsn, unicode.Register)
	}
	return sql.Open(d.driver, dsn)
}

// NewStore wraps an already opened *sql.DB.
func NewStore(conn *sql.DB, d Dialect) *Store {
	return &Store{db: conn, dialect: d}
}

// Dialect returns the SQL dialect of the store.
func (s *Store) Dialect() Dialect { return s.dialect }

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	_ = s.db.Close()
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if err := s.Ping(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// Count returns the number of rows matching q.Filter.
func (s *Store) Count(ctx context.Context, q *db.Query) (int, error) {
	if err := s.check(q); err != nil {
		return 0, err
	}
	stmt, args, err := s.dialect.compileCount(q)
	if err != nil {
		return 0, err
	}

	var n int
	if err := s.db.QueryRowContext(ctx, stmt, args...).Scan(&n); err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	return n, nil
}

// Fetch returns one ordered window of matching rows.
func (s *Store) Fetch(ctx context.Context, q *db.Query) ([]db.Row, error) {
	if err := s.check(q); err != nil {
		return nil, err
	}
	stmt, args, err := s.dialect.compileSelect(q)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, &db.Error{Op: db.OpFetch, Err: err}
	}
	defer func() { _ = rows.Close() }()

	out, err := scanRows(rows)
	if err != nil {
		return nil, &db.Error{Op: db.OpFetch, Err: err}
	}
	return out, nil
}

// Put upserts row into table.
func (s *Store) Put(ctx context.Context, table string, row db.Row) error {
	if !db.KnownTable(table) {
		return &db.Error{Op: db.OpPut, Err: fmt.Errorf("%w: %s", db.ErrUnknownTable, table)}
	}
	stmt, args, err := s.dialect.compileUpsert(table, row)
	if err != nil {
		return &db.Error{Op: db.OpPut, Err: err}
	}
	if _, err := s.db.ExecContext(ctx, stmt, args...); err != nil {
		return &db.Error{Op: db.OpPut, Err: fmt.Errorf("table %s: %w", table, err)}
	}
	return nil
}

func (s *Store) check(q *db.Query) error {
	if err := q.Validate(); err != nil {
		return err
	}
	if !db.KnownTable(q.Table) {
		return fmt.Errorf("%w: %s", db.ErrUnknownTable, q.Table)
	}
	return nil
}

func scanRows(rows *sql.Rows) ([]db.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := []db.Row{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(db.Row, len(cols))
		for i, c := range cols {
			if b, ok := values[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
