package sqldb

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/kailas-cloud/knowhub/internal/db"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Schema returns the DDL for the dialect.
func Schema(d Dialect) (string, error) {
	b, err := schemaFS.ReadFile("schema/" + d.name + ".sql")
	if err != nil {
		return "", fmt.Errorf("read schema: %w", err)
	}
	return string(b), nil
}

// Migrate creates missing tables and indexes. It is idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	ddl, err := Schema(s.dialect)
	if err != nil {
		return err
	}
	for _, stmt := range strings.Split(ddl, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return &db.Error{Op: db.OpMigrate, Err: err}
		}
	}
	return nil
}
