package batch

import (
	"context"

	"github.com/kailas-cloud/knowhub/internal/db"
)

// Writer upserts one row.
type Writer interface {
	Put(ctx context.Context, table string, row db.Row) error
}
