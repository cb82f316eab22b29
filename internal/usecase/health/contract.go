package health

import (
	"context"

	"github.com/kailas-cloud/knowhub/internal/db"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// Counter runs a count query, used to probe that the schema is in place.
type Counter interface {
	Count(ctx context.Context, q *db.Query) (int, error)
}
