package search

import (
	"context"
	"time"

	"github.com/kailas-cloud/knowhub/internal/db"
	"github.com/kailas-cloud/knowhub/internal/domain/search/field"
)

// Store counts and fetches rows matching a query.
type Store interface {
	Count(ctx context.Context, q *db.Query) (int, error)
	Fetch(ctx context.Context, q *db.Query) ([]db.Row, error)
}

// Entity is a searchable entity type: its field whitelist and its row mapper.
type Entity[T any] interface {
	Registry() *field.Registry
	Map(row db.Row) (T, error)
}

// Recorder receives search observations.
type Recorder interface {
	ObserveSearch(entity, outcome string, d time.Duration)
	DroppedSegment(entity string)
}
