package batch

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/knowhub/internal/db"
	dombatch "github.com/kailas-cloud/knowhub/internal/domain/batch"
)

// DefaultWorkers is the number of concurrent writes per table.
const DefaultWorkers = 8

// Service writes fixtures with per-row error reporting.
type Service struct {
	w       Writer
	workers int
}

// New creates a batch service.
func New(w Writer) *Service {
	return &Service{w: w, workers: DefaultWorkers}
}

// WithWorkers configures write concurrency.
func (s *Service) WithWorkers(n int) *Service {
	if n > 0 {
		s.workers = n
	}
	return s
}

// Import writes every row of f. Tables are written one after another in
// db.Tables order so referenced rows land before their referrers; rows within
// a table are written concurrently. Results follow the same order.
func (s *Service) Import(ctx context.Context, f Fixture) []dombatch.Result {
	results := make([]dombatch.Result, 0, f.Len())

	for _, table := range orderedTables(f) {
		rows := f[table]
		if !db.KnownTable(table) {
			for _, row := range rows {
				results = append(results,
					dombatch.NewError(table, row.Key(), fmt.Errorf("%w: %s", db.ErrUnknownTable, table)))
			}
			continue
		}
		results = append(results, s.importTable(ctx, table, rows)...)
	}
	return results
}

func (s *Service) importTable(ctx context.Context, table string, rows []db.Row) []dombatch.Result {
	results := make([]dombatch.Result, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, row := range rows {
		if err := validateRow(table, row); err != nil {
			results[i] = dombatch.NewError(table, row.Key(), err)
			continue
		}
		g.Go(func() error {
			if err := s.w.Put(gctx, table, row); err != nil {
				results[i] = dombatch.NewError(table, row.Key(), fmt.Errorf("put: %w", err))
				return nil
			}
			results[i] = dombatch.NewOK(table, row.Key())
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func validateRow(table string, row db.Row) error {
	if len(row) == 0 {
		return fmt.Errorf("%w: empty row", db.ErrInvalidQuery)
	}
	if db.LinkTable(table) {
		return nil
	}
	if row.String("id") == "" {
		return fmt.Errorf("%w: %s row without id", db.ErrInvalidQuery, table)
	}
	return nil
}

// orderedTables returns the fixture's known tables in db.Tables order, then
// unknown ones alphabetically.
func orderedTables(f Fixture) []string {
	out := make([]string, 0, len(f))
	for _, t := range db.Tables {
		if _, ok := f[t]; ok {
			out = append(out, t)
		}
	}
	var unknown []string
	for t := range f {
		if !db.KnownTable(t) {
			unknown = append(unknown, t)
		}
	}
	slices.Sort(unknown)
	return append(out, unknown...)
}
