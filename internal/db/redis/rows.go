package redis

import (
	"context"
	"fmt"
	"slices"

	"github.com/kailas-cloud/knowhub/internal/db"
	"github.com/kailas-cloud/knowhub/internal/db/eval"
)

// Count scans the table and counts rows matching q.Filter.
func (s *Store) Count(ctx context.Context, q *db.Query) (int, error) {
	rows, src, err := s.load(ctx, q)
	if err != nil {
		return 0, err
	}
	n, err := eval.Count(q, rows, src)
	if err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	return n, nil
}

// Fetch scans the table and returns one ordered window of matching rows.
func (s *Store) Fetch(ctx context.Context, q *db.Query) ([]db.Row, error) {
	rows, src, err := s.load(ctx, q)
	if err != nil {
		return nil, err
	}
	out, err := eval.Fetch(q, rows, src)
	if err != nil {
		return nil, &db.Error{Op: db.OpFetch, Err: err}
	}
	return out, nil
}

// Put stores row as a hash. Rows without an id are link rows keyed by all their values.
func (s *Store) Put(ctx context.Context, table string, row db.Row) error {
	if !db.KnownTable(table) {
		return &db.Error{Op: db.OpPut, Err: fmt.Errorf("%w: %s", db.ErrUnknownTable, table)}
	}
	if len(row) == 0 {
		return &db.Error{Op: db.OpPut, Err: fmt.Errorf("%w: empty row", db.ErrInvalidQuery)}
	}

	fields := make(map[string]string, len(row))
	for col := range row {
		fields[col] = row.String(col)
	}
	return s.HSet(ctx, s.rowKey(table, row), fields)
}

func (s *Store) load(ctx context.Context, q *db.Query) ([]db.Row, eval.Source, error) {
	if err := q.Validate(); err != nil {
		return nil, nil, err
	}
	if !db.KnownTable(q.Table) {
		return nil, nil, fmt.Errorf("%w: %s", db.ErrUnknownTable, q.Table)
	}

	src := &tableSource{ctx: ctx, store: s, loaded: map[string][]db.Row{}}
	rows, err := src.Rows(q.Table)
	if err != nil {
		return nil, nil, err
	}
	return rows, src, nil
}

// tableSource loads each table at most once per query.
type tableSource struct {
	ctx    context.Context
	store  *Store
	loaded map[string][]db.Row
}

func (t *tableSource) Rows(table string) ([]db.Row, error) {
	if rows, ok := t.loaded[table]; ok {
		return rows, nil
	}
	rows, err := t.store.scanTable(t.ctx, table)
	if err != nil {
		return nil, err
	}
	t.loaded[table] = rows
	return rows, nil
}

// scanTable loads every row of table. SCAN order is unspecified; callers sort.
func (s *Store) scanTable(ctx context.Context, table string) ([]db.Row, error) {
	keys, err := s.Scan(ctx, s.tablePrefix(table)+"*")
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", table, err)
	}
	slices.Sort(keys)

	hashes, err := s.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", table, err)
	}

	rows := make([]db.Row, 0, len(hashes))
	for _, h := range hashes {
		if len(h) == 0 {
			continue // deleted between SCAN and HGETALL
		}
		row := make(db.Row, len(h))
		for k, v := range h {
			row[k] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Store) tablePrefix(table string) string {
	return s.prefix + ":" + table + ":"
}

// rowKey is <prefix>:<table>:<row key>.
func (s *Store) rowKey(table string, row db.Row) string {
	return s.tablePrefix(table) + row.Key()
}
