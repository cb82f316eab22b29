package db

import (
	"context"
	"slices"
	"time"
)

// Tables lists every table a store serves. Link tables have no id column.
var Tables = []string{
	"users", "workspaces", "workspace_members", "projects", "tags",
	"questions", "question_tags", "answers", "notes", "note_tags",
}

// LinkTables lists the join tables of to-many relations.
var LinkTables = []string{"workspace_members", "question_tags", "note_tags"}

// KnownTable reports whether name is one of Tables.
func KnownTable(name string) bool { return slices.Contains(Tables, name) }

// LinkTable reports whether name is one of LinkTables.
func LinkTable(name string) bool { return slices.Contains(LinkTables, name) }

// Store is the main database facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade; consumers use narrow sub-interfaces
type Store interface {
	Pinger
	Searcher
	Writer
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Searcher runs filtered, paged reads over one table.
// Count ignores Query.Order, Offset and Limit.
type Searcher interface {
	Count(ctx context.Context, q *Query) (int, error)
	Fetch(ctx context.Context, q *Query) ([]Row, error)
}

// Writer upserts rows by their id column. Link tables are keyed by all their columns.
type Writer interface {
	Put(ctx context.Context, table string, row Row) error
}
