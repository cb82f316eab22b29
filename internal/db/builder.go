package db

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/knowhub/internal/domain/search/filter"
)

// QueryBuilder is a fluent builder for read queries.
type QueryBuilder struct {
	q Query
}

// From starts building a query over table.
func From(table string) *QueryBuilder {
	return &QueryBuilder{q: Query{Table: table, Filter: filter.MatchAll()}}
}

// Where sets the filter.
func (b *QueryBuilder) Where(f filter.Filter) *QueryBuilder {
	b.q.Filter = f
	return b
}

// OrderBy appends a sort key. Keys apply in the order added.
func (b *QueryBuilder) OrderBy(column string, desc bool) *QueryBuilder {
	b.q.Order = append(b.q.Order, Order{Column: column, Desc: desc})
	return b
}

// Window sets offset and limit.
func (b *QueryBuilder) Window(offset, limit int) *QueryBuilder {
	b.q.Offset = offset
	b.q.Limit = limit
	return b
}

// Build validates and returns the query.
func (b *QueryBuilder) Build() (*Query, error) {
	if err := b.q.Validate(); err != nil {
		return nil, err
	}
	q := b.q
	q.Order = append([]Order(nil), b.q.Order...)
	return &q, nil
}

// MustBuild calls Build and panics on error.
func (b *QueryBuilder) MustBuild() *Query {
	q, err := b.Build()
	if err != nil {
		panic(err)
	}
	return q
}

// Validate checks the query shape.
func (q *Query) Validate() error {
	if q.Table == "" {
		return fmt.Errorf("%w: table is required", ErrInvalidQuery)
	}
	if q.Offset < 0 || q.Limit < 0 {
		return fmt.Errorf("%w: negative offset or limit", ErrInvalidQuery)
	}
	for _, o := range q.Order {
		if o.Column == "" {
			return fmt.Errorf("%w: empty order column", ErrInvalidQuery)
		}
	}
	return nil
}

// String returns a debug representation resembling SQL.
func (q *Query) String() string {
	parts := []string{"FROM", q.Table, "WHERE", q.Filter.String()}
	if len(q.Order) > 0 {
		keys := make([]string, len(q.Order))
		for i, o := range q.Order {
			keys[i] = o.Column
			if o.Desc {
				keys[i] += " DESC"
			}
		}
		parts = append(parts, "ORDER BY", strings.Join(keys, ", "))
	}
	if q.Limit > 0 {
		parts = append(parts, "LIMIT", fmt.Sprint(q.Limit))
	}
	if q.Offset > 0 {
		parts = append(parts, "OFFSET", fmt.Sprint(q.Offset))
	}
	return strings.Join(parts, " ")
}
