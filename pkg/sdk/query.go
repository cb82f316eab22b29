package knowhub

import (
	"context"
	"strings"
	"time"

	"github.com/kailas-cloud/knowhub/internal/domain"
	"github.com/kailas-cloud/knowhub/internal/domain/search/page"
	"github.com/kailas-cloud/knowhub/internal/domain/search/term"
	"github.com/kailas-cloud/knowhub/internal/repository/catalog"
	searchuc "github.com/kailas-cloud/knowhub/internal/usecase/search"
)

type runFunc[T any] func(ctx context.Context, entity, rawTerms string, req page.Request) (page.Page[T], error)

// Query is a fluent builder for one search. Builders are not safe for concurrent use.
type Query[T any] struct {
	entity string
	obs    *observer
	run    runFunc[T]

	raw       []string
	terms     []term.Term
	number    int
	size      int
	sortField string
	dir       Direction
	err       error
}

func newQuery[T any](entity string, obs *observer, run runFunc[T]) *Query[T] {
	return &Query[T]{entity: entity, obs: obs, run: run, dir: Asc}
}

func typed[T any](c *Client, e catalog.Entity[T]) *Query[T] {
	return newQuery[T](e.Registry().Entity(), c.obs,
		func(ctx context.Context, _, rawTerms string, req page.Request) (page.Page[T], error) {
			return searchuc.Run(ctx, c.store, e, rawTerms, req.Clamp(c.maxPageSize))
		})
}

// Users searches users.
func Users(c *Client) *Query[User] { return typed(c, catalog.Users) }

// Workspaces searches workspaces.
func Workspaces(c *Client) *Query[Workspace] { return typed(c, catalog.Workspaces) }

// Projects searches projects.
func Projects(c *Client) *Query[Project] { return typed(c, catalog.Projects) }

// Tags searches tags.
func Tags(c *Client) *Query[Tag] { return typed(c, catalog.Tags) }

// Questions searches questions.
func Questions(c *Client) *Query[Question] { return typed(c, catalog.Questions) }

// Answers searches answers.
func Answers(c *Client) *Query[Answer] { return typed(c, catalog.Answers) }

// Notes searches notes.
func Notes(c *Client) *Query[Note] { return typed(c, catalog.Notes) }

// Where adds a field=value term. Terms on different fields are ORed.
func (q *Query[T]) Where(fieldName, value string) *Query[T] {
	if q.err == nil && strings.Contains(value, term.Separator) {
		q.err = domain.NewInvalidValue(fieldName, value, "value must not contain "+term.Separator)
	}
	q.terms = append(q.terms, term.Term{Field: fieldName, Value: value})
	return q
}

// Terms appends terms already in key=value#key=value form.
func (q *Query[T]) Terms(raw string) *Query[T] {
	if raw != "" {
		q.raw = append(q.raw, raw)
	}
	return q
}

// Page selects the zero-based page number and its size. A zero size uses the default.
func (q *Query[T]) Page(number, size int) *Query[T] {
	q.number = number
	q.size = size
	return q
}

// SortBy orders results by a sortable field.
func (q *Query[T]) SortBy(fieldName string, dir Direction) *Query[T] {
	q.sortField = fieldName
	q.dir = dir
	return q
}

// String renders the terms as sent to the engine.
func (q *Query[T]) String() string {
	parts := q.raw
	if len(q.terms) > 0 {
		parts = append(parts[:len(parts):len(parts)], term.Join(q.terms))
	}
	return strings.Join(parts, term.Separator)
}

// Do executes the search.
func (q *Query[T]) Do(ctx context.Context) (res Page[T], err error) {
	start := time.Now()
	defer func() { q.obs.observe("search", q.entity, start, err) }()

	if q.err != nil {
		return Page[T]{}, q.err
	}
	req, err := page.NewRequest(q.number, q.size, q.sortField, string(q.dir))
	if err != nil {
		return Page[T]{}, err
	}
	return q.run(ctx, q.entity, q.String(), req)
}
