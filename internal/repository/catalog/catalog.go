// Package catalog declares the searchable fields of every entity type and maps
// stored rows back to domain entities.
package catalog

import (
	"fmt"
	"slices"
	"time"

	"github.com/kailas-cloud/knowhub/internal/db"
	"github.com/kailas-cloud/knowhub/internal/domain/search/field"
)

// Entity binds an entity type's field registry to its row mapper.
type Entity[T any] struct {
	registry *field.Registry
	mapRow   func(db.Row) (T, error)
}

// NewEntity creates a binding.
func NewEntity[T any](reg *field.Registry, mapRow func(db.Row) (T, error)) Entity[T] {
	return Entity[T]{registry: reg, mapRow: mapRow}
}

// Registry returns the field whitelist.
func (e Entity[T]) Registry() *field.Registry { return e.registry }

// Map hydrates one stored row.
func (e Entity[T]) Map(row db.Row) (T, error) { return e.mapRow(row) }

// Erase drops the static entity type so bindings can share one lookup table.
func Erase[T any](e Entity[T]) Entity[any] {
	return Entity[any]{
		registry: e.registry,
		mapRow: func(row db.Row) (any, error) {
			return e.mapRow(row)
		},
	}
}

// All returns every searchable entity keyed by its entity name.
func All() map[string]Entity[any] {
	return map[string]Entity[any]{
		Workspaces.Registry().Entity(): Erase(Workspaces),
		Projects.Registry().Entity():   Erase(Projects),
		Questions.Registry().Entity():  Erase(Questions),
		Answers.Registry().Entity():    Erase(Answers),
		Notes.Registry().Entity():      Erase(Notes),
		Tags.Registry().Entity():       Erase(Tags),
		Users.Registry().Entity():      Erase(Users),
	}
}

// Names returns the entity names in sorted order.
func Names() []string {
	all := All()
	names := make([]string, 0, len(all))
	for n := range all {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// reader reads typed columns and keeps the first conversion error.
type reader struct {
	row db.Row
	err error
}

func (r *reader) str(col string) string { return r.row.String(col) }

func (r *reader) flag(col string) bool {
	v, err := r.row.Bool(col)
	if err != nil && r.err == nil {
		r.err = err
	}
	return v
}

func (r *reader) time(col string) time.Time {
	v, err := r.row.Time(col)
	if err != nil && r.err == nil {
		r.err = err
	}
	return v
}

func (r *reader) done(entity string) error {
	if r.err != nil {
		return fmt.Errorf("map %s %s: %w", entity, r.row.String(field.IDColumn), r.err)
	}
	return nil
}
