package field

import (
	"fmt"

	"github.com/kailas-cloud/knowhub/internal/domain"
)

// Registry is the immutable field whitelist of one entity type.
// Safe for concurrent reads; nothing mutates it after construction.
type Registry struct {
	entity string
	table  string
	fields []Descriptor
	byName map[string]Descriptor
}

// NewRegistry validates descriptors and builds a registry.
// An "id" descriptor on the id column is required for the default sort.
func NewRegistry(entity, table string, descriptors ...Descriptor) (*Registry, error) {
	if entity == "" {
		return nil, fmt.Errorf("entity name is required")
	}
	if table == "" {
		return nil, fmt.Errorf("entity %q: table is required", entity)
	}

	byName := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		if err := d.validate(); err != nil {
			return nil, fmt.Errorf("entity %q: %w", entity, err)
		}
		if _, dup := byName[d.name]; dup {
			return nil, fmt.Errorf("entity %q: duplicate field %q", entity, d.name)
		}
		byName[d.name] = d
	}

	id, ok := byName[IDColumn]
	if !ok || id.column != IDColumn || id.relation != nil {
		return nil, fmt.Errorf("entity %q: field %q on column %q is required", entity, IDColumn, IDColumn)
	}

	fields := make([]Descriptor, len(descriptors))
	copy(fields, descriptors)
	return &Registry{entity: entity, table: table, fields: fields, byName: byName}, nil
}

// MustRegistry is NewRegistry for package-level tables; it panics on invalid input.
func MustRegistry(entity, table string, descriptors ...Descriptor) *Registry {
	r, err := NewRegistry(entity, table, descriptors...)
	if err != nil {
		panic(err)
	}
	return r
}

// Entity returns the entity type name.
func (r *Registry) Entity() string { return r.entity }

// Table returns the storage table of the entity.
func (r *Registry) Table() string { return r.table }

// Fields returns the descriptors in declaration order.
func (r *Registry) Fields() []Descriptor {
	out := make([]Descriptor, len(r.fields))
	copy(out, r.fields)
	return out
}

// Lookup returns the descriptor for name. A miss is a validation error, never a silent skip.
func (r *Registry) Lookup(name string) (Descriptor, error) {
	d, ok := r.byName[name]
	if !ok {
		return Descriptor{}, domain.NewUnknownField(name)
	}
	return d, nil
}
