// Package field describes which entity fields a search may filter and sort on,
// and how each field interprets a term value.
package field

import (
	"fmt"
	"strings"
)

// Kind is the value-interpretation kind of a searchable field.
type Kind string

// Field kind constants.
const (
	// TextPartial is a case-insensitive substring match.
	TextPartial Kind = "TEXT_PARTIAL"
	// Exact is a case-sensitive equality match.
	Exact Kind = "EXACT"
	// Enum matches one declared symbol, case-insensitively.
	Enum Kind = "ENUM"
	// Boolean accepts "true" or "false" in any case.
	Boolean Kind = "BOOLEAN"
	// RelationID matches the identifier of a related entity.
	RelationID Kind = "RELATION_ID"
	// RelationName matches an attribute of a related entity.
	RelationName Kind = "RELATION_NAME"
)

// IDColumn is the identifier column every searchable table carries.
const IDColumn = "id"

// Relation is the join path from an entity to a related entity.
// To-one relations set LocalKey; to-many relations set the Join* columns.
type Relation struct {
	Target     string // related table
	LocalKey   string // owner column referencing Target.id
	JoinTable  string // link table for to-many relations
	JoinOwner  string // link column referencing the owner's id
	JoinTarget string // link column referencing Target.id
}

// ToMany reports whether the relation goes through a link table.
func (r Relation) ToMany() bool { return r.JoinTable != "" }

func (r Relation) validate() error {
	if r.Target == "" {
		return fmt.Errorf("relation target is required")
	}
	if r.ToMany() {
		if r.JoinOwner == "" || r.JoinTarget == "" {
			return fmt.Errorf("relation via %s needs owner and target columns", r.JoinTable)
		}
		if r.LocalKey != "" {
			return fmt.Errorf("relation via %s cannot also set a local key", r.JoinTable)
		}
		return nil
	}
	if r.LocalKey == "" {
		return fmt.Errorf("to-one relation to %s needs a local key", r.Target)
	}
	return nil
}

// Descriptor is an immutable description of one searchable field.
type Descriptor struct {
	name     string
	kind     Kind
	column   string
	symbols  []string
	relation *Relation
	partial  bool
	unless   string
}

// Text declares a case-insensitive substring field.
func Text(name, column string) Descriptor {
	return Descriptor{name: name, kind: TextPartial, column: column}
}

// Equal declares a case-sensitive equality field.
func Equal(name, column string) Descriptor {
	return Descriptor{name: name, kind: Exact, column: column}
}

// OneOf declares an enum field stored as one of symbols.
func OneOf(name, column string, symbols ...string) Descriptor {
	return Descriptor{name: name, kind: Enum, column: column, symbols: symbols}
}

// Flag declares a boolean field.
func Flag(name, column string) Descriptor {
	return Descriptor{name: name, kind: Boolean, column: column}
}

// RelatedID declares a field matching the identifier of the related entity.
func RelatedID(name string, rel Relation) Descriptor {
	return Descriptor{name: name, kind: RelationID, column: IDColumn, relation: &rel}
}

// RelatedName declares a field matching column on the related entity.
// partial selects substring matching instead of equality.
func RelatedName(name string, rel Relation, column string, partial bool) Descriptor {
	return Descriptor{name: name, kind: RelationName, column: column, relation: &rel, partial: partial}
}

// Unless returns a copy of d that never matches rows whose boolean column is
// true. Such fields are not sortable either, since ordering would expose the
// hidden value.
func (d Descriptor) Unless(column string) Descriptor {
	d.unless = column
	return d
}

// Name returns the public field name used in search terms.
func (d Descriptor) Name() string { return d.name }

// Kind returns the value-interpretation kind.
func (d Descriptor) Kind() Kind { return d.kind }

// Column returns the storage column. For relation kinds it lives on the related table.
func (d Descriptor) Column() string { return d.column }

// Symbols returns the declared enum symbols.
func (d Descriptor) Symbols() []string {
	out := make([]string, len(d.symbols))
	copy(out, d.symbols)
	return out
}

// Relation returns the join path, nil for local fields.
func (d Descriptor) Relation() *Relation { return d.relation }

// Partial reports whether a relation-name field matches by substring.
func (d Descriptor) Partial() bool { return d.partial }

// Guard returns the owner column set by Unless, empty when unconditional.
func (d Descriptor) Guard() string { return d.unless }

// SortColumn returns the local column to order by, or false when the
// field lives only on a related table.
func (d Descriptor) SortColumn() (string, bool) {
	if d.unless != "" {
		return "", false
	}
	switch d.kind {
	case RelationName:
		return "", false
	case RelationID:
		if d.relation.ToMany() {
			return "", false
		}
		return d.relation.LocalKey, true
	default:
		return d.column, true
	}
}

func (d Descriptor) validate() error {
	if d.name == "" {
		return fmt.Errorf("field name is required")
	}
	if d.column == "" {
		return fmt.Errorf("field %q: column is required", d.name)
	}
	switch d.kind {
	case TextPartial, Exact, Boolean:
		return nil
	case Enum:
		if len(d.symbols) == 0 {
			return fmt.Errorf("enum field %q declares no symbols", d.name)
		}
		seen := make(map[string]bool, len(d.symbols))
		for _, s := range d.symbols {
			k := strings.ToLower(s)
			if s == "" || seen[k] {
				return fmt.Errorf("enum field %q: empty or duplicate symbol %q", d.name, s)
			}
			seen[k] = true
		}
		return nil
	case RelationID, RelationName:
		if d.relation == nil {
			return fmt.Errorf("relation field %q has no relation", d.name)
		}
		if err := d.relation.validate(); err != nil {
			return fmt.Errorf("field %q: %w", d.name, err)
		}
		return nil
	default:
		return fmt.Errorf("field %q: invalid kind %q", d.name, d.kind)
	}
}
