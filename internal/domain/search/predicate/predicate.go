// Package predicate turns a parsed term and its field descriptor into an
// executable, store-independent condition.
package predicate

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/knowhub/internal/domain"
	"github.com/kailas-cloud/knowhub/internal/domain/search/field"
	"github.com/kailas-cloud/knowhub/internal/domain/search/term"
)

// Op is the comparison a store applies to a column.
type Op int

const (
	// OpEqual compares the column value for equality (strings case-sensitively).
	OpEqual Op = iota
	// OpContainsFold tests lower(column) contains the already lower-cased value.
	OpContainsFold
)

func (o Op) String() string {
	switch o {
	case OpEqual:
		return "eq"
	case OpContainsFold:
		return "contains"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Predicate is the condition built from exactly one term.
// When Via is set, Column names a column of Via.Target and the predicate holds
// if any related row satisfies it.
type Predicate struct {
	term   term.Term
	column string
	op     Op
	value  any
	via    *field.Relation
	guard  string
}

// Term returns the term the predicate was built from.
func (p Predicate) Term() term.Term { return p.term }

// Column returns the compared column.
func (p Predicate) Column() string { return p.column }

// Op returns the comparison.
func (p Predicate) Op() Op { return p.op }

// Value returns the coerced operand: a string, or a bool for boolean fields.
func (p Predicate) Value() any { return p.value }

// Via returns the relation to traverse, nil for local columns.
func (p Predicate) Via() *field.Relation { return p.via }

// Guard names a boolean column of the owner row that must be false for the
// predicate to hold. Empty when unconditional.
func (p Predicate) Guard() string { return p.guard }

// Build coerces t.Value according to d's kind. Invalid values fail with a
// *domain.ValidationError naming field and value.
func Build(t term.Term, d field.Descriptor) (Predicate, error) {
	p := Predicate{term: t, column: d.Column(), guard: d.Guard()}

	switch d.Kind() {
	case field.TextPartial:
		p.op = OpContainsFold
		p.value = strings.ToLower(t.Value)

	case field.Exact:
		p.op = OpEqual
		p.value = t.Value

	case field.Enum:
		symbol, ok := matchSymbol(d.Symbols(), t.Value)
		if !ok {
			return Predicate{}, domain.NewInvalidValue(t.Field, t.Value,
				"accepted values are "+strings.Join(d.Symbols(), ", "))
		}
		p.op = OpEqual
		p.value = symbol

	case field.Boolean:
		switch {
		case strings.EqualFold(t.Value, "true"):
			p.value = true
		case strings.EqualFold(t.Value, "false"):
			p.value = false
		default:
			return Predicate{}, domain.NewInvalidValue(t.Field, t.Value, "expected true or false")
		}
		p.op = OpEqual

	case field.RelationID:
		rel := d.Relation()
		p.op = OpEqual
		p.value = t.Value
		if rel.ToMany() {
			p.via = rel
		} else {
			// The foreign key already holds the related id; no join needed.
			p.column = rel.LocalKey
		}

	case field.RelationName:
		p.via = d.Relation()
		if d.Partial() {
			p.op = OpContainsFold
			p.value = strings.ToLower(t.Value)
		} else {
			p.op = OpEqual
			p.value = t.Value
		}

	default:
		return Predicate{}, fmt.Errorf("field %q: unsupported kind %q", d.Name(), d.Kind())
	}

	return p, nil
}

func matchSymbol(symbols []string, value string) (string, bool) {
	for _, s := range symbols {
		if strings.EqualFold(s, value) {
			return s, true
		}
	}
	return "", false
}
