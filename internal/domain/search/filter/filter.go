// Package filter combines per-term predicates into the condition a search applies.
package filter

import (
	"strings"

	"github.com/kailas-cloud/knowhub/internal/domain/search/predicate"
)

// Filter is a disjunction of predicates. The zero value matches every row.
type Filter struct {
	any []predicate.Predicate
}

// Combine ORs predicates together: a row matches if any of them holds.
// No predicates yields the match-all filter.
func Combine(preds ...predicate.Predicate) Filter {
	if len(preds) == 0 {
		return Filter{}
	}
	cp := make([]predicate.Predicate, len(preds))
	copy(cp, preds)
	return Filter{any: cp}
}

// MatchAll returns the identity filter.
func MatchAll() Filter { return Filter{} }

// IsMatchAll reports whether the filter has no predicates.
func (f Filter) IsMatchAll() bool { return len(f.any) == 0 }

// Any returns the OR-ed predicates.
func (f Filter) Any() []predicate.Predicate { return f.any }

// Matches evaluates the filter with holds deciding each predicate.
func (f Filter) Matches(holds func(predicate.Predicate) bool) bool {
	if f.IsMatchAll() {
		return true
	}
	for _, p := range f.any {
		if holds(p) {
			return true
		}
	}
	return false
}

// String renders the filter for logs.
func (f Filter) String() string {
	if f.IsMatchAll() {
		return "*"
	}
	parts := make([]string, len(f.any))
	for i, p := range f.any {
		parts[i] = p.Term().String()
	}
	return strings.Join(parts, " OR ")
}
