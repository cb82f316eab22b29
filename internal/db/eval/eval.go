// Package eval executes db queries in process over rows already loaded from a
// store that cannot filter on its own.
package eval

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/kailas-cloud/knowhub/internal/db"
	"github.com/kailas-cloud/knowhub/internal/domain/search/field"
	"github.com/kailas-cloud/knowhub/internal/domain/search/predicate"
)

// Source returns every row of a table. Relation predicates read related and link tables through it.
type Source interface {
	Rows(table string) ([]db.Row, error)
}

// Tables is an in-memory Source.
type Tables map[string][]db.Row

// Rows implements Source. Unknown tables are empty.
func (t Tables) Rows(table string) ([]db.Row, error) {
	return t[table], nil
}

// Count returns how many rows match q.Filter.
func Count(q *db.Query, rows []db.Row, src Source) (int, error) {
	matched, err := filterRows(q, rows, src)
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

// Fetch filters, orders and windows rows the way a SQL store would.
func Fetch(q *db.Query, rows []db.Row, src Source) ([]db.Row, error) {
	matched, err := filterRows(q, rows, src)
	if err != nil {
		return nil, err
	}

	if len(q.Order) > 0 {
		slices.SortStableFunc(matched, func(a, b db.Row) int {
			for _, o := range q.Order {
				c := compare(a[o.Column], b[o.Column])
				if o.Desc {
					c = -c
				}
				if c != 0 {
					return c
				}
			}
			return 0
		})
	}

	return window(matched, q.Offset, q.Limit), nil
}

func window(rows []db.Row, offset, limit int) []db.Row {
	if offset >= len(rows) {
		return []db.Row{}
	}
	end := len(rows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return rows[offset:end]
}

func filterRows(q *db.Query, rows []db.Row, src Source) ([]db.Row, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if q.Filter.IsMatchAll() {
		return slices.Clone(rows), nil
	}

	m := newMatcher(src)
	out := make([]db.Row, 0, len(rows))
	for _, row := range rows {
		ok, err := m.matches(q, row)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

// matcher evaluates predicates for one query. Related tables are indexed on first use.
// Not safe for concurrent use.
type matcher struct {
	src    Source
	fold   cases.Caser
	byID   map[string]map[string]db.Row   // table -> id -> row
	byLink map[string]map[string][]string // join table -> owner id -> target ids
}

func newMatcher(src Source) *matcher {
	if src == nil {
		src = Tables{}
	}
	return &matcher{
		src:    src,
		fold:   cases.Fold(),
		byID:   make(map[string]map[string]db.Row),
		byLink: make(map[string]map[string][]string),
	}
}

func (m *matcher) matches(q *db.Query, row db.Row) (bool, error) {
	var evalErr error
	ok := q.Filter.Matches(func(p predicate.Predicate) bool {
		if evalErr != nil {
			return false
		}
		hit, err := m.holds(p, row)
		if err != nil {
			evalErr = err
			return false
		}
		return hit
	})
	return ok, evalErr
}

func (m *matcher) holds(p predicate.Predicate, row db.Row) (bool, error) {
	if g := p.Guard(); g != "" {
		hidden, err := row.Bool(g)
		if err != nil {
			return false, err
		}
		if hidden {
			return false, nil
		}
	}

	rel := p.Via()
	if rel == nil {
		return m.compare(p, row)
	}

	related, err := m.related(rel, row)
	if err != nil {
		return false, err
	}
	for _, r := range related {
		hit, err := m.compare(p, r)
		if err != nil {
			return false, err
		}
		if hit {
			return true, nil
		}
	}
	return false, nil
}

func (m *matcher) compare(p predicate.Predicate, row db.Row) (bool, error) {
	switch p.Op() {
	case predicate.OpEqual:
		if want, ok := p.Value().(bool); ok {
			got, err := row.Bool(p.Column())
			if err != nil {
				return false, err
			}
			return got == want, nil
		}
		return row.String(p.Column()) == p.Value(), nil

	case predicate.OpContainsFold:
		needle, _ := p.Value().(string)
		return strings.Contains(m.fold.String(row.String(p.Column())), m.fold.String(needle)), nil

	default:
		return false, fmt.Errorf("unsupported op %s", p.Op())
	}
}

func (m *matcher) related(rel *field.Relation, row db.Row) ([]db.Row, error) {
	targets, err := m.index(rel.Target)
	if err != nil {
		return nil, err
	}

	if !rel.ToMany() {
		r, ok := targets[row.String(rel.LocalKey)]
		if !ok {
			return nil, nil
		}
		return []db.Row{r}, nil
	}

	links, err := m.links(rel)
	if err != nil {
		return nil, err
	}
	ids := links[row.String(field.IDColumn)]
	out := make([]db.Row, 0, len(ids))
	for _, id := range ids {
		if r, ok := targets[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *matcher) index(table string) (map[string]db.Row, error) {
	if idx, ok := m.byID[table]; ok {
		return idx, nil
	}
	rows, err := m.src.Rows(table)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", table, err)
	}
	idx := make(map[string]db.Row, len(rows))
	for _, r := range rows {
		idx[r.String(field.IDColumn)] = r
	}
	m.byID[table] = idx
	return idx, nil
}

func (m *matcher) links(rel *field.Relation) (map[string][]string, error) {
	if idx, ok := m.byLink[rel.JoinTable]; ok {
		return idx, nil
	}
	rows, err := m.src.Rows(rel.JoinTable)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", rel.JoinTable, err)
	}
	idx := make(map[string][]string)
	for _, r := range rows {
		owner := r.String(rel.JoinOwner)
		idx[owner] = append(idx[owner], r.String(rel.JoinTarget))
	}
	m.byLink[rel.JoinTable] = idx
	return idx, nil
}

// compare orders two column values. Missing values sort first.
func compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case int64:
		if bv, ok := b.(int64); ok {
			return cmp.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			return cmp.Compare(boolRank(av), boolRank(bv))
		}
	}

	// Mixed or textual values compare by their text form.
	return strings.Compare(db.Row{"v": a}.String("v"), db.Row{"v": b}.String("v"))
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
