package sqldb

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/knowhub/internal/db"
	"github.com/kailas-cloud/knowhub/internal/domain/search/field"
	"github.com/kailas-cloud/knowhub/internal/domain/search/filter"
	"github.com/kailas-cloud/knowhub/internal/domain/search/predicate"
)

// Table aliases used in generated SQL.
const (
	ownerAlias   = "t"
	relatedAlias = "r"
	linkAlias    = "j"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// compileCount renders SELECT COUNT(*) for q's filter.
func (d Dialect) compileCount(q *db.Query) (string, []any, error) {
	a := &args{d: d}
	where, err := d.where(q.Filter, a)
	if err != nil {
		return "", nil, err
	}
	return "SELECT COUNT(*) FROM " + quote(q.Table) + " " + ownerAlias + where, a.values, nil
}

// compileSelect renders the filtered, ordered, windowed SELECT for q.
func (d Dialect) compileSelect(q *db.Query) (string, []any, error) {
	a := &args{d: d}
	where, err := d.where(q.Filter, a)
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.WriteString("SELECT " + ownerAlias + ".* FROM " + quote(q.Table) + " " + ownerAlias)
	b.WriteString(where)

	if len(q.Order) > 0 {
		keys := make([]string, len(q.Order))
		for i, o := range q.Order {
			keys[i] = ownerAlias + "." + quote(o.Column) + " " + d.direction(o.Desc)
		}
		b.WriteString(" ORDER BY " + strings.Join(keys, ", "))
	}

	switch {
	case q.Limit > 0:
		b.WriteString(" LIMIT " + a.add(q.Limit))
	case q.Offset > 0 && d.offsetNeedsLimit:
		b.WriteString(" LIMIT -1")
	}
	if q.Offset > 0 {
		b.WriteString(" OFFSET " + a.add(q.Offset))
	}
	return b.String(), a.values, nil
}

// direction renders a sort direction with NULL ordered as the smallest value.
func (d Dialect) direction(desc bool) string {
	switch {
	case desc && d.nullsHigh:
		return "DESC NULLS LAST"
	case desc:
		return "DESC"
	case d.nullsHigh:
		return "ASC NULLS FIRST"
	default:
		return "ASC"
	}
}

// where renders " WHERE (p1 OR p2 ...)", or nothing for match-all.
func (d Dialect) where(f filter.Filter, a *args) (string, error) {
	if f.IsMatchAll() {
		return "", nil
	}
	parts := make([]string, 0, len(f.Any()))
	for _, p := range f.Any() {
		cond, err := d.predicate(p, a)
		if err != nil {
			return "", err
		}
		parts = append(parts, cond)
	}
	return " WHERE (" + strings.Join(parts, " OR ") + ")", nil
}

func (d Dialect) predicate(p predicate.Predicate, a *args) (string, error) {
	cond, err := d.relate(p, a)
	if err != nil {
		return "", err
	}
	if g := p.Guard(); g != "" {
		return "(" + cond + " AND " + ownerAlias + "." + quote(g) + " = " + a.add(false) + ")", nil
	}
	return cond, nil
}

func (d Dialect) relate(p predicate.Predicate, a *args) (string, error) {
	rel := p.Via()
	if rel == nil {
		return d.compare(ownerAlias, p, a)
	}

	cond, err := d.compare(relatedAlias, p, a)
	if err != nil {
		return "", err
	}
	if rel.ToMany() {
		return fmt.Sprintf("EXISTS (SELECT 1 FROM %s %s JOIN %s %s ON %s.%s = %s.%s WHERE %s.%s = %s.%s AND %s)",
			quote(rel.JoinTable), linkAlias,
			quote(rel.Target), relatedAlias,
			relatedAlias, quote(field.IDColumn), linkAlias, quote(rel.JoinTarget),
			linkAlias, quote(rel.JoinOwner), ownerAlias, quote(field.IDColumn),
			cond,
		), nil
	}
	return fmt.Sprintf("EXISTS (SELECT 1 FROM %s %s WHERE %s.%s = %s.%s AND %s)",
		quote(rel.Target), relatedAlias,
		relatedAlias, quote(field.IDColumn), ownerAlias, quote(rel.LocalKey),
		cond,
	), nil
}

func (d Dialect) compare(alias string, p predicate.Predicate, a *args) (string, error) {
	col := alias + "." + quote(p.Column())
	switch p.Op() {
	case predicate.OpEqual:
		return col + " = " + a.add(p.Value()), nil
	case predicate.OpContainsFold:
		s, ok := p.Value().(string)
		if !ok {
			return "", fmt.Errorf("%w: contains needs a string, got %T", db.ErrInvalidQuery, p.Value())
		}
		return "LOWER(" + col + ") LIKE " + a.add("%"+likeEscaper.Replace(s)+"%") + ` ESCAPE '\'`, nil
	default:
		return "", fmt.Errorf("%w: unsupported op %s", db.ErrInvalidQuery, p.Op())
	}
}

// compileUpsert renders an INSERT that replaces the row with the same id.
// Rows without an id are link rows and are inserted once.
func (d Dialect) compileUpsert(table string, row db.Row) (string, []any, error) {
	if len(row) == 0 {
		return "", nil, fmt.Errorf("%w: empty row", db.ErrInvalidQuery)
	}

	cols := make([]string, 0, len(row))
	for c := range row {
		if !validIdent(c) {
			return "", nil, fmt.Errorf("%w: invalid column %q", db.ErrInvalidQuery, c)
		}
		cols = append(cols, c)
	}
	slices.Sort(cols)

	a := &args{d: d}
	quoted := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quote(c)
		marks[i] = a.add(row[c])
	}

	stmt := "INSERT INTO " + quote(table) + " (" + strings.Join(quoted, ", ") + ") VALUES (" +
		strings.Join(marks, ", ") + ")"

	if _, hasID := row[field.IDColumn]; !hasID {
		return stmt + " ON CONFLICT DO NOTHING", a.values, nil
	}

	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		if c == field.IDColumn {
			continue
		}
		sets = append(sets, quote(c)+" = excluded."+quote(c))
	}
	if len(sets) == 0 {
		return stmt + " ON CONFLICT (" + quote(field.IDColumn) + ") DO NOTHING", a.values, nil
	}
	return stmt + " ON CONFLICT (" + quote(field.IDColumn) + ") DO UPDATE SET " + strings.Join(sets, ", "),
		a.values, nil
}

func validIdent(s string) bool {
	if s == "" || len(s) > 63 {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
