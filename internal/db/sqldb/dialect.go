package sqldb

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/knowhub/internal/db"
)

// Dialect captures the differences between the supported SQL engines.
type Dialect struct {
	name   string
	driver string
	// numbered placeholders ($1) instead of ?
	numbered bool
	// timestamps stored as text in db.TimeLayout
	textTime bool
	// booleans stored as 0/1 integers
	intBool bool
	// OFFSET requires a LIMIT clause
	offsetNeedsLimit bool
	// NULL sorts above every value unless told otherwise
	nullsHigh bool
}

// Supported dialects.
var (
	Postgres = Dialect{name: "postgres", driver: "postgres", numbered: true, nullsHigh: true}
	SQLite   = Dialect{name: "sqlite", driver: "sqlite3", textTime: true, intBool: true, offsetNeedsLimit: true}
)

// DialectFor resolves a configured driver name.
func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "postgres", "postgresql", "pq":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported sql dialect %q", name)
	}
}

// Name returns the dialect name.
func (d Dialect) Name() string { return d.name }

// args collects bind arguments and renders their placeholders.
type args struct {
	d      Dialect
	values []any
}

func (a *args) add(v any) string {
	a.values = append(a.values, a.d.bind(v))
	if a.d.numbered {
		return "$" + strconv.Itoa(len(a.values))
	}
	return "?"
}

func (d Dialect) bind(v any) any {
	switch v := v.(type) {
	case time.Time:
		if d.textTime {
			return v.UTC().Format(db.TimeLayout)
		}
	case bool:
		if d.intBool {
			if v {
				return int64(1)
			}
			return int64(0)
		}
	}
	return v
}

// quote renders a trusted identifier.
func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
