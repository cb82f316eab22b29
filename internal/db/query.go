package db

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/knowhub/internal/domain/search/filter"
)

// TimeLayout is the fixed-width text form of timestamps in stores without a
// native time type. It sorts lexicographically in time order for UTC values.
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Query is a filtered, ordered, paged read of one table.
type Query struct {
	Table  string
	Filter filter.Filter
	Order  []Order
	Offset int
	Limit  int // 0 means unlimited
}

// Order is one ORDER BY key.
type Order struct {
	Column string
	Desc   bool
}

// Row is one stored record keyed by column name.
// Values are whatever the driver returns: strings, bools, integers, times or bytes.
type Row map[string]any

// Key identifies the row within its table: the id column, or for link rows
// the values of all columns in column-name order joined by ":".
func (r Row) Key() string {
	if _, ok := r["id"]; ok {
		return r.String("id")
	}
	cols := make([]string, 0, len(r))
	for c := range r {
		cols = append(cols, c)
	}
	slices.Sort(cols)
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = r.String(c)
	}
	return strings.Join(parts, ":")
}

// String returns the column rendered as text, empty when absent.
func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case time.Time:
		return v.UTC().Format(TimeLayout)
	default:
		return fmt.Sprint(v)
	}
}

// Bool returns the column as a boolean. Integers are true when non-zero.
func (r Row) Bool(col string) (bool, error) {
	switch v := r[col].(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case int64:
		return v != 0, nil
	case int:
		return v != 0, nil
	case string:
		return strconv.ParseBool(v)
	case []byte:
		return strconv.ParseBool(string(v))
	default:
		return false, fmt.Errorf("column %s: cannot read %T as bool", col, v)
	}
}

// Time returns the column as a UTC time. Zero when absent.
func (r Row) Time(col string) (time.Time, error) {
	switch v := r[col].(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return v.UTC(), nil
	case string:
		return parseTime(col, v)
	case []byte:
		return parseTime(col, string(v))
	case int64:
		return time.Unix(v, 0).UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("column %s: cannot read %T as time", col, v)
	}
}

func parseTime(col, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("column %s: %w", col, err)
	}
	return t.UTC(), nil
}
