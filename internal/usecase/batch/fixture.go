package batch

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/knowhub/internal/db"
)

// Fixture is a set of rows keyed by table name.
type Fixture map[string][]db.Row

// Decode reads a YAML fixture:
//
//	users:
//	  - id: 6f1c2a9e-...
//	    username: alice
//	question_tags:
//	  - question_id: q1
//	    tag_id: t1
func Decode(r io.Reader) (Fixture, error) {
	var f Fixture
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Fixture{}, nil
		}
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	for _, rows := range f {
		for _, row := range rows {
			parseTimes(row)
		}
	}
	return f, nil
}

// parseTimes converts RFC 3339 strings in *_at columns to time.Time.
// YAML timestamps decode into interface values as plain strings.
func parseTimes(row db.Row) {
	for col, v := range row {
		s, ok := v.(string)
		if !ok || !strings.HasSuffix(col, "_at") {
			continue
		}
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			row[col] = t.UTC()
		}
	}
}

// Len returns the number of rows across all tables.
func (f Fixture) Len() int {
	n := 0
	for _, rows := range f {
		n += len(rows)
	}
	return n
}
