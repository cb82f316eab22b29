package sqldb

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/knowhub/internal/db"
	"github.com/kailas-cloud/knowhub/internal/domain/search/field"
	"github.com/kailas-cloud/knowhub/internal/domain/search/filter"
)

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	s, err := Open(ctx, Config{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "knowhub.db"), MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(s.Close)

	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	// Migrate is idempotent.
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	return s
}

func seed(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	puts := []struct {
		table string
		row   db.Row
	}{
		{"users", db.Row{"id": "u1", "username": "alice", "email": "alice@example.com"}},
		{"users", db.Row{"id": "u2", "username": "bob", "email": "bob@example.com"}},
		{"workspaces", db.Row{"id": "w1", "name": "Eng", "owner_id": "u1"}},
		{"projects", db.Row{"id": "p1", "workspace_id": "w1", "name": "Backend"}},
		{"tags", db.Row{"id": "t1", "workspace_id": "w1", "name": "golang"}},
		{"tags", db.Row{"id": "t2", "workspace_id": "w1", "name": "rust"}},
		{"questions", db.Row{"id": "q1", "project_id": "p1", "author_id": "u1", "title": "Go channels",
			"status": "OPEN", "anonymous": false, "created_at": created}},
		{"questions", db.Row{"id": "q2", "project_id": "p1", "author_id": "u2", "title": "Rust lifetimes",
			"status": "CLOSED", "anonymous": true, "created_at": created}},
		{"questions", db.Row{"id": "q3", "project_id": "p1", "author_id": "u2", "title": "GO modules",
			"status": "OPEN", "anonymous": false, "created_at": created}},
		{"question_tags", db.Row{"question_id": "q1", "tag_id": "t1"}},
		{"question_tags", db.Row{"question_id": "q3", "tag_id": "t1"}},
		{"question_tags", db.Row{"question_id": "q3", "tag_id": "t1"}}, // duplicate link is ignored
		{"question_tags", db.Row{"question_id": "q2", "tag_id": "t2"}},
	}
	for _, p := range puts {
		if err := s.Put(ctx, p.table, p.row); err != nil {
			t.Fatalf("Put %s: %v", p.table, err)
		}
	}
}

func idsOf(rows []db.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.String("id")
	}
	return out
}

func TestStore_CountAndFetch(t *testing.T) {
	s := newSQLiteStore(t)
	seed(t, s)
	ctx := context.Background()

	tests := []struct {
		name string
		f    filter.Filter
		want []string
	}{
		{"match all", filter.MatchAll(), []string{"q1", "q2", "q3"}},
		{"partial text", filter.Combine(pred(t, field.Text("title", "title"), "go")), []string{"q1", "q3"}},
		{"boolean", filter.Combine(pred(t, field.Flag("anonymous", "anonymous"), "True")), []string{"q2"}},
		{
			"relation to-one",
			filter.Combine(pred(t, field.RelatedName("authorName", authorRel, "username", false), "bob")),
			[]string{"q2", "q3"},
		},
		{
			"relation to-many",
			filter.Combine(pred(t, field.RelatedName("tag", tagRel, "name", true), "RUS")),
			[]string{"q2"},
		},
		{
			"or across fields",
			filter.Combine(
				pred(t, field.OneOf("status", "status", "OPEN", "CLOSED"), "closed"),
				pred(t, field.RelatedName("authorName", authorRel, "username", false), "alice"),
			),
			[]string{"q1", "q2"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := db.From("questions").Where(tc.f).OrderBy("id", false).MustBuild()

			n, err := s.Count(ctx, q)
			if err != nil {
				t.Fatalf("Count: %v", err)
			}
			if n != len(tc.want) {
				t.Errorf("Count = %d, want %d", n, len(tc.want))
			}

			rows, err := s.Fetch(ctx, q)
			if err != nil {
				t.Fatalf("Fetch: %v", err)
			}
			got := idsOf(rows)
			if len(got) != len(tc.want) {
				t.Fatalf("Fetch = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("Fetch = %v, want %v", got, tc.want)
					break
				}
			}
		})
	}
}

const upperID = "6F1C2A9E-0B4D-4C1E-9A57-3F0D8E2B7C11"

func TestStore_MatchingRules(t *testing.T) {
	s := newSQLiteStore(t)
	seed(t, s)
	ctx := context.Background()

	for _, p := range []struct {
		table string
		row   db.Row
	}{
		{"users", db.Row{"id": upperID, "username": "carol", "email": "carol@example.com"}},
		{"questions", db.Row{"id": "q4", "project_id": "p1", "author_id": "u1", "title": "École et café",
			"status": "OPEN", "anonymous": false}},
		{"questions", db.Row{"id": "q5", "project_id": "p1", "author_id": upperID, "title": "Zig",
			"status": "OPEN", "anonymous": false}},
	} {
		if err := s.Put(ctx, p.table, p.row); err != nil {
			t.Fatalf("Put %s: %v", p.table, err)
		}
	}

	projectRel := field.Relation{Target: "projects", LocalKey: "project_id"}
	author := field.RelatedID("author", authorRel).Unless("anonymous")
	authorName := field.RelatedName("authorName", authorRel, "username", false).Unless("anonymous")

	tests := []struct {
		name string
		f    filter.Filter
		want []string
	}{
		{"non-ascii lower", filter.Combine(pred(t, field.Text("title", "title"), "école")), []string{"q4"}},
		{"non-ascii upper", filter.Combine(pred(t, field.Text("title", "title"), "ÉCOLE")), []string{"q4"}},
		{"non-ascii inner", filter.Combine(pred(t, field.Text("title", "title"), "CAFÉ")), []string{"q4"}},
		{"relation id plain string", filter.Combine(pred(t, field.RelatedID("project", projectRel), "p1")),
			[]string{"q1", "q2", "q3", "q4", "q5"}},
		{"relation id exact case", filter.Combine(pred(t, author, upperID)), []string{"q5"}},
		{"relation id other case", filter.Combine(pred(t, author, strings.ToLower(upperID))), nil},
		{"guard hides anonymous by id", filter.Combine(pred(t, author, "u2")), []string{"q3"}},
		{"guard hides anonymous by name", filter.Combine(pred(t, authorName, "bob")), []string{"q3"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := db.From("questions").Where(tc.f).OrderBy("id", false).MustBuild()

			n, err := s.Count(ctx, q)
			if err != nil {
				t.Fatalf("Count: %v", err)
			}
			rows, err := s.Fetch(ctx, q)
			if err != nil {
				t.Fatalf("Fetch: %v", err)
			}
			got := idsOf(rows)
			if n != len(tc.want) || !slices.Equal(got, tc.want) {
				t.Errorf("Count = %d, Fetch = %v, want %v", n, got, tc.want)
			}
		})
	}
}

func TestStore_PagesAreDisjointAndTotalStable(t *testing.T) {
	s := newSQLiteStore(t)
	seed(t, s)
	ctx := context.Background()

	seen := map[string]bool{}
	for page := 0; page < 2; page++ {
		q := db.From("questions").OrderBy("status", false).OrderBy("id", false).Window(page*2, 2).MustBuild()

		n, err := s.Count(ctx, q)
		if err != nil {
			t.Fatalf("Count: %v", err)
		}
		if n != 3 {
			t.Errorf("page %d: total %d, want 3", page, n)
		}

		rows, err := s.Fetch(ctx, q)
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		for _, id := range idsOf(rows) {
			if seen[id] {
				t.Errorf("%s repeated", id)
			}
			seen[id] = true
		}
	}
	if len(seen) != 3 {
		t.Errorf("pages cover %d rows, want 3", len(seen))
	}
}

func TestStore_RowValues(t *testing.T) {
	s := newSQLiteStore(t)
	seed(t, s)

	rows, err := s.Fetch(context.Background(), db.From("questions").OrderBy("id", false).Window(0, 1).MustBuild())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	r := rows[0]
	if anon, err := r.Bool("anonymous"); err != nil || anon {
		t.Errorf("anonymous = %v, %v", anon, err)
	}
	if ts, err := r.Time("created_at"); err != nil || ts.Year() != 2024 {
		t.Errorf("created_at = %v, %v", ts, err)
	}
}

func TestStore_PutUpdatesByID(t *testing.T) {
	s := newSQLiteStore(t)
	seed(t, s)
	ctx := context.Background()

	if err := s.Put(ctx, "tags", db.Row{"id": "t1", "workspace_id": "w1", "name": "go"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	rows, err := s.Fetch(ctx, db.From("tags").OrderBy("id", false).MustBuild())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(rows) != 2 || rows[0].String("name") != "go" {
		t.Errorf("unexpected tags after upsert: %v", rows)
	}
}

func TestStore_UnknownTable(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	if _, err := s.Count(ctx, db.From("secrets").MustBuild()); !errors.Is(err, db.ErrUnknownTable) {
		t.Errorf("Count: expected ErrUnknownTable, got %v", err)
	}
	if err := s.Put(ctx, "secrets", db.Row{"id": "x"}); !errors.Is(err, db.ErrUnknownTable) {
		t.Errorf("Put: expected ErrUnknownTable, got %v", err)
	}
}

func TestStore_PingAndWait(t *testing.T) {
	s := newSQLiteStore(t)
	if err := s.WaitForReady(context.Background(), time.Second); err != nil {
		t.Fatalf("WaitForReady: %v", err)
	}
}

func TestOpen_Invalid(t *testing.T) {
	if _, err := Open(context.Background(), Config{Driver: "oracle", DSN: "x"}); err == nil {
		t.Error("expected error for unknown driver")
	}
	if _, err := Open(context.Background(), Config{Driver: "sqlite"}); err == nil {
		t.Error("expected error for empty dsn")
	}
}
