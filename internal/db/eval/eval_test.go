package eval

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/knowhub/internal/db"
	"github.com/kailas-cloud/knowhub/internal/domain/search/field"
	"github.com/kailas-cloud/knowhub/internal/domain/search/filter"
	"github.com/kailas-cloud/knowhub/internal/domain/search/predicate"
	"github.com/kailas-cloud/knowhub/internal/domain/search/term"
)

var (
	authorRel = field.Relation{Target: "users", LocalKey: "author_id"}
	tagRel    = field.Relation{
		Target: "tags", JoinTable: "question_tags", JoinOwner: "question_id", JoinTarget: "tag_id",
	}
)

func fixture() ([]db.Row, Tables) {
	questions := []db.Row{
		{"id": "q1", "title": "Go channels", "status": "OPEN", "anonymous": "false", "author_id": "u1"},
		{"id": "q2", "title": "Rust lifetimes", "status": "CLOSED", "anonymous": "true", "author_id": "u2"},
		{"id": "q3", "title": "GO modules", "status": "OPEN", "anonymous": int64(0), "author_id": "u2"},
		{"id": "q4", "title": "Straße names", "status": "ANSWERED", "anonymous": true, "author_id": "u9"},
	}
	src := Tables{
		"users": {
			{"id": "u1", "username": "alice"},
			{"id": "u2", "username": "bob"},
		},
		"tags": {
			{"id": "t1", "name": "golang"},
			{"id": "t2", "name": "rust"},
		},
		"question_tags": {
			{"question_id": "q1", "tag_id": "t1"},
			{"question_id": "q3", "tag_id": "t1"},
			{"question_id": "q2", "tag_id": "t2"},
		},
	}
	return questions, src
}

func build(t *testing.T, d field.Descriptor, value string) predicate.Predicate {
	t.Helper()
	p, err := predicate.Build(term.Term{Field: d.Name(), Value: value}, d)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return p
}

func ids(rows []db.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.String("id")
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFetch_Predicates(t *testing.T) {
	rows, src := fixture()

	tests := []struct {
		name string
		pred predicate.Predicate
		want []string
	}{
		{"text partial is case-insensitive", build(t, field.Text("title", "title"), "go"), []string{"q1", "q3"}},
		{"text partial folds unicode", build(t, field.Text("title", "title"), "STRASSE"), []string{"q4"}},
		{"exact", build(t, field.Equal("title", "title"), "Go channels"), []string{"q1"}},
		{"exact is case-sensitive", build(t, field.Equal("title", "title"), "go channels"), nil},
		{"enum", build(t, field.OneOf("status", "status", "OPEN", "CLOSED", "ANSWERED"), "open"), []string{"q1", "q3"}},
		{"boolean across encodings", build(t, field.Flag("anonymous", "anonymous"), "TRUE"), []string{"q2", "q4"}},
		{"boolean false", build(t, field.Flag("anonymous", "anonymous"), "false"), []string{"q1", "q3"}},
		{"relation name to-one", build(t, field.RelatedName("authorName", authorRel, "username", false), "bob"), []string{"q2", "q3"}},
		{"relation name to-many partial", build(t, field.RelatedName("tag", tagRel, "name", true), "GOL"), []string{"q1", "q3"}},
		{"dangling foreign key never matches", build(t, field.RelatedName("authorName", authorRel, "username", false), "carol"), nil},
		{"relation id plain string", build(t, field.RelatedID("author", authorRel), "u2"), []string{"q2", "q3"}},
		{"guard skips anonymous by id", build(t, field.RelatedID("author", authorRel).Unless("anonymous"), "u2"), []string{"q3"}},
		{"guard skips anonymous by name", build(t, field.RelatedName("authorName", authorRel, "username", false).Unless("anonymous"), "bob"), []string{"q3"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := db.From("questions").Where(filter.Combine(tc.pred)).OrderBy("id", false).MustBuild()
			got, err := Fetch(q, rows, src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !equal(ids(got), tc.want) {
				t.Errorf("got %v, want %v", ids(got), tc.want)
			}
		})
	}
}

func TestFetch_RelationIDToMany(t *testing.T) {
	rows, src := fixture()
	src["tags"] = append(src["tags"], db.Row{"id": "6f1c1d2e-8a51-4c55-9d8c-2f0e4a3b7c10", "name": "misc"})
	src["question_tags"] = append(src["question_tags"],
		db.Row{"question_id": "q4", "tag_id": "6f1c1d2e-8a51-4c55-9d8c-2f0e4a3b7c10"})

	p := build(t, field.RelatedID("tagId", tagRel), "6F1C1D2E-8A51-4C55-9D8C-2F0E4A3B7C10")
	got, err := Fetch(db.From("questions").Where(filter.Combine(p)).MustBuild(), rows, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equal(ids(got), []string{"q4"}) {
		t.Errorf("got %v", ids(got))
	}
}

func TestFetch_OrAcrossTerms(t *testing.T) {
	rows, src := fixture()
	f := filter.Combine(
		build(t, field.OneOf("status", "status", "OPEN", "CLOSED", "ANSWERED"), "CLOSED"),
		build(t, field.RelatedName("authorName", authorRel, "username", false), "alice"),
	)
	got, err := Fetch(db.From("questions").Where(f).OrderBy("id", false).MustBuild(), rows, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equal(ids(got), []string{"q1", "q2"}) {
		t.Errorf("got %v, want [q1 q2]", ids(got))
	}
}

func TestFetch_OrderWithTiebreak(t *testing.T) {
	rows, src := fixture()
	q := db.From("questions").OrderBy("status", true).OrderBy("id", false).MustBuild()

	got, err := Fetch(q, rows, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"q1", "q3", "q2", "q4"}; !equal(ids(got), want) {
		t.Errorf("got %v, want %v", ids(got), want)
	}
}

func TestFetch_PagesAreDisjoint(t *testing.T) {
	rows, src := fixture()
	f := filter.Combine(build(t, field.Text("title", "title"), "l"))

	total, err := Count(db.From("questions").Where(f).MustBuild(), rows, src)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 matches, got %d", total)
	}

	seen := map[string]bool{}
	for pageNum := 0; pageNum < 2; pageNum++ {
		q := db.From("questions").Where(f).OrderBy("title", false).OrderBy("id", false).
			Window(pageNum*2, 2).MustBuild()
		got, err := Fetch(q, rows, src)
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		for _, id := range ids(got) {
			if seen[id] {
				t.Errorf("%s repeated across pages", id)
			}
			seen[id] = true
		}
	}
	if len(seen) != total {
		t.Errorf("pages cover %d items, want %d", len(seen), total)
	}
}

func TestFetch_WindowPastEnd(t *testing.T) {
	rows, src := fixture()
	got, err := Fetch(db.From("questions").Window(10, 5).MustBuild(), rows, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil page, got %v", got)
	}
}

type failingSource struct{ err error }

func (f failingSource) Rows(string) ([]db.Row, error) { return nil, f.err }

func TestFetch_SourceError(t *testing.T) {
	rows, _ := fixture()
	boom := errors.New("boom")
	p := build(t, field.RelatedName("authorName", authorRel, "username", false), "bob")

	_, err := Fetch(db.From("questions").Where(filter.Combine(p)).MustBuild(), rows, failingSource{boom})
	if !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
}

func TestFetch_BadBoolean(t *testing.T) {
	rows := []db.Row{{"id": "x", "archived": "maybe"}}
	p := build(t, field.Flag("archived", "archived"), "true")

	if _, err := Count(db.From("projects").Where(filter.Combine(p)).MustBuild(), rows, nil); err == nil {
		t.Fatal("expected error for unreadable boolean")
	}
}
