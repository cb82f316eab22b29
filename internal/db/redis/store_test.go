package redis

import (
	"context"
	"errors"
	"path"
	"slices"
	"strings"
	"testing"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/knowhub/internal/db"
	"github.com/kailas-cloud/knowhub/internal/domain/search/field"
	"github.com/kailas-cloud/knowhub/internal/domain/search/filter"
	"github.com/kailas-cloud/knowhub/internal/domain/search/predicate"
	"github.com/kailas-cloud/knowhub/internal/domain/search/term"
)

// --- client.go tests ---

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewStore_RequiresAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty addrs")
	}
}

// --- hash.go tests ---

func TestHSet_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "HSET"
		})).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	err := s.HSet(context.Background(), "mykey", map[string]string{"f": "v"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !isDBError(err) {
		t.Errorf("expected db.Error, got %T", err)
	}
}

func TestHGetAllMulti_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{
				"f": mock.RedisString("a"),
			})),
			mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{
				"f": mock.RedisString("b"),
			})),
		})

	s := NewStoreForTest(c)
	results, err := s.HGetAllMulti(context.Background(), []string{"k1", "k2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0]["f"] != "a" || results[1]["f"] != "b" {
		t.Errorf("unexpected results: %v", results)
	}
}

func TestHGetAllMulti_Empty(t *testing.T) {
	s := NewStoreForTest(nil) // client not called
	results, err := s.HGetAllMulti(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != nil {
		t.Errorf("expected nil, got %v", results)
	}
}

func TestScan_MultiPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	first := true
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SCAN"
		})).
		DoAndReturn(func(_ context.Context, _ rueidis.Completed) rueidis.RedisResult {
			if first {
				first = false
				return mock.Result(mock.RedisArray(
					mock.RedisInt64(42), // cursor=42 means more
					mock.RedisArray(mock.RedisString("key1")),
				))
			}
			return mock.Result(mock.RedisArray(
				mock.RedisInt64(0), // cursor=0 means done
				mock.RedisArray(mock.RedisString("key2")),
			))
		}).Times(2)

	s := NewStoreForTest(c)
	keys, err := s.Scan(context.Background(), "prefix:*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
}

func TestScan_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "SCAN" })).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if _, err := s.Scan(context.Background(), "prefix:*"); !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

// --- rows.go tests ---

func TestPut_EntityKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "HSET" && cmd[1] == "knowhub:questions:q1" && slices.Contains(cmd, "true")
		})).
		Return(mock.Result(mock.RedisInt64(3)))

	s := NewStoreForTest(c)
	err := s.Put(context.Background(), "questions", db.Row{"id": "q1", "title": "Go", "anonymous": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPut_LinkKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "HSET" && cmd[1] == "knowhub:question_tags:q1:t1"
		})).
		Return(mock.Result(mock.RedisInt64(2)))

	s := NewStoreForTest(c)
	err := s.Put(context.Background(), "question_tags", db.Row{"tag_id": "t1", "question_id": "q1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPut_Invalid(t *testing.T) {
	s := NewStoreForTest(nil)
	if err := s.Put(context.Background(), "secrets", db.Row{"id": "x"}); !errors.Is(err, db.ErrUnknownTable) {
		t.Errorf("expected ErrUnknownTable, got %v", err)
	}
	if err := s.Put(context.Background(), "tags", db.Row{}); !errors.Is(err, db.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

// fakeData serves SCAN and HGETALL from an in-memory keyspace.
func fakeData(t *testing.T, data map[string]map[string]string) rueidis.Client {
	t.Helper()
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "SCAN" })).
		DoAndReturn(func(_ context.Context, cmd rueidis.Completed) rueidis.RedisResult {
			args := cmd.Commands()
			pattern := args[slices.Index(args, "MATCH")+1]
			var keys []rueidis.RedisMessage
			for k := range data {
				if ok, _ := path.Match(pattern, k); ok {
					keys = append(keys, mock.RedisString(k))
				}
			}
			return mock.Result(mock.RedisArray(mock.RedisInt64(0), mock.RedisArray(keys...)))
		}).AnyTimes()

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmds ...rueidis.Completed) []rueidis.RedisResult {
			out := make([]rueidis.RedisResult, len(cmds))
			for i, cmd := range cmds {
				fields := map[string]rueidis.RedisMessage{}
				for k, v := range data[cmd.Commands()[1]] {
					fields[k] = mock.RedisString(v)
				}
				out[i] = mock.Result(mock.RedisMap(fields))
			}
			return out
		}).AnyTimes()

	return c
}

func sampleData() map[string]map[string]string {
	return map[string]map[string]string{
		"knowhub:questions:q1":         {"id": "q1", "title": "Go channels", "author_id": "u1"},
		"knowhub:questions:q2":         {"id": "q2", "title": "Rust lifetimes", "author_id": "u2"},
		"knowhub:questions:q3":         {"id": "q3", "title": "GO modules", "author_id": "u2"},
		"knowhub:users:u1":             {"id": "u1", "username": "alice"},
		"knowhub:users:u2":             {"id": "u2", "username": "bob"},
		"knowhub:tags:t1":              {"id": "t1", "name": "golang"},
		"knowhub:question_tags:q1:t1":  {"question_id": "q1", "tag_id": "t1"},
		"knowhub:question_tags:q2:t1":  {"question_id": "q2", "tag_id": "t1"},
		"knowhub:questions_archive:q9": {"id": "q9", "title": "Go stale"},
	}
}

func predFor(t *testing.T, d field.Descriptor, value string) predicate.Predicate {
	t.Helper()
	p, err := predicate.Build(term.Term{Field: d.Name(), Value: value}, d)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return p
}

func TestFetch_FiltersInProcess(t *testing.T) {
	s := NewStoreForTest(fakeData(t, sampleData()))
	ctx := context.Background()

	f := filter.Combine(predFor(t, field.Text("title", "title"), "go"))
	q := db.From("questions").Where(f).OrderBy("id", true).MustBuild()

	n, err := s.Count(ctx, q)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}

	rows, err := s.Fetch(ctx, q)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(rows) != 2 || rows[0].String("id") != "q3" || rows[1].String("id") != "q1" {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestFetch_Relations(t *testing.T) {
	s := NewStoreForTest(fakeData(t, sampleData()))

	authorRel := field.Relation{Target: "users", LocalKey: "author_id"}
	tagRel := field.Relation{Target: "tags", JoinTable: "question_tags", JoinOwner: "question_id", JoinTarget: "tag_id"}

	f := filter.Combine(
		predFor(t, field.RelatedName("authorName", authorRel, "username", false), "alice"),
		predFor(t, field.RelatedName("tag", tagRel, "name", true), "lang"),
	)
	rows, err := s.Fetch(context.Background(), db.From("questions").Where(f).OrderBy("id", false).MustBuild())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(rows) != 2 || rows[0].String("id") != "q1" || rows[1].String("id") != "q2" {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestFetch_MatchingRules(t *testing.T) {
	const upperID = "6F1C2A9E-0B4D-4C1E-9A57-3F0D8E2B7C11"
	data := map[string]map[string]string{
		"knowhub:projects:p1": {"id": "p1", "name": "Backend"},
		"knowhub:users:u1":    {"id": "u1", "username": "alice"},
		"knowhub:users:u2":    {"id": "u2", "username": "bob"},

		"knowhub:users:" + upperID: {"id": upperID, "username": "carol"},

		"knowhub:questions:q1": {"id": "q1", "project_id": "p1", "author_id": "u1", "title": "Go channels",
			"anonymous": "false"},
		"knowhub:questions:q2": {"id": "q2", "project_id": "p1", "author_id": "u2", "title": "Rust lifetimes",
			"anonymous": "true"},
		"knowhub:questions:q3": {"id": "q3", "project_id": "p1", "author_id": "u2", "title": "GO modules",
			"anonymous": "false"},
		"knowhub:questions:q4": {"id": "q4", "project_id": "p1", "author_id": "u1", "title": "École et café",
			"anonymous": "false"},
		"knowhub:questions:q5": {"id": "q5", "project_id": "p1", "author_id": upperID, "title": "Zig",
			"anonymous": "false"},
	}
	s := NewStoreForTest(fakeData(t, data))
	ctx := context.Background()

	authorRel := field.Relation{Target: "users", LocalKey: "author_id"}
	projectRel := field.Relation{Target: "projects", LocalKey: "project_id"}
	author := field.RelatedID("author", authorRel).Unless("anonymous")
	authorName := field.RelatedName("authorName", authorRel, "username", false).Unless("anonymous")

	tests := []struct {
		name string
		p    predicate.Predicate
		want []string
	}{
		{"non-ascii lower", predFor(t, field.Text("title", "title"), "école"), []string{"q4"}},
		{"non-ascii upper", predFor(t, field.Text("title", "title"), "ÉCOLE"), []string{"q4"}},
		{"non-ascii inner", predFor(t, field.Text("title", "title"), "CAFÉ"), []string{"q4"}},
		{"relation id plain string", predFor(t, field.RelatedID("project", projectRel), "p1"),
			[]string{"q1", "q2", "q3", "q4", "q5"}},
		{"relation id exact case", predFor(t, author, upperID), []string{"q5"}},
		{"relation id other case", predFor(t, author, strings.ToLower(upperID)), nil},
		{"guard hides anonymous by id", predFor(t, author, "u2"), []string{"q3"}},
		{"guard hides anonymous by name", predFor(t, authorName, "bob"), []string{"q3"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := db.From("questions").Where(filter.Combine(tc.p)).OrderBy("id", false).MustBuild()

			n, err := s.Count(ctx, q)
			if err != nil {
				t.Fatalf("Count: %v", err)
			}
			rows, err := s.Fetch(ctx, q)
			if err != nil {
				t.Fatalf("Fetch: %v", err)
			}
			got := make([]string, len(rows))
			for i, r := range rows {
				got[i] = r.String("id")
			}
			if n != len(tc.want) || !slices.Equal(got, tc.want) {
				t.Errorf("Count = %d, Fetch = %v, want %v", n, got, tc.want)
			}
		})
	}
}

func TestFetch_UnknownTable(t *testing.T) {
	s := NewStoreForTest(nil)
	if _, err := s.Fetch(context.Background(), db.From("secrets").MustBuild()); !errors.Is(err, db.ErrUnknownTable) {
		t.Fatalf("expected ErrUnknownTable, got %v", err)
	}
}

// --- helpers ---

// isDBError is a test helper for checking wrapped db.Error.
func isDBError(err error) bool {
	var dbErr *db.Error
	return errors.As(err, &dbErr)
}
