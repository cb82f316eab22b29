// Package knowhub embeds the knowhub search engine in a Go program.
//
// The client opens the same stores the knowhub server uses (PostgreSQL,
// SQLite, Redis or Valkey) and searches them with key=value terms joined
// by '#'. Terms on different fields are ORed together.
//
// # Untyped search by entity name
//
//	client, _ := knowhub.New(ctx, knowhub.WithSQLite("knowhub.db"))
//	res, _ := client.Entity("questions").Terms("title=go#status=open").Do(ctx)
//
// # Typed search
//
//	res, _ := knowhub.Questions(client).
//	    Where("tag", "golang").
//	    Page(0, 20).
//	    SortBy("title", knowhub.Desc).
//	    Do(ctx)
//	for _, q := range res.Items {
//	    fmt.Println(q.Title())
//	}
package knowhub
