package catalog

import (
	"github.com/kailas-cloud/knowhub/internal/db"
	"github.com/kailas-cloud/knowhub/internal/domain/answer"
	"github.com/kailas-cloud/knowhub/internal/domain/note"
	"github.com/kailas-cloud/knowhub/internal/domain/project"
	"github.com/kailas-cloud/knowhub/internal/domain/question"
	"github.com/kailas-cloud/knowhub/internal/domain/search/field"
	"github.com/kailas-cloud/knowhub/internal/domain/tag"
	"github.com/kailas-cloud/knowhub/internal/domain/user"
	"github.com/kailas-cloud/knowhub/internal/domain/workspace"
)

// Field registries, one per entity type. Built at init and never mutated.
var (
	Workspaces = NewEntity(field.MustRegistry("workspaces", "workspaces",
		field.Equal("id", "id"),
		field.Text("name", "name"),
		field.Text("description", "description"),
		field.RelatedID("owner", ownerRel),
		field.RelatedName("ownerName", ownerRel, "username", true),
	), mapWorkspace)

	Projects = NewEntity(field.MustRegistry("projects", "projects",
		field.Equal("id", "id"),
		field.Text("name", "name"),
		field.Text("description", "description"),
		field.OneOf("visibility", "visibility", project.Visibilities()...),
		field.Flag("archived", "archived"),
		field.RelatedID("workspace", workspaceRel),
		field.RelatedName("workspaceName", workspaceRel, "name", true),
	), mapProject)

	Questions = NewEntity(field.MustRegistry("questions", "questions",
		field.Equal("id", "id"),
		field.Text("title", "title"),
		field.Text("body", "body"),
		field.OneOf("status", "status", question.Statuses()...),
		field.Flag("anonymous", "anonymous"),
		field.RelatedID("project", projectRel),
		field.RelatedName("projectName", projectRel, "name", true),
		field.RelatedID("author", authorRel).Unless("anonymous"),
		field.RelatedName("authorName", authorRel, "username", false).Unless("anonymous"),
		field.RelatedID("tagId", questionTagsRel),
		field.RelatedName("tag", questionTagsRel, "name", false),
	), mapQuestion)

	Answers = NewEntity(field.MustRegistry("answers", "answers",
		field.Equal("id", "id"),
		field.Text("body", "body"),
		field.Flag("accepted", "accepted"),
		field.RelatedID("question", questionRel),
		field.RelatedName("questionTitle", questionRel, "title", true),
		field.RelatedID("author", authorRel),
		field.RelatedName("authorName", authorRel, "username", false),
	), mapAnswer)

	Notes = NewEntity(field.MustRegistry("notes", "notes",
		field.Equal("id", "id"),
		field.Text("title", "title"),
		field.Text("content", "content"),
		field.Flag("pinned", "pinned"),
		field.RelatedID("project", projectRel),
		field.RelatedID("author", authorRel),
		field.RelatedName("authorName", authorRel, "username", false),
		field.RelatedID("tagId", noteTagsRel),
		field.RelatedName("tag", noteTagsRel, "name", false),
	), mapNote)

	Tags = NewEntity(field.MustRegistry("tags", "tags",
		field.Equal("id", "id"),
		field.Text("name", "name"),
		field.RelatedID("workspace", workspaceRel),
	), mapTag)

	Users = NewEntity(field.MustRegistry("users", "users",
		field.Equal("id", "id"),
		field.Text("username", "username"),
		field.Equal("email", "email"),
		field.Text("displayName", "display_name"),
		field.OneOf("role", "role", user.Roles()...),
		field.Flag("active", "active"),
		field.RelatedID("workspace", memberOfRel),
		field.RelatedName("workspaceName", memberOfRel, "name", true),
	), mapUser)
)

func mapWorkspace(row db.Row) (workspace.Workspace, error) {
	r := &reader{row: row}
	w := workspace.Reconstruct(r.str("id"), r.str("name"), r.str("description"), r.str("owner_id"),
		r.time("created_at"))
	return w, r.done("workspace")
}

func mapProject(row db.Row) (project.Project, error) {
	r := &reader{row: row}
	p := project.Reconstruct(
		r.str("id"), r.str("workspace_id"), r.str("name"), r.str("description"),
		project.Visibility(r.str("visibility")), r.flag("archived"), r.time("created_at"),
	)
	return p, r.done("project")
}

func mapQuestion(row db.Row) (question.Question, error) {
	r := &reader{row: row}
	q := question.Reconstruct(
		r.str("id"), r.str("project_id"), r.str("author_id"), r.str("title"), r.str("body"),
		question.Status(r.str("status")), r.flag("anonymous"), r.time("created_at"), r.time("updated_at"),
	)
	return q, r.done("question")
}

func mapAnswer(row db.Row) (answer.Answer, error) {
	r := &reader{row: row}
	a := answer.Reconstruct(r.str("id"), r.str("question_id"), r.str("author_id"), r.str("body"),
		r.flag("accepted"), r.time("created_at"))
	return a, r.done("answer")
}

func mapNote(row db.Row) (note.Note, error) {
	r := &reader{row: row}
	n := note.Reconstruct(
		r.str("id"), r.str("project_id"), r.str("author_id"), r.str("title"), r.str("content"),
		r.flag("pinned"), r.time("created_at"), r.time("updated_at"),
	)
	return n, r.done("note")
}

func mapTag(row db.Row) (tag.Tag, error) {
	r := &reader{row: row}
	return tag.Reconstruct(r.str("id"), r.str("workspace_id"), r.str("name")), r.done("tag")
}

func mapUser(row db.Row) (user.User, error) {
	r := &reader{row: row}
	u := user.Reconstruct(
		r.str("id"), r.str("username"), r.str("email"), r.str("display_name"),
		user.Role(r.str("role")), r.flag("active"), r.time("created_at"),
	)
	return u, r.done("user")
}
