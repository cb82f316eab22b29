package catalog

import "github.com/kailas-cloud/knowhub/internal/domain/search/field"

// Join paths shared by several entity tables.
var (
	authorRel    = field.Relation{Target: "users", LocalKey: "author_id"}
	ownerRel     = field.Relation{Target: "users", LocalKey: "owner_id"}
	workspaceRel = field.Relation{Target: "workspaces", LocalKey: "workspace_id"}
	projectRel   = field.Relation{Target: "projects", LocalKey: "project_id"}
	questionRel  = field.Relation{Target: "questions", LocalKey: "question_id"}

	questionTagsRel = field.Relation{
		Target: "tags", JoinTable: "question_tags", JoinOwner: "question_id", JoinTarget: "tag_id",
	}
	noteTagsRel = field.Relation{
		Target: "tags", JoinTable: "note_tags", JoinOwner: "note_id", JoinTarget: "tag_id",
	}
	memberOfRel = field.Relation{
		Target: "workspaces", JoinTable: "workspace_members", JoinOwner: "user_id", JoinTarget: "workspace_id",
	}
)
