package knowhub

import (
	"github.com/kailas-cloud/knowhub/internal/domain/answer"
	"github.com/kailas-cloud/knowhub/internal/domain/note"
	"github.com/kailas-cloud/knowhub/internal/domain/project"
	"github.com/kailas-cloud/knowhub/internal/domain/question"
	"github.com/kailas-cloud/knowhub/internal/domain/search/page"
	"github.com/kailas-cloud/knowhub/internal/domain/tag"
	"github.com/kailas-cloud/knowhub/internal/domain/user"
	"github.com/kailas-cloud/knowhub/internal/domain/workspace"
)

// Searchable entities.
type (
	User      = user.User
	Workspace = workspace.Workspace
	Project   = project.Project
	Tag       = tag.Tag
	Question  = question.Question
	Answer    = answer.Answer
	Note      = note.Note
)

// Page is one page of search results plus the total match count.
type Page[T any] = page.Page[T]

// Direction is a sort direction.
type Direction = page.Direction

// Sort directions.
const (
	Asc  = page.Asc
	Desc = page.Desc
)

// EntityInfo describes a searchable entity type.
type EntityInfo struct {
	Name   string
	Fields []FieldInfo
}

// FieldInfo describes one searchable field.
type FieldInfo struct {
	Name     string
	Kind     string
	Values   []string // allowed symbols of ENUM fields
	Sortable bool
}

// ImportSummary counts the rows an import wrote and rejected.
type ImportSummary struct {
	OK     int
	Failed int
	Errors []error
}
