package chi

import (
	"time"

	"github.com/kailas-cloud/knowhub/internal/domain/answer"
	"github.com/kailas-cloud/knowhub/internal/domain/note"
	"github.com/kailas-cloud/knowhub/internal/domain/project"
	"github.com/kailas-cloud/knowhub/internal/domain/question"
	"github.com/kailas-cloud/knowhub/internal/domain/search/field"
	"github.com/kailas-cloud/knowhub/internal/domain/search/page"
	"github.com/kailas-cloud/knowhub/internal/domain/tag"
	"github.com/kailas-cloud/knowhub/internal/domain/user"
	"github.com/kailas-cloud/knowhub/internal/domain/workspace"
)

// ErrorCode is the machine-readable error code of an ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest    ErrorCode = "bad_request"
	ErrorCodeUnauthorized  ErrorCode = "unauthorized"
	ErrorCodeUnknownField  ErrorCode = "unknown_field"
	ErrorCodeInvalidValue  ErrorCode = "invalid_value"
	ErrorCodeUnknownEntity ErrorCode = "unknown_entity"
	ErrorCodeInternalError ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Value   string    `json:"value,omitempty"`
}

// PageResponse is one page of search results.
type PageResponse struct {
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	TotalCount int   `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
	Items      []any `json:"items"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// EntityListResponse is the body of GET /api/v1/entities.
type EntityListResponse struct {
	Items []EntityResponse `json:"items"`
}

// EntityResponse describes one searchable entity type.
type EntityResponse struct {
	Name   string          `json:"name"`
	Fields []FieldResponse `json:"fields"`
}

// FieldResponse describes one searchable field.
type FieldResponse struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Values   []string `json:"values,omitempty"`
	Sortable bool     `json:"sortable"`
}

// UserDTO is the wire form of a user.
type UserDTO struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"displayName,omitempty"`
	Role        string    `json:"role,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

// WorkspaceDTO is the wire form of a workspace.
type WorkspaceDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     string    `json:"ownerId,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

// ProjectDTO is the wire form of a project.
type ProjectDTO struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspaceId,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Visibility  string    `json:"visibility,omitempty"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

// TagDTO is the wire form of a tag.
type TagDTO struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspaceId,omitempty"`
	Name        string `json:"name"`
}

// QuestionDTO is the wire form of a question. Anonymous questions hide their author.
type QuestionDTO struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId,omitempty"`
	AuthorID  string    `json:"authorId,omitempty"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Status    string    `json:"status,omitempty"`
	Anonymous bool      `json:"anonymous"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// AnswerDTO is the wire form of an answer.
type AnswerDTO struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"questionId,omitempty"`
	AuthorID   string    `json:"authorId,omitempty"`
	Body       string    `json:"body"`
	Accepted   bool      `json:"accepted"`
	CreatedAt  time.Time `json:"createdAt,omitzero"`
}

// NoteDTO is the wire form of a note.
type NoteDTO struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId,omitempty"`
	AuthorID  string    `json:"authorId,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

func PageToResponse(p page.Page[any]) PageResponse {
	items := make([]any, len(p.Items))
	for i, item := range p.Items {
		items[i] = EntityToDTO(item)
	}
	return PageResponse{
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages(),
		Items:      items,
	}
}

// EntityToDTO converts a domain entity to its wire form. Unknown types pass through.
func EntityToDTO(v any) any {
	switch e := v.(type) {
	case user.User:
		return UserDTO{
			ID: e.ID(), Username: e.Username(), Email: e.Email(), DisplayName: e.DisplayName(),
			Role: string(e.Role()), Active: e.Active(), CreatedAt: e.CreatedAt(),
		}
	case workspace.Workspace:
		return WorkspaceDTO{
			ID: e.ID(), Name: e.Name(), Description: e.Description(), OwnerID: e.OwnerID(),
			CreatedAt: e.CreatedAt(),
		}
	case project.Project:
		return ProjectDTO{
			ID: e.ID(), WorkspaceID: e.WorkspaceID(), Name: e.Name(), Description: e.Description(),
			Visibility: string(e.Visibility()), Archived: e.Archived(), CreatedAt: e.CreatedAt(),
		}
	case tag.Tag:
		return TagDTO{ID: e.ID(), WorkspaceID: e.WorkspaceID(), Name: e.Name()}
	case question.Question:
		dto := QuestionDTO{
			ID: e.ID(), ProjectID: e.ProjectID(), AuthorID: e.AuthorID(), Title: e.Title(), Body: e.Body(),
			Status: string(e.Status()), Anonymous: e.Anonymous(), CreatedAt: e.CreatedAt(), UpdatedAt: e.UpdatedAt(),
		}
		if e.Anonymous() {
			dto.AuthorID = ""
		}
		return dto
	case answer.Answer:
		return AnswerDTO{
			ID: e.ID(), QuestionID: e.QuestionID(), AuthorID: e.AuthorID(), Body: e.Body(),
			Accepted: e.Accepted(), CreatedAt: e.CreatedAt(),
		}
	case note.Note:
		return NoteDTO{
			ID: e.ID(), ProjectID: e.ProjectID(), AuthorID: e.AuthorID(), Title: e.Title(), Content: e.Content(),
			Pinned: e.Pinned(), CreatedAt: e.CreatedAt(), UpdatedAt: e.UpdatedAt(),
		}
	default:
		return v
	}
}

func registryToResponse(reg *field.Registry) EntityResponse {
	descriptors := reg.Fields()
	fields := make([]FieldResponse, len(descriptors))
	for i, d := range descriptors {
		_, sortable := d.SortColumn()
		fields[i] = FieldResponse{
			Name:     d.Name(),
			Kind:     string(d.Kind()),
			Values:   d.Symbols(),
			Sortable: sortable,
		}
	}
	return EntityResponse{Name: reg.Entity(), Fields: fields}
}
