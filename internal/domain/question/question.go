package question

import "time"

// Status is the lifecycle state of a question.
type Status string

// Question statuses.
const (
	Open     Status = "OPEN"
	Answered Status = "ANSWERED"
	Closed   Status = "CLOSED"
)

// Statuses lists every status in lifecycle order.
func Statuses() []string { return []string{string(Open), string(Answered), string(Closed)} }

// Question is a question asked in a project.
type Question struct {
	id        string
	projectID string
	authorID  string
	title     string
	body      string
	status    Status
	anonymous bool
	createdAt time.Time
	updatedAt time.Time
}

// Reconstruct creates a Question from storage without validation.
func Reconstruct(
	id, projectID, authorID, title, body string,
	status Status, anonymous bool, createdAt, updatedAt time.Time,
) Question {
	return Question{
		id: id, projectID: projectID, authorID: authorID, title: title, body: body,
		status: status, anonymous: anonymous, createdAt: createdAt, updatedAt: updatedAt,
	}
}

// ID returns the question identifier.
func (q Question) ID() string { return q.id }

// ProjectID returns the project the question belongs to.
func (q Question) ProjectID() string { return q.projectID }

// AuthorID returns the asking user. Hidden from readers when Anonymous is set.
func (q Question) AuthorID() string { return q.authorID }

// Title returns the question title.
func (q Question) Title() string { return q.title }

// Body returns the question text.
func (q Question) Body() string { return q.body }

// Status returns the lifecycle state.
func (q Question) Status() Status { return q.status }

// Anonymous reports whether the author is hidden.
func (q Question) Anonymous() bool { return q.anonymous }

// CreatedAt returns the creation time.
func (q Question) CreatedAt() time.Time { return q.createdAt }

// UpdatedAt returns the last modification time.
func (q Question) UpdatedAt() time.Time { return q.updatedAt }
