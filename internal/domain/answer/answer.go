package answer

import "time"

// Answer is a reply to a question.
type Answer struct {
	id         string
	questionID string
	authorID   string
	body       string
	accepted   bool
	createdAt  time.Time
}

// Reconstruct creates an Answer from storage without validation.
func Reconstruct(id, questionID, authorID, body string, accepted bool, createdAt time.Time) Answer {
	return Answer{
		id: id, questionID: questionID, authorID: authorID,
		body: body, accepted: accepted, createdAt: createdAt,
	}
}

func (a Answer) ID() string           { return a.id }
func (a Answer) QuestionID() string   { return a.questionID }
func (a Answer) AuthorID() string     { return a.authorID }
func (a Answer) Body() string         { return a.body }
func (a Answer) Accepted() bool       { return a.accepted }
func (a Answer) CreatedAt() time.Time { return a.createdAt }
