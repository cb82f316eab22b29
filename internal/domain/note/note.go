package note

import "time"

// Note is a piece of written knowledge attached to a project.
type Note struct {
	id        string
	projectID string
	authorID  string
	title     string
	content   string
	pinned    bool
	createdAt time.Time
	updatedAt time.Time
}

// Reconstruct creates a Note from storage without validation.
func Reconstruct(
	id, projectID, authorID, title, content string,
	pinned bool, createdAt, updatedAt time.Time,
) Note {
	return Note{
		id: id, projectID: projectID, authorID: authorID, title: title, content: content,
		pinned: pinned, createdAt: createdAt, updatedAt: updatedAt,
	}
}

// ID returns the note identifier.
func (n Note) ID() string { return n.id }

// ProjectID returns the owning project.
func (n Note) ProjectID() string { return n.projectID }

// AuthorID returns the writing user.
func (n Note) AuthorID() string { return n.authorID }

// Title returns the note title.
func (n Note) Title() string { return n.title }

// Content returns the note body.
func (n Note) Content() string { return n.content }

// Pinned reports whether the note is pinned to the project page.
func (n Note) Pinned() bool { return n.pinned }

// CreatedAt returns the creation time.
func (n Note) CreatedAt() time.Time { return n.createdAt }

// UpdatedAt returns the last modification time.
func (n Note) UpdatedAt() time.Time { return n.updatedAt }
