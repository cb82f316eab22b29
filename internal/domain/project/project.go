package project

import "time"

// Visibility controls who can see a project.
type Visibility string

// Visibility values.
const (
	Public  Visibility = "PUBLIC"
	Private Visibility = "PRIVATE"
)

// Visibilities lists every visibility value.
func Visibilities() []string { return []string{string(Public), string(Private)} }

// Project groups questions and notes inside a workspace.
type Project struct {
	id          string
	workspaceID string
	name        string
	description string
	visibility  Visibility
	archived    bool
	createdAt   time.Time
}

// Reconstruct creates a Project from storage without validation.
func Reconstruct(
	id, workspaceID, name, description string,
	visibility Visibility, archived bool, createdAt time.Time,
) Project {
	return Project{
		id: id, workspaceID: workspaceID, name: name, description: description,
		visibility: visibility, archived: archived, createdAt: createdAt,
	}
}

func (p Project) ID() string             { return p.id }
func (p Project) WorkspaceID() string    { return p.workspaceID }
func (p Project) Name() string           { return p.name }
func (p Project) Description() string    { return p.description }
func (p Project) Visibility() Visibility { return p.visibility }
func (p Project) Archived() bool         { return p.archived }
func (p Project) CreatedAt() time.Time   { return p.createdAt }
