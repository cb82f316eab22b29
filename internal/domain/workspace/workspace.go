package workspace

import "time"

// Workspace is the top-level container of projects, tags and members.
type Workspace struct {
	id          string
	name        string
	description string
	ownerID     string
	createdAt   time.Time
}

// Reconstruct creates a Workspace from storage without validation.
func Reconstruct(id, name, description, ownerID string, createdAt time.Time) Workspace {
	return Workspace{id: id, name: name, description: description, ownerID: ownerID, createdAt: createdAt}
}

// ID returns the workspace identifier.
func (w Workspace) ID() string { return w.id }

// Name returns the workspace name.
func (w Workspace) Name() string { return w.name }

// Description returns the free-text description.
func (w Workspace) Description() string { return w.description }

// OwnerID returns the owning user, empty when unowned.
func (w Workspace) OwnerID() string { return w.ownerID }

// CreatedAt returns the creation time.
func (w Workspace) CreatedAt() time.Time { return w.createdAt }
