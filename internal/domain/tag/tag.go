package tag

// Tag labels questions and notes within a workspace.
type Tag struct {
	id          string
	workspaceID string
	name        string
}

// Reconstruct creates a Tag from storage without validation.
func Reconstruct(id, workspaceID, name string) Tag {
	return Tag{id: id, workspaceID: workspaceID, name: name}
}

// ID returns the tag identifier.
func (t Tag) ID() string { return t.id }

// WorkspaceID returns the owning workspace.
func (t Tag) WorkspaceID() string { return t.workspaceID }

// Name returns the tag label.
func (t Tag) Name() string { return t.name }
