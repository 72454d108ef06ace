package domain

import (
	"time"

	"github.com/google/uuid"
)

// Note is a versioned document. Every mutation first snapshots the current
// state into a NoteVersion tagged with the pre-mutation version number, then
// increments Version by exactly 1.
type Note struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteVersion is an immutable snapshot of a note as it existed at Version,
// captured immediately before the mutation that replaced it.
type NoteVersion struct {
	ID        uuid.UUID `json:"id"`
	NoteID    uuid.UUID `json:"note_id"`
	Version   int       `json:"version"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	SavedBy   uuid.UUID `json:"saved_by"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNote creates a note at version 1.
func NewNote(projectID, authorID uuid.UUID, title, content string) *Note {
	now := time.Now().UTC()
	return &Note{
		ID:        uuid.New(),
		ProjectID: projectID,
		AuthorID:  authorID,
		Title:     title,
		Content:   content,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Snapshot captures the current state of a note, attributed to the actor
// whose mutation is about to replace it.
func (n *Note) Snapshot(savedBy uuid.UUID) *NoteVersion {
	return &NoteVersion{
		ID:        uuid.New(),
		NoteID:    n.ID,
		Version:   n.Version,
		Title:     n.Title,
		Content:   n.Content,
		SavedBy:   savedBy,
		CreatedAt: time.Now().UTC(),
	}
}

// Apply overwrites title and content and bumps the version by exactly 1.
// Callers must take a Snapshot first.
func (n *Note) Apply(title, content string) {
	n.Title = title
	n.Content = content
	n.Version++
	n.UpdatedAt = time.Now().UTC()
}

// EditableBy reports whether the actor may mutate this note: the author, or
// a role carrying note:manage.
func (n *Note) EditableBy(p Principal) bool {
	if p.ID == n.AuthorID {
		return true
	}
	return HasPermission(p.Role, PermNoteManage)
}
