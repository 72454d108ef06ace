package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewNote(t *testing.T) {
	projectID := uuid.New()
	authorID := uuid.New()

	note := NewNote(projectID, authorID, "Kickoff", "Agenda for kickoff")

	if note.ProjectID != projectID {
		t.Errorf("Expected project id %s, got %s", projectID, note.ProjectID)
	}
	if note.AuthorID != authorID {
		t.Errorf("Expected author id %s, got %s", authorID, note.AuthorID)
	}
	if note.Version != 1 {
		t.Errorf("Expected version 1, got %d", note.Version)
	}
}

func TestNote_SnapshotThenApply(t *testing.T) {
	note := NewNote(uuid.New(), uuid.New(), "Kickoff", "Agenda for kickoff")
	editor := uuid.New()

	snapshot := note.Snapshot(editor)
	note.Apply("Kickoff v2", "Revised agenda")

	if snapshot.Version != 1 {
		t.Errorf("Expected snapshot version 1, got %d", snapshot.Version)
	}
	if snapshot.Title != "Kickoff" {
		t.Errorf("Expected snapshot to keep original title, got %s", snapshot.Title)
	}
	if snapshot.Content != "Agenda for kickoff" {
		t.Errorf("Expected snapshot to keep original content, got %s", snapshot.Content)
	}
	if snapshot.SavedBy != editor {
		t.Errorf("Expected snapshot saved_by %s, got %s", editor, snapshot.SavedBy)
	}
	if snapshot.NoteID != note.ID {
		t.Errorf("Expected snapshot note id %s, got %s", note.ID, snapshot.NoteID)
	}

	if note.Version != 2 {
		t.Errorf("Expected version 2 after apply, got %d", note.Version)
	}
	if note.Title != "Kickoff v2" {
		t.Errorf("Expected new title, got %s", note.Title)
	}
}

func TestNote_ApplyIncrementsByOne(t *testing.T) {
	note := NewNote(uuid.New(), uuid.New(), "a", "b")
	for i := 0; i < 5; i++ {
		note.Apply("a", "b")
	}
	if note.Version != 6 {
		t.Errorf("Expected version 6 after five edits, got %d", note.Version)
	}
}

func TestNote_EditableBy(t *testing.T) {
	authorID := uuid.New()
	note := NewNote(uuid.New(), authorID, "Kickoff", "Agenda")

	if !note.EditableBy(Principal{ID: authorID, Role: RoleClient}) {
		t.Error("Expected author to be able to edit own note")
	}
	if !note.EditableBy(Principal{ID: uuid.New(), Role: RoleAdmin}) {
		t.Error("Expected ADMIN to be able to edit any note")
	}
	if !note.EditableBy(Principal{ID: uuid.New(), Role: RoleSuperAdmin}) {
		t.Error("Expected SUPER_ADMIN to be able to edit any note")
	}
	if note.EditableBy(Principal{ID: uuid.New(), Role: RoleCollaborator}) {
		t.Error("Expected non-author COLLABORATOR not to be able to edit")
	}
	if note.EditableBy(Principal{ID: uuid.New(), Role: RoleClient}) {
		t.Error("Expected non-author CLIENT not to be able to edit")
	}
}
