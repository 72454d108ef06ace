package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/projecthub/projecthub/internal/domain"
)

func newNoteFixtures(t *testing.T) (*MockNoteRepository, *MockAuditRepository, *NoteUseCase) {
	t.Helper()
	notes := new(MockNoteRepository)
	audits := new(MockAuditRepository)
	uc := NewNoteUseCase(notes, NewAuditUseCase(audits, testLogger()), testLogger())
	return notes, audits, uc
}

func TestNoteUseCase_Update(t *testing.T) {
	authorID := uuid.New()
	note := domain.NewNote(uuid.New(), authorID, "Kickoff", "Agenda")
	note.Version = 3
	actor := domain.Principal{ID: authorID, Role: domain.RoleCollaborator}

	notes, audits, uc := newNoteFixtures(t)
	notes.On("FindByID", context.Background(), note.ID).Return(note, nil)
	notes.On("UpdateWithSnapshot", context.Background(), note, mock.MatchedBy(func(s *domain.NoteVersion) bool {
		return s.Version == 3 && s.Title == "Kickoff" && s.Content == "Agenda" && s.SavedBy == authorID
	})).Return(nil)
	audits.On("Create", context.Background(), mock.MatchedBy(func(e *domain.AuditEntry) bool {
		return e.Action == domain.AuditActionNoteUpdate &&
			e.TargetID == note.ID &&
			e.Metadata["old_version"] == 3 &&
			e.Metadata["new_version"] == 4
	})).Return(nil)

	updated, err := uc.Update(context.Background(), note.ID, actor, "Kickoff v2", "Revised agenda")

	assert.NoError(t, err)
	assert.Equal(t, 4, updated.Version)
	assert.Equal(t, "Kickoff v2", updated.Title)
	notes.AssertExpectations(t)
	audits.AssertExpectations(t)
}

func TestNoteUseCase_UpdateValidation(t *testing.T) {
	notes, _, uc := newNoteFixtures(t)
	actor := domain.Principal{ID: uuid.New(), Role: domain.RoleAdmin}

	_, err := uc.Update(context.Background(), uuid.New(), actor, "  ", "content")
	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)

	_, err = uc.Update(context.Background(), uuid.New(), actor, "title", "")
	assert.ErrorAs(t, err, &validation)

	notes.AssertNotCalled(t, "FindByID")
}

func TestNoteUseCase_UpdateForbiddenForNonAuthor(t *testing.T) {
	note := domain.NewNote(uuid.New(), uuid.New(), "Kickoff", "Agenda")
	actor := domain.Principal{ID: uuid.New(), Role: domain.RoleCollaborator}

	notes, _, uc := newNoteFixtures(t)
	notes.On("FindByID", context.Background(), note.ID).Return(note, nil)

	_, err := uc.Update(context.Background(), note.ID, actor, "x", "y")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	notes.AssertNotCalled(t, "UpdateWithSnapshot")
}

func TestNoteUseCase_UpdateNotFound(t *testing.T) {
	notes, _, uc := newNoteFixtures(t)
	noteID := uuid.New()
	notes.On("FindByID", context.Background(), noteID).Return(nil, domain.ErrNoteNotFound)

	_, err := uc.Update(context.Background(), noteID, domain.Principal{ID: uuid.New(), Role: domain.RoleAdmin}, "x", "y")

	assert.ErrorIs(t, err, domain.ErrNoteNotFound)
}

func TestNoteUseCase_UpdateAuditFailureSurfaces(t *testing.T) {
	authorID := uuid.New()
	note := domain.NewNote(uuid.New(), authorID, "Kickoff", "Agenda")
	actor := domain.Principal{ID: authorID, Role: domain.RoleClient}

	notes, audits, uc := newNoteFixtures(t)
	notes.On("FindByID", context.Background(), note.ID).Return(note, nil)
	notes.On("UpdateWithSnapshot", context.Background(), note, mock.AnythingOfType("*domain.NoteVersion")).Return(nil)
	audits.On("Create", context.Background(), mock.AnythingOfType("*domain.AuditEntry")).Return(assert.AnError)

	_, err := uc.Update(context.Background(), note.ID, actor, "x", "y")

	assert.Error(t, err)
}

func TestNoteUseCase_Restore(t *testing.T) {
	authorID := uuid.New()
	note := domain.NewNote(uuid.New(), authorID, "Current title", "Current content")
	note.Version = 3
	target := &domain.NoteVersion{
		ID:      uuid.New(),
		NoteID:  note.ID,
		Version: 1,
		Title:   "Original title",
		Content: "Original content",
	}
	actor := domain.Principal{ID: authorID, Role: domain.RoleCollaborator}

	notes, audits, uc := newNoteFixtures(t)
	notes.On("FindByID", context.Background(), note.ID).Return(note, nil)
	notes.On("FindVersion", context.Background(), note.ID, 1).Return(target, nil)
	notes.On("UpdateWithSnapshot", context.Background(), note, mock.MatchedBy(func(s *domain.NoteVersion) bool {
		// the pre-restore state is preserved under version 3
		return s.Version == 3 && s.Title == "Current title"
	})).Return(nil)
	audits.On("Create", context.Background(), mock.MatchedBy(func(e *domain.AuditEntry) bool {
		return e.Action == domain.AuditActionNoteRestore &&
			e.Metadata["restored_from_version"] == 1 &&
			e.Metadata["new_version"] == 4
	})).Return(nil)

	restored, err := uc.Restore(context.Background(), note.ID, 1, actor)

	assert.NoError(t, err)
	assert.Equal(t, 4, restored.Version, "restore creates a new version, never reuses the target's")
	assert.Equal(t, "Original title", restored.Title)
	assert.Equal(t, "Original content", restored.Content)
	notes.AssertExpectations(t)
	audits.AssertExpectations(t)
}

func TestNoteUseCase_RestoreUnknownVersion(t *testing.T) {
	note := domain.NewNote(uuid.New(), uuid.New(), "a", "b")

	notes, _, uc := newNoteFixtures(t)
	notes.On("FindByID", context.Background(), note.ID).Return(note, nil)
	notes.On("FindVersion", context.Background(), note.ID, 9).Return(nil, domain.ErrVersionNotFound)

	_, err := uc.Restore(context.Background(), note.ID, 9, domain.Principal{ID: note.AuthorID, Role: domain.RoleClient})

	assert.ErrorIs(t, err, domain.ErrVersionNotFound)
	notes.AssertNotCalled(t, "UpdateWithSnapshot")
}

func TestNoteUseCase_History(t *testing.T) {
	note := domain.NewNote(uuid.New(), uuid.New(), "a", "b")
	versions := []*domain.NoteVersion{{NoteID: note.ID, Version: 2}, {NoteID: note.ID, Version: 1}}

	notes, _, uc := newNoteFixtures(t)
	notes.On("FindByID", context.Background(), note.ID).Return(note, nil)
	notes.On("ListVersions", context.Background(), note.ID).Return(versions, nil)

	got, err := uc.History(context.Background(), note.ID, domain.Principal{ID: note.AuthorID, Role: domain.RoleClient})

	assert.NoError(t, err)
	assert.Equal(t, versions, got)
}

func TestNoteUseCase_HistoryForbidden(t *testing.T) {
	note := domain.NewNote(uuid.New(), uuid.New(), "a", "b")

	notes, _, uc := newNoteFixtures(t)
	notes.On("FindByID", context.Background(), note.ID).Return(note, nil)

	_, err := uc.History(context.Background(), note.ID, domain.Principal{ID: uuid.New(), Role: domain.RoleClient})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	notes.AssertNotCalled(t, "ListVersions")
}
