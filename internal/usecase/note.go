package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/projecthub/projecthub/internal/domain"
	"github.com/projecthub/projecthub/internal/ports"
)

// NoteUseCase handles versioned note mutations. Every edit snapshots the
// pre-mutation state; restores replay an old snapshot as a fresh version.
type NoteUseCase struct {
	notes  ports.NoteRepository
	audit  *AuditUseCase
	logger *logrus.Logger
}

// NewNoteUseCase creates a note use case.
func NewNoteUseCase(notes ports.NoteRepository, audit *AuditUseCase, logger *logrus.Logger) *NoteUseCase {
	return &NoteUseCase{notes: notes, audit: audit, logger: logger}
}

// Update overwrites a note's title and content. The previous state is
// snapshotted under the pre-mutation version number and the note's version
// increments by exactly 1, both inside one transaction.
func (uc *NoteUseCase) Update(ctx context.Context, noteID uuid.UUID, actor domain.Principal, title, content string) (*domain.Note, error) {
	if strings.TrimSpace(title) == "" {
		return nil, domain.NewValidationError("title", "title is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, domain.NewValidationError("content", "content is required")
	}

	note, err := uc.notes.FindByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if !note.EditableBy(actor) {
		return nil, domain.ErrForbidden
	}

	oldVersion := note.Version
	snapshot := note.Snapshot(actor.ID)
	note.Apply(title, content)

	if err := uc.notes.UpdateWithSnapshot(ctx, note, snapshot); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	entry := domain.NewAuditEntry(actor.ID, domain.AuditActionNoteUpdate, domain.TargetTypeNote, note.ID, &note.ProjectID, map[string]any{
		"old_version": oldVersion,
		"new_version": note.Version,
	})
	if err := uc.audit.Record(ctx, entry); err != nil {
		return nil, err
	}

	return note, nil
}

// Restore replays the snapshot at targetVersion. The current state is
// snapshotted first (so nothing is lost), then the note takes the target's
// title and content under a brand new version number. The target version
// number itself is never reused.
func (uc *NoteUseCase) Restore(ctx context.Context, noteID uuid.UUID, targetVersion int, actor domain.Principal) (*domain.Note, error) {
	note, err := uc.notes.FindByID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	target, err := uc.notes.FindVersion(ctx, noteID, targetVersion)
	if err != nil {
		return nil, err
	}

	if !note.EditableBy(actor) {
		return nil, domain.ErrForbidden
	}

	snapshot := note.Snapshot(actor.ID)
	note.Apply(target.Title, target.Content)

	if err := uc.notes.UpdateWithSnapshot(ctx, note, snapshot); err != nil {
		return nil, fmt.Errorf("failed to restore note: %w", err)
	}

	entry := domain.NewAuditEntry(actor.ID, domain.AuditActionNoteRestore, domain.TargetTypeNote, note.ID, &note.ProjectID,
		domain.RestoreMetadata(targetVersion, note.Version))
	if err := uc.audit.Record(ctx, entry); err != nil {
		return nil, err
	}

	uc.logger.WithFields(logrus.Fields{
		"note_id":      note.ID,
		"from_version": targetVersion,
		"new_version":  note.Version,
	}).Info("note restored")

	return note, nil
}

// History lists a note's snapshots, newest first.
func (uc *NoteUseCase) History(ctx context.Context, noteID uuid.UUID, actor domain.Principal) ([]*domain.NoteVersion, error) {
	note, err := uc.notes.FindByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if !note.EditableBy(actor) {
		return nil, domain.ErrForbidden
	}
	versions, err := uc.notes.ListVersions(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list note versions: %w", err)
	}
	return versions, nil
}
