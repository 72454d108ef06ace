package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/projecthub/projecthub/internal/domain"
	"github.com/projecthub/projecthub/internal/ports"
)

// PostgresNoteRepository implements NoteRepository using PostgreSQL.
type PostgresNoteRepository struct {
	db *sql.DB
}

// NewPostgresNoteRepository creates a new PostgreSQL note repository.
func NewPostgresNoteRepository(db *sql.DB) ports.NoteRepository {
	return &PostgresNoteRepository{db: db}
}

// FindByID retrieves a note by its ID.
func (r *PostgresNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	query := `
		SELECT id, project_id, author_id, title, content, version, created_at, updated_at
		FROM notes
		WHERE id = $1
	`

	var note domain.Note
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&note.ID,
		&note.ProjectID,
		&note.AuthorID,
		&note.Title,
		&note.Content,
		&note.Version,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	return &note, nil
}

// UpdateWithSnapshot writes the pre-mutation snapshot and the updated note
// in one transaction. The note update is conditional on the stored version
// still matching the snapshot's version, so racing writers cannot interleave
// snapshot and update from different base states.
func (r *PostgresNoteRepository) UpdateWithSnapshot(ctx context.Context, note *domain.Note, snapshot *domain.NoteVersion) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertVersion := `
		INSERT INTO note_versions (id, note_id, version, title, content, saved_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.ExecContext(ctx, insertVersion,
		snapshot.ID,
		snapshot.NoteID,
		snapshot.Version,
		snapshot.Title,
		snapshot.Content,
		snapshot.SavedBy,
		snapshot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert note version: %w", err)
	}

	updateNote := `
		UPDATE notes
		SET title = $2, content = $3, version = $4, updated_at = $5
		WHERE id = $1 AND version = $6
	`
	result, err := tx.ExecContext(ctx, updateNote,
		note.ID,
		note.Title,
		note.Content,
		note.Version,
		note.UpdatedAt,
		snapshot.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrStatusChanged
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit note update: %w", err)
	}

	return nil
}

// FindVersion retrieves one history snapshot of a note.
func (r *PostgresNoteRepository) FindVersion(ctx context.Context, noteID uuid.UUID, version int) (*domain.NoteVersion, error) {
	query := `
		SELECT id, note_id, version, title, content, saved_by, created_at
		FROM note_versions
		WHERE note_id = $1 AND version = $2
	`

	var v domain.NoteVersion
	err := r.db.QueryRowContext(ctx, query, noteID, version).Scan(
		&v.ID,
		&v.NoteID,
		&v.Version,
		&v.Title,
		&v.Content,
		&v.SavedBy,
		&v.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrVersionNotFound
		}
		return nil, fmt.Errorf("failed to find note version: %w", err)
	}

	return &v, nil
}

// ListVersions retrieves all snapshots of a note, newest first.
func (r *PostgresNoteRepository) ListVersions(ctx context.Context, noteID uuid.UUID) ([]*domain.NoteVersion, error) {
	query := `
		SELECT id, note_id, version, title, content, saved_by, created_at
		FROM note_versions
		WHERE note_id = $1
		ORDER BY version DESC
	`

	rows, err := r.db.QueryContext(ctx, query, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query note versions: %w", err)
	}
	defer rows.Close()

	var versions []*domain.NoteVersion
	for rows.Next() {
		var v domain.NoteVersion
		err := rows.Scan(
			&v.ID,
			&v.NoteID,
			&v.Version,
			&v.Title,
			&v.Content,
			&v.SavedBy,
			&v.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note version: %w", err)
		}
		versions = append(versions, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating note versions: %w", err)
	}

	return versions, nil
}
