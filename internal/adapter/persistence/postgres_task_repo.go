package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/projecthub/projecthub/internal/domain"
	"github.com/projecthub/projecthub/internal/ports"
)

// PostgresTaskRepository implements TaskRepository using PostgreSQL.
type PostgresTaskRepository struct {
	db *sql.DB
}

// NewPostgresTaskRepository creates a new PostgreSQL task repository.
func NewPostgresTaskRepository(db *sql.DB) ports.TaskRepository {
	return &PostgresTaskRepository{db: db}
}

// BulkUpdate applies every update in a single transaction. A task id that
// does not exist inside the project rolls the whole batch back.
func (r *PostgresTaskRepository) BulkUpdate(ctx context.Context, projectID uuid.UUID, updates []domain.TaskUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE gantt_tasks
		SET starts_on = $3, ends_on = $4, sort_order = $5, updated_at = $6
		WHERE id = $1 AND project_id = $2
	`

	now := time.Now().UTC()
	for _, u := range updates {
		result, err := tx.ExecContext(ctx, query, u.ID, projectID, u.StartsOn, u.EndsOn, u.SortOrder, now)
		if err != nil {
			return fmt.Errorf("failed to update task %s: %w", u.ID, err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return domain.ErrTaskNotFound
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bulk update: %w", err)
	}

	return nil
}
