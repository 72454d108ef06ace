package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/projecthub/projecthub/internal/domain"
	"github.com/projecthub/projecthub/internal/ports"
)

// PostgresNotificationRepository implements NotificationRepository using
// PostgreSQL. Only record creation lives here; delivery is external.
type PostgresNotificationRepository struct {
	db *sql.DB
}

// NewPostgresNotificationRepository creates a new PostgreSQL notification repository.
func NewPostgresNotificationRepository(db *sql.DB) ports.NotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

// CreateBatch saves a batch of notification records in one transaction.
func (r *PostgresNotificationRepository) CreateBatch(ctx context.Context, notifications []*domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO notifications (id, user_id, type, title, message, link, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, n := range notifications {
		var metadataJSON []byte
		if len(n.Metadata) > 0 {
			metadataJSON, err = json.Marshal(n.Metadata)
			if err != nil {
				return fmt.Errorf("failed to marshal notification metadata: %w", err)
			}
		}

		_, err = tx.ExecContext(ctx, query,
			n.ID,
			n.UserID,
			string(n.Type),
			n.Title,
			n.Message,
			n.Link,
			metadataJSON,
			n.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert notification: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit notifications: %w", err)
	}

	return nil
}
