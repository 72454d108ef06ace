package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/projecthub/projecthub/internal/domain"
	"github.com/projecthub/projecthub/internal/ports"
)

// PostgresAuditRepository implements AuditRepository using PostgreSQL. The
// audit_log table is append-only; this repository deliberately exposes no
// update or delete.
type PostgresAuditRepository struct {
	db *sql.DB
}

// NewPostgresAuditRepository creates a new PostgreSQL audit repository.
func NewPostgresAuditRepository(db *sql.DB) ports.AuditRepository {
	return &PostgresAuditRepository{db: db}
}

// Create appends one audit entry.
func (r *PostgresAuditRepository) Create(ctx context.Context, entry *domain.AuditEntry) error {
	query := `
		INSERT INTO audit_log (id, actor_id, action, target_type, target_id, project_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var metadataJSON []byte
	var err error
	if len(entry.Metadata) > 0 {
		metadataJSON, err = json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal audit metadata: %w", err)
		}
	}

	var projectID any
	if entry.ProjectID != nil {
		projectID = *entry.ProjectID
	}

	_, err = r.db.ExecContext(ctx, query,
		entry.ID,
		entry.ActorID,
		string(entry.Action),
		entry.TargetType,
		entry.TargetID,
		projectID,
		metadataJSON,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}

	return nil
}

// List retrieves audit entries matching the filter within the caller's
// scope, plus the total match count. The filter must be normalized; its
// sort column is taken from the domain allow-list, never from raw input.
func (r *PostgresAuditRepository) List(ctx context.Context, filter domain.AuditFilter, scope domain.AuditScope) ([]*domain.AuditEntry, int, error) {
	where, args := buildAuditWhere(filter, scope)

	countQuery := `SELECT COUNT(*) FROM audit_log` + where
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	query := fmt.Sprintf(`
		SELECT id, actor_id, action, target_type, target_id, project_id, metadata, created_at
		FROM audit_log%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, where, filter.SortBy, direction, len(args)+1, len(args)+2)
	args = append(args, filter.PageSize, filter.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.AuditEntry
	for rows.Next() {
		var entry domain.AuditEntry
		var projectID uuid.NullUUID
		var metadataJSON []byte

		err := rows.Scan(
			&entry.ID,
			&entry.ActorID,
			&entry.Action,
			&entry.TargetType,
			&entry.TargetID,
			&projectID,
			&metadataJSON,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit entry: %w", err)
		}

		if projectID.Valid {
			id := projectID.UUID
			entry.ProjectID = &id
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &entry.Metadata); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal audit metadata: %w", err)
			}
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating audit entries: %w", err)
	}

	return entries, total, nil
}

func buildAuditWhere(filter domain.AuditFilter, scope domain.AuditScope) (string, []any) {
	var conditions []string
	var args []any
	argIndex := 1

	if filter.ActorID != nil {
		conditions = append(conditions, fmt.Sprintf("actor_id = $%d", argIndex))
		args = append(args, *filter.ActorID)
		argIndex++
	}

	if filter.ProjectID != nil {
		conditions = append(conditions, fmt.Sprintf("project_id = $%d", argIndex))
		args = append(args, *filter.ProjectID)
		argIndex++
	}

	if filter.Action != nil {
		conditions = append(conditions, fmt.Sprintf("action = $%d", argIndex))
		args = append(args, string(*filter.Action))
		argIndex++
	}

	if filter.TargetType != nil {
		conditions = append(conditions, fmt.Sprintf("target_type = $%d", argIndex))
		args = append(args, *filter.TargetType)
		argIndex++
	}

	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argIndex))
		args = append(args, *filter.From)
		argIndex++
	}

	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argIndex))
		args = append(args, *filter.To)
		argIndex++
	}

	if !scope.Unrestricted {
		conditions = append(conditions, fmt.Sprintf(`(
			project_id IS NULL
			OR project_id IN (
				SELECT id FROM projects WHERE owner_id = $%d
				UNION
				SELECT project_id FROM project_members
				WHERE user_id = $%d AND is_active = TRUE AND member_role = 'MANAGER'
			)
		)`, argIndex, argIndex))
		args = append(args, scope.AdminUserID)
		argIndex++
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
