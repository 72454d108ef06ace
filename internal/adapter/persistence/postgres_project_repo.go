package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/projecthub/projecthub/internal/domain"
	"github.com/projecthub/projecthub/internal/ports"
)

// PostgresProjectRepository implements ProjectRepository using PostgreSQL.
type PostgresProjectRepository struct {
	db *sql.DB
}

// NewPostgresProjectRepository creates a new PostgreSQL project repository.
func NewPostgresProjectRepository(db *sql.DB) ports.ProjectRepository {
	return &PostgresProjectRepository{db: db}
}

// FindByID retrieves a project by its ID.
func (r *PostgresProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	query := `
		SELECT id, name, owner_id, is_public, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	var project domain.Project
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&project.ID,
		&project.Name,
		&project.OwnerID,
		&project.IsPublic,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	return &project, nil
}

// FindMembership retrieves a membership row, active or not.
func (r *PostgresProjectRepository) FindMembership(ctx context.Context, projectID, userID uuid.UUID) (*domain.ProjectMembership, error) {
	query := `
		SELECT id, project_id, user_id, member_role, custom_permissions, is_active, created_at, updated_at
		FROM project_members
		WHERE project_id = $1 AND user_id = $2
	`

	var m domain.ProjectMembership
	var customJSON []byte
	err := r.db.QueryRowContext(ctx, query, projectID, userID).Scan(
		&m.ID,
		&m.ProjectID,
		&m.UserID,
		&m.MemberRole,
		&customJSON,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}

	if len(customJSON) > 0 {
		if err := json.Unmarshal(customJSON, &m.CustomPermissions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal custom permissions: %w", err)
		}
	}

	return &m, nil
}

// ListActiveMembers retrieves all active memberships of a project.
func (r *PostgresProjectRepository) ListActiveMembers(ctx context.Context, projectID uuid.UUID) ([]*domain.ProjectMembership, error) {
	query := `
		SELECT id, project_id, user_id, member_role, custom_permissions, is_active, created_at, updated_at
		FROM project_members
		WHERE project_id = $1 AND is_active = TRUE
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []*domain.ProjectMembership
	for rows.Next() {
		var m domain.ProjectMembership
		var customJSON []byte
		err := rows.Scan(
			&m.ID,
			&m.ProjectID,
			&m.UserID,
			&m.MemberRole,
			&customJSON,
			&m.IsActive,
			&m.CreatedAt,
			&m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		if len(customJSON) > 0 {
			if err := json.Unmarshal(customJSON, &m.CustomPermissions); err != nil {
				return nil, fmt.Errorf("failed to unmarshal custom permissions: %w", err)
			}
		}
		members = append(members, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}

	return members, nil
}

// AddMember saves a new membership row.
func (r *PostgresProjectRepository) AddMember(ctx context.Context, m *domain.ProjectMembership) error {
	query := `
		INSERT INTO project_members (id, project_id, user_id, member_role, custom_permissions, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var customJSON []byte
	var err error
	if len(m.CustomPermissions) > 0 {
		customJSON, err = json.Marshal(m.CustomPermissions)
		if err != nil {
			return fmt.Errorf("failed to marshal custom permissions: %w", err)
		}
	}

	_, err = r.db.ExecContext(ctx, query,
		m.ID,
		m.ProjectID,
		m.UserID,
		string(m.MemberRole),
		customJSON,
		m.IsActive,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	return nil
}

// DeactivateMember marks a membership inactive, keeping the row.
func (r *PostgresProjectRepository) DeactivateMember(ctx context.Context, projectID, userID uuid.UUID) error {
	query := `
		UPDATE project_members
		SET is_active = FALSE, updated_at = $3
		WHERE project_id = $1 AND user_id = $2 AND is_active = TRUE
	`

	result, err := r.db.ExecContext(ctx, query, projectID, userID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to deactivate member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrMembershipNotFound
	}

	return nil
}
