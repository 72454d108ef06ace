package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/projecthub/projecthub/internal/domain"
	"github.com/projecthub/projecthub/internal/ports"
)

// PostgresCostRepository implements CostRepository using PostgreSQL.
type PostgresCostRepository struct {
	db *sql.DB
}

// NewPostgresCostRepository creates a new PostgreSQL cost repository.
func NewPostgresCostRepository(db *sql.DB) ports.CostRepository {
	return &PostgresCostRepository{db: db}
}

// FindByID retrieves a cost entry by its ID.
func (r *PostgresCostRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.CostEntry, error) {
	query := `
		SELECT id, project_id, description, amount_cents, currency, status, created_by, approved_by, approved_at, created_at, updated_at
		FROM cost_entries
		WHERE id = $1
	`

	var entry domain.CostEntry
	var approvedBy uuid.NullUUID
	var approvedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&entry.ID,
		&entry.ProjectID,
		&entry.Description,
		&entry.AmountCents,
		&entry.Currency,
		&entry.Status,
		&entry.CreatedBy,
		&approvedBy,
		&approvedAt,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrCostNotFound
		}
		return nil, fmt.Errorf("failed to find cost entry: %w", err)
	}

	if approvedBy.Valid {
		id := approvedBy.UUID
		entry.ApprovedBy = &id
	}
	if approvedAt.Valid {
		t := approvedAt.Time
		entry.ApprovedAt = &t
	}

	return &entry, nil
}

// UpdateStatus persists the entry's status and approval stamp in one
// statement, conditional on the stored status still being expected.
func (r *PostgresCostRepository) UpdateStatus(ctx context.Context, entry *domain.CostEntry, expected domain.CostStatus) error {
	query := `
		UPDATE cost_entries
		SET status = $2, approved_by = $3, approved_at = $4, updated_at = $5
		WHERE id = $1 AND status = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		entry.ID,
		string(entry.Status),
		entry.ApprovedBy,
		entry.ApprovedAt,
		entry.UpdatedAt,
		string(expected),
	)
	if err != nil {
		return fmt.Errorf("failed to update cost status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrStatusChanged
	}

	return nil
}

// PostgresProposalRepository implements ProposalRepository using PostgreSQL.
type PostgresProposalRepository struct {
	db *sql.DB
}

// NewPostgresProposalRepository creates a new PostgreSQL proposal repository.
func NewPostgresProposalRepository(db *sql.DB) ports.ProposalRepository {
	return &PostgresProposalRepository{db: db}
}

// FindByID retrieves a proposal by its ID.
func (r *PostgresProposalRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	query := `
		SELECT id, project_id, title, status, created_by, approved_by, approved_at, created_at, updated_at
		FROM proposals
		WHERE id = $1
	`

	var proposal domain.Proposal
	var approvedBy uuid.NullUUID
	var approvedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&proposal.ID,
		&proposal.ProjectID,
		&proposal.Title,
		&proposal.Status,
		&proposal.CreatedBy,
		&approvedBy,
		&approvedAt,
		&proposal.CreatedAt,
		&proposal.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrProposalNotFound
		}
		return nil, fmt.Errorf("failed to find proposal: %w", err)
	}

	if approvedBy.Valid {
		id := approvedBy.UUID
		proposal.ApprovedBy = &id
	}
	if approvedAt.Valid {
		t := approvedAt.Time
		proposal.ApprovedAt = &t
	}

	return &proposal, nil
}

// UpdateStatus persists the proposal's status and approval stamp in one
// statement, conditional on the stored status still being expected.
func (r *PostgresProposalRepository) UpdateStatus(ctx context.Context, proposal *domain.Proposal, expected domain.ProposalStatus) error {
	query := `
		UPDATE proposals
		SET status = $2, approved_by = $3, approved_at = $4, updated_at = $5
		WHERE id = $1 AND status = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		proposal.ID,
		string(proposal.Status),
		proposal.ApprovedBy,
		proposal.ApprovedAt,
		proposal.UpdatedAt,
		string(expected),
	)
	if err != nil {
		return fmt.Errorf("failed to update proposal status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrStatusChanged
	}

	return nil
}
