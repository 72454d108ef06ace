package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/projecthub/projecthub/internal/domain"
)

// ProjectRepository defines persistence for projects and memberships.
type ProjectRepository interface {
	// FindByID retrieves a project by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)

	// FindMembership retrieves the membership row for a user on a project,
	// active or not. Returns domain.ErrMembershipNotFound when absent.
	FindMembership(ctx context.Context, projectID, userID uuid.UUID) (*domain.ProjectMembership, error)

	// ListActiveMembers retrieves all active memberships of a project.
	ListActiveMembers(ctx context.Context, projectID uuid.UUID) ([]*domain.ProjectMembership, error)

	// AddMember saves a new membership row.
	AddMember(ctx context.Context, m *domain.ProjectMembership) error

	// DeactivateMember marks a membership inactive. The row is kept.
	DeactivateMember(ctx context.Context, projectID, userID uuid.UUID) error
}

// NoteRepository defines persistence for versioned notes.
type NoteRepository interface {
	// FindByID retrieves a note by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Note, error)

	// UpdateWithSnapshot writes the pre-mutation snapshot and the updated
	// note in a single transaction. Neither side may land alone.
	UpdateWithSnapshot(ctx context.Context, note *domain.Note, snapshot *domain.NoteVersion) error

	// FindVersion retrieves one history snapshot of a note.
	FindVersion(ctx context.Context, noteID uuid.UUID, version int) (*domain.NoteVersion, error)

	// ListVersions retrieves all snapshots of a note, newest first.
	ListVersions(ctx context.Context, noteID uuid.UUID) ([]*domain.NoteVersion, error)
}

// CostRepository defines persistence for cost entries.
type CostRepository interface {
	// FindByID retrieves a cost entry by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.CostEntry, error)

	// UpdateStatus persists the entry's status and transition metadata,
	// conditional on the stored status still being expected. Returns
	// domain.ErrStatusChanged when the condition fails.
	UpdateStatus(ctx context.Context, entry *domain.CostEntry, expected domain.CostStatus) error
}

// ProposalRepository defines persistence for proposals.
type ProposalRepository interface {
	// FindByID retrieves a proposal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error)

	// UpdateStatus persists the proposal's status and transition metadata,
	// conditional on the stored status still being expected. Returns
	// domain.ErrStatusChanged when the condition fails.
	UpdateStatus(ctx context.Context, proposal *domain.Proposal, expected domain.ProposalStatus) error
}

// TaskRepository defines persistence for Gantt tasks.
type TaskRepository interface {
	// BulkUpdate applies every update in one transaction. An unknown task
	// id, or a task outside the project, aborts the whole batch with
	// domain.ErrTaskNotFound.
	BulkUpdate(ctx context.Context, projectID uuid.UUID, updates []domain.TaskUpdate) error
}

// AuditRepository defines persistence for the append-only audit log. No
// update or delete operation exists.
type AuditRepository interface {
	// Create appends one audit entry.
	Create(ctx context.Context, entry *domain.AuditEntry) error

	// List retrieves entries matching the filter within the caller's
	// visibility scope, plus the total match count.
	List(ctx context.Context, filter domain.AuditFilter, scope domain.AuditScope) ([]*domain.AuditEntry, int, error)
}

// NotificationRepository defines persistence for notification records.
type NotificationRepository interface {
	// CreateBatch saves a batch of notification records.
	CreateBatch(ctx context.Context, notifications []*domain.Notification) error
}

// SettingsRepository reads and writes platform settings. The settings row
// is the authoritative source for maintenance mode; gate caching sits above.
type SettingsRepository interface {
	MaintenanceEnabled(ctx context.Context) (bool, error)
	SetMaintenanceEnabled(ctx context.Context, enabled bool) error
}
