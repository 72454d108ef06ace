package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction identifies the mutating operation an audit entry records.
type AuditAction string

const (
	AuditActionNoteUpdate      AuditAction = "note.update"
	AuditActionNoteRestore     AuditAction = "note.restore"
	AuditActionCostApprove     AuditAction = "cost.approve"
	AuditActionProposalApprove AuditAction = "proposal.approve"
	AuditActionGanttBulkUpdate AuditAction = "gantt.bulk_update"
	AuditActionMemberAdd       AuditAction = "member.add"
	AuditActionMemberRemove    AuditAction = "member.remove"
	AuditActionMaintenanceSet  AuditAction = "settings.maintenance"
)

// Audited target types.
const (
	TargetTypeNote     = "note"
	TargetTypeCost     = "cost_entry"
	TargetTypeProposal = "proposal"
	TargetTypeTask     = "task"
	TargetTypeMember   = "project_membership"
	TargetTypeSettings = "settings"
)

// AuditEntry is an append-only record of a mutating action. Entries are
// never updated or deleted by the application; retention is external.
type AuditEntry struct {
	ID         uuid.UUID      `json:"id"`
	ActorID    uuid.UUID      `json:"actor_id"`
	Action     AuditAction    `json:"action"`
	TargetType string         `json:"target_type"`
	TargetID   uuid.UUID      `json:"target_id"`
	ProjectID  *uuid.UUID     `json:"project_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// NewAuditEntry builds an entry for the given action. projectID may be nil
// for platform-level actions such as maintenance toggles.
func NewAuditEntry(actorID uuid.UUID, action AuditAction, targetType string, targetID uuid.UUID, projectID *uuid.UUID, metadata map[string]any) *AuditEntry {
	return &AuditEntry{
		ID:         uuid.New(),
		ActorID:    actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		ProjectID:  projectID,
		Metadata:   metadata,
		CreatedAt:  time.Now().UTC(),
	}
}

// StatusChangeMetadata is the metadata shape for workflow transitions.
func StatusChangeMetadata(oldStatus, newStatus string) map[string]any {
	return map[string]any{
		"old_status": oldStatus,
		"new_status": newStatus,
	}
}

// RestoreMetadata is the metadata shape for note restores.
func RestoreMetadata(restoredFromVersion, newVersion int) map[string]any {
	return map[string]any{
		"restored_from_version": restoredFromVersion,
		"new_version":           newVersion,
	}
}

// AuditFilter narrows an audit query. Zero-valued fields are ignored.
type AuditFilter struct {
	ActorID    *uuid.UUID   `json:"actor_id,omitempty"`
	ProjectID  *uuid.UUID   `json:"project_id,omitempty"`
	Action     *AuditAction `json:"action,omitempty"`
	TargetType *string      `json:"target_type,omitempty"`
	From       *time.Time   `json:"from,omitempty"`
	To         *time.Time   `json:"to,omitempty"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	SortBy     string       `json:"sort_by"`
	SortDesc   bool         `json:"sort_desc"`
}

const (
	auditDefaultPageSize = 25
	auditMaxPageSize     = 100
)

// Sortable audit columns. Anything else falls back to created_at.
var auditSortColumns = map[string]string{
	"created_at":  "created_at",
	"action":      "action",
	"target_type": "target_type",
}

// Normalize clamps pagination and resolves the sort column against the
// allow-list. Default ordering is created_at descending.
func (f *AuditFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = auditDefaultPageSize
	}
	if f.PageSize > auditMaxPageSize {
		f.PageSize = auditMaxPageSize
	}
	col, ok := auditSortColumns[f.SortBy]
	if !ok {
		col = "created_at"
		f.SortDesc = true
	}
	f.SortBy = col
}

// Offset returns the row offset for the normalized page.
func (f *AuditFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// AuditScope restricts which entries a caller may see. Unrestricted is set
// for SUPER_ADMIN; otherwise entries are limited to null-project records
// plus projects owned or actively managed by AdminUserID.
type AuditScope struct {
	Unrestricted bool
	AdminUserID  uuid.UUID
}
