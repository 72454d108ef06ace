package domain

import (
	"time"

	"github.com/google/uuid"
)

// MemberRole is a role scoped to a single project.
type MemberRole string

const (
	MemberRoleManager     MemberRole = "MANAGER"
	MemberRoleContributor MemberRole = "CONTRIBUTOR"
	MemberRoleViewer      MemberRole = "VIEWER"
)

// Project is the tenant boundary for tasks, notes, costs and proposals.
// Projects are owned by their creating user and are never hard-deleted here.
type Project struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"owner_id"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectMembership joins a user to a project. Removal deactivates the row
// instead of deleting it so the membership history survives.
//
// CustomPermissions is a per-member override map. It is stored and returned
// but deliberately not consulted by global role checks.
type ProjectMembership struct {
	ID                uuid.UUID       `json:"id"`
	ProjectID         uuid.UUID       `json:"project_id"`
	UserID            uuid.UUID       `json:"user_id"`
	MemberRole        MemberRole      `json:"member_role"`
	CustomPermissions map[string]bool `json:"custom_permissions,omitempty"`
	IsActive          bool            `json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// NewProjectMembership creates an active membership.
func NewProjectMembership(projectID, userID uuid.UUID, role MemberRole) *ProjectMembership {
	now := time.Now().UTC()
	return &ProjectMembership{
		ID:         uuid.New(),
		ProjectID:  projectID,
		UserID:     userID,
		MemberRole: role,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ProjectAccess is the outcome of resolving a principal against a project.
type ProjectAccess struct {
	CanView   bool `json:"can_view"`
	CanManage bool `json:"can_manage"`
}
