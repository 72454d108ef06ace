package domain

import "github.com/google/uuid"

// GlobalRole represents the platform-wide role of a user, independent of
// any project membership.
type GlobalRole string

const (
	RoleSuperAdmin   GlobalRole = "SUPER_ADMIN"
	RoleAdmin        GlobalRole = "ADMIN"
	RoleCollaborator GlobalRole = "COLLABORATOR"
	RoleClient       GlobalRole = "CLIENT"
)

// Known reports whether the role is one of the recognized platform roles.
func (r GlobalRole) Known() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleCollaborator, RoleClient:
		return true
	}
	return false
}

// Permission identifies a guarded capability, scoped as "<resource>:<verb>".
type Permission string

const (
	PermProjectView    Permission = "project:view"
	PermProjectEdit    Permission = "project:edit"
	PermProjectDelete  Permission = "project:delete"
	PermMemberManage   Permission = "member:manage"
	PermSectionManage  Permission = "section:manage"
	PermTaskView       Permission = "task:view"
	PermTaskCreate     Permission = "task:create"
	PermTaskEdit       Permission = "task:edit"
	PermTaskManage     Permission = "task:manage"
	PermMeetingView    Permission = "meeting:view"
	PermMeetingManage  Permission = "meeting:manage"
	PermProposalManage Permission = "proposal:manage"
	PermCostManage     Permission = "cost:manage"
	PermNoteCreate     Permission = "note:create"
	PermNoteEdit       Permission = "note:edit"
	PermNoteManage     Permission = "note:manage"
	PermAuditView      Permission = "audit:view"
)

var adminPermissions = map[Permission]struct{}{
	PermProjectView:    {},
	PermProjectEdit:    {},
	PermProjectDelete:  {},
	PermMemberManage:   {},
	PermSectionManage:  {},
	PermTaskView:       {},
	PermTaskCreate:     {},
	PermTaskEdit:       {},
	PermTaskManage:     {},
	PermMeetingView:    {},
	PermMeetingManage:  {},
	PermProposalManage: {},
	PermCostManage:     {},
	PermNoteCreate:     {},
	PermNoteEdit:       {},
	PermNoteManage:     {},
	PermAuditView:      {},
}

var collaboratorPermissions = map[Permission]struct{}{
	PermProjectView: {},
	PermTaskView:    {},
	PermTaskCreate:  {},
	PermTaskEdit:    {},
	PermMeetingView: {},
	PermNoteCreate:  {},
	PermNoteEdit:    {},
}

var clientPermissions = map[Permission]struct{}{
	PermProjectView: {},
	PermTaskView:    {},
	PermMeetingView: {},
}

// HasPermission reports whether a global role grants the given permission.
// Unknown roles and unknown permissions are denied.
func HasPermission(role GlobalRole, perm Permission) bool {
	switch role {
	case RoleSuperAdmin:
		return true
	case RoleAdmin:
		_, ok := adminPermissions[perm]
		return ok
	case RoleCollaborator:
		_, ok := collaboratorPermissions[perm]
		return ok
	case RoleClient:
		_, ok := clientPermissions[perm]
		return ok
	default:
		return false
	}
}

// Principal is the authenticated actor issuing a request. It is resolved
// once per request by the identity layer and never mutated afterwards.
type Principal struct {
	ID   uuid.UUID  `json:"id"`
	Role GlobalRole `json:"role"`
}
