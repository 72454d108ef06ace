package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/projecthub/projecthub/internal/domain"
	"github.com/projecthub/projecthub/internal/ports"
)

// AccessResolver decides whether a principal may view or manage a project.
// It is evaluated fresh on every request; membership and ownership can
// change between requests, so no result is ever cached.
type AccessResolver struct {
	projects ports.ProjectRepository
}

// NewAccessResolver creates an access resolver.
func NewAccessResolver(projects ports.ProjectRepository) *AccessResolver {
	return &AccessResolver{projects: projects}
}

// Resolve computes project access for a principal.
//
// View requires ownership, a platform admin role, an active membership, or
// the project being public. A recognized global role alone is not enough.
// Manage requires ownership or a platform admin role.
//
// A missing project yields zero access and domain.ErrProjectNotFound.
func (r *AccessResolver) Resolve(ctx context.Context, projectID uuid.UUID, principal domain.Principal) (domain.ProjectAccess, error) {
	if principal.Role == domain.RoleSuperAdmin {
		return domain.ProjectAccess{CanView: true, CanManage: true}, nil
	}

	project, err := r.projects.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return domain.ProjectAccess{}, domain.ErrProjectNotFound
		}
		return domain.ProjectAccess{}, fmt.Errorf("failed to load project: %w", err)
	}

	isOwner := project.OwnerID == principal.ID
	isAdmin := principal.Role == domain.RoleAdmin

	member := false
	if !isOwner && !isAdmin {
		m, err := r.projects.FindMembership(ctx, projectID, principal.ID)
		if err != nil && !errors.Is(err, domain.ErrMembershipNotFound) {
			return domain.ProjectAccess{}, fmt.Errorf("failed to load membership: %w", err)
		}
		member = m != nil && m.IsActive
	}

	return domain.ProjectAccess{
		CanView:   isOwner || isAdmin || member || project.IsPublic,
		CanManage: isOwner || isAdmin,
	}, nil
}
