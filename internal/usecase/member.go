package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/projecthub/projecthub/internal/domain"
	"github.com/projecthub/projecthub/internal/ports"
)

// MemberUseCase manages project memberships. Removal deactivates the row;
// rows are never hard-deleted.
type MemberUseCase struct {
	projects ports.ProjectRepository
	resolver *AccessResolver
	audit    *AuditUseCase
	logger   *logrus.Logger
}

// NewMemberUseCase creates a membership use case.
func NewMemberUseCase(projects ports.ProjectRepository, resolver *AccessResolver, audit *AuditUseCase, logger *logrus.Logger) *MemberUseCase {
	return &MemberUseCase{projects: projects, resolver: resolver, audit: audit, logger: logger}
}

// Add creates an active membership for userID on the project.
func (uc *MemberUseCase) Add(ctx context.Context, projectID uuid.UUID, actor domain.Principal, userID uuid.UUID, role domain.MemberRole) (*domain.ProjectMembership, error) {
	switch role {
	case domain.MemberRoleManager, domain.MemberRoleContributor, domain.MemberRoleViewer:
	default:
		return nil, domain.NewValidationError("member_role", "unknown member role")
	}

	access, err := uc.resolver.Resolve(ctx, projectID, actor)
	if err != nil {
		return nil, err
	}
	if !access.CanManage {
		return nil, domain.ErrForbidden
	}

	membership := domain.NewProjectMembership(projectID, userID, role)
	if err := uc.projects.AddMember(ctx, membership); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	entry := domain.NewAuditEntry(actor.ID, domain.AuditActionMemberAdd, domain.TargetTypeMember, membership.ID, &projectID, map[string]any{
		"user_id":     userID.String(),
		"member_role": string(role),
	})
	if err := uc.audit.Record(ctx, entry); err != nil {
		return nil, err
	}

	return membership, nil
}

// Remove deactivates the membership of userID on the project.
func (uc *MemberUseCase) Remove(ctx context.Context, projectID uuid.UUID, actor domain.Principal, userID uuid.UUID) error {
	access, err := uc.resolver.Resolve(ctx, projectID, actor)
	if err != nil {
		return err
	}
	if !access.CanManage {
		return domain.ErrForbidden
	}

	membership, err := uc.projects.FindMembership(ctx, projectID, userID)
	if err != nil {
		return err
	}

	if err := uc.projects.DeactivateMember(ctx, projectID, userID); err != nil {
		return fmt.Errorf("failed to deactivate member: %w", err)
	}

	entry := domain.NewAuditEntry(actor.ID, domain.AuditActionMemberRemove, domain.TargetTypeMember, membership.ID, &projectID, map[string]any{
		"user_id": userID.String(),
	})
	if err := uc.audit.Record(ctx, entry); err != nil {
		return err
	}

	uc.logger.WithFields(logrus.Fields{
		"project_id": projectID,
		"user_id":    userID,
	}).Info("project member deactivated")

	return nil
}

// Members lists active memberships for callers with view access.
func (uc *MemberUseCase) Members(ctx context.Context, projectID uuid.UUID, actor domain.Principal) ([]*domain.ProjectMembership, error) {
	access, err := uc.resolver.Resolve(ctx, projectID, actor)
	if err != nil {
		return nil, err
	}
	if !access.CanView {
		return nil, domain.ErrForbidden
	}
	members, err := uc.projects.ListActiveMembers(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}
