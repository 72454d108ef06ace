package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/projecthub/projecthub/internal/domain"
	"github.com/projecthub/projecthub/internal/ports"
)

// ProposalUseCase guards proposal status transitions and fans approval
// notifications out to active project members.
type ProposalUseCase struct {
	proposals     ports.ProposalRepository
	projects      ports.ProjectRepository
	notifications ports.NotificationRepository
	audit         *AuditUseCase
	logger        *logrus.Logger
}

// NewProposalUseCase creates a proposal use case.
func NewProposalUseCase(
	proposals ports.ProposalRepository,
	projects ports.ProjectRepository,
	notifications ports.NotificationRepository,
	audit *AuditUseCase,
	logger *logrus.Logger,
) *ProposalUseCase {
	return &ProposalUseCase{
		proposals:     proposals,
		projects:      projects,
		notifications: notifications,
		audit:         audit,
		logger:        logger,
	}
}

// Approve moves a proposal to APPROVED. Only legal from SENT or
// NEGOTIATING; conflicts persist nothing and write no audit entry. On
// success exactly one audit entry records the transition and every active
// project member receives a notification record. Notification creation is
// best-effort: a failed fan-out is logged, not surfaced, since the record
// side-channel must not undo a committed approval.
func (uc *ProposalUseCase) Approve(ctx context.Context, proposalID uuid.UUID, actor domain.Principal) (*domain.Proposal, error) {
	proposal, err := uc.proposals.FindByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	if !domain.HasPermission(actor.Role, domain.PermProposalManage) {
		return nil, domain.ErrForbidden
	}

	oldStatus := proposal.Status
	if err := proposal.Approve(actor.ID); err != nil {
		return nil, err
	}

	if err := uc.proposals.UpdateStatus(ctx, proposal, oldStatus); err != nil {
		return nil, fmt.Errorf("failed to persist proposal approval: %w", err)
	}

	auditEntry := domain.NewAuditEntry(actor.ID, domain.AuditActionProposalApprove, domain.TargetTypeProposal, proposal.ID, &proposal.ProjectID,
		domain.StatusChangeMetadata(string(oldStatus), string(proposal.Status)))
	if err := uc.audit.Record(ctx, auditEntry); err != nil {
		return nil, err
	}

	uc.fanOut(ctx, proposal, actor.ID)

	return proposal, nil
}

func (uc *ProposalUseCase) fanOut(ctx context.Context, proposal *domain.Proposal, approverID uuid.UUID) {
	members, err := uc.projects.ListActiveMembers(ctx, proposal.ProjectID)
	if err != nil {
		uc.logger.WithError(err).WithField("proposal_id", proposal.ID).Error("failed to load members for notification fan-out")
		return
	}
	if len(members) == 0 {
		return
	}

	notifications := make([]*domain.Notification, 0, len(members))
	for _, m := range members {
		notifications = append(notifications, domain.NewProposalApprovedNotification(m.UserID, proposal, approverID))
	}

	if err := uc.notifications.CreateBatch(ctx, notifications); err != nil {
		uc.logger.WithError(err).WithField("proposal_id", proposal.ID).Error("failed to create approval notifications")
		return
	}

	uc.logger.WithFields(logrus.Fields{
		"proposal_id": proposal.ID,
		"recipients":  len(notifications),
	}).Info("proposal approval notifications created")
}
