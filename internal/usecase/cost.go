package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/projecthub/projecthub/internal/domain"
	"github.com/projecthub/projecthub/internal/ports"
)

// CostUseCase guards cost entry status transitions.
type CostUseCase struct {
	costs  ports.CostRepository
	audit  *AuditUseCase
	logger *logrus.Logger
}

// NewCostUseCase creates a cost use case.
func NewCostUseCase(costs ports.CostRepository, audit *AuditUseCase, logger *logrus.Logger) *CostUseCase {
	return &CostUseCase{costs: costs, audit: audit, logger: logger}
}

// Approve moves a pending cost entry to APPROVED, stamping approver and
// timestamp. Any other current status is a conflict: nothing is persisted
// and no audit entry is written.
func (uc *CostUseCase) Approve(ctx context.Context, costID uuid.UUID, actor domain.Principal) (*domain.CostEntry, error) {
	entry, err := uc.costs.FindByID(ctx, costID)
	if err != nil {
		return nil, err
	}

	if !domain.HasPermission(actor.Role, domain.PermCostManage) {
		return nil, domain.ErrForbidden
	}

	oldStatus := entry.Status
	if err := entry.Approve(actor.ID); err != nil {
		return nil, err
	}

	if err := uc.costs.UpdateStatus(ctx, entry, oldStatus); err != nil {
		return nil, fmt.Errorf("failed to persist cost approval: %w", err)
	}

	auditEntry := domain.NewAuditEntry(actor.ID, domain.AuditActionCostApprove, domain.TargetTypeCost, entry.ID, &entry.ProjectID,
		domain.StatusChangeMetadata(string(oldStatus), string(entry.Status)))
	if err := uc.audit.Record(ctx, auditEntry); err != nil {
		return nil, err
	}

	uc.logger.WithFields(logrus.Fields{
		"cost_id":     entry.ID,
		"approved_by": actor.ID,
	}).Info("cost entry approved")

	return entry, nil
}
