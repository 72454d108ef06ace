package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/projecthub/projecthub/internal/domain"
	"github.com/projecthub/projecthub/internal/ports"
)

// AuditUseCase records and queries the append-only audit log.
type AuditUseCase struct {
	audits ports.AuditRepository
	logger *logrus.Logger
}

// NewAuditUseCase creates an audit use case.
func NewAuditUseCase(audits ports.AuditRepository, logger *logrus.Logger) *AuditUseCase {
	return &AuditUseCase{audits: audits, logger: logger}
}

// Record appends one audit entry. A write failure is returned to the
// caller: audit trails are a compliance requirement, so the triggering
// operation must fail loudly rather than drop the record.
func (uc *AuditUseCase) Record(ctx context.Context, entry *domain.AuditEntry) error {
	if err := uc.audits.Create(ctx, entry); err != nil {
		uc.logger.WithFields(logrus.Fields{
			"action":    entry.Action,
			"actor_id":  entry.ActorID,
			"target_id": entry.TargetID,
		}).WithError(err).Error("failed to write audit entry")
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// List queries the audit log within the principal's visibility.
// SUPER_ADMIN sees everything, ADMIN sees platform-level entries plus
// entries of projects they own or actively manage, everyone else is denied.
func (uc *AuditUseCase) List(ctx context.Context, principal domain.Principal, filter domain.AuditFilter) ([]*domain.AuditEntry, int, error) {
	var scope domain.AuditScope
	switch principal.Role {
	case domain.RoleSuperAdmin:
		scope = domain.AuditScope{Unrestricted: true}
	case domain.RoleAdmin:
		scope = domain.AuditScope{AdminUserID: principal.ID}
	default:
		return nil, 0, domain.ErrForbidden
	}

	filter.Normalize()

	entries, total, err := uc.audits.List(ctx, filter, scope)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, total, nil
}
