package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/projecthub/projecthub/internal/domain"
	"github.com/projecthub/projecthub/internal/ports"
)

// SettingsUseCase manages platform settings. Only maintenance mode lives
// here for now.
type SettingsUseCase struct {
	settings ports.SettingsRepository
	gate     *MaintenanceGate
	audit    *AuditUseCase
	logger   *logrus.Logger
}

// NewSettingsUseCase creates a settings use case.
func NewSettingsUseCase(settings ports.SettingsRepository, gate *MaintenanceGate, audit *AuditUseCase, logger *logrus.Logger) *SettingsUseCase {
	return &SettingsUseCase{settings: settings, gate: gate, audit: audit, logger: logger}
}

// MaintenanceEnabled reads the authoritative flag, bypassing the gate cache.
func (uc *SettingsUseCase) MaintenanceEnabled(ctx context.Context, actor domain.Principal) (bool, error) {
	if actor.Role != domain.RoleSuperAdmin {
		return false, domain.ErrForbidden
	}
	enabled, err := uc.settings.MaintenanceEnabled(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read maintenance flag: %w", err)
	}
	return enabled, nil
}

// SetMaintenance flips the authoritative flag and invalidates the gate so
// the change takes effect on the next request instead of after the TTL.
func (uc *SettingsUseCase) SetMaintenance(ctx context.Context, actor domain.Principal, enabled bool) error {
	if actor.Role != domain.RoleSuperAdmin {
		return domain.ErrForbidden
	}

	if err := uc.settings.SetMaintenanceEnabled(ctx, enabled); err != nil {
		return fmt.Errorf("failed to update maintenance flag: %w", err)
	}
	uc.gate.Invalidate()

	entry := domain.NewAuditEntry(actor.ID, domain.AuditActionMaintenanceSet, domain.TargetTypeSettings, uuid.Nil, nil, map[string]any{
		"enabled": enabled,
	})
	if err := uc.audit.Record(ctx, entry); err != nil {
		return err
	}

	uc.logger.WithFields(logrus.Fields{
		"enabled":  enabled,
		"actor_id": actor.ID,
	}).Info("maintenance mode changed")

	return nil
}
