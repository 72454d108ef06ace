package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/projecthub/projecthub/internal/domain"
	"github.com/projecthub/projecthub/internal/ports"
)

// GanttUseCase applies Gantt chart bulk updates. A batch succeeds or fails
// as a whole; partial application is never observable.
type GanttUseCase struct {
	tasks    ports.TaskRepository
	resolver *AccessResolver
	audit    *AuditUseCase
	logger   *logrus.Logger
}

// NewGanttUseCase creates a Gantt use case.
func NewGanttUseCase(tasks ports.TaskRepository, resolver *AccessResolver, audit *AuditUseCase, logger *logrus.Logger) *GanttUseCase {
	return &GanttUseCase{tasks: tasks, resolver: resolver, audit: audit, logger: logger}
}

// BulkUpdate applies a list of task mutations in one transaction. One
// unknown task id fails the entire batch with no item mutated.
func (uc *GanttUseCase) BulkUpdate(ctx context.Context, projectID uuid.UUID, actor domain.Principal, updates []domain.TaskUpdate) error {
	if len(updates) == 0 {
		return domain.NewValidationError("updates", "at least one task update is required")
	}
	for _, u := range updates {
		if err := u.Validate(); err != nil {
			return err
		}
	}

	access, err := uc.resolver.Resolve(ctx, projectID, actor)
	if err != nil {
		return err
	}
	if !access.CanManage && !domain.HasPermission(actor.Role, domain.PermTaskManage) {
		return domain.ErrForbidden
	}

	if err := uc.tasks.BulkUpdate(ctx, projectID, updates); err != nil {
		return err
	}

	entry := domain.NewAuditEntry(actor.ID, domain.AuditActionGanttBulkUpdate, domain.TargetTypeTask, projectID, &projectID, map[string]any{
		"item_count": len(updates),
	})
	if err := uc.audit.Record(ctx, entry); err != nil {
		return err
	}

	uc.logger.WithFields(logrus.Fields{
		"project_id": projectID,
		"item_count": len(updates),
	}).Info("gantt bulk update applied")

	return nil
}