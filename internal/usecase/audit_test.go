package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/projecthub/projecthub/internal/domain"
)

func TestAuditUseCase_RecordFailureSurfaces(t *testing.T) {
	audits := new(MockAuditRepository)
	audits.On("Create", context.Background(), mock.AnythingOfType("*domain.AuditEntry")).Return(errors.New("disk full"))

	uc := NewAuditUseCase(audits, testLogger())
	entry := domain.NewAuditEntry(uuid.New(), domain.AuditActionCostApprove, domain.TargetTypeCost, uuid.New(), nil, nil)

	err := uc.Record(context.Background(), entry)
	assert.Error(t, err)
}

func TestAuditUseCase_ListSuperAdminUnrestricted(t *testing.T) {
	principal := domain.Principal{ID: uuid.New(), Role: domain.RoleSuperAdmin}
	audits := new(MockAuditRepository)
	audits.On("List", context.Background(), mock.AnythingOfType("domain.AuditFilter"), domain.AuditScope{Unrestricted: true}).
		Return([]*domain.AuditEntry{}, 0, nil)

	uc := NewAuditUseCase(audits, testLogger())
	_, _, err := uc.List(context.Background(), principal, domain.AuditFilter{})

	assert.NoError(t, err)
	audits.AssertExpectations(t)
}

func TestAuditUseCase_ListAdminScoped(t *testing.T) {
	principal := domain.Principal{ID: uuid.New(), Role: domain.RoleAdmin}
	audits := new(MockAuditRepository)
	audits.On("List", context.Background(), mock.AnythingOfType("domain.AuditFilter"), domain.AuditScope{AdminUserID: principal.ID}).
		Return([]*domain.AuditEntry{{ID: uuid.New()}}, 1, nil)

	uc := NewAuditUseCase(audits, testLogger())
	entries, total, err := uc.List(context.Background(), principal, domain.AuditFilter{})

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 1, total)
	audits.AssertExpectations(t)
}

func TestAuditUseCase_ListForbiddenForNonAdmins(t *testing.T) {
	audits := new(MockAuditRepository)
	uc := NewAuditUseCase(audits, testLogger())

	for _, role := range []domain.GlobalRole{domain.RoleCollaborator, domain.RoleClient, domain.GlobalRole("INTERN")} {
		_, _, err := uc.List(context.Background(), domain.Principal{ID: uuid.New(), Role: role}, domain.AuditFilter{})
		assert.ErrorIs(t, err, domain.ErrForbidden, "role %s", role)
	}
	audits.AssertNotCalled(t, "List")
}

func TestAuditUseCase_ListNormalizesFilter(t *testing.T) {
	principal := domain.Principal{ID: uuid.New(), Role: domain.RoleSuperAdmin}
	audits := new(MockAuditRepository)
	audits.On("List", context.Background(), mock.MatchedBy(func(f domain.AuditFilter) bool {
		return f.Page == 1 && f.PageSize == 25 && f.SortBy == "created_at" && f.SortDesc
	}), mock.AnythingOfType("domain.AuditScope")).Return([]*domain.AuditEntry{}, 0, nil)

	uc := NewAuditUseCase(audits, testLogger())
	_, _, err := uc.List(context.Background(), principal, domain.AuditFilter{SortBy: "metadata"})

	assert.NoError(t, err)
	audits.AssertExpectations(t)
}
