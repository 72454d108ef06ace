package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/projecthub/projecthub/internal/domain"
)

func TestAccessResolver_SuperAdminSkipsLookup(t *testing.T) {
	projects := new(MockProjectRepository)
	resolver := NewAccessResolver(projects)

	access, err := resolver.Resolve(context.Background(), uuid.New(), domain.Principal{ID: uuid.New(), Role: domain.RoleSuperAdmin})

	assert.NoError(t, err)
	assert.True(t, access.CanView)
	assert.True(t, access.CanManage)
	projects.AssertNotCalled(t, "FindByID")
}

func TestAccessResolver_Owner(t *testing.T) {
	ownerID := uuid.New()
	projectID := uuid.New()
	projects := new(MockProjectRepository)
	projects.On("FindByID", context.Background(), projectID).Return(&domain.Project{ID: projectID, OwnerID: ownerID}, nil)

	resolver := NewAccessResolver(projects)
	access, err := resolver.Resolve(context.Background(), projectID, domain.Principal{ID: ownerID, Role: domain.RoleClient})

	assert.NoError(t, err)
	assert.True(t, access.CanView)
	assert.True(t, access.CanManage)
	projects.AssertNotCalled(t, "FindMembership")
}

func TestAccessResolver_Admin(t *testing.T) {
	projectID := uuid.New()
	projects := new(MockProjectRepository)
	projects.On("FindByID", context.Background(), projectID).Return(&domain.Project{ID: projectID, OwnerID: uuid.New()}, nil)

	resolver := NewAccessResolver(projects)
	access, err := resolver.Resolve(context.Background(), projectID, domain.Principal{ID: uuid.New(), Role: domain.RoleAdmin})

	assert.NoError(t, err)
	assert.True(t, access.CanView)
	assert.True(t, access.CanManage)
}

func TestAccessResolver_ActiveMemberViewsButCannotManage(t *testing.T) {
	projectID := uuid.New()
	userID := uuid.New()
	projects := new(MockProjectRepository)
	projects.On("FindByID", context.Background(), projectID).Return(&domain.Project{ID: projectID, OwnerID: uuid.New()}, nil)
	projects.On("FindMembership", context.Background(), projectID, userID).
		Return(&domain.ProjectMembership{ProjectID: projectID, UserID: userID, MemberRole: domain.MemberRoleManager, IsActive: true}, nil)

	resolver := NewAccessResolver(projects)
	access, err := resolver.Resolve(context.Background(), projectID, domain.Principal{ID: userID, Role: domain.RoleCollaborator})

	assert.NoError(t, err)
	assert.True(t, access.CanView)
	assert.False(t, access.CanManage)
}

func TestAccessResolver_InactiveMembershipDenied(t *testing.T) {
	projectID := uuid.New()
	userID := uuid.New()
	projects := new(MockProjectRepository)
	projects.On("FindByID", context.Background(), projectID).Return(&domain.Project{ID: projectID, OwnerID: uuid.New()}, nil)
	projects.On("FindMembership", context.Background(), projectID, userID).
		Return(&domain.ProjectMembership{ProjectID: projectID, UserID: userID, IsActive: false}, nil)

	resolver := NewAccessResolver(projects)
	access, err := resolver.Resolve(context.Background(), projectID, domain.Principal{ID: userID, Role: domain.RoleCollaborator})

	assert.NoError(t, err)
	assert.False(t, access.CanView)
	assert.False(t, access.CanManage)
}

func TestAccessResolver_NonMemberPrivateProjectDenied(t *testing.T) {
	projectID := uuid.New()
	userID := uuid.New()
	projects := new(MockProjectRepository)
	projects.On("FindByID", context.Background(), projectID).Return(&domain.Project{ID: projectID, OwnerID: uuid.New(), IsPublic: false}, nil)
	projects.On("FindMembership", context.Background(), projectID, userID).Return(nil, domain.ErrMembershipNotFound)

	resolver := NewAccessResolver(projects)
	access, err := resolver.Resolve(context.Background(), projectID, domain.Principal{ID: userID, Role: domain.RoleCollaborator})

	assert.NoError(t, err)
	assert.False(t, access.CanView)
	assert.False(t, access.CanManage)
}

func TestAccessResolver_PublicProjectViewableByNonMember(t *testing.T) {
	projectID := uuid.New()
	userID := uuid.New()
	projects := new(MockProjectRepository)
	projects.On("FindByID", context.Background(), projectID).Return(&domain.Project{ID: projectID, OwnerID: uuid.New(), IsPublic: true}, nil)
	projects.On("FindMembership", context.Background(), projectID, userID).Return(nil, domain.ErrMembershipNotFound)

	resolver := NewAccessResolver(projects)
	access, err := resolver.Resolve(context.Background(), projectID, domain.Principal{ID: userID, Role: domain.RoleClient})

	assert.NoError(t, err)
	assert.True(t, access.CanView)
	assert.False(t, access.CanManage)
}

func TestAccessResolver_ProjectNotFound(t *testing.T) {
	projectID := uuid.New()
	projects := new(MockProjectRepository)
	projects.On("FindByID", context.Background(), projectID).Return(nil, domain.ErrProjectNotFound)

	resolver := NewAccessResolver(projects)
	access, err := resolver.Resolve(context.Background(), projectID, domain.Principal{ID: uuid.New(), Role: domain.RoleAdmin})

	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	assert.False(t, access.CanView)
	assert.False(t, access.CanManage)
}

func TestAccessResolver_StoreErrorWrapped(t *testing.T) {
	projectID := uuid.New()
	projects := new(MockProjectRepository)
	projects.On("FindByID", context.Background(), projectID).Return(nil, errors.New("connection refused"))

	resolver := NewAccessResolver(projects)
	_, err := resolver.Resolve(context.Background(), projectID, domain.Principal{ID: uuid.New(), Role: domain.RoleClient})

	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrProjectNotFound)
}
