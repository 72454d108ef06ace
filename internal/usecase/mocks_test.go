package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/projecthub/projecthub/internal/domain"
)

// Mock implementations

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) FindMembership(ctx context.Context, projectID, userID uuid.UUID) (*domain.ProjectMembership, error) {
	args := m.Called(ctx, projectID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectMembership), args.Error(1)
}

func (m *MockProjectRepository) ListActiveMembers(ctx context.Context, projectID uuid.UUID) ([]*domain.ProjectMembership, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ProjectMembership), args.Error(1)
}

func (m *MockProjectRepository) AddMember(ctx context.Context, membership *domain.ProjectMembership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockProjectRepository) DeactivateMember(ctx context.Context, projectID, userID uuid.UUID) error {
	args := m.Called(ctx, projectID, userID)
	return args.Error(0)
}

type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Note), args.Error(1)
}

func (m *MockNoteRepository) UpdateWithSnapshot(ctx context.Context, note *domain.Note, snapshot *domain.NoteVersion) error {
	args := m.Called(ctx, note, snapshot)
	return args.Error(0)
}

func (m *MockNoteRepository) FindVersion(ctx context.Context, noteID uuid.UUID, version int) (*domain.NoteVersion, error) {
	args := m.Called(ctx, noteID, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NoteVersion), args.Error(1)
}

func (m *MockNoteRepository) ListVersions(ctx context.Context, noteID uuid.UUID) ([]*domain.NoteVersion, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.NoteVersion), args.Error(1)
}

type MockCostRepository struct {
	mock.Mock
}

func (m *MockCostRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.CostEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostEntry), args.Error(1)
}

func (m *MockCostRepository) UpdateStatus(ctx context.Context, entry *domain.CostEntry, expected domain.CostStatus) error {
	args := m.Called(ctx, entry, expected)
	return args.Error(0)
}

type MockProposalRepository struct {
	mock.Mock
}

func (m *MockProposalRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Proposal), args.Error(1)
}

func (m *MockProposalRepository) UpdateStatus(ctx context.Context, proposal *domain.Proposal, expected domain.ProposalStatus) error {
	args := m.Called(ctx, proposal, expected)
	return args.Error(0)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) BulkUpdate(ctx context.Context, projectID uuid.UUID, updates []domain.TaskUpdate) error {
	args := m.Called(ctx, projectID, updates)
	return args.Error(0)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Create(ctx context.Context, entry *domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter, scope domain.AuditScope) ([]*domain.AuditEntry, int, error) {
	args := m.Called(ctx, filter, scope)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.AuditEntry), args.Int(1), args.Error(2)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) CreateBatch(ctx context.Context, notifications []*domain.Notification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) MaintenanceEnabled(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockSettingsRepository) SetMaintenanceEnabled(ctx context.Context, enabled bool) error {
	args := m.Called(ctx, enabled)
	return args.Error(0)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
