package api_test

import (
	"context"
	"time"

	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockUserService is a testify mock for service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) RegisterUser(ctx context.Context, name, email, password string) (*domain.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, externalID string) (*domain.User, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, externalID string, update service.UserUpdate) (*domain.User, error) {
	args := m.Called(ctx, externalID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, externalID string) error {
	args := m.Called(ctx, externalID)
	return args.Error(0)
}

// MockGroupService is a testify mock for service.GroupService.
type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) CreateGroup(ctx context.Context, name, creatorExternalID string) (*domain.Group, error) {
	args := m.Called(ctx, name, creatorExternalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupService) GetGroup(ctx context.Context, externalID string) (*domain.Group, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupService) ListGroups(ctx context.Context) ([]*domain.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Group), args.Error(1)
}

func (m *MockGroupService) UpdateGroup(ctx context.Context, externalID, name string) (*domain.Group, error) {
	args := m.Called(ctx, externalID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupService) DeleteGroup(ctx context.Context, externalID string) error {
	args := m.Called(ctx, externalID)
	return args.Error(0)
}

// MockMembershipService is a testify mock for service.MembershipService.
type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) Enroll(ctx context.Context, groupExternalID, userExternalID, role string) (*domain.Membership, error) {
	args := m.Called(ctx, groupExternalID, userExternalID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipService) UpdateRole(ctx context.Context, groupExternalID, userExternalID, role string) (*domain.Membership, error) {
	args := m.Called(ctx, groupExternalID, userExternalID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipService) Remove(ctx context.Context, groupExternalID, userExternalID string) error {
	args := m.Called(ctx, groupExternalID, userExternalID)
	return args.Error(0)
}

func (m *MockMembershipService) ListMembers(ctx context.Context, groupExternalID string) ([]*domain.GroupMember, error) {
	args := m.Called(ctx, groupExternalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.GroupMember), args.Error(1)
}

// MockTaskService is a testify mock for service.TaskService.
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) CreateTask(ctx context.Context, groupExternalID string, input service.TaskInput) (*domain.Task, error) {
	args := m.Called(ctx, groupExternalID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskService) GetTask(ctx context.Context, groupExternalID, taskExternalID string) (*domain.Task, error) {
	args := m.Called(ctx, groupExternalID, taskExternalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskService) ListTasks(ctx context.Context, groupExternalID string) ([]*domain.Task, error) {
	args := m.Called(ctx, groupExternalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTask(ctx context.Context, groupExternalID, taskExternalID string, update domain.TaskUpdate) (*domain.Task, error) {
	args := m.Called(ctx, groupExternalID, taskExternalID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, groupExternalID, taskExternalID string) error {
	args := m.Called(ctx, groupExternalID, taskExternalID)
	return args.Error(0)
}

func (m *MockTaskService) SendDeadlineReminders(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}
