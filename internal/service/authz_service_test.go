package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/maktabhq/maktab-backend/internal/model"
	"github.com/maktabhq/maktab-backend/internal/repository"
)

// MockAuthzStore is a mock implementation of AuthzStore.
type MockAuthzStore struct {
	mock.Mock
}

func (m *MockAuthzStore) CreateRole(ctx context.Context, name, guard string) (*model.Role, error) {
	args := m.Called(ctx, name, guard)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockAuthzStore) CreatePermission(ctx context.Context, name, guard string) (*model.Permission, error) {
	args := m.Called(ctx, name, guard)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Permission), args.Error(1)
}

func (m *MockAuthzStore) ListRoles(ctx context.Context) ([]model.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Role), args.Error(1)
}

func (m *MockAuthzStore) ListPermissions(ctx context.Context) ([]model.Permission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Permission), args.Error(1)
}

func (m *MockAuthzStore) GetRoleByName(ctx context.Context, name, guard string) (*model.Role, error) {
	args := m.Called(ctx, name, guard)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockAuthzStore) GetPermissionByName(ctx context.Context, name, guard string) (*model.Permission, error) {
	args := m.Called(ctx, name, guard)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Permission), args.Error(1)
}

func (m *MockAuthzStore) UserExists(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthzStore) AttachPermissionToRole(ctx context.Context, permissionID, roleID int64) error {
	args := m.Called(ctx, permissionID, roleID)
	return args.Error(0)
}

func (m *MockAuthzStore) AttachRoleToUser(ctx context.Context, roleID, userID int64) error {
	args := m.Called(ctx, roleID, userID)
	return args.Error(0)
}

func (m *MockAuthzStore) AttachPermissionToUser(ctx context.Context, permissionID, userID int64) error {
	args := m.Called(ctx, permissionID, userID)
	return args.Error(0)
}

func (m *MockAuthzStore) UserRoleNames(ctx context.Context, userID int64) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAuthzStore) UserDirectPermissionNames(ctx context.Context, userID int64) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAuthzStore) UserRolePermissionNames(ctx context.Context, userID int64) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestAuthzService_CreateRole(t *testing.T) {
	ctx := context.Background()

	t.Run("creates role in default guard scope", func(t *testing.T) {
		store := new(MockAuthzStore)
		store.On("CreateRole", ctx, "admin", model.DefaultGuard).
			Return(&model.Role{ID: 1, Name: "admin", GuardName: model.DefaultGuard}, nil)

		svc := NewAuthzService(store)
		role, err := svc.CreateRole(ctx, "admin")

		assert.NoError(t, err)
		assert.Equal(t, "admin", role.Name)
		assert.Equal(t, model.DefaultGuard, role.GuardName)
		store.AssertExpectations(t)
	})

	t.Run("duplicate name", func(t *testing.T) {
		store := new(MockAuthzStore)
		store.On("CreateRole", ctx, "admin", model.DefaultGuard).
			Return(nil, repository.ErrDuplicate)

		svc := NewAuthzService(store)
		_, err := svc.CreateRole(ctx, "admin")

		assert.ErrorIs(t, err, ErrDuplicateName)
	})
}

func TestAuthzService_CreatePermission(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate name", func(t *testing.T) {
		store := new(MockAuthzStore)
		store.On("CreatePermission", ctx, "students:read", model.DefaultGuard).
			Return(nil, repository.ErrDuplicate)

		svc := NewAuthzService(store)
		_, err := svc.CreatePermission(ctx, "students:read")

		assert.ErrorIs(t, err, ErrDuplicateName)
	})
}

func TestAuthzService_GrantPermissionToRole(t *testing.T) {
	ctx := context.Background()

	t.Run("role not found", func(t *testing.T) {
		store := new(MockAuthzStore)
		store.On("GetRoleByName", ctx, "ghost", model.DefaultGuard).Return(nil, pgx.ErrNoRows)

		svc := NewAuthzService(store)
		err := svc.GrantPermissionToRole(ctx, "ghost", "students:read")

		assert.ErrorIs(t, err, ErrRoleNotFound)
	})

	t.Run("permission not found", func(t *testing.T) {
		store := new(MockAuthzStore)
		store.On("GetRoleByName", ctx, "admin", model.DefaultGuard).
			Return(&model.Role{ID: 1, Name: "admin"}, nil)
		store.On("GetPermissionByName", ctx, "ghost", model.DefaultGuard).Return(nil, pgx.ErrNoRows)

		svc := NewAuthzService(store)
		err := svc.GrantPermissionToRole(ctx, "admin", "ghost")

		assert.ErrorIs(t, err, ErrPermissionNotFound)
	})

	t.Run("attaches by resolved ids", func(t *testing.T) {
		store := new(MockAuthzStore)
		store.On("GetRoleByName", ctx, "admin", model.DefaultGuard).
			Return(&model.Role{ID: 7, Name: "admin"}, nil)
		store.On("GetPermissionByName", ctx, "students:read", model.DefaultGuard).
			Return(&model.Permission{ID: 3, Name: "students:read"}, nil)
		store.On("AttachPermissionToRole", ctx, int64(3), int64(7)).Return(nil)

		svc := NewAuthzService(store)
		err := svc.GrantPermissionToRole(ctx, "admin", "students:read")

		assert.NoError(t, err)
		store.AssertExpectations(t)
	})
}

func TestAuthzService_AssignRoleToUser(t *testing.T) {
	ctx := context.Background()

	t.Run("user not found", func(t *testing.T) {
		store := new(MockAuthzStore)
		store.On("UserExists", ctx, int64(42)).Return(false, nil)

		svc := NewAuthzService(store)
		err := svc.AssignRoleToUser(ctx, 42, "admin")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("assigns existing role", func(t *testing.T) {
		store := new(MockAuthzStore)
		store.On("UserExists", ctx, int64(42)).Return(true, nil)
		store.On("GetRoleByName", ctx, "admin", model.DefaultGuard).
			Return(&model.Role{ID: 7, Name: "admin"}, nil)
		store.On("AttachRoleToUser", ctx, int64(7), int64(42)).Return(nil)

		svc := NewAuthzService(store)
		err := svc.AssignRoleToUser(ctx, 42, "admin")

		assert.NoError(t, err)
		store.AssertExpectations(t)
	})
}

func TestAuthzService_GrantPermissionToUser(t *testing.T) {
	ctx := context.Background()

	t.Run("permission not found", func(t *testing.T) {
		store := new(MockAuthzStore)
		store.On("UserExists", ctx, int64(42)).Return(true, nil)
		store.On("GetPermissionByName", ctx, "ghost", model.DefaultGuard).Return(nil, pgx.ErrNoRows)

		svc := NewAuthzService(store)
		err := svc.GrantPermissionToUser(ctx, 42, "ghost")

		assert.ErrorIs(t, err, ErrPermissionNotFound)
	})
}

func TestAuthzService_UserRoleNames(t *testing.T) {
	ctx := context.Background()

	t.Run("user not found", func(t *testing.T) {
		store := new(MockAuthzStore)
		store.On("UserExists", ctx, int64(9)).Return(false, nil)

		svc := NewAuthzService(store)
		_, err := svc.UserRoleNames(ctx, 9)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("no roles yields empty slice, not nil", func(t *testing.T) {
		store := new(MockAuthzStore)
		store.On("UserExists", ctx, int64(9)).Return(true, nil)
		store.On("UserRoleNames", ctx, int64(9)).Return(nil, nil)

		svc := NewAuthzService(store)
		names, err := svc.UserRoleNames(ctx, 9)

		assert.NoError(t, err)
		assert.NotNil(t, names)
		assert.Empty(t, names)
	})
}

func TestAuthzService_UserPermissionNames(t *testing.T) {
	ctx := context.Background()

	t.Run("union of direct and role-derived, deduplicated and sorted", func(t *testing.T) {
		store := new(MockAuthzStore)
		store.On("UserExists", ctx, int64(1)).Return(true, nil)
		store.On("UserDirectPermissionNames", ctx, int64(1)).
			Return([]string{"reports:view", "students:read"}, nil)
		store.On("UserRolePermissionNames", ctx, int64(1)).
			Return([]string{"students:read", "payments:write", "students:read"}, nil)

		svc := NewAuthzService(store)
		names, err := svc.UserPermissionNames(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, []string{"payments:write", "reports:view", "students:read"}, names)
	})

	t.Run("no grants at all yields empty slice", func(t *testing.T) {
		store := new(MockAuthzStore)
		store.On("UserExists", ctx, int64(2)).Return(true, nil)
		store.On("UserDirectPermissionNames", ctx, int64(2)).Return(nil, nil)
		store.On("UserRolePermissionNames", ctx, int64(2)).Return(nil, nil)

		svc := NewAuthzService(store)
		names, err := svc.UserPermissionNames(ctx, 2)

		assert.NoError(t, err)
		assert.NotNil(t, names)
		assert.Empty(t, names)
	})
}
