package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/maktabhq/maktab-backend/internal/model"
	"github.com/maktabhq/maktab-backend/internal/repository"
)

// AuthzStore is the persistence surface the authorization model needs.
// *repository.AuthzRepository satisfies it.
type AuthzStore interface {
	CreateRole(ctx context.Context, name, guard string) (*model.Role, error)
	CreatePermission(ctx context.Context, name, guard string) (*model.Permission, error)
	ListRoles(ctx context.Context) ([]model.Role, error)
	ListPermissions(ctx context.Context) ([]model.Permission, error)
	GetRoleByName(ctx context.Context, name, guard string) (*model.Role, error)
	GetPermissionByName(ctx context.Context, name, guard string) (*model.Permission, error)
	UserExists(ctx context.Context, userID int64) (bool, error)
	AttachPermissionToRole(ctx context.Context, permissionID, roleID int64) error
	AttachRoleToUser(ctx context.Context, roleID, userID int64) error
	AttachPermissionToUser(ctx context.Context, permissionID, userID int64) error
	UserRoleNames(ctx context.Context, userID int64) ([]string, error)
	UserDirectPermissionNames(ctx context.Context, userID int64) ([]string, error)
	UserRolePermissionNames(ctx context.Context, userID int64) ([]string, error)
}

// AuthzService is the authorization model: it manages roles, permissions, and
// their bindings to each other and to users, and answers effective-permission
// queries. Every query re-derives its answer from storage; nothing is cached.
type AuthzService struct {
	store AuthzStore
	guard string
}

// NewAuthzService creates a new AuthzService operating in the default guard scope.
func NewAuthzService(store AuthzStore) *AuthzService {
	return &AuthzService{store: store, guard: model.DefaultGuard}
}

// CreateRole creates a role with a unique name within the guard scope.
func (s *AuthzService) CreateRole(ctx context.Context, name string) (*model.Role, error) {
	role, err := s.store.CreateRole(ctx, name, s.guard)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("create role: %w", err)
	}
	return role, nil
}

// CreatePermission creates a permission with a unique name within the guard scope.
func (s *AuthzService) CreatePermission(ctx context.Context, name string) (*model.Permission, error) {
	perm, err := s.store.CreatePermission(ctx, name, s.guard)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("create permission: %w", err)
	}
	return perm, nil
}

// ListRoles returns all roles in insertion order.
func (s *AuthzService) ListRoles(ctx context.Context) ([]model.Role, error) {
	return s.store.ListRoles(ctx)
}

// ListPermissions returns all permissions in insertion order.
func (s *AuthzService) ListPermissions(ctx context.Context) ([]model.Permission, error) {
	return s.store.ListPermissions(ctx)
}

// GrantPermissionToRole binds a permission to a role, both looked up by name.
// Re-granting an existing binding is a no-op.
func (s *AuthzService) GrantPermissionToRole(ctx context.Context, roleName, permissionName string) error {
	role, err := s.store.GetRoleByName(ctx, roleName, s.guard)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRoleNotFound
		}
		return fmt.Errorf("lookup role: %w", err)
	}

	perm, err := s.store.GetPermissionByName(ctx, permissionName, s.guard)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPermissionNotFound
		}
		return fmt.Errorf("lookup permission: %w", err)
	}

	return s.store.AttachPermissionToRole(ctx, perm.ID, role.ID)
}

// AssignRoleToUser binds a role to a user. Re-assigning is a no-op.
func (s *AuthzService) AssignRoleToUser(ctx context.Context, userID int64, roleName string) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}

	role, err := s.store.GetRoleByName(ctx, roleName, s.guard)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRoleNotFound
		}
		return fmt.Errorf("lookup role: %w", err)
	}

	return s.store.AttachRoleToUser(ctx, role.ID, userID)
}

// GrantPermissionToUser grants a permission directly to a user, independent of
// any role. Re-granting is a no-op.
func (s *AuthzService) GrantPermissionToUser(ctx context.Context, userID int64, permissionName string) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}

	perm, err := s.store.GetPermissionByName(ctx, permissionName, s.guard)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPermissionNotFound
		}
		return fmt.Errorf("lookup permission: %w", err)
	}

	return s.store.AttachPermissionToUser(ctx, perm.ID, userID)
}

// UserRoleNames returns the names of all roles assigned to a user, in
// assignment order.
func (s *AuthzService) UserRoleNames(ctx context.Context, userID int64) ([]string, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	names, err := s.store.UserRoleNames(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user roles: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// UserPermissionNames returns the user's effective permission set: the union
// of directly granted permissions and permissions of all assigned roles,
// deduplicated by name and sorted.
func (s *AuthzService) UserPermissionNames(ctx context.Context, userID int64) ([]string, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	direct, err := s.store.UserDirectPermissionNames(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list direct permissions: %w", err)
	}

	derived, err := s.store.UserRolePermissionNames(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list role permissions: %w", err)
	}

	seen := make(map[string]struct{}, len(direct)+len(derived))
	union := make([]string, 0, len(direct)+len(derived))
	for _, name := range append(direct, derived...) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		union = append(union, name)
	}
	sort.Strings(union)

	return union, nil
}

func (s *AuthzService) requireUser(ctx context.Context, userID int64) error {
	exists, err := s.store.UserExists(ctx, userID)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}
