package model

import "time"

// DefaultGuard is the guard scope applied when a request does not name one.
// The system runs a single authentication context, so every role and
// permission lives under this scope.
const DefaultGuard = "web"

// Role represents a named bundle of permissions.
// Role names are unique within a guard scope.
type Role struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	GuardName string    `json:"guard_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Permission represents a single grantable capability.
// Permission names are unique within a guard scope.
type Permission struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	GuardName string    `json:"guard_name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateRoleRequest is the payload for creating a role.
type CreateRoleRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreatePermissionRequest is the payload for creating a permission.
type CreatePermissionRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// AssignPermissionToRoleRequest binds an existing permission to an existing role.
type AssignPermissionToRoleRequest struct {
	RoleName       string `json:"role_name" binding:"required"`
	PermissionName string `json:"permission_name" binding:"required"`
}

// AssignRoleToUserRequest binds an existing role to an existing user.
type AssignRoleToUserRequest struct {
	UserID   int64  `json:"user_id" binding:"required"`
	RoleName string `json:"role_name" binding:"required"`
}

// AssignPermissionToUserRequest grants a permission directly to a user,
// independent of any role.
type AssignPermissionToUserRequest struct {
	UserID         int64  `json:"user_id" binding:"required"`
	PermissionName string `json:"permission_name" binding:"required"`
}
