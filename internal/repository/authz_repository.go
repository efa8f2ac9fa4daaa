package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maktabhq/maktab-backend/internal/model"
)

// AuthzRepository handles role/permission data access: the roles and
// permissions tables plus the three binding tables (role_user,
// permission_role, permission_user).
type AuthzRepository struct {
	pool *pgxpool.Pool
}

// NewAuthzRepository creates a new AuthzRepository.
func NewAuthzRepository(pool *pgxpool.Pool) *AuthzRepository {
	return &AuthzRepository{pool: pool}
}

// CreateRole inserts a new role. Returns ErrDuplicate if the (name, guard)
// pair already exists.
func (r *AuthzRepository) CreateRole(ctx context.Context, name, guard string) (*model.Role, error) {
	role := &model.Role{Name: name, GuardName: guard}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO roles (name, guard_name) VALUES ($1, $2)
		 RETURNING id, created_at`,
		name, guard,
	).Scan(&role.ID, &role.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return role, nil
}

// CreatePermission inserts a new permission. Returns ErrDuplicate if the
// (name, guard) pair already exists.
func (r *AuthzRepository) CreatePermission(ctx context.Context, name, guard string) (*model.Permission, error) {
	perm := &model.Permission{Name: name, GuardName: guard}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO permissions (name, guard_name) VALUES ($1, $2)
		 RETURNING id, created_at`,
		name, guard,
	).Scan(&perm.ID, &perm.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return perm, nil
}

// ListRoles retrieves all roles in insertion order.
func (r *AuthzRepository) ListRoles(ctx context.Context) ([]model.Role, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, guard_name, created_at FROM roles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []model.Role
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.GuardName, &role.CreatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// ListPermissions retrieves all permissions in insertion order.
func (r *AuthzRepository) ListPermissions(ctx context.Context) ([]model.Permission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, guard_name, created_at FROM permissions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perms []model.Permission
	for rows.Next() {
		var perm model.Permission
		if err := rows.Scan(&perm.ID, &perm.Name, &perm.GuardName, &perm.CreatedAt); err != nil {
			return nil, err
		}
		perms = append(perms, perm)
	}
	return perms, rows.Err()
}

// GetRoleByName retrieves a role by name within a guard scope.
func (r *AuthzRepository) GetRoleByName(ctx context.Context, name, guard string) (*model.Role, error) {
	role := &model.Role{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, guard_name, created_at FROM roles
		 WHERE name = $1 AND guard_name = $2`, name, guard,
	).Scan(&role.ID, &role.Name, &role.GuardName, &role.CreatedAt)
	if err != nil {
		return nil, err
	}
	return role, nil
}

// GetPermissionByName retrieves a permission by name within a guard scope.
func (r *AuthzRepository) GetPermissionByName(ctx context.Context, name, guard string) (*model.Permission, error) {
	perm := &model.Permission{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, guard_name, created_at FROM permissions
		 WHERE name = $1 AND guard_name = $2`, name, guard,
	).Scan(&perm.ID, &perm.Name, &perm.GuardName, &perm.CreatedAt)
	if err != nil {
		return nil, err
	}
	return perm, nil
}

// UserExists reports whether a user row exists.
func (r *AuthzRepository) UserExists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID,
	).Scan(&exists)
	return exists, err
}

// AttachPermissionToRole inserts a permission_role binding. Re-attaching is a
// no-op: the composite primary key absorbs duplicates.
func (r *AuthzRepository) AttachPermissionToRole(ctx context.Context, permissionID, roleID int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO permission_role (permission_id, role_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		permissionID, roleID,
	)
	return err
}

// AttachRoleToUser inserts a role_user binding, ignoring duplicates.
func (r *AuthzRepository) AttachRoleToUser(ctx context.Context, roleID, userID int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO role_user (role_id, user_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		roleID, userID,
	)
	return err
}

// AttachPermissionToUser inserts a direct permission_user binding, ignoring
// duplicates.
func (r *AuthzRepository) AttachPermissionToUser(ctx context.Context, permissionID, userID int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO permission_user (permission_id, user_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		permissionID, userID,
	)
	return err
}

// UserRoleNames retrieves the names of all roles assigned to a user,
// in assignment-table insertion order.
func (r *AuthzRepository) UserRoleNames(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT r.name
		 FROM roles r
		 JOIN role_user ru ON ru.role_id = r.id
		 WHERE ru.user_id = $1
		 ORDER BY r.id`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNames(rows)
}

// UserDirectPermissionNames retrieves the names of permissions granted
// directly to a user, independent of any role.
func (r *AuthzRepository) UserDirectPermissionNames(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.name
		 FROM permissions p
		 JOIN permission_user pu ON pu.permission_id = p.id
		 WHERE pu.user_id = $1
		 ORDER BY p.id`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNames(rows)
}

// UserRolePermissionNames retrieves the names of permissions a user holds
// through assigned roles. A permission bound to several of the user's roles
// appears once per binding; the service deduplicates.
func (r *AuthzRepository) UserRolePermissionNames(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.name
		 FROM permissions p
		 JOIN permission_role pr ON pr.permission_id = p.id
		 JOIN role_user ru ON ru.role_id = pr.role_id
		 WHERE ru.user_id = $1
		 ORDER BY p.id`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNames(rows)
}
