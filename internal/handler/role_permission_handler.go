package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/maktabhq/maktab-backend/internal/model"
	"github.com/maktabhq/maktab-backend/internal/response"
	"github.com/maktabhq/maktab-backend/internal/service"
)

// RolePermissionHandler handles role and permission management endpoints.
type RolePermissionHandler struct {
	authzService *service.AuthzService
}

// NewRolePermissionHandler creates a new RolePermissionHandler.
func NewRolePermissionHandler(authzService *service.AuthzService) *RolePermissionHandler {
	return &RolePermissionHandler{authzService: authzService}
}

// CreateRole godoc
// POST /api/v1/roles
func (h *RolePermissionHandler) CreateRole(c *gin.Context) {
	var req model.CreateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	role, err := h.authzService.CreateRole(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateName) {
			response.Fail(c, http.StatusConflict, response.ErrDuplicateName)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "Role created", "role": role})
}

// GetRoles godoc
// GET /api/v1/roles
func (h *RolePermissionHandler) GetRoles(c *gin.Context) {
	roles, err := h.authzService.ListRoles(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if roles == nil {
		roles = []model.Role{}
	}

	response.Success(c, http.StatusOK, roles)
}

// CreatePermission godoc
// POST /api/v1/permissions
func (h *RolePermissionHandler) CreatePermission(c *gin.Context) {
	var req model.CreatePermissionRequest
	if !bindJSON(c, &req) {
		return
	}

	perm, err := h.authzService.CreatePermission(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateName) {
			response.Fail(c, http.StatusConflict, response.ErrDuplicateName)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "Permission created", "permission": perm})
}

// GetPermissions godoc
// GET /api/v1/permissions
func (h *RolePermissionHandler) GetPermissions(c *gin.Context) {
	perms, err := h.authzService.ListPermissions(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if perms == nil {
		perms = []model.Permission{}
	}

	response.Success(c, http.StatusOK, perms)
}

// AssignPermissionToRole godoc
// POST /api/v1/roles/assign-permission
func (h *RolePermissionHandler) AssignPermissionToRole(c *gin.Context) {
	var req model.AssignPermissionToRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.authzService.GrantPermissionToRole(c.Request.Context(), req.RoleName, req.PermissionName)
	if err != nil {
		if service.IsNotFound(err) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Permission assigned to role"})
}

// AssignRoleToUser godoc
// POST /api/v1/users/assign-role
func (h *RolePermissionHandler) AssignRoleToUser(c *gin.Context) {
	var req model.AssignRoleToUserRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.authzService.AssignRoleToUser(c.Request.Context(), req.UserID, req.RoleName)
	if err != nil {
		if service.IsNotFound(err) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Role assigned to user"})
}

// GetUserRoles godoc
// GET /api/v1/users/:user_id/roles
func (h *RolePermissionHandler) GetUserRoles(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	roles, err := h.authzService.UserRoleNames(c.Request.Context(), userID)
	if err != nil {
		if service.IsNotFound(err) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"roles": roles})
}

// AssignPermissionToUser godoc
// POST /api/v1/users/assign-permission
func (h *RolePermissionHandler) AssignPermissionToUser(c *gin.Context) {
	var req model.AssignPermissionToUserRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.authzService.GrantPermissionToUser(c.Request.Context(), req.UserID, req.PermissionName)
	if err != nil {
		if service.IsNotFound(err) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Permission assigned to user"})
}

// GetUserPermissions godoc
// GET /api/v1/users/:user_id/permissions
// Returns the user's effective permission set: direct grants plus permissions
// of all assigned roles, deduplicated.
func (h *RolePermissionHandler) GetUserPermissions(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	perms, err := h.authzService.UserPermissionNames(c.Request.Context(), userID)
	if err != nil {
		if service.IsNotFound(err) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"permissions": perms})
}
