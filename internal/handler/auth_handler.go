package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maktabhq/maktab-backend/internal/middleware"
	"github.com/maktabhq/maktab-backend/internal/model"
	"github.com/maktabhq/maktab-backend/internal/response"
	"github.com/maktabhq/maktab-backend/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register godoc
// POST /api/v1/register
// Creates a user with a hashed password. The email must be unique.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		if errors.Is(err, service.ErrDuplicateName) {
			response.Fail(c, http.StatusConflict, response.ErrDuplicateName)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "User Created"})
}

// Login godoc
// POST /api/v1/login
// Verifies credentials and issues an opaque bearer token. Unknown email and
// wrong password produce the identical 401 response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, _, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"access_token": token})
}

// Logout godoc
// POST /api/v1/logout
// Revokes every outstanding token issued to the authenticated caller.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.RevokeAllTokens(c.Request.Context(), userID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}
