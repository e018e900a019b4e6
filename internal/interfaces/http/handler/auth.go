package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	appidentity "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// AuthHandler serves registration, login and the token lifecycle
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
	jwtCfg      config.JWTConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *appidentity.AuthService, jwtCfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{authService: authService, jwtCfg: jwtCfg}
}

// Register creates a shopper account and signs it in
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req appidentity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Login authenticates a user and returns a token pair
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Refresh exchanges a refresh token for a fresh token pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req appidentity.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if isTokenError(err) {
			h.Unauthorized(c, "Invalid refresh token")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Success(c, pair)
}

// Logout invalidates the caller's current token pair
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req appidentity.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	accessToken := extractBearerToken(c)
	if err := h.authService.Logout(c.Request.Context(), accessToken, req.RefreshToken); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Logged out"})
}

// LogoutAll invalidates every token issued to the caller
// POST /api/v1/auth/logout-all
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.authService.LogoutAll(c.Request.Context(), userID, h.jwtCfg.RefreshTokenExpiration); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "All sessions terminated"})
}

// Me returns the authenticated user's profile
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ChangePassword updates the caller's password and revokes existing tokens
// POST /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appidentity.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req, h.jwtCfg.RefreshTokenExpiration); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Password changed, please sign in again"})
}

// isTokenError reports whether err stems from the presented token
// rather than from the backend, so the caller gets a 401 instead of a 500.
func isTokenError(err error) bool {
	return errors.Is(err, auth.ErrInvalidToken) ||
		errors.Is(err, auth.ErrExpiredToken) ||
		errors.Is(err, auth.ErrInvalidTokenType) ||
		errors.Is(err, auth.ErrInvalidClaims) ||
		errors.Is(err, auth.ErrTokenNotYetValid) ||
		errors.Is(err, auth.ErrMissingUserID) ||
		errors.Is(err, auth.ErrMaxRefreshExceeded) ||
		errors.Is(err, auth.ErrTokenBlacklisted)
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader(middleware.AuthHeaderKey)
	if strings.HasPrefix(header, middleware.BearerPrefix) {
		return strings.TrimPrefix(header, middleware.BearerPrefix)
	}
	return ""
}
