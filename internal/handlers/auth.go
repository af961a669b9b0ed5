// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/orders-backend/internal/services"
	"github.com/javajoker/orders-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /user/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.authService.Register(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, nil)
}

// POST /user/register/confirm
func (h *AuthHandler) ConfirmAccount(c *gin.Context) {
	var req services.ConfirmAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ConfirmAccount(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, nil)
}

// POST /user/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"Token": token})
}

// POST /user/password_reset
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req services.PasswordResetRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, nil)
}

// POST /user/password_reset/confirm
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req services.PasswordResetConfirmRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ConfirmPasswordReset(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, nil)
}
