package public

import (
	"errors"

	"github.com/botanical-decor/shop-api/internal/http/response"
	"github.com/botanical-decor/shop-api/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
}

// LoginRequest is the signin payload.
type LoginRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// ForgotPasswordRequest asks for a reset code by email.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResetPasswordRequest redeems a reset code.
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// Register creates an account and signs the caller in.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	profile, token, expiresAt, err := h.AuthService.Register(req.Email, req.Password, req.FullName)
	if err != nil {
		// Policy violations carry a user-facing reason, keep it.
		if errors.Is(err, service.ErrWeakPassword) {
			respondError(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "failed to register")
		return
	}
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       profile,
	})
}

// Login authenticates and returns a JWT.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	profile, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password, req.RememberMe)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeUnauthorized, "invalid email or password")
		return
	}
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       profile,
	})
}

// ForgotPassword emails a reset code. The response is identical whether or
// not the address has an account.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.AuthService.ForgotPassword(req.Email); err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "failed to send reset code")
		return
	}
	response.SuccessWithMsg(c, "if the address has an account, a reset code is on its way", nil)
}

// ResetPassword redeems a reset code and sets a new password.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.AuthService.ResetPassword(req.Email, req.Code, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWeakPassword) {
			respondError(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "failed to reset password")
		return
	}
	response.SuccessWithMsg(c, "password updated", nil)
}

// Me returns the caller's profile.
func (h *Handler) Me(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	profile, err := h.AuthService.GetProfileByID(uid)
	if err != nil || profile == nil {
		respondError(c, response.CodeNotFound, "profile not found", err)
		return
	}
	response.Success(c, profile)
}
