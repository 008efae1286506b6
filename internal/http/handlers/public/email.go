package public

import (
	"net/mail"
	"strings"

	"github.com/botanical-decor/shop-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// WelcomeEmailRequest addresses the welcome email.
type WelcomeEmailRequest struct {
	Email string `json:"email" binding:"required"`
	Name  string `json:"name"`
}

// SendWelcomeEmail delivers the welcome email to an arbitrary address. The
// send goes through the queue when a worker is attached, otherwise inline.
func (h *Handler) SendWelcomeEmail(c *gin.Context) {
	var req WelcomeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		respondError(c, response.CodeBadRequest, "invalid email address", nil)
		return
	}

	if h.QueueClient != nil && h.QueueClient.Enabled() {
		if err := h.QueueClient.EnqueueWelcomeEmail(email, req.Name); err != nil {
			respondError(c, response.CodeInternal, "failed to enqueue email", err)
			return
		}
		response.Success(c, gin.H{"queued": true})
		return
	}

	if err := h.EmailService.SendWelcomeEmail(email, req.Name); err != nil {
		respondWithMappedError(c, err, emailErrorRules, response.CodeInternal, "failed to send email")
		return
	}
	response.Success(c, gin.H{"sent": true})
}

// TestSMTPStatus reports which SMTP settings are present and whether the
// server answers a handshake.
func (h *Handler) TestSMTPStatus(c *gin.Context) {
	cfg := h.Config.Email
	status := gin.H{
		"enabled":  cfg.Enabled,
		"has_host": cfg.Host != "",
		"has_port": cfg.Port != 0,
		"has_from": cfg.From != "",
		"has_auth": cfg.Username != "" || cfg.Password != "",
		"use_ssl":  cfg.UseSSL,
		"use_tls":  cfg.UseTLS,
	}

	if err := h.EmailService.ProbeSMTP(); err != nil {
		status["reachable"] = false
		status["error"] = err.Error()
		response.Success(c, status)
		return
	}
	status["reachable"] = true
	response.Success(c, status)
}

// TestSMTPSend sends a real welcome email to verify end-to-end delivery.
func (h *Handler) TestSMTPSend(c *gin.Context) {
	var req WelcomeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.EmailService.SendWelcomeEmail(strings.TrimSpace(req.Email), req.Name); err != nil {
		respondWithMappedError(c, err, emailErrorRules, response.CodeInternal, "failed to send email")
		return
	}
	response.Success(c, gin.H{"sent": true})
}
