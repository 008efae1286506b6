package admin

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/botanical-decor/shop-api/internal/http/handlers/shared"
	"github.com/botanical-decor/shop-api/internal/http/response"
	"github.com/botanical-decor/shop-api/internal/repository"
	"github.com/botanical-decor/shop-api/internal/service"

	"github.com/gin-gonic/gin"
)

// BlockUserRequest toggles an account's blocked flag.
type BlockUserRequest struct {
	Blocked *bool `json:"blocked" binding:"required"`
}

// ListUsers returns profile pages, deleted accounts included.
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.ProfileListFilter{
		Page:           page,
		PageSize:       pageSize,
		Keyword:        strings.TrimSpace(c.Query("keyword")),
		Role:           strings.TrimSpace(c.Query("role")),
		IncludeDeleted: true,
	}
	if raw := c.Query("blocked"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter.Blocked = &v
		}
	}

	profiles, total, err := h.ProfileService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load users", err)
		return
	}
	response.SuccessWithPage(c, profiles, response.NewPagination(page, pageSize, total))
}

// GetUser returns one profile.
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	profile, err := h.ProfileService.GetByID(id)
	if err != nil {
		respondProfileError(c, err, "failed to load user")
		return
	}
	response.Success(c, profile)
}

// BlockUser sets or clears an account's blocked flag. Blocked accounts
// cannot log in and existing tokens stop working at the next request.
func (h *Handler) BlockUser(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	if id == adminID {
		respondError(c, response.CodeBadRequest, "cannot block your own account", nil)
		return
	}
	var req BlockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.ProfileService.SetBlocked(id, *req.Blocked); err != nil {
		respondProfileError(c, err, "failed to update user")
		return
	}
	requestLog(c).Infow("user_block_updated",
		"admin_id", adminID,
		"user_id", id,
		"blocked", *req.Blocked,
	)
	response.Success(c, gin.H{"blocked": *req.Blocked})
}

// DeleteUser soft-deletes an account. The row and its email stay reserved.
func (h *Handler) DeleteUser(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	if id == adminID {
		respondError(c, response.CodeBadRequest, "cannot delete your own account", nil)
		return
	}
	if err := h.ProfileService.SetDeleted(id, true); err != nil {
		respondProfileError(c, err, "failed to delete user")
		return
	}
	requestLog(c).Infow("user_deleted", "admin_id", adminID, "user_id", id)
	response.Success(c, gin.H{"deleted": true})
}

// RestoreUser clears the soft-delete flag.
func (h *Handler) RestoreUser(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	if err := h.ProfileService.SetDeleted(id, false); err != nil {
		respondProfileError(c, err, "failed to restore user")
		return
	}
	response.Success(c, gin.H{"restored": true})
}

func respondProfileError(c *gin.Context, err error, fallbackMsg string) {
	if errors.Is(err, service.ErrNotFound) {
		respondError(c, response.CodeNotFound, "user not found", nil)
		return
	}
	respondError(c, response.CodeInternal, fallbackMsg, err)
}
