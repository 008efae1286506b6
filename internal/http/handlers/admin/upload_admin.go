package admin

import (
	"errors"
	"strings"

	"github.com/botanical-decor/shop-api/internal/http/response"
	"github.com/botanical-decor/shop-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadBase64Request carries a data-URL image.
type UploadBase64Request struct {
	Image string `json:"image" binding:"required"`
	Scene string `json:"scene"`
}

// Upload stores an image and returns its public URL. Multipart uploads use
// the "file" field; JSON bodies carry a base64 data URL.
func (h *Handler) Upload(c *gin.Context) {
	scene := strings.TrimSpace(c.Query("scene"))

	if strings.HasPrefix(c.GetHeader("Content-Type"), "application/json") {
		var req UploadBase64Request
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "invalid request body", err)
			return
		}
		if req.Scene != "" {
			scene = req.Scene
		}
		url, err := h.UploadService.SaveBase64(req.Image, scene)
		if err != nil {
			respondUploadError(c, err)
			return
		}
		response.Success(c, gin.H{"url": url})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "file is required", err)
		return
	}
	if formScene := c.PostForm("scene"); formScene != "" {
		scene = formScene
	}
	url, err := h.UploadService.SaveFile(file, scene)
	if err != nil {
		respondUploadError(c, err)
		return
	}
	response.Success(c, gin.H{"url": url})
}

func respondUploadError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrUploadInvalid) {
		respondError(c, response.CodeBadRequest, err.Error(), nil)
		return
	}
	respondError(c, response.CodeInternal, "failed to store upload", err)
}
