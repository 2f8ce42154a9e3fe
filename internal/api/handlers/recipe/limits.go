package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recipe-relay/internal/core/image"
	"recipe-relay/internal/pkg/common"
)

// HandleUploadLimits 回傳上傳限制
func (h *Handler) HandleUploadLimits(c *gin.Context) {
	c.JSON(http.StatusOK, common.UploadLimits{
		MaxFileSizeMB:    int(h.images.MaxSizeBytes() / (1024 * 1024)),
		SupportedFormats: image.SupportedFormats,
		MaxDimensions:    nil,
	})
}
