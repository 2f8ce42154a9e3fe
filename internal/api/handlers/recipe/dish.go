package recipe

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	recipeService "recipe-relay/internal/core/recipe"
	"recipe-relay/internal/pkg/common"
)

// ImageField multipart 中圖片欄位名稱
const ImageField = "image"

// HandleIdentifyDish 處理 /identify-dish 菜餚辨識 API
func (h *Handler) HandleIdentifyDish(c *gin.Context) {
	requestID := requestIDFrom(c)

	lang := c.Query("lang")
	if lang == "" {
		lang = c.PostForm("lang")
	}
	locale := recipeService.ResolveLocale(lang, h.config.Dish.Locale)
	policy := recipeService.DishErrorPolicy(locale, h.providerName, h.images.MaxSizeBytes())

	common.LogInfo("開始處理菜餚辨識請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
		zap.String("locale", locale.Code),
	)

	upload := recipeService.DishUpload{}
	fileHeader, err := c.FormFile(ImageField)
	switch {
	case err == nil:
		file, openErr := fileHeader.Open()
		if openErr != nil {
			writeError(c, requestID, common.NewUnreadableImageError(openErr), policy)
			return
		}
		defer file.Close()

		upload.ContentType = fileHeader.Header.Get("Content-Type")
		upload.Body = file
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// 沒有圖片欄位，交由服務在檢查憑證後回報
	default:
		common.LogDebug("multipart 解析失敗", zap.String("request_id", requestID), zap.Error(err))
		writeError(c, requestID, common.ErrInvalidRequest, policy)
		return
	}

	ctx := common.WithRequestID(c.Request.Context(), requestID)
	result, err := h.dishService.IdentifyDish(ctx, upload, locale)
	if err != nil {
		writeError(c, requestID, err, policy)
		return
	}

	c.JSON(http.StatusOK, result)
}
