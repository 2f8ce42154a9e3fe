package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-relay/internal/core/image"
	recipeService "recipe-relay/internal/core/recipe"
	"recipe-relay/internal/infrastructure/config"
	"recipe-relay/internal/pkg/common"
)

// Handler 菜餚辨識與食譜生成的 HTTP 處理器
type Handler struct {
	dishService   *recipeService.DishService
	recipeService *recipeService.RecipeService
	images        *image.Service
	config        *config.Config
	providerName  string
}

// NewHandler 創建新的處理器
func NewHandler(gateway recipeService.Gateway, providerName string, cfg *config.Config) *Handler {
	images := image.NewService(cfg.Image.MaxSizeBytes)
	return &Handler{
		dishService:   recipeService.NewDishService(gateway, images, cfg),
		recipeService: recipeService.NewRecipeService(gateway, cfg),
		images:        images,
		config:        cfg,
		providerName:  providerName,
	}
}

// HandleGenerateRecipe 處理 /recipes/generate 食譜生成 API
func (h *Handler) HandleGenerateRecipe(c *gin.Context) {
	requestID := requestIDFrom(c)
	policy := recipeService.RecipeErrorPolicy(h.providerName)

	common.LogInfo("開始處理食譜生成請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req common.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogDebug("請求格式無效", zap.String("request_id", requestID), zap.Error(err))
		writeError(c, requestID, common.ErrInvalidRequest, policy)
		return
	}

	ctx := common.WithRequestID(c.Request.Context(), requestID)
	result, err := h.recipeService.GenerateRecipe(ctx, &req)
	if err != nil {
		writeError(c, requestID, err, policy)
		return
	}

	c.JSON(http.StatusOK, result)
}
