package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-relay/internal/api/handlers/health"
	recipeHandler "recipe-relay/internal/api/handlers/recipe"
	"recipe-relay/internal/api/middleware"
	"recipe-relay/internal/core/ai/service"
	"recipe-relay/internal/infrastructure/config"
	"recipe-relay/internal/pkg/common"
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, aiService *service.Service) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.String("provider", aiService.ProviderName()),
		zap.Bool("model_configured", aiService.CredentialsConfigured()),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())
	router.Use(cors.New(corsConfig(cfg)))
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	router.Use(middleware.InjectConfig(cfg))

	handler := recipeHandler.NewHandler(aiService, aiService.ProviderName(), cfg)

	// 健康檢查路由
	router.GET("/", health.Root)
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// 菜餚辨識與食譜路由
	router.POST("/identify-dish", handler.HandleIdentifyDish)
	router.GET("/upload-limits", handler.HandleUploadLimits)
	router.POST("/images/identify-dish", handler.HandleIdentifyDish)
	registerRecipeRoutes(router.Group("/recipes"), handler)

	// 與 /api 前綴相容
	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/health", health.HealthCheck)

		images := apiGroup.Group("/images")
		images.POST("/identify-dish", handler.HandleIdentifyDish)
		images.GET("/upload-limits", handler.HandleUploadLimits)

		registerRecipeRoutes(apiGroup.Group("/recipes"), handler)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
		zap.Int64("max_image_size", cfg.Image.MaxSizeBytes),
		zap.String("dish_locale", cfg.Dish.Locale),
		zap.String("extraction_strategy", cfg.Extraction.Strategy),
	)

	return router
}

func registerRecipeRoutes(group *gin.RouterGroup, handler *recipeHandler.Handler) {
	group.POST("/generate", handler.HandleGenerateRecipe)
	group.GET("/health", health.RecipeHealthCheck)
}

// corsConfig 未設定來源時允許所有來源，但不帶憑證
func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = cfg.Server.CORSOrigins
	c.AllowCredentials = true
	return c
}
