package health

import (
	"net/http"
	"runtime"
	"strings"
	"time"

	"recipe-relay/internal/infrastructure/config"
	"recipe-relay/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status           string                 `json:"status"`
	Message          string                 `json:"message"`
	Provider         string                 `json:"provider"`
	ModelConfigured  bool                   `json:"model_configured"`
	GeminiConfigured bool                   `json:"gemini_configured"`
	Version          string                 `json:"version"`
	Timestamp        time.Time              `json:"timestamp"`
	Runtime          map[string]interface{} `json:"runtime"`
}

// ServiceHealthResponse 單一服務的健康檢查響應
type ServiceHealthResponse struct {
	Status           string `json:"status"`
	Service          string `json:"service"`
	Provider         string `json:"provider"`
	ModelConfigured  bool   `json:"model_configured"`
	GeminiConfigured bool   `json:"gemini_configured"`
}

// configFrom 從 context 取得設定
func configFrom(c *gin.Context) (*config.Config, bool) {
	cfg, exists := c.Get("config")
	if !exists {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, common.ErrorEnvelope{
			Error:      "Configuration not found",
			StatusCode: http.StatusInternalServerError,
		})
		return nil, false
	}
	conf, ok := cfg.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		c.JSON(http.StatusInternalServerError, common.ErrorEnvelope{
			Error:      "Invalid configuration type",
			StatusCode: http.StatusInternalServerError,
		})
		return nil, false
	}
	return conf, true
}

// geminiConfigured 舊版客戶端使用的欄位，只反映 Gemini 金鑰
func geminiConfigured(conf *config.Config) bool {
	return strings.TrimSpace(conf.AI.Gemini.APIKey) != ""
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	conf, ok := configFrom(c)
	if !ok {
		return
	}

	response := HealthResponse{
		Status:           "OK",
		Message:          "AI Recipe Generator API is running",
		Provider:         conf.AI.Provider,
		ModelConfigured:  conf.CredentialsConfigured(),
		GeminiConfigured: geminiConfigured(conf),
		Version:          conf.App.Version,
		Timestamp:        time.Now(),
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
		},
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// RecipeHealthCheck 食譜服務健康檢查
func RecipeHealthCheck(c *gin.Context) {
	conf, ok := configFrom(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, ServiceHealthResponse{
		Status:           "OK",
		Service:          "Recipe Generation",
		Provider:         conf.AI.Provider,
		ModelConfigured:  conf.CredentialsConfigured(),
		GeminiConfigured: geminiConfigured(conf),
	})
}

// ReadinessCheck 未設定模型憑證時回傳 503
func ReadinessCheck(c *gin.Context) {
	conf, ok := configFrom(c)
	if !ok {
		return
	}

	if !conf.CredentialsConfigured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"reason": "model credentials not configured",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

// Root API 說明
func Root(c *gin.Context) {
	version := ""
	if conf, ok := c.Get("config"); ok {
		if cfg, ok := conf.(*config.Config); ok {
			version = cfg.App.Version
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "AI Recipe Generator API",
		"version": version,
	})
}
