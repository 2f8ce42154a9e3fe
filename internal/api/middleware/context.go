package middleware

import (
	"github.com/gin-gonic/gin"

	"recipe-relay/internal/infrastructure/config"
)

// ConfigKey context 中設定的鍵
const ConfigKey = "config"

// InjectConfig 將唯讀設定放入 gin context，供健康檢查使用
func InjectConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ConfigKey, cfg)
		c.Next()
	}
}
