package recipe

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-relay/internal/pkg/common"
)

// requestIDFrom 取得請求 ID，沒有時自行產生
func requestIDFrom(c *gin.Context) string {
	requestID := requestid.Get(c)
	if requestID == "" {
		requestID = c.GetHeader("X-Request-ID")
	}
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}
	return requestID
}

// writeError 依端點的錯誤政策輸出錯誤格式
func writeError(c *gin.Context, requestID string, err error, policy common.ErrorPolicy) {
	status, envelope := common.ResolveError(err, policy)
	appErr := common.AsAppError(err)

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("kind", string(appErr.Kind)),
		zap.String("code", appErr.Code),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= 500 {
		common.LogError("請求處理失敗", fields...)
	} else {
		common.LogWarn("請求驗證失敗", fields...)
	}

	_ = c.Error(err)
	c.JSON(status, envelope)
}
