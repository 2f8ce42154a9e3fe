package recipe

import (
	"context"
	"io"

	"go.uber.org/zap"

	"recipe-relay/internal/core/ai/provider"
	"recipe-relay/internal/core/image"
	"recipe-relay/internal/infrastructure/config"
	"recipe-relay/internal/pkg/common"
)

// Gateway 模型呼叫介面，由 service.Service 實作
type Gateway interface {
	CheckCredentials() error
	Generate(ctx context.Context, req *provider.Request) (string, error)
}

// DishUpload 上傳的菜餚圖片
type DishUpload struct {
	ContentType string
	Body        io.Reader // nil 表示請求中沒有圖片
}

// DishService 菜餚辨識服務
type DishService struct {
	gateway    Gateway
	images     *image.Service
	generation config.GenerationConfig
	strategy   common.ExtractionStrategy
}

// NewDishService 創建新的菜餚辨識服務
func NewDishService(gateway Gateway, images *image.Service, cfg *config.Config) *DishService {
	strategy, _ := common.ParseExtractionStrategy(cfg.Extraction.Strategy)
	return &DishService{
		gateway:    gateway,
		images:     images,
		generation: cfg.AI.Dish,
		strategy:   strategy,
	}
}

// IdentifyDish 辨識圖片中的菜餚
func (s *DishService) IdentifyDish(ctx context.Context, upload DishUpload, l *Locale) (*common.DishIdentificationResult, error) {
	if err := s.gateway.CheckCredentials(); err != nil {
		return nil, err
	}

	if upload.Body == nil {
		return nil, common.ErrMissingImage
	}

	processed, err := s.images.Process(upload.ContentType, upload.Body)
	if err != nil {
		common.LogWarn("圖片驗證失敗",
			zap.String("request_id", common.RequestIDFromContext(ctx)),
			zap.String("content_type", upload.ContentType),
			zap.Error(err),
		)
		return nil, err
	}

	text, err := s.gateway.Generate(ctx, &provider.Request{
		Prompt:          BuildDishPrompt(l),
		Image:           &provider.ImagePayload{MIMEType: processed.MIMEType, Data: processed.Data},
		Temperature:     s.generation.Temperature,
		MaxOutputTokens: s.generation.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	data, err := common.ExtractJSONObject(text, s.strategy)
	if err != nil {
		common.LogError("AI 響應解析失敗",
			zap.String("request_id", common.RequestIDFromContext(ctx)),
			zap.Int("response_length", len(text)),
			zap.Error(err),
		)
		return nil, err
	}

	result, err := MergeDish(data, l)
	if err != nil {
		common.LogError("菜餚辨識結果缺少欄位",
			zap.String("request_id", common.RequestIDFromContext(ctx)),
			zap.Error(err),
		)
		return nil, err
	}

	common.LogInfo("菜餚辨識成功",
		zap.String("request_id", common.RequestIDFromContext(ctx)),
		zap.String("locale", l.Code),
		zap.String("dish_name", result.DishName),
		zap.Int("ingredients_count", len(result.Ingredients)),
	)
	return result, nil
}
