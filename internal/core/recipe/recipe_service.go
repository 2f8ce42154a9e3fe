package recipe

import (
	"context"

	"go.uber.org/zap"

	"recipe-relay/internal/core/ai/provider"
	"recipe-relay/internal/infrastructure/config"
	"recipe-relay/internal/pkg/common"
)

// RecipeService 食譜生成服務
type RecipeService struct {
	gateway    Gateway
	generation config.GenerationConfig
	strategy   common.ExtractionStrategy
}

// NewRecipeService 創建新的食譜生成服務
func NewRecipeService(gateway Gateway, cfg *config.Config) *RecipeService {
	strategy, _ := common.ParseExtractionStrategy(cfg.Extraction.Strategy)
	return &RecipeService{
		gateway:    gateway,
		generation: cfg.AI.Recipe,
		strategy:   strategy,
	}
}

// GenerateRecipe 根據食材生成食譜
func (s *RecipeService) GenerateRecipe(ctx context.Context, req *common.RecipeRequest) (*common.RecipeResult, error) {
	if err := ValidateRecipeRequest(req); err != nil {
		return nil, err
	}
	if err := s.gateway.CheckCredentials(); err != nil {
		return nil, err
	}

	requestID := common.RequestIDFromContext(ctx)
	common.LogInfo("開始生成食譜",
		zap.String("request_id", requestID),
		zap.Int("ingredients_count", len(req.Ingredients)),
		zap.Int("servings", req.ServingCount()),
	)

	text, err := s.gateway.Generate(ctx, &provider.Request{
		Prompt:          BuildRecipePrompt(req),
		Temperature:     s.generation.Temperature,
		MaxOutputTokens: s.generation.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	data, err := common.ExtractJSONObject(text, s.strategy)
	if err != nil {
		common.LogError("AI 響應解析失敗",
			zap.String("request_id", requestID),
			zap.Int("response_length", len(text)),
			zap.Error(err),
		)
		return nil, err
	}

	result, err := MergeRecipe(data, req.ServingCount())
	if err != nil {
		common.LogError("食譜格式不完整",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, err
	}

	common.LogInfo("食譜生成成功",
		zap.String("request_id", requestID),
		zap.String("name", result.Name),
	)
	return result, nil
}
