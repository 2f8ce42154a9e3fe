package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recipe-relay/internal/core/ai/gemini"
	"recipe-relay/internal/core/ai/openrouter"
	"recipe-relay/internal/core/ai/provider"
	"recipe-relay/internal/infrastructure/config"
	"recipe-relay/internal/pkg/common"
)

// Service 模型呼叫的唯一入口
type Service struct {
	config   *config.Config
	provider provider.Provider
}

// NewService 依設定建立供應商；未設定憑證時仍可建立，呼叫時回傳設定錯誤
func NewService(ctx context.Context, cfg *config.Config) (*Service, error) {
	s := &Service{config: cfg}
	if !cfg.CredentialsConfigured() {
		return s, nil
	}

	p, err := newProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.provider = p
	return s, nil
}

// NewServiceWithProvider 使用指定的供應商，主要用於測試
func NewServiceWithProvider(cfg *config.Config, p provider.Provider) *Service {
	return &Service{config: cfg, provider: p}
}

func newProvider(ctx context.Context, cfg *config.Config) (provider.Provider, error) {
	switch cfg.AI.Provider {
	case config.ProviderOpenRouter:
		return openrouter.NewClient(openrouter.Config{
			APIKey:  cfg.AI.OpenRouter.APIKey,
			Model:   cfg.AI.OpenRouter.Model,
			BaseURL: cfg.AI.OpenRouter.BaseURL,
		})
	case config.ProviderGemini:
		return gemini.NewClient(ctx, gemini.Config{
			APIKey: cfg.AI.Gemini.APIKey,
			Model:  cfg.AI.Gemini.Model,
		})
	}
	return nil, fmt.Errorf("unsupported ai provider: %q", cfg.AI.Provider)
}

// CredentialsConfigured 是否可以呼叫模型
func (s *Service) CredentialsConfigured() bool {
	return s.provider != nil && s.config.CredentialsConfigured()
}

// CheckCredentials 在建立提示之前確認憑證
func (s *Service) CheckCredentials() error {
	if !s.CredentialsConfigured() {
		return common.ErrModelNotConfigured
	}
	return nil
}

// ProviderName 目前使用的供應商
func (s *Service) ProviderName() string {
	if s.provider == nil {
		return s.config.AI.Provider
	}
	return s.provider.Name()
}

// Generate 呼叫模型並回傳原始文字
func (s *Service) Generate(ctx context.Context, req *provider.Request) (string, error) {
	if err := s.CheckCredentials(); err != nil {
		return "", err
	}

	if s.config.AI.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.AI.Timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.provider.Generate(ctx, req)
	common.LogAICall(s.provider.Name(), time.Since(start), err, common.RequestIDFromContext(ctx))

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", common.NewUpstreamTimeoutError(err)
		}
		return "", common.NewUpstreamError(err)
	}
	return text, nil
}

// Close 關閉供應商
func (s *Service) Close() error {
	if s.provider == nil {
		return nil
	}
	return s.provider.Close()
}
