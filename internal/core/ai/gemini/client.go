package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"recipe-relay/internal/core/ai/provider"
)

// Config Gemini 客戶端設定
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // 測試時指向假伺服器
}

// Client Gemini 供應商
type Client struct {
	client *genai.Client
	model  string
}

// NewClient 建立 Gemini 客戶端
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is empty")
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{
		client: client,
		model:  cfg.Model,
	}, nil
}

// Name 供應商名稱
func (c *Client) Name() string {
	return "gemini"
}

// Generate 送出提示與圖片並回傳文字回應
func (c *Client) Generate(ctx context.Context, req *provider.Request) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, buildContents(req), buildConfig(req))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return "", errors.New("empty gemini response")
	}
	return text, nil
}

// Close genai 客戶端沒有需要釋放的資源
func (c *Client) Close() error {
	return nil
}

func buildContents(req *provider.Request) []*genai.Content {
	parts := []*genai.Part{{Text: req.Prompt}}
	if req.Image != nil && len(req.Image.Data) > 0 {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: req.Image.MIMEType, Data: req.Image.Data},
		})
	}
	return []*genai.Content{{Role: genai.RoleUser, Parts: parts}}
}

func buildConfig(req *provider.Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxOutputTokens)
	}
	return cfg
}

// 串接第一個候選回應中的文字片段，略過 thought 片段
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String())
}
