package openrouter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"recipe-relay/internal/core/ai/provider"
	"recipe-relay/internal/pkg/common"
)

const maxErrorBody = 512

// Config OpenRouter 客戶端設定
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Client OpenRouter 供應商
type Client struct {
	client *resty.Client
	model  string
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewClient 創建 OpenRouter 客戶端
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter api key is empty")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Title", "Recipe Relay")

	return &Client{
		client: client,
		model:  cfg.Model,
	}, nil
}

// Name 供應商名稱
func (c *Client) Name() string {
	return "openrouter"
}

// Generate 呼叫 chat completions 並回傳第一個選項的內容
func (c *Client) Generate(ctx context.Context, req *provider.Request) (string, error) {
	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: buildContent(req)},
		},
		MaxTokens:   req.MaxOutputTokens,
		Temperature: req.Temperature,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogDebug("OpenRouter 回應錯誤",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", truncate(resp.String(), maxErrorBody)),
		)
		return "", fmt.Errorf("OpenRouter API returned status %d", resp.StatusCode())
	}

	var result chatResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("no choices in OpenRouter response")
	}

	return result.Choices[0].Message.Content, nil
}

// Close 無需釋放資源
func (c *Client) Close() error {
	return nil
}

func buildContent(req *provider.Request) []contentPart {
	parts := []contentPart{{Type: "text", Text: req.Prompt}}
	if req.Image != nil && len(req.Image.Data) > 0 {
		mimeType := req.Image.MIMEType
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
		parts = append(parts, contentPart{
			Type: "image_url",
			ImageURL: &imageURL{
				URL: fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(req.Image.Data)),
			},
		})
	}
	return parts
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
