package provider

import (
	"context"
)

// ImagePayload 隨提示一起送出的圖片
type ImagePayload struct {
	MIMEType string
	Data     []byte
}

// Request 表示發送到 AI 提供者的請求
type Request struct {
	Prompt          string
	Image           *ImagePayload
	Temperature     float64
	MaxOutputTokens int
}

// Provider 定義 AI 提供者介面
type Provider interface {
	// Generate 回傳模型的原始文字回應
	Generate(ctx context.Context, req *Request) (string, error)

	// Name 供應商名稱，用於日誌
	Name() string

	// Close 關閉提供者連接
	Close() error
}
