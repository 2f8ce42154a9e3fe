package image

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"strings"

	_ "image/gif" // 支援 GIF
	_ "image/png" // 支援 PNG

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // 支援 WebP

	"recipe-relay/internal/pkg/common"
)

// DefaultMaxSizeBytes 預設上傳上限 10MB
const DefaultMaxSizeBytes int64 = 10 * 1024 * 1024

// MaxPixels 解碼前允許的最大像素數
const MaxPixels int64 = 50_000_000

// SupportedFormats 對外公布的支援格式
var SupportedFormats = []string{"JPEG", "PNG", "WEBP"}

// Processed 驗證並正規化後的圖片
type Processed struct {
	Image    image.Image // 不透明 RGB 圖片
	Format   string      // 原始格式
	Data     []byte      // 重新編碼後的 JPEG
	MIMEType string
}

// Service 圖片驗證服務
type Service struct {
	maxSizeBytes int64
}

// NewService 創建新的圖片驗證服務
func NewService(maxSizeBytes int64) *Service {
	if maxSizeBytes <= 0 {
		maxSizeBytes = DefaultMaxSizeBytes
	}
	return &Service{maxSizeBytes: maxSizeBytes}
}

// MaxSizeBytes 上傳上限
func (s *Service) MaxSizeBytes() int64 {
	return s.maxSizeBytes
}

// Process 檢查宣告類型、大小與內容，並轉為 RGB JPEG
func (s *Service) Process(contentType string, r io.Reader) (*Processed, error) {
	if !IsImageContentType(contentType) {
		return nil, common.ErrUnsupportedMediaType
	}

	// 多讀一個位元組以判斷是否超過上限
	data, err := io.ReadAll(io.LimitReader(r, s.maxSizeBytes+1))
	if err != nil {
		return nil, common.NewUnreadableImageError(fmt.Errorf("failed to read image data: %w", err))
	}
	if int64(len(data)) > s.maxSizeBytes {
		return nil, common.ErrPayloadTooLarge
	}

	// 先讀取標頭，避免高壓縮比的圖片在解碼時耗盡記憶體
	header, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, common.NewUnreadableImageError(fmt.Errorf("failed to read image header: %w", err))
	}
	if pixels := int64(header.Width) * int64(header.Height); pixels > MaxPixels {
		common.LogImageProcessing("warn",
			zap.Int("width", header.Width),
			zap.Int("height", header.Height),
			zap.Int64("max_pixels", MaxPixels),
		)
		return nil, common.NewUnreadableImageError(fmt.Errorf("image too large: %dx%d pixels", header.Width, header.Height))
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, common.NewUnreadableImageError(fmt.Errorf("failed to decode image: %w", err))
	}
	if !isSupportedFormat(format) {
		return nil, common.NewUnreadableImageError(fmt.Errorf("unsupported image format: %s", format))
	}

	rgb := ToRGB(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, rgb, &jpeg.Options{Quality: 85}); err != nil {
		return nil, common.NewUnreadableImageError(fmt.Errorf("failed to encode image as JPEG: %w", err))
	}

	common.LogImageProcessing("info",
		zap.String("format", format),
		zap.Int("original_bytes", len(data)),
		zap.Int("jpeg_bytes", buf.Len()),
		zap.Int("width", rgb.Bounds().Dx()),
		zap.Int("height", rgb.Bounds().Dy()),
	)

	return &Processed{
		Image:    rgb,
		Format:   format,
		Data:     buf.Bytes(),
		MIMEType: "image/jpeg",
	}, nil
}

// IsImageContentType 宣告的類型是否為圖片
func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

// ToRGB 將圖片合成在白色背景上，去除透明通道
func ToRGB(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}

// isSupportedFormat 檢查圖片格式是否支援
func isSupportedFormat(format string) bool {
	supportedFormats := map[string]bool{
		"jpeg": true,
		"png":  true,
		"gif":  true,
		"webp": true,
	}
	return supportedFormats[format]
}
