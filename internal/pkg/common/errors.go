package common

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind 錯誤分類，決定對外狀態碼與訊息是否可公開
type ErrorKind string

const (
	KindConfiguration   ErrorKind = "CONFIGURATION_ERROR"    // 缺少憑證等設定問題
	KindInputValidation ErrorKind = "INPUT_VALIDATION_ERROR" // 上傳檔案或請求格式錯誤
	KindUpstream        ErrorKind = "UPSTREAM_ERROR"         // 無法連線或呼叫模型失敗
	KindExtraction      ErrorKind = "EXTRACTION_ERROR"       // 模型回應中找不到或無法解析 JSON
	KindSchema          ErrorKind = "SCHEMA_ERROR"           // 缺少必要欄位
	KindInternal        ErrorKind = "INTERNAL_ERROR"         // 其他未預期錯誤
)

// 預定義錯誤代碼
const (
	ErrCodeModelNotConfigured   = "MODEL_NOT_CONFIGURED"
	ErrCodeInvalidRequest       = "INVALID_REQUEST"
	ErrCodeMissingImage         = "MISSING_IMAGE"
	ErrCodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
	ErrCodePayloadTooLarge      = "PAYLOAD_TOO_LARGE"
	ErrCodeUnreadableImage      = "UNREADABLE_IMAGE"
	ErrCodeEmptyIngredientList  = "EMPTY_INGREDIENT_LIST"
	ErrCodeInvalidServings      = "INVALID_SERVINGS"
	ErrCodeInvalidCalories      = "INVALID_CALORIES"
	ErrCodeUpstreamUnavailable  = "UPSTREAM_UNAVAILABLE"
	ErrCodeUpstreamTimeout      = "UPSTREAM_TIMEOUT"
	ErrCodeNoJSONFound          = "NO_JSON_FOUND"
	ErrCodeMalformedJSON        = "MALFORMED_JSON"
	ErrCodeMissingField         = "MISSING_FIELD"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// AppError 應用程式錯誤
type AppError struct {
	Kind    ErrorKind // 錯誤分類
	Code    string    // 錯誤代碼
	Message string    // 錯誤信息
	Field   string    // 缺少的欄位（僅 MissingField）
	Err     error     // 原始錯誤
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap 讓 errors.Is/As 能看到原始錯誤
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 以錯誤代碼比對，使帶參數的錯誤也能與預定義錯誤比較
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError 創建新的應用程式錯誤
func NewError(kind ErrorKind, code, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithMessage 回傳訊息替換後的副本
func (e *AppError) WithMessage(message string) *AppError {
	cp := *e
	cp.Message = message
	return &cp
}

// 預定義錯誤
var (
	ErrModelNotConfigured   = NewError(KindConfiguration, ErrCodeModelNotConfigured, "Model API key not configured", nil)
	ErrInvalidRequest       = NewError(KindInputValidation, ErrCodeInvalidRequest, "Invalid request format", nil)
	ErrMissingImage         = NewError(KindInputValidation, ErrCodeMissingImage, "An image file is required", nil)
	ErrUnsupportedMediaType = NewError(KindInputValidation, ErrCodeUnsupportedMediaType, "Only image files are allowed (JPEG, PNG, WEBP)", nil)
	ErrPayloadTooLarge      = NewError(KindInputValidation, ErrCodePayloadTooLarge, "Image must be smaller than 10MB", nil)
	ErrUnreadableImage      = NewError(KindInputValidation, ErrCodeUnreadableImage, "Unsupported image format", nil)
	ErrEmptyIngredientList  = NewError(KindInputValidation, ErrCodeEmptyIngredientList, "Ingredients list cannot be empty", nil)
	ErrInvalidServings      = NewError(KindInputValidation, ErrCodeInvalidServings, "Servings must be between 1 and 12", nil)
	ErrInvalidCalories      = NewError(KindInputValidation, ErrCodeInvalidCalories, "Calories must be a positive number", nil)
	ErrUpstreamUnavailable  = NewError(KindUpstream, ErrCodeUpstreamUnavailable, "AI model service unavailable", nil)
	ErrUpstreamTimeout      = NewError(KindUpstream, ErrCodeUpstreamTimeout, "AI model service timed out", nil)
	ErrNoJSONFound          = NewError(KindExtraction, ErrCodeNoJSONFound, "No valid JSON found in the response", nil)
	ErrMalformedJSON        = NewError(KindExtraction, ErrCodeMalformedJSON, "JSON decoding error", nil)
	ErrMissingField         = NewError(KindSchema, ErrCodeMissingField, "Missing required field", nil)
	ErrInternal             = NewError(KindInternal, ErrCodeInternalError, "Internal server error", nil)
)

// NewMalformedJSONError 包裝 JSON 解析器的錯誤訊息
func NewMalformedJSONError(err error) *AppError {
	return NewError(KindExtraction, ErrCodeMalformedJSON, fmt.Sprintf("JSON decoding error: %v", err), err)
}

// NewMissingFieldError 缺少必要欄位
func NewMissingFieldError(field string) *AppError {
	e := NewError(KindSchema, ErrCodeMissingField, fmt.Sprintf("Missing required field: %s", field), nil)
	e.Field = field
	return e
}

// NewUpstreamError 包裝模型呼叫失敗
func NewUpstreamError(err error) *AppError {
	return NewError(KindUpstream, ErrCodeUpstreamUnavailable, ErrUpstreamUnavailable.Message, err)
}

// NewUpstreamTimeoutError 包裝模型呼叫逾時
func NewUpstreamTimeoutError(err error) *AppError {
	return NewError(KindUpstream, ErrCodeUpstreamTimeout, ErrUpstreamTimeout.Message, err)
}

// NewUnreadableImageError 圖片無法解碼
func NewUnreadableImageError(err error) *AppError {
	return NewError(KindInputValidation, ErrCodeUnreadableImage, ErrUnreadableImage.Message, err)
}

// AsAppError 取出錯誤鏈中的 AppError，找不到時視為內部錯誤
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewError(KindInternal, ErrCodeInternalError, ErrInternal.Message, err)
}

// ErrorEnvelope 對外錯誤格式
type ErrorEnvelope struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Success    bool   `json:"success"`
}

// ErrorPolicy 各端點的錯誤呈現方式
type ErrorPolicy struct {
	// ValidationMessage 輸入驗證錯誤的對外訊息，未設定時使用錯誤本身的訊息
	ValidationMessage func(e *AppError) string
	// ExtractionStatus 解析與缺欄位錯誤使用的狀態碼
	ExtractionStatus int
	// ExtractionMessage 解析錯誤的對外訊息
	ExtractionMessage func(e *AppError) string
	// SchemaMessage 缺欄位錯誤的對外訊息
	SchemaMessage func(e *AppError) string
	// ConfigurationMessage 缺少憑證時的訊息
	ConfigurationMessage string
	// GenericMessage 上游與未預期錯誤的訊息，不洩漏細節
	GenericMessage string
}

// ResolveError 將錯誤轉換為狀態碼與對外錯誤格式
func ResolveError(err error, policy ErrorPolicy) (int, ErrorEnvelope) {
	appErr := AsAppError(err)

	status := http.StatusInternalServerError
	message := policy.GenericMessage

	switch appErr.Kind {
	case KindInputValidation:
		status = http.StatusBadRequest
		message = appErr.Message
		if policy.ValidationMessage != nil {
			message = policy.ValidationMessage(appErr)
		}
	case KindConfiguration:
		message = policy.ConfigurationMessage
	case KindExtraction:
		status = policy.ExtractionStatus
		if policy.ExtractionMessage != nil {
			message = policy.ExtractionMessage(appErr)
		}
	case KindSchema:
		status = policy.ExtractionStatus
		if policy.SchemaMessage != nil {
			message = policy.SchemaMessage(appErr)
		}
	}

	if status == 0 {
		status = http.StatusInternalServerError
	}
	if message == "" {
		message = ErrInternal.Message
	}

	return status, ErrorEnvelope{
		Error:      message,
		StatusCode: status,
		Success:    false,
	}
}
