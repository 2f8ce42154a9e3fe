package recipe

import (
	"fmt"
	"net/http"
	"strings"

	"recipe-relay/internal/pkg/common"
)

// Locale 菜餚辨識使用的語系：提示文字、預設類型與錯誤訊息
type Locale struct {
	Code string

	Intro        string
	Instructions []string
	FormatLabel  string
	DefaultType  string

	NotConfigured   string // %s 為供應商名稱
	InvalidData     string
	GenericError    string
	MissingField    string
	JSONDecode      string
	NoJSON          string
	MissingImage    string
	UnsupportedType string
	TooLarge        string // %d 為 MB 上限
	Unreadable      string
}

var locales = map[string]*Locale{
	"en": {
		Code:  "en",
		Intro: "Analyze this cooked dish and return:",
		Instructions: []string{
			"Dish name (in English)",
			"Type (main course/starter/dessert)",
			"All visible ingredients with state and approximate quantity",
			"Cultural origin",
			"Preparation steps",
			"Suggested cooking time",
			"Presentation suggestion",
		},
		FormatLabel:     "Strict JSON format:",
		DefaultType:     "main course",
		NotConfigured:   "%s API key not configured",
		InvalidData:     "Invalid data: ",
		GenericError:    "Error analyzing the dish",
		MissingField:    "Missing required field: ",
		JSONDecode:      "JSON decoding error: ",
		NoJSON:          "No valid JSON found in the response",
		MissingImage:    "An image file is required",
		UnsupportedType: "Only image files are allowed (JPEG, PNG, WEBP)",
		TooLarge:        "Image must be smaller than %dMB",
		Unreadable:      "Unsupported image format",
	},
	"es": {
		Code:  "es",
		Intro: "Analiza este plato cocinado y devuelve:",
		Instructions: []string{
			"Nombre del plato (en español)",
			"Tipo (principal/entrante/postre)",
			"Todos los ingredientes visibles con estado y cantidad aproximada",
			"Origen cultural",
			"Pasos de preparación",
			"Tiempo de cocción sugerido",
			"Sugerencia de presentación",
		},
		FormatLabel:     "Formato JSON estricto:",
		DefaultType:     "principal",
		NotConfigured:   "API key de %s no configurada",
		InvalidData:     "Datos inválidos: ",
		GenericError:    "Error al analizar el plato",
		MissingField:    "Campo requerido faltante: ",
		JSONDecode:      "Error decodificando JSON: ",
		NoJSON:          "No se encontró JSON válido en la respuesta",
		MissingImage:    "Se requiere un archivo de imagen",
		UnsupportedType: "Solo se permiten archivos de imagen (JPEG, PNG, WEBP)",
		TooLarge:        "La imagen debe ser menor a %dMB",
		Unreadable:      "Formato de imagen no soportado",
	},
}

// DefaultLocale 未設定時的語系
const DefaultLocale = "en"

// LookupLocale 取得語系，未知代碼回傳 false
func LookupLocale(code string) (*Locale, bool) {
	l, ok := locales[strings.ToLower(strings.TrimSpace(code))]
	return l, ok
}

// ResolveLocale 依請求代碼選擇語系，未知時退回預設
func ResolveLocale(code, fallback string) *Locale {
	if l, ok := LookupLocale(code); ok {
		return l
	}
	if l, ok := LookupLocale(fallback); ok {
		return l
	}
	return locales[DefaultLocale]
}

// SupportedLocales 支援的語系代碼
func SupportedLocales() []string {
	return []string{"en", "es"}
}

func providerLabel(provider string) string {
	switch provider {
	case "gemini":
		return "Gemini"
	case "openrouter":
		return "OpenRouter"
	}
	return "Model"
}

// DishErrorPolicy 菜餚辨識的錯誤呈現：解析與缺欄位錯誤回 400
func DishErrorPolicy(l *Locale, provider string, maxSizeBytes int64) common.ErrorPolicy {
	return common.ErrorPolicy{
		ValidationMessage: func(e *common.AppError) string {
			switch e.Code {
			case common.ErrCodeMissingImage:
				return l.MissingImage
			case common.ErrCodeUnsupportedMediaType:
				return l.UnsupportedType
			case common.ErrCodePayloadTooLarge:
				return fmt.Sprintf(l.TooLarge, maxSizeBytes/(1024*1024))
			case common.ErrCodeUnreadableImage:
				return l.Unreadable
			}
			return e.Message
		},
		ExtractionStatus: http.StatusBadRequest,
		ExtractionMessage: func(e *common.AppError) string {
			if e.Code == common.ErrCodeNoJSONFound {
				return l.InvalidData + l.NoJSON
			}
			detail := ""
			if e.Err != nil {
				detail = e.Err.Error()
			}
			return l.InvalidData + l.JSONDecode + detail
		},
		SchemaMessage: func(e *common.AppError) string {
			return l.InvalidData + l.MissingField + e.Field
		},
		ConfigurationMessage: fmt.Sprintf(l.NotConfigured, providerLabel(provider)),
		GenericMessage:       l.GenericError,
	}
}

// RecipeErrorPolicy 食譜生成的錯誤呈現：解析與缺欄位錯誤回 500
func RecipeErrorPolicy(provider string) common.ErrorPolicy {
	return common.ErrorPolicy{
		ExtractionStatus: http.StatusInternalServerError,
		ExtractionMessage: func(*common.AppError) string {
			return "Failed to generate recipe. Please try again."
		},
		SchemaMessage: func(e *common.AppError) string {
			return "Invalid recipe format: missing " + e.Field
		},
		ConfigurationMessage: fmt.Sprintf(locales[DefaultLocale].NotConfigured, providerLabel(provider)),
		GenericMessage:       "Failed to generate recipe",
	}
}
