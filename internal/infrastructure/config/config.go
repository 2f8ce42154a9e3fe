package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"recipe-relay/internal/pkg/common"
)

// 支援的模型供應商
const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

// Config 應用配置
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	AI         AIConfig         `mapstructure:"ai"`
	Image      ImageConfig      `mapstructure:"image"`
	Dish       DishConfig       `mapstructure:"dish"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	LogLevel   string           `mapstructure:"log_level"`
	LogDir     string           `mapstructure:"log_dir"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

// AIConfig 模型設定
type AIConfig struct {
	Provider   string           `mapstructure:"provider"`
	Timeout    time.Duration    `mapstructure:"timeout"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Dish       GenerationConfig `mapstructure:"dish"`
	Recipe     GenerationConfig `mapstructure:"recipe"`
}

// GeminiConfig Gemini 配置
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// OpenRouterConfig OpenRouter 配置
type OpenRouterConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// GenerationConfig 單一流程的生成參數
type GenerationConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// ImageConfig 圖片配置
type ImageConfig struct {
	MaxSizeBytes int64 `mapstructure:"max_size_bytes"`
}

// DishConfig 菜餚辨識設定
type DishConfig struct {
	Locale string `mapstructure:"locale"`
}

// ExtractionConfig JSON 擷取設定
type ExtractionConfig struct {
	Strategy string `mapstructure:"strategy"`
}

// APIKey 目前供應商的 API Key
func (c *Config) APIKey() string {
	if c.AI.Provider == ProviderOpenRouter {
		return c.AI.OpenRouter.APIKey
	}
	return c.AI.Gemini.APIKey
}

// Model 目前供應商的模型名稱
func (c *Config) Model() string {
	if c.AI.Provider == ProviderOpenRouter {
		return c.AI.OpenRouter.Model
	}
	return c.AI.Gemini.Model
}

// CredentialsConfigured 是否已設定模型憑證
func (c *Config) CredentialsConfigured() bool {
	return strings.TrimSpace(c.APIKey()) != ""
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件，不存在時直接使用環境變數
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	bindings := map[string]string{
		"ai.gemini.api_key":     "GEMINI_API_KEY",
		"ai.gemini.model":       "GEMINI_MODEL",
		"ai.openrouter.api_key": "OPENROUTER_API_KEY",
		"ai.openrouter.model":   "OPENROUTER_MODEL",
		"ai.provider":           "AI_PROVIDER",
		"ai.timeout":            "AI_TIMEOUT",
		"server.port":           "PORT",
		"server.cors_origins":   "CORS_ORIGINS",
		"dish.locale":           "DISH_LOCALE",
		"extraction.strategy":   "EXTRACTION_STRATEGY",
		"log_level":             "LOG_LEVEL",
		"log_dir":               "LOG_DIR",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "APP_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	// 解析設定
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.AI.Provider = strings.ToLower(strings.TrimSpace(config.AI.Provider))
	config.Dish.Locale = strings.ToLower(strings.TrimSpace(config.Dish.Locale))
	config.Extraction.Strategy = strings.ToLower(strings.TrimSpace(config.Extraction.Strategy))

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// MaskAPIKey 遮罩 API Key，只顯示前後各 4 個字符，短於 16 個字符時完全遮罩
func MaskAPIKey(key string) string {
	if len(key) < 16 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "recipe-relay")

	// 伺服器設定
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173", "http://localhost:3000"})
	v.SetDefault("server.max_body_bytes", 32<<20)

	// 模型設定
	v.SetDefault("ai.provider", ProviderGemini)
	v.SetDefault("ai.timeout", "60s")
	v.SetDefault("ai.gemini.api_key", "")
	v.SetDefault("ai.gemini.model", "gemini-1.5-flash")
	v.SetDefault("ai.openrouter.api_key", "")
	v.SetDefault("ai.openrouter.model", "qwen/qwen2.5-vl-72b-instruct:free")
	v.SetDefault("ai.openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("ai.dish.temperature", 0.3)
	v.SetDefault("ai.dish.max_tokens", 1000)
	v.SetDefault("ai.recipe.temperature", 0.7)
	v.SetDefault("ai.recipe.max_tokens", 2048)

	// 圖片設定
	v.SetDefault("image.max_size_bytes", 10*1024*1024) // 10MB

	v.SetDefault("dish.locale", "en")
	v.SetDefault("extraction.strategy", "greedy")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_dir", "logs")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}
	if config.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid max body bytes")
	}

	switch config.AI.Provider {
	case ProviderGemini, ProviderOpenRouter:
	default:
		return fmt.Errorf("unsupported ai provider: %q", config.AI.Provider)
	}
	if config.AI.Timeout < 0 {
		return fmt.Errorf("invalid ai timeout")
	}
	for name, gen := range map[string]GenerationConfig{"dish": config.AI.Dish, "recipe": config.AI.Recipe} {
		if gen.Temperature < 0 || gen.Temperature > 2 {
			return fmt.Errorf("invalid %s temperature: %v", name, gen.Temperature)
		}
		if gen.MaxTokens <= 0 {
			return fmt.Errorf("invalid %s max tokens", name)
		}
	}

	if config.Image.MaxSizeBytes <= 0 {
		return fmt.Errorf("invalid image max size")
	}
	// 上傳限制以 MB 公布
	if config.Image.MaxSizeBytes%(1024*1024) != 0 {
		return fmt.Errorf("image max size must be a whole number of MB: %d", config.Image.MaxSizeBytes)
	}

	switch config.Dish.Locale {
	case "en", "es":
	default:
		return fmt.Errorf("unsupported dish locale: %q", config.Dish.Locale)
	}

	if _, ok := common.ParseExtractionStrategy(config.Extraction.Strategy); !ok {
		return fmt.Errorf("unsupported extraction strategy: %q", config.Extraction.Strategy)
	}

	return nil
}
