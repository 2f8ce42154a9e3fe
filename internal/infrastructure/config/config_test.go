package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv 避免開發環境的變數影響測試
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GEMINI_API_KEY", "GEMINI_MODEL", "OPENROUTER_API_KEY", "OPENROUTER_MODEL",
		"AI_PROVIDER", "AI_TIMEOUT", "PORT", "CORS_ORIGINS",
		"DISH_LOCALE", "EXTRACTION_STRATEGY", "LOG_LEVEL", "LOG_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, int64(32<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "gemini-1.5-flash", cfg.Model())
	assert.Equal(t, 0.3, cfg.AI.Dish.Temperature)
	assert.Equal(t, 1000, cfg.AI.Dish.MaxTokens)
	assert.Equal(t, 0.7, cfg.AI.Recipe.Temperature)
	assert.Equal(t, 2048, cfg.AI.Recipe.MaxTokens)
	assert.Equal(t, int64(10*1024*1024), cfg.Image.MaxSizeBytes)
	assert.Equal(t, "en", cfg.Dish.Locale)
	assert.Equal(t, "greedy", cfg.Extraction.Strategy)
	assert.False(t, cfg.CredentialsConfigured())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_PROVIDER", "OpenRouter")
	t.Setenv("OPENROUTER_API_KEY", "sk-or-test-key")
	t.Setenv("OPENROUTER_MODEL", "vision-model")
	t.Setenv("DISH_LOCALE", "ES")
	t.Setenv("EXTRACTION_STRATEGY", "balanced")
	t.Setenv("AI_TIMEOUT", "15s")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenRouter, cfg.AI.Provider)
	assert.Equal(t, "sk-or-test-key", cfg.APIKey())
	assert.Equal(t, "vision-model", cfg.Model())
	assert.True(t, cfg.CredentialsConfigured())
	assert.Equal(t, "es", cfg.Dish.Locale)
	assert.Equal(t, "balanced", cfg.Extraction.Strategy)
	assert.Equal(t, 15*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"provider", "AI_PROVIDER", "anthropic"},
		{"locale", "DISH_LOCALE", "fr"},
		{"strategy", "EXTRACTION_STRATEGY", "regex"},
		{"port", "PORT", "70000"},
		{"image size not whole MB", "APP_IMAGE_MAX_SIZE_BYTES", "10485761"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestLoadConfig_ImageSizeInWholeMB(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_IMAGE_MAX_SIZE_BYTES", "5242880")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, int64(5*1024*1024), cfg.Image.MaxSizeBytes)
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", MaskAPIKey("short"))
	assert.Equal(t, "****", MaskAPIKey("sk-123456"))
	assert.Equal(t, "****", MaskAPIKey("AIzaSyD-1234-wx"))
	assert.Equal(t, "AIza...wxyz", MaskAPIKey("AIzaSyD-1234-wxyz"))
}
