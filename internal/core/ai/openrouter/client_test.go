package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-relay/internal/core/ai/provider"
)

func TestGenerate_SendsImageAsDataURL(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"dish_name\":\"Paella\"}"}}]}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "sk-test", Model: "test-model", BaseURL: server.URL})
	require.NoError(t, err)

	text, err := client.Generate(context.Background(), &provider.Request{
		Prompt:          "identify",
		Image:           &provider.ImagePayload{MIMEType: "image/jpeg", Data: []byte{1, 2, 3}},
		Temperature:     0.3,
		MaxOutputTokens: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"dish_name":"Paella"}`, text)

	assert.Equal(t, "test-model", captured.Model)
	assert.Equal(t, 1000, captured.MaxTokens)
	assert.InDelta(t, 0.3, captured.Temperature, 1e-9)
	require.Len(t, captured.Messages, 1)
	require.Len(t, captured.Messages[0].Content, 2)
	assert.Equal(t, "identify", captured.Messages[0].Content[0].Text)
	require.NotNil(t, captured.Messages[0].Content[1].ImageURL)
	assert.Equal(t, "data:image/jpeg;base64,AQID", captured.Messages[0].Content[1].ImageURL.URL)
}

func TestGenerate_TextOnly(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), &provider.Request{Prompt: "recipe"})
	require.NoError(t, err)
	require.Len(t, captured.Messages[0].Content, 1)
	assert.Equal(t, "text", captured.Messages[0].Content[0].Type)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"non 200", http.StatusTooManyRequests, `{"error":"rate limited"}`, "status 429"},
		{"bad body", http.StatusOK, `not json`, "failed to parse"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "no choices"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL})
			require.NoError(t, err)

			_, err = client.Generate(context.Background(), &provider.Request{Prompt: "x"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
	assert.False(t, strings.HasSuffix(truncate("abc", 3), "..."))
}
