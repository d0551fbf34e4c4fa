package config

import (
	"testing"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "TEST_VAR_1", "hello", "default", "hello"},
		{"uses default when empty", "TEST_VAR_2", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envValue)

			result := getEnvOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal int
		expected   int
	}{
		{"parses integer", "TEST_INT_1", "42", 10, 42},
		{"uses default for empty", "TEST_INT_2", "", 10, 10},
		{"uses default for non-numeric", "TEST_INT_3", "abc", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envValue)

			result := getEnvAsIntOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, result)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "LLM_PROVIDER", "IMAGE_PROVIDER", "OPENAI_CHAT_MODEL", "IMAGE_SIZE",
		"LYRICS_API_URL", "SERPAPI_URL", "RATE_LIMIT_PER_MINUTE",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "5050" {
		t.Errorf("Expected port 5050, got %q", cfg.Port)
	}
	if cfg.LLMProvider != ProviderOpenAI || cfg.ImageProvider != ProviderOpenAI {
		t.Errorf("Expected openai providers, got %q / %q", cfg.LLMProvider, cfg.ImageProvider)
	}
	if cfg.OpenAIChatModel != "gpt-3.5-turbo" {
		t.Errorf("Expected gpt-3.5-turbo, got %q", cfg.OpenAIChatModel)
	}
	if cfg.ImageSize != "512x512" {
		t.Errorf("Expected 512x512, got %q", cfg.ImageSize)
	}
	if cfg.LyricsAPIURL != "https://api.lyrics.ovh" {
		t.Errorf("Expected lyrics.ovh, got %q", cfg.LyricsAPIURL)
	}
	if cfg.RateLimitPerMinute != 0 {
		t.Errorf("Expected rate limiting disabled, got %d", cfg.RateLimitPerMinute)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"openai with key", Config{LLMProvider: ProviderOpenAI, ImageProvider: ProviderOpenAI, OpenAIAPIKey: "k"}, false},
		{"openai without key", Config{LLMProvider: ProviderOpenAI, ImageProvider: ProviderOpenAI}, true},
		{"gemini and imagen", Config{LLMProvider: ProviderGemini, ImageProvider: ProviderImagen, GeminiAPIKey: "g"}, false},
		{"gemini without key", Config{LLMProvider: ProviderGemini, ImageProvider: ProviderOpenAI, OpenAIAPIKey: "k"}, true},
		{"unknown llm provider", Config{LLMProvider: "llama", ImageProvider: ProviderOpenAI, OpenAIAPIKey: "k"}, true},
		{"unknown image provider", Config{LLMProvider: ProviderOpenAI, ImageProvider: "midjourney", OpenAIAPIKey: "k"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("expected error=%v, got %v", tc.wantErr, err)
			}
		})
	}
}
