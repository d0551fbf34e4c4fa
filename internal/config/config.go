package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderImagen = "imagen"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Completion
	LLMProvider     string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OpenAIChatModel string
	GeminiAPIKey    string
	GeminiModel     string

	// Image generation
	ImageProvider    string
	OpenAIImageModel string
	ImageSize        string
	ImagenModel      string

	// Search & lyrics
	SerpAPIKey   string
	SerpAPIURL   string
	LyricsAPIURL string

	// Rate limiting (0 disables)
	RateLimitPerMinute int
	RedisURL           string

	// Tracing
	OTelEndpoint string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "5050"),
		Env:                getEnvOrDefault("ENV", "development"),
		LLMProvider:        getEnvOrDefault("LLM_PROVIDER", ProviderOpenAI),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:      getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIChatModel:    getEnvOrDefault("OPENAI_CHAT_MODEL", "gpt-3.5-turbo"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		ImageProvider:      getEnvOrDefault("IMAGE_PROVIDER", ProviderOpenAI),
		OpenAIImageModel:   getEnvOrDefault("OPENAI_IMAGE_MODEL", "dall-e-2"),
		ImageSize:          getEnvOrDefault("IMAGE_SIZE", "512x512"),
		ImagenModel:        getEnvOrDefault("IMAGEN_MODEL", "imagen-3.0-generate-002"),
		SerpAPIKey:         os.Getenv("SERPAPI_KEY"),
		SerpAPIURL:         getEnvOrDefault("SERPAPI_URL", "https://serpapi.com/search"),
		LyricsAPIURL:       getEnvOrDefault("LYRICS_API_URL", "https://api.lyrics.ovh"),
		RateLimitPerMinute: getEnvAsIntOrDefault("RATE_LIMIT_PER_MINUTE", 0),
		RedisURL:           os.Getenv("REDIS_URL"),
		OTelEndpoint:       os.Getenv("OTEL_EXPORTER_ENDPOINT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the credentials for the selected providers are present.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return missingEnv("OPENAI_API_KEY")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return missingEnv("GEMINI_API_KEY")
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLMProvider)
	}

	switch c.ImageProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return missingEnv("OPENAI_API_KEY")
		}
	case ProviderImagen:
		if c.GeminiAPIKey == "" {
			return missingEnv("GEMINI_API_KEY")
		}
	default:
		return fmt.Errorf("unsupported IMAGE_PROVIDER %q", c.ImageProvider)
	}

	return nil
}

// ClientURL is the chat server address used by the terminal client.
func ClientURL() string {
	godotenv.Load()
	return getEnvOrDefault("CHAT_SERVER_URL", "http://localhost:5050")
}

func missingEnv(key string) error {
	return fmt.Errorf("required environment variable %s is not set", key)
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
