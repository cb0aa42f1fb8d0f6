package config

import (
	"log/slog"
	"os"
	"strconv"
)

type Config struct {
	// Anthropic upstream configuration
	AnthropicAPIKey  string
	AnthropicBaseURL string
	ClaudeModel      string
	MaxTokens        int

	// Server configuration
	Port string
}

func LoadConfig() *Config {
	cfg := &Config{
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicBaseURL: getEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
		ClaudeModel:      getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-20241022"),
		MaxTokens:        getEnvInt("MAX_TOKENS", 1024),
		Port:             getEnv("PORT", "8080"),
	}

	if cfg.AnthropicAPIKey == "" {
		slog.Warn("ANTHROPIC_API_KEY not set - /chat will fail until configured")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		slog.Warn("Invalid integer in environment, using default", "key", key, "value", value)
	}
	return defaultValue
}
