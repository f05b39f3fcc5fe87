// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// APIConfig provides settings for talking to the campus backend.
type APIConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
}

// AuthConfig provides settings needed by the auth service.
type AuthConfig interface {
	GetAuthRatePerMinute() float64
	GetAuthBurst() int
	GetPhoneRegion() string
}

// DevServerConfig provides settings for the local stub backend.
type DevServerConfig interface {
	GetDevAddr() string
	GetDevJWTSecret() string
	GetDevTokenTTL() time.Duration
	GetAllowOrigins() []string
}

// AssistantConfig provides settings for the chat responder.
type AssistantConfig interface {
	GetGeminiAPIKey() string
	GetGeminiModel() string
	IsAssistantEnabled() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env               string
	APIBaseURL        string
	RequestTimeout    time.Duration
	AuthRatePerMinute float64
	AuthBurst         int
	PhoneRegion       string
	DevAddr           string
	DevJWTSecret      string
	DevTokenTTL       time.Duration
	AllowOrigins      []string
	GeminiAPIKey      string
	GeminiModel       string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// APIConfig implementation
func (c *Config) GetAPIBaseURL() string            { return c.APIBaseURL }
func (c *Config) GetRequestTimeout() time.Duration { return c.RequestTimeout }

// AuthConfig implementation
func (c *Config) GetAuthRatePerMinute() float64 { return c.AuthRatePerMinute }
func (c *Config) GetAuthBurst() int             { return c.AuthBurst }
func (c *Config) GetPhoneRegion() string        { return c.PhoneRegion }

// DevServerConfig implementation
func (c *Config) GetDevAddr() string            { return c.DevAddr }
func (c *Config) GetDevJWTSecret() string       { return c.DevJWTSecret }
func (c *Config) GetDevTokenTTL() time.Duration { return c.DevTokenTTL }
func (c *Config) GetAllowOrigins() []string     { return c.AllowOrigins }

// AssistantConfig implementation
func (c *Config) GetGeminiAPIKey() string  { return c.GeminiAPIKey }
func (c *Config) GetGeminiModel() string   { return c.GeminiModel }
func (c *Config) IsAssistantEnabled() bool { return c.GeminiAPIKey != "" }

// Load reads configuration from environment variables, after merging a .env
// file from the working directory when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:               getEnv("APP_ENV", "development"),
		APIBaseURL:        strings.TrimRight(getEnv("SIGMA_API_BASE_URL", "http://localhost:8000"), "/"),
		RequestTimeout:    mustDuration(getEnv("SIGMA_REQUEST_TIMEOUT", "10s")),
		AuthRatePerMinute: mustFloat(getEnv("SIGMA_AUTH_RATE_PER_MINUTE", "10")),
		AuthBurst:         mustInt(getEnv("SIGMA_AUTH_BURST", "3")),
		PhoneRegion:       strings.ToUpper(getEnv("SIGMA_PHONE_REGION", "KR")),
		DevAddr:           getEnv("SIGMA_DEV_ADDR", ":8000"),
		DevJWTSecret:      getEnv("SIGMA_DEV_JWT_SECRET", "dev-secret"),
		DevTokenTTL:       mustDuration(getEnv("SIGMA_DEV_TOKEN_TTL", "24h")),
		AllowOrigins:      splitCSV(getEnv("ALLOW_ORIGINS", "*")),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that every command depends on.
// CLI flag overrides call it again after mutating the config.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("SIGMA_API_BASE_URL is required")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("SIGMA_API_BASE_URL must be an absolute http(s) URL, got %q", c.APIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("SIGMA_REQUEST_TIMEOUT must be a positive duration")
	}
	if c.AuthRatePerMinute <= 0 || c.AuthBurst <= 0 {
		return fmt.Errorf("SIGMA_AUTH_RATE_PER_MINUTE and SIGMA_AUTH_BURST must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}
