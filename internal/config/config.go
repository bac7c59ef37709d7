package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

type Config struct {
	// Server
	Port               int
	Environment        string
	LogLevel           string
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string

	// Database (optional, sample data is served when empty)
	DatabaseURL         string
	DBMaxConnections    int
	DBConnectionTimeout time.Duration

	// AI chat
	AIAPIKey          string
	AIBaseURL         string
	AIModel           string
	AIMaxOutputTokens int

	// Exchange rate
	ExchangeRateTTL  time.Duration
	ExchangeRateBase int

	// S3 (optional, reports are streamed when empty)
	S3Bucket        string
	S3Region        string
	AWSEndpoint     string // For LocalStack in development
	ReportURLExpiry time.Duration

	// Display
	CurrencyMode string
	NumberLocale string // BCP 47 tag used for digit grouping
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Port:                getEnvInt("PORT", 8080),
		Environment:         getEnv("ENVIRONMENT", "development"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout:     getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		CORSAllowedOrigins:  getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5000", "http://127.0.0.1:5000"}),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		DBMaxConnections:    getEnvInt("DB_MAX_CONNECTIONS", 10),
		DBConnectionTimeout: getEnvDuration("DB_CONNECTION_TIMEOUT", 30*time.Second),
		AIAPIKey:            getEnv("AI_API_KEY", ""),
		AIBaseURL:           getEnv("AI_BASE_URL", ""),
		AIModel:             getEnv("AI_MODEL", "gemini-2.5-flash"),
		AIMaxOutputTokens:   getEnvInt("AI_MAX_OUTPUT_TOKENS", 1024),
		ExchangeRateTTL:     getEnvDuration("EXCHANGE_RATE_TTL", 5*time.Minute),
		ExchangeRateBase:    getEnvInt("EXCHANGE_RATE_BASE", 685000),
		S3Bucket:            getEnv("S3_BUCKET", ""),
		S3Region:            getEnv("S3_REGION", ""),
		AWSEndpoint:         getEnv("AWS_ENDPOINT", ""),
		ReportURLExpiry:     getEnvDuration("REPORT_URL_EXPIRY", 15*time.Minute),
		CurrencyMode:        getEnv("CURRENCY_MODE", "RIAL"),
		NumberLocale:        getEnv("NUMBER_LOCALE", "fa-IR"),
	}

	// Validate required fields
	if cfg.AIAPIKey == "" && cfg.Environment == "production" {
		return nil, fmt.Errorf("AI_API_KEY is required in production")
	}
	if cfg.S3Bucket != "" && cfg.S3Region == "" {
		return nil, fmt.Errorf("S3_REGION is required when S3_BUCKET is set")
	}
	if cfg.CurrencyMode != "RIAL" && cfg.CurrencyMode != "TOMAN" {
		return nil, fmt.Errorf("CURRENCY_MODE must be RIAL or TOMAN, got %q", cfg.CurrencyMode)
	}
	if _, err := language.Parse(cfg.NumberLocale); err != nil {
		return nil, fmt.Errorf("NUMBER_LOCALE is not a valid language tag: %w", err)
	}
	if cfg.AIMaxOutputTokens <= 0 {
		return nil, fmt.Errorf("AI_MAX_OUTPUT_TOKENS must be positive")
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvList reads a comma separated list, dropping empty entries
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
