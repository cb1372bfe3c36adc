package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const devJWTSecret = "dev-secret-change-in-production"

// Config holds all application configuration
type Config struct {
	Port        int
	Environment string // "development" | "production"
	LogLevel    string

	JWTSecret      string
	Domain         string
	AllowedOrigins []string

	// Mongo mirror; disabled when MongoURI is empty
	MongoURI      string
	MongoDatabase string

	// Redis issue limiter; disabled when RedisAddress is empty
	RedisAddress    string
	RedisPassword   string
	IssueLimitQueue string
	IssueDailyLimit int
}

// Load reads configuration from the environment, loading .env first if present.
// The returned bool reports whether a .env file was found.
func Load() (*Config, bool, error) {
	envFile := godotenv.Load() == nil

	cfg := &Config{
		Port:        getEnvInt("PORT", 8080),
		Environment: getEnv("GO_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		JWTSecret:      getEnv("JWT_SECRET", devJWTSecret),
		Domain:         getEnv("DOMAIN", ""),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"), ","),

		MongoURI:      getEnv("MONGODB_URI", ""),
		MongoDatabase: getEnv("MONGODB_DATABASE", "civicsync"),

		RedisAddress:    getEnv("REDIS_ADDRESS", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		IssueLimitQueue: getEnv("REDIS_QUEUE_FOR_ISSUE_LIMIT", "issue-limit"),
		IssueDailyLimit: getEnvInt("ISSUE_DAILY_LIMIT", 10),
	}

	if cfg.IsProduction() && cfg.JWTSecret == devJWTSecret {
		return nil, envFile, fmt.Errorf("JWT_SECRET must be set in production")
	}
	return cfg, envFile, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}
