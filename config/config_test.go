package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GO_ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("REDIS_ADDRESS", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MONGODB_DATABASE", "")
	t.Setenv("ISSUE_DAILY_LIMIT", "")

	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, "civicsync", cfg.MongoDatabase)
	assert.Equal(t, 10, cfg.IssueDailyLimit)
	assert.Empty(t, cfg.MongoURI)
	assert.Empty(t, cfg.RedisAddress)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ISSUE_DAILY_LIMIT", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 10, cfg.IssueDailyLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, _, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, _, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(&Config{Environment: "development", LogLevel: "bogus"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
