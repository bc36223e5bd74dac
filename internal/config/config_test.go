package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Product API", cfg.ProjectName)
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, 100, cfg.RateLimitMaxRequests)
	assert.Equal(t, 60, cfg.RateLimitWindowMinutes)
	assert.Empty(t, cfg.ValidAPIKeys)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PROJECT_NAME", "Catalogo")
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "5")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Catalogo", cfg.ProjectName)
	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, 5, cfg.RateLimitMaxRequests)
	assert.Equal(t, "cache.internal:6380", cfg.RedisAddr())
}

func TestRateLimitWindow(t *testing.T) {
	cfg := Config{RateLimitWindowMinutes: 15}
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow())
}
