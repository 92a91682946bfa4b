package bootstrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/infra/setup"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, setup.DriverMySQL, cfg.DB.Driver)
	assert.Equal(t, "3306", cfg.DB.Port)
	assert.Equal(t, 20*time.Second, cfg.FeedCacheTTL)
	assert.Equal(t, CacheBackendRedis, cfg.FeedCacheBackend)
	assert.Equal(t, "yt:", cfg.KeyPrefix)
	assert.Equal(t, "@every 1h", cfg.ImageSweepSchedule)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("FEED_CACHE_TTL", "5s")
	t.Setenv("FEED_CACHE_BACKEND", "memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "nonsense")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, 5*time.Second, cfg.FeedCacheTTL)
	assert.Equal(t, CacheBackendMemory, cfg.FeedCacheBackend)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel, "无效的日志级别回退到 info")
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing redis", map[string]string{"REDIS_ADDR": "", "JWT_SECRET": "s"}},
		{"missing secret", map[string]string{"REDIS_ADDR": "r", "JWT_SECRET": ""}},
		{"bad ttl", map[string]string{"REDIS_ADDR": "r", "JWT_SECRET": "s", "FEED_CACHE_TTL": "soon"}},
		{"bad driver", map[string]string{"REDIS_ADDR": "r", "JWT_SECRET": "s", "DB_DRIVER": "sqlite"}},
		{"bad backend", map[string]string{"REDIS_ADDR": "r", "JWT_SECRET": "s", "FEED_CACHE_BACKEND": "disk"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
